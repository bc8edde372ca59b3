package services

import "sync"

// Keymap binds selection keys. Bindings are checked in the order Next, Prev,
// Reset, so a Reset key equal to Next or Prev is never reached.
type Keymap struct {
	Next  string
	Prev  string
	Reset string
}

// DefaultKeymap keeps the historical bindings: reset shares "j" with next and
// is therefore unreachable.
var DefaultKeymap = Keymap{Next: "j", Prev: "k", Reset: "j"}

// ResetReachable reports whether the Reset binding can ever fire.
func (k Keymap) ResetReachable() bool {
	return k.Reset != "" && k.Reset != k.Next && k.Reset != k.Prev
}

// Selection is a keyboard-driven pointer into the project list
type Selection struct {
	mu     sync.Mutex
	keymap Keymap
	length int
	value  int
	set    bool
}

// NewSelection creates an empty selection over a list of the given length
func NewSelection(length int, keymap Keymap) *Selection {
	return &Selection{keymap: keymap, length: length}
}

// Value returns the selected index; ok is false when nothing is selected.
func (s *Selection) Value() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// HandleKey applies one key press and reports whether it was bound.
func (s *Selection) HandleKey(key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case key == s.keymap.Next:
		s.move(1)
	case key == s.keymap.Prev:
		s.move(-1)
	case key == s.keymap.Reset:
		s.value, s.set = 0, false
	default:
		return false
	}
	return true
}

// move steps the selection by delta, clamped to the list. The first move from
// an empty selection always lands on 0.
func (s *Selection) move(delta int) {
	if s.length == 0 {
		return
	}
	if !s.set {
		s.value, s.set = 0, true
		return
	}
	next := s.value + delta
	if next < 0 {
		next = 0
	}
	if next >= s.length {
		next = s.length - 1
	}
	s.value = next
}
