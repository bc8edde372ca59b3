// Package tui browses the portfolio in a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hassak.dev/internal/services"
)

// maxReadmeLines caps how much of an expanded README is shown.
const maxReadmeLines = 40

// readmesSettledMsg is sent once every loader of the view has settled.
type readmesSettledMsg struct{}

// Model is the bubbletea model for one page view. The keyboard selection is
// highlighted here and enter toggles the selected project's README.
type Model struct {
	view    *services.PageView
	title   string
	heading string
	width   int
	settled bool
}

// New creates a model over view
func New(view *services.PageView, title, heading string) Model {
	return Model{view: view, title: title, heading: heading}
}

// Init waits for README requests in the background.
func (m Model) Init() tea.Cmd {
	view := m.view
	return func() tea.Msg {
		_ = view.Wait(context.Background())
		return readmesSettledMsg{}
	}
}

// Update handles key presses and loader completion.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case readmesSettledMsg:
		m.settled = true
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter", " ", "space":
			if idx, ok := m.view.Selection(); ok {
				_, _ = m.view.Toggle(idx)
			}
		default:
			m.view.HandleKey(key)
		}
	}
	return m, nil
}

// View renders the project list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.title))
	b.WriteString("\n\n")
	if m.heading != "" {
		b.WriteString(styleName.Render(m.heading))
		b.WriteString("\n\n")
	}

	selected, hasSelection := m.view.Selection()
	for _, p := range m.view.Projects() {
		cursor := "  "
		name := styleName.Render(p.Name)
		if hasSelection && selected == p.Index {
			cursor = "> "
			name = styleSelected.Render(p.Name)
		}

		b.WriteString(cursor + name)
		if p.Readme.HasContent {
			marker := "▼ readme"
			if p.Readme.Visible {
				marker = "▲ readme"
			}
			b.WriteString("  " + styleToggle.Render(marker))
		}
		b.WriteString("\n")

		if p.HasRepoPage {
			b.WriteString("  " + styleLink.Render(p.RepoPageURL) + "\n")
		}
		if p.Readme.HasContent && p.Readme.Visible {
			readme := styleReadme
			if m.width > 4 {
				readme = readme.Width(m.width - 4)
			}
			b.WriteString(readme.Render(truncateLines(p.Readme.Content, maxReadmeLines)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if !m.settled {
		b.WriteString(styleDim.Render("loading readmes...") + "\n")
	}
	b.WriteString(styleDim.Render("j/k select • enter toggle readme • q quit"))
	return b.String()
}

func truncateLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n… %d more lines", len(lines)-n)
}

// Run starts the terminal browser and unmounts view when it exits.
func Run(view *services.PageView, title, heading string) error {
	defer view.Unmount()
	_, err := tea.NewProgram(New(view, title, heading), tea.WithAltScreen()).Run()
	return err
}
