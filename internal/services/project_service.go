package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"hassak.dev/internal/models"
	"hassak.dev/internal/observability"
	"hassak.dev/internal/resolver"
)

// ProjectService holds the ordered project list and mounts page views over it
type ProjectService struct {
	fetcher  ReadmeFetcher
	resolver resolver.Resolver
	keymap   Keymap
	logger   *zap.Logger
	metrics  *observability.Collector

	mu       sync.RWMutex
	projects []models.ProjectEntry
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects []models.ProjectEntry, fetcher ReadmeFetcher, res resolver.Resolver, keymap Keymap, logger *zap.Logger, metrics *observability.Collector) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		fetcher:  fetcher,
		resolver: res,
		keymap:   keymap,
		logger:   logger,
		metrics:  metrics,
		projects: append([]models.ProjectEntry(nil), projects...),
	}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.ProjectEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProjectEntry(nil), s.projects...)
}

// Get returns the project at index
func (s *ProjectService) Get(index int) (models.ProjectEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.projects) {
		return models.ProjectEntry{}, fmt.Errorf("%w: index %d", ErrProjectNotFound, index)
	}
	return s.projects[index], nil
}

// List returns all projects with their resolved links
func (s *ProjectService) List() []models.ProjectResponse {
	projects := s.GetAll()
	out := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = s.response(i, p)
	}
	return out
}

// Project returns the project at index with its resolved links
func (s *ProjectService) Project(index int) (models.ProjectResponse, error) {
	p, err := s.Get(index)
	if err != nil {
		return models.ProjectResponse{}, err
	}
	return s.response(index, p), nil
}

// Replace swaps the project list. Views already mounted keep the list they
// were created with.
func (s *ProjectService) Replace(projects []models.ProjectEntry) {
	s.mu.Lock()
	s.projects = append([]models.ProjectEntry(nil), projects...)
	s.mu.Unlock()
	s.logger.Info("project list replaced", zap.Int("projects", len(projects)))
}

func (s *ProjectService) response(index int, p models.ProjectEntry) models.ProjectResponse {
	return models.ProjectResponse{
		Index:         index,
		Name:          p.Name,
		Repo:          p.Repo,
		ResolvedLinks: s.resolver.Resolve(p.Repo),
	}
}

// Mount creates a page view with one README loader per project. Every loader
// receives its identity once, which starts its request.
func (s *ProjectService) Mount() *PageView {
	projects := s.GetAll()

	v := &PageView{
		service:   s,
		projects:  projects,
		loaders:   make([]*ReadmeLoader, len(projects)),
		selection: NewSelection(len(projects), s.keymap),
	}
	for i, p := range projects {
		l := NewReadmeLoader(s.fetcher, s.resolver, s.logger, s.metrics)
		l.SetIdentity(p.Name, p.Repo)
		v.loaders[i] = l
	}

	s.metrics.ViewMounted()
	return v
}

// PageView is the state of one visit: a loader per project and the keyboard
// selection. Views share nothing with each other.
type PageView struct {
	service   *ProjectService
	projects  []models.ProjectEntry
	loaders   []*ReadmeLoader
	selection *Selection

	unmountOnce sync.Once
}

// Len returns the number of projects in the view
func (v *PageView) Len() int {
	return len(v.projects)
}

// Loader returns the README loader of the project at index
func (v *PageView) Loader(index int) (*ReadmeLoader, error) {
	if index < 0 || index >= len(v.loaders) {
		return nil, fmt.Errorf("%w: index %d", ErrProjectNotFound, index)
	}
	return v.loaders[index], nil
}

// Projects returns a snapshot of every project card
func (v *PageView) Projects() []models.ProjectView {
	out := make([]models.ProjectView, len(v.projects))
	for i, p := range v.projects {
		out[i] = models.ProjectView{
			ProjectResponse: v.service.response(i, p),
			Readme:          v.loaders[i].State(),
		}
	}
	return out
}

// Toggle flips README visibility for the project at index
func (v *PageView) Toggle(index int) (bool, error) {
	l, err := v.Loader(index)
	if err != nil {
		return false, err
	}
	return l.Toggle()
}

// HandleKey feeds a key press to the selection
func (v *PageView) HandleKey(key string) bool {
	return v.selection.HandleKey(key)
}

// Selection returns the selected index, if any
func (v *PageView) Selection() (int, bool) {
	return v.selection.Value()
}

// SelectionResponse returns the selection in its wire form
func (v *PageView) SelectionResponse() models.SelectionResponse {
	idx, ok := v.selection.Value()
	if !ok {
		return models.SelectionResponse{}
	}
	return models.SelectionResponse{Index: &idx}
}

// Wait blocks until every loader settled or ctx ends
func (v *PageView) Wait(ctx context.Context) error {
	for _, l := range v.loaders {
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Unmount releases every loader. It is safe to call more than once.
func (v *PageView) Unmount() {
	v.unmountOnce.Do(func() {
		for _, l := range v.loaders {
			l.Close()
		}
		v.service.metrics.ViewUnmounted()
	})
}
