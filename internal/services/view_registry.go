package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// ViewRegistry keeps live page views by id. The oldest views are evicted once
// maxViews is reached and every view expires ttl after creation; both unmount
// the view.
type ViewRegistry struct {
	projects *ProjectService
	logger   *zap.Logger
	views    *expirable.LRU[string, *PageView]
}

// NewViewRegistry creates a registry. A ttl of zero disables expiry.
func NewViewRegistry(projects *ProjectService, maxViews int, ttl time.Duration, logger *zap.Logger) *ViewRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &ViewRegistry{projects: projects, logger: logger}
	r.views = expirable.NewLRU[string, *PageView](maxViews, r.evicted, ttl)
	return r
}

func (r *ViewRegistry) evicted(id string, v *PageView) {
	r.logger.Debug("page view released", zap.String("view", id))
	v.Unmount()
}

// Create mounts a new page view and returns its id
func (r *ViewRegistry) Create() (string, *PageView) {
	id := uuid.NewString()
	v := r.projects.Mount()
	r.views.Add(id, v)
	r.logger.Debug("page view mounted", zap.String("view", id), zap.Int("projects", v.Len()))
	return id, v
}

// Get returns a live page view
func (r *ViewRegistry) Get(id string) (*PageView, error) {
	v, ok := r.views.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return v, nil
}

// Remove unmounts and forgets a page view
func (r *ViewRegistry) Remove(id string) error {
	if !r.views.Remove(id) {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return nil
}

// Len returns the number of live views
func (r *ViewRegistry) Len() int {
	return r.views.Len()
}

// Close unmounts every live view
func (r *ViewRegistry) Close() {
	r.views.Purge()
}
