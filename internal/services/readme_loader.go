package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"hassak.dev/internal/models"
	"hassak.dev/internal/observability"
	"hassak.dev/internal/resolver"
)

// ReadmeLoader retrieves and holds the README of one project for one page view.
//
// Each distinct (name, repo) identity triggers exactly one request. Failures of
// any kind leave the content absent; nothing is retried or reported upward.
type ReadmeLoader struct {
	fetcher  ReadmeFetcher
	resolver resolver.Resolver
	logger   *zap.Logger
	metrics  *observability.Collector

	mu          sync.Mutex
	name        string
	repo        string
	hasIdentity bool
	generation  uint64
	closed      bool
	state       models.ReadmeState
	settled     chan struct{} // closed once the current generation settles
}

// NewReadmeLoader creates an idle loader
func NewReadmeLoader(fetcher ReadmeFetcher, res resolver.Resolver, logger *zap.Logger, metrics *observability.Collector) *ReadmeLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	settled := make(chan struct{})
	close(settled)
	return &ReadmeLoader{
		fetcher:  fetcher,
		resolver: res,
		logger:   logger,
		metrics:  metrics,
		state:    models.ReadmeState{Status: models.ReadmeIdle},
		settled:  settled,
	}
}

// SetIdentity gives the loader its project. Repeating the current identity is
// a no-op; a new identity restarts the loader and issues a fresh request.
func (l *ReadmeLoader) SetIdentity(name, repo string) {
	l.mu.Lock()
	if l.closed || (l.hasIdentity && l.name == name && l.repo == repo) {
		l.mu.Unlock()
		return
	}

	l.name, l.repo, l.hasIdentity = name, repo, true
	l.generation++
	l.state.Status = models.ReadmeIdle
	l.state.Content, l.state.HasContent = "", false
	settled := make(chan struct{})
	l.settled = settled

	url, ok := l.resolver.RawReadmeURL(repo)
	if !ok {
		l.state.Status = models.ReadmeFailed
		close(settled)
		l.mu.Unlock()

		l.logger.Debug("skipping readme for malformed repo", zap.String("project", name), zap.String("repo", repo))
		l.metrics.RecordFetch(observability.OutcomeMalformed, 0)
		return
	}

	l.state.Status = models.ReadmeFetching
	generation := l.generation
	l.mu.Unlock()

	go l.fetch(generation, name, url, settled)
}

// fetch runs one request. In-flight requests are never cancelled; a result is
// only committed if its generation is still current and the loader is open.
func (l *ReadmeLoader) fetch(generation uint64, name, url string, settled chan struct{}) {
	defer close(settled)

	start := time.Now()
	body, err := l.fetcher.Fetch(context.Background(), url)
	elapsed := time.Since(start)

	l.mu.Lock()
	stale := l.closed || generation != l.generation
	if !stale {
		if err != nil {
			l.state.Status = models.ReadmeFailed
		} else {
			l.state.Status = models.ReadmeLoaded
			l.state.Content, l.state.HasContent = body, true
		}
	}
	l.mu.Unlock()

	switch {
	case stale:
		l.logger.Debug("discarding stale readme response", zap.String("project", name), zap.String("url", url))
		l.metrics.RecordFetch(observability.OutcomeStale, elapsed)
	case err != nil:
		l.logger.Debug("readme unavailable", zap.String("project", name), zap.String("url", url), zap.Error(err))
		l.metrics.RecordFetch(observability.OutcomeFailed, elapsed)
	default:
		l.logger.Debug("readme loaded", zap.String("project", name), zap.Int("bytes", len(body)), zap.Duration("duration", elapsed))
		l.metrics.RecordFetch(observability.OutcomeLoaded, elapsed)
	}
}

// Wait blocks until the request for the current identity has settled.
func (l *ReadmeLoader) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		settled := l.settled
		l.mu.Unlock()

		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		}

		l.mu.Lock()
		current := l.settled == settled
		l.mu.Unlock()
		if current {
			return nil
		}
	}
}

// State returns a snapshot of the loader
func (l *ReadmeLoader) State() models.ReadmeState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Content returns the README text and whether it was loaded
func (l *ReadmeLoader) Content() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Content, l.state.HasContent
}

// Visible reports whether the visitor expanded the README
func (l *ReadmeLoader) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Visible
}

// Toggle flips README visibility. The control only exists once content is
// present, so toggling before that fails with ErrReadmeUnavailable.
func (l *ReadmeLoader) Toggle() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.state.HasContent {
		return l.state.Visible, ErrReadmeUnavailable
	}
	l.state.Visible = !l.state.Visible
	return l.state.Visible, nil
}

// Identity returns the current (name, repo) pair
func (l *ReadmeLoader) Identity() (string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name, l.repo
}

// Close releases the loader. Responses arriving afterwards are dropped.
func (l *ReadmeLoader) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}
