package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hassak.dev/internal/resolver"
)

// countingFetcher answers every request with the same result
type countingFetcher struct {
	mu    sync.Mutex
	calls []string
	body  string
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	return f.body, f.err
}

func (f *countingFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fetchResult struct {
	body string
	err  error
}

// gatedFetcher blocks each request until the test releases its url
type gatedFetcher struct {
	mu    sync.Mutex
	gates map[string]chan fetchResult
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: make(map[string]chan fetchResult)}
}

func (f *gatedFetcher) gate(url string) chan fetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gates[url]
	if !ok {
		ch = make(chan fetchResult, 1)
		f.gates[url] = ch
	}
	return ch
}

func (f *gatedFetcher) release(url, body string, err error) {
	f.gate(url) <- fetchResult{body: body, err: err}
}

func (f *gatedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	select {
	case r := <-f.gate(url):
		return r.body, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func rawURL(repo string) string {
	u, _ := resolver.RawReadmeURL(repo, "")
	return u
}

// readmeServer serves fixed READMEs by path and 404 for everything else
func readmeServer(t *testing.T, readmes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := readmes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func requireSettled(t *testing.T, l *ReadmeLoader) {
	t.Helper()
	require.NoError(t, l.Wait(waitCtx(t)))
}
