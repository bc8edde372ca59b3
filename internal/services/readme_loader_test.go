package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hassak.dev/internal/models"
	"hassak.dev/internal/resolver"
)

func TestLoaderLoadsReadmeVerbatim(t *testing.T) {
	body := "# Hello\n\nüñí *code*\r\n"
	srv := readmeServer(t, map[string]string{"/HasSak-47/cshell/main/README.md": body})

	l := NewReadmeLoader(NewHTTPReadmeFetcher(srv.Client()), resolver.New(srv.URL, "", ""), nil, nil)
	l.SetIdentity("Luall", "HasSak-47/cshell")
	requireSettled(t, l)

	state := l.State()
	assert.Equal(t, models.ReadmeLoaded, state.Status)
	assert.True(t, state.HasContent)
	assert.Equal(t, body, state.Content)
	assert.False(t, state.Visible)
}

func TestLoaderNonSuccessStatusLeavesContentAbsent(t *testing.T) {
	srv := readmeServer(t, nil)

	l := NewReadmeLoader(NewHTTPReadmeFetcher(srv.Client()), resolver.New(srv.URL, "", ""), nil, nil)
	l.SetIdentity("Luall", "HasSak-47/cshell")
	requireSettled(t, l)

	content, ok := l.Content()
	assert.False(t, ok)
	assert.Empty(t, content)
	assert.Equal(t, models.ReadmeFailed, l.State().Status)

	_, err := l.Toggle()
	assert.ErrorIs(t, err, ErrReadmeUnavailable)
	assert.False(t, l.Visible())
}

func TestLoaderTransportErrorLeavesContentAbsent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	l := NewReadmeLoader(NewHTTPReadmeFetcher(nil), resolver.New(base, "", ""), nil, nil)
	l.SetIdentity("Luall", "HasSak-47/cshell")
	requireSettled(t, l)

	_, ok := l.Content()
	assert.False(t, ok)
	assert.Equal(t, models.ReadmeFailed, l.State().Status)
}

func TestLoaderMalformedRepoMakesNoRequest(t *testing.T) {
	f := &countingFetcher{body: "unused"}
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)

	l.SetIdentity("Broken", "no-slash")
	requireSettled(t, l)

	assert.Empty(t, f.Calls())
	assert.Equal(t, models.ReadmeFailed, l.State().Status)
	_, ok := l.Content()
	assert.False(t, ok)
}

func TestLoaderSameIdentityFetchesOnce(t *testing.T) {
	f := &countingFetcher{body: "# One"}
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)

	l.SetIdentity("One", "a/one")
	requireSettled(t, l)
	l.SetIdentity("One", "a/one")
	requireSettled(t, l)

	assert.Equal(t, []string{rawURL("a/one")}, f.Calls())
}

func TestLoaderNewIdentityRefetches(t *testing.T) {
	f := &countingFetcher{body: "# Any"}
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)

	l.SetIdentity("One", "a/one")
	requireSettled(t, l)
	l.SetIdentity("Two", "a/two")
	requireSettled(t, l)

	assert.Equal(t, []string{rawURL("a/one"), rawURL("a/two")}, f.Calls())
	name, repo := l.Identity()
	assert.Equal(t, "Two", name)
	assert.Equal(t, "a/two", repo)
}

func TestLoaderToggleRoundTrip(t *testing.T) {
	l := NewReadmeLoader(&countingFetcher{body: "# Hi"}, resolver.Resolver{}, nil, nil)
	l.SetIdentity("Hi", "a/hi")
	requireSettled(t, l)

	start := l.Visible()
	v, err := l.Toggle()
	require.NoError(t, err)
	assert.Equal(t, !start, v)
	v, err = l.Toggle()
	require.NoError(t, err)
	assert.Equal(t, start, v)
}

func TestLoaderDiscardsSupersededResponse(t *testing.T) {
	f := newGatedFetcher()
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)

	l.SetIdentity("One", "a/one")
	assert.Equal(t, models.ReadmeFetching, l.State().Status)
	l.SetIdentity("Two", "a/two")

	f.release(rawURL("a/two"), "# Two", nil)
	requireSettled(t, l)
	f.release(rawURL("a/one"), "# One", nil)

	// give the superseded request time to land
	time.Sleep(20 * time.Millisecond)

	content, ok := l.Content()
	require.True(t, ok)
	assert.Equal(t, "# Two", content)
}

func TestLoaderDropsResponseAfterClose(t *testing.T) {
	f := newGatedFetcher()
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)

	l.SetIdentity("One", "a/one")
	l.Close()
	f.release(rawURL("a/one"), "# One", nil)
	requireSettled(t, l)

	_, ok := l.Content()
	assert.False(t, ok)

	l.SetIdentity("Two", "a/two")
	name, _ := l.Identity()
	assert.Equal(t, "One", name, "closed loaders ignore new identities")
}

func TestLoaderWaitHonoursContext(t *testing.T) {
	f := newGatedFetcher()
	l := NewReadmeLoader(f, resolver.Resolver{}, nil, nil)
	l.SetIdentity("One", "a/one")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)

	f.release(rawURL("a/one"), "", errors.New("boom"))
	requireSettled(t, l)
	assert.Equal(t, models.ReadmeFailed, l.State().Status)
}

func TestIdleLoaderIsSettled(t *testing.T) {
	l := NewReadmeLoader(&countingFetcher{}, resolver.Resolver{}, nil, nil)
	requireSettled(t, l)
	assert.Equal(t, models.ReadmeIdle, l.State().Status)
}
