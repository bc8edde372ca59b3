package services

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hassak.dev/internal/observability"
	"hassak.dev/internal/resolver"
)

func newRegistry(t *testing.T, maxViews int) (*ViewRegistry, *observability.Collector) {
	t.Helper()
	metrics := observability.NewCollector("test")
	svc := NewProjectService(luall, &countingFetcher{body: "# Hello"}, resolver.Resolver{}, DefaultKeymap, nil, metrics)
	r := NewViewRegistry(svc, maxViews, 0, nil)
	t.Cleanup(r.Close)
	return r, metrics
}

func TestRegistryCreateGetRemove(t *testing.T) {
	r, _ := newRegistry(t, 10)

	id, view := r.Create()
	require.NotEmpty(t, id)

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, view, got)

	require.NoError(t, r.Remove(id))
	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrViewNotFound)
	assert.ErrorIs(t, r.Remove(id), ErrViewNotFound)
}

func TestRegistryEvictionUnmounts(t *testing.T) {
	r, metrics := newRegistry(t, 2)

	first, _ := r.Create()
	r.Create()
	r.Create()

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ActiveViews))
	_, err := r.Get(first)
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestRegistryCloseUnmountsAll(t *testing.T) {
	r, metrics := newRegistry(t, 5)
	r.Create()
	r.Create()

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ActiveViews))
}

func TestRegistryViewsAreIndependent(t *testing.T) {
	r, _ := newRegistry(t, 5)
	_, a := r.Create()
	_, b := r.Create()
	require.NoError(t, a.Wait(waitCtx(t)))
	require.NoError(t, b.Wait(waitCtx(t)))

	_, err := a.Toggle(0)
	require.NoError(t, err)
	assert.True(t, a.Projects()[0].Readme.Visible)
	assert.False(t, b.Projects()[0].Readme.Visible)
}
