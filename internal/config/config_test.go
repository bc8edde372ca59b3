package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hassak.dev/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultProjects, cfg.Projects)
	assert.Equal(t, "main", cfg.Branch)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
render_wait: 500ms
max_views: 8
reset_key: esc
projects:
  - name: Only
    repo: someone/only
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.RenderWait)
	assert.Equal(t, 8, cfg.MaxViews)
	assert.Equal(t, "esc", cfg.ResetKey)
	assert.Equal(t, []models.ProjectEntry{{Name: "Only", Repo: "someone/only"}}, cfg.Projects)
	assert.Equal(t, DefaultLinks, cfg.Links, "links untouched when absent from file")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\n")
	t.Setenv("PORTFOLIO_ADDR", ":7070")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "debug")
	t.Setenv("PORTFOLIO_MAX_VIEWS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxViews)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := writeConfig(t, "addr: [unterminated\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero max views", func(c *Config) { c.MaxViews = 0 }, "MaxViews"},
		{"bad raw url", func(c *Config) { c.RawBaseURL = "not a url" }, "RawBaseURL"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
		{"unnamed project", func(c *Config) { c.Projects = []models.ProjectEntry{{Repo: "a/b"}} }, "Name"},
		{"bad link", func(c *Config) { c.Links = []models.Link{{Name: "x", Href: "nope"}} }, "Href"},
		{"missing next key", func(c *Config) { c.NextKey = "" }, "NextKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMalformedRepoIsAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Projects = []models.ProjectEntry{{Name: "Draft", Repo: "not-a-repo"}}
	assert.NoError(t, cfg.Validate())
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\n")

	var reloaded atomic.Pointer[Config]
	w, err := Watch(path, zap.NewNop(), func(c *Config) { reloaded.Store(c) })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("addr: \":9191\"\n"), 0o644))

	assert.Eventually(t, func() bool {
		c := reloaded.Load()
		return c != nil && c.Addr == ":9191"
	}, 5*time.Second, 20*time.Millisecond)
}
