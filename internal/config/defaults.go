package config

import (
	"time"

	"hassak.dev/internal/models"
)

// DefaultProjects is the compiled-in project list
var DefaultProjects = []models.ProjectEntry{
	{Name: "Luall", Repo: "HasSak-47/cshell"},
	{Name: "LyTop", Repo: "HasSak-47/monitor"},
	{Name: "One offs", Repo: "HasSak-47/oneoffs"},
	{Name: "Project Manager", Repo: "HasSak-47/project_manager"},
}

// DefaultLinks are the footer links
var DefaultLinks = []models.Link{
	{Name: "GitHub", Href: "https://github.com/HasSak-47"},
	{Name: "LinkedIn", Href: "https://www.linkedin.com/in/ulises-alanis-255bytes/"},
}

// DefaultConfig returns a Config with the built-in site
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8080",
		RawBaseURL:  "https://raw.githubusercontent.com",
		CodeBaseURL: "https://github.com",
		Branch:      "main",
		RenderWait:  2 * time.Second,
		MaxViews:    1024,
		ViewTTL:     30 * time.Minute,
		LogLevel:    "info",
		LogFormat:   "json",
		CodeStyle:   "monokai",
		Title:       "Portafolio",
		Heading:     "Personal Projects",
		NextKey:     "j",
		PrevKey:     "k",
		ResetKey:    "j",
		Projects:    append([]models.ProjectEntry(nil), DefaultProjects...),
		Links:       append([]models.Link(nil), DefaultLinks...),
	}
}
