package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"hassak.dev/internal/models"
)

// EnvPrefix prefixes environment overrides, e.g. PORTFOLIO_ADDR
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	Addr            string        `koanf:"addr" validate:"required"`
	RawBaseURL      string        `koanf:"raw_base_url" validate:"required,url"`
	CodeBaseURL     string        `koanf:"code_base_url" validate:"required,url"`
	Branch          string        `koanf:"branch" validate:"required"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout" validate:"gte=0"` // 0 leaves it to the transport
	RenderWait      time.Duration `koanf:"render_wait" validate:"gte=0"`
	MaxViews        int           `koanf:"max_views" validate:"gte=1"`
	ViewTTL         time.Duration `koanf:"view_ttl" validate:"gte=0"`
	LogLevel        string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `koanf:"log_format" validate:"oneof=json console"`
	AllowAllOrigins bool          `koanf:"allow_all_origins"`
	CodeStyle       string        `koanf:"code_style"`

	Title   string `koanf:"title" validate:"required"`
	Heading string `koanf:"heading"`

	NextKey  string `koanf:"next_key" validate:"required"`
	PrevKey  string `koanf:"prev_key" validate:"required"`
	ResetKey string `koanf:"reset_key"`

	Projects []models.ProjectEntry `koanf:"projects" validate:"dive"`
	Links    []models.Link         `koanf:"links" validate:"dive"`
}

// Load reads configuration from the given YAML file, if it exists, then
// overlays PORTFOLIO_* environment variables onto the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Lists replace the defaults wholesale instead of merging element-wise.
	if k.Exists("projects") {
		cfg.Projects = nil
		if err := k.Unmarshal("projects", &cfg.Projects); err != nil {
			return nil, fmt.Errorf("unmarshalling projects: %w", err)
		}
	}
	if k.Exists("links") {
		cfg.Links = nil
		if err := k.Unmarshal("links", &cfg.Links); err != nil {
			return nil, fmt.Errorf("unmarshalling links: %w", err)
		}
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration contains valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
