package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (VENTAS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := Default()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: VENTAS_API_URL -> api_url, etc.
	if err := k.Load(env.Provider("VENTAS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VENTAS_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. The five
// site fields must all be non-empty; the two remote values must be
// absolute http(s) URLs.
func (c *Config) Validate() error {
	if c.Org == "" {
		return fmt.Errorf("org is required")
	}
	if c.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	if c.MenuLocal == "" {
		return fmt.Errorf("menu_local is required")
	}
	if err := validateHTTPURL("api_url", c.APIURL); err != nil {
		return err
	}
	if err := validateHTTPURL("menu_fallback", c.MenuFallback); err != nil {
		return err
	}

	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", field, raw)
	}
	return nil
}

// PagesURL returns the GitHub Pages base URL for the configured org/repo,
// e.g. https://casadelapaleta.github.io/ventas.
func PagesURL(org, repo string) string {
	return fmt.Sprintf("https://%s.github.io/%s", org, repo)
}
