package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Org != "casadelapaleta" {
		t.Errorf("expected default org %q, got %q", "casadelapaleta", cfg.Org)
	}
	if cfg.Repo != "ventas" {
		t.Errorf("expected default repo %q, got %q", "ventas", cfg.Repo)
	}
	if cfg.APIURL != "https://ventas-backend-rose.vercel.app/api/create-issue" {
		t.Errorf("unexpected default api_url %q", cfg.APIURL)
	}
	if cfg.MenuLocal != "menu.json" {
		t.Errorf("expected default menu_local %q, got %q", "menu.json", cfg.MenuLocal)
	}
	if cfg.MenuFallback != "https://casadelapaleta.github.io/ventas/menu.json" {
		t.Errorf("unexpected default menu_fallback %q", cfg.MenuFallback)
	}
	if cfg.OutputDir != "docs" {
		t.Errorf("expected default output_dir %q, got %q", "docs", cfg.OutputDir)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default serve.port 8080, got %d", cfg.Serve.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ventas.yml")

	original := Default()
	original.Org = "heladeria-sol"
	original.Repo = "puesto"
	original.APIURL = "https://example.com/api/create-issue"
	original.MenuFallback = "https://heladeria-sol.github.io/puesto/menu.json"
	original.Include = []string{"**/*.md", "**/*.html"}
	original.Serve.Port = 9000

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Org != original.Org {
		t.Errorf("org: got %q, want %q", loaded.Org, original.Org)
	}
	if loaded.Repo != original.Repo {
		t.Errorf("repo: got %q, want %q", loaded.Repo, original.Repo)
	}
	if loaded.APIURL != original.APIURL {
		t.Errorf("api_url: got %q, want %q", loaded.APIURL, original.APIURL)
	}
	if loaded.MenuFallback != original.MenuFallback {
		t.Errorf("menu_fallback: got %q, want %q", loaded.MenuFallback, original.MenuFallback)
	}
	if loaded.Serve.Port != original.Serve.Port {
		t.Errorf("serve.port: got %d, want %d", loaded.Serve.Port, original.Serve.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Org != "casadelapaleta" {
		t.Errorf("expected default org, got %q", cfg.Org)
	}
}

func TestLoadOverwritesNotMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ventas.yml")

	cfg := Default()
	cfg.Org = "otra-tienda"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Two loads in a row produce the same final state.
	first, err := Load(path)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if *firstSite(first) != *firstSite(second) {
		t.Errorf("repeated Load diverged: %+v vs %+v", firstSite(first), firstSite(second))
	}
	if second.Org != "otra-tienda" {
		t.Errorf("org: got %q, want %q", second.Org, "otra-tienda")
	}
}

// firstSite projects the five site-contract fields for comparison.
func firstSite(c *Config) *[5]string {
	return &[5]string{c.Org, c.Repo, c.APIURL, c.MenuLocal, c.MenuFallback}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ventas.yml")

	cfg := Default()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override org via env var.
	os.Setenv("VENTAS_ORG", "paletas-norte")
	defer os.Unsetenv("VENTAS_ORG")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Org != "paletas-norte" {
		t.Errorf("env override failed: got %q, want %q", loaded.Org, "paletas-norte")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default should be valid, got: %v", err)
	}
}

func TestValidateEmptySiteFields(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"org", func(c *Config) { c.Org = "" }},
		{"repo", func(c *Config) { c.Repo = "" }},
		{"api_url", func(c *Config) { c.APIURL = "" }},
		{"menu_local", func(c *Config) { c.MenuLocal = "" }},
		{"menu_fallback", func(c *Config) { c.MenuFallback = "" }},
	}
	for _, tt := range mutations {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for empty %s", tt.name)
		}
	}
}

func TestValidateRelativeURL(t *testing.T) {
	cfg := Default()
	cfg.APIURL = "/api/create-issue"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for relative api_url")
	}

	cfg = Default()
	cfg.MenuFallback = "menu.json"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for relative menu_fallback")
	}
}

func TestValidateBadScheme(t *testing.T) {
	cfg := Default()
	cfg.APIURL = "ftp://example.com/api"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-http scheme")
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := Default()
	cfg.Serve.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}

	cfg = Default()
	cfg.Serve.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}

func TestPagesURL(t *testing.T) {
	got := PagesURL("casadelapaleta", "ventas")
	want := "https://casadelapaleta.github.io/ventas"
	if got != want {
		t.Errorf("PagesURL = %q, want %q", got, want)
	}
}
