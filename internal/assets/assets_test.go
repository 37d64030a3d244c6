package assets

import (
	"strings"
	"testing"

	"github.com/casadelapaleta/ventas-site/internal/config"
)

func TestConfigScriptDefaults(t *testing.T) {
	script, err := ConfigScript(config.Default())
	if err != nil {
		t.Fatalf("ConfigScript failed: %v", err)
	}

	if !strings.Contains(script, "window.VENTAS_CONFIG = {") {
		t.Errorf("script does not assign the %s global:\n%s", GlobalName, script)
	}

	// The published schema: exactly these five keys with their literal values.
	wantPairs := []string{
		`"org": "casadelapaleta"`,
		`"repo": "ventas"`,
		`"apiUrl": "https://ventas-backend-rose.vercel.app/api/create-issue"`,
		`"menuLocal": "menu.json"`,
		`"menuFallback": "https://casadelapaleta.github.io/ventas/menu.json"`,
	}
	for _, pair := range wantPairs {
		if !strings.Contains(script, pair) {
			t.Errorf("script missing %s:\n%s", pair, script)
		}
	}

	if !strings.HasSuffix(strings.TrimSpace(script), ";") {
		t.Errorf("script should end with a statement terminator:\n%s", script)
	}
}

func TestConfigScriptKeyOrder(t *testing.T) {
	script, err := ConfigScript(config.Default())
	if err != nil {
		t.Fatalf("ConfigScript failed: %v", err)
	}

	order := []string{`"org"`, `"repo"`, `"apiUrl"`, `"menuLocal"`, `"menuFallback"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(script, key)
		if idx == -1 {
			t.Fatalf("script missing key %s", key)
		}
		if idx < last {
			t.Errorf("key %s out of order", key)
		}
		last = idx
	}
}

func TestConfigScriptDeterministic(t *testing.T) {
	cfg := config.Default()
	a, err := ConfigScript(cfg)
	if err != nil {
		t.Fatalf("ConfigScript failed: %v", err)
	}
	b, err := ConfigScript(cfg)
	if err != nil {
		t.Fatalf("ConfigScript failed: %v", err)
	}
	// Rendering twice produces the identical asset: the page global is
	// overwritten wholesale, never merged.
	if a != b {
		t.Errorf("ConfigScript not deterministic:\n%s\nvs\n%s", a, b)
	}
}

func TestConfigScriptEscapes(t *testing.T) {
	cfg := config.Default()
	cfg.Org = `tienda "la esquina"`
	script, err := ConfigScript(cfg)
	if err != nil {
		t.Fatalf("ConfigScript failed: %v", err)
	}
	if !strings.Contains(script, `\"la esquina\"`) {
		t.Errorf("quotes not escaped in script:\n%s", script)
	}
}
