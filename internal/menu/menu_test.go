package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMenu = `[
  {"item": "PALETA-FRESA", "descripcion": "Paleta de fresa con crema", "precio": 25, "categoria": "paletas"},
  {"item": "PALETA-MANGO", "descripcion": "Paleta de mango con chile", "precio": "28", "categoria": "paletas"},
  {"item": "AGUA-HORCHATA", "descripcion": "Agua de horchata 500ml", "precio": 20, "categoria": "aguas"}
]`

func TestParse(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cat.Len() != 3 {
		t.Fatalf("Len = %d, want 3", cat.Len())
	}
	if got := cat.Description("PALETA-FRESA"); got != "Paleta de fresa con crema" {
		t.Errorf("Description = %q, want %q", got, "Paleta de fresa con crema")
	}
	if got := cat.Price("PALETA-FRESA"); got != 25 {
		t.Errorf("Price = %v, want 25", got)
	}
	// Quoted prices parse the same as bare numbers.
	if got := cat.Price("PALETA-MANGO"); got != 28 {
		t.Errorf("quoted Price = %v, want 28", got)
	}
}

func TestParseSkipsBlankSKUs(t *testing.T) {
	cat, err := Parse(strings.NewReader(`[{"item": "  ", "precio": 5}, {"item": "PALETA-LIMON", "precio": 22}]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Len = %d, want 1", cat.Len())
	}
	if !cat.Has("PALETA-LIMON") {
		t.Error("Has(PALETA-LIMON) = false, want true")
	}
}

func TestParseDuplicateLastWins(t *testing.T) {
	cat, err := Parse(strings.NewReader(`[
		{"item": "PALETA-COCO", "descripcion": "vieja", "precio": 20},
		{"item": "PALETA-COCO", "descripcion": "Paleta de coco", "precio": 26}
	]`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Len = %d, want 1", cat.Len())
	}
	if got := cat.Price("PALETA-COCO"); got != 26 {
		t.Errorf("Price = %v, want 26", got)
	}
	if got := cat.Description("PALETA-COCO"); got != "Paleta de coco" {
		t.Errorf("Description = %q, want %q", got, "Paleta de coco")
	}
}

func TestParseInvalidPrice(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"item": "X", "precio": "mucho"}]`))
	if err == nil {
		t.Fatal("expected error for non-numeric precio, got nil")
	}
}

func TestLookupFallbacks(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Unknown SKUs fall back to the SKU itself and a zero price.
	if got := cat.Description("PALETA-MISTERIO"); got != "PALETA-MISTERIO" {
		t.Errorf("Description of unknown SKU = %q, want the SKU back", got)
	}
	if got := cat.Price("PALETA-MISTERIO"); got != 0 {
		t.Errorf("Price of unknown SKU = %v, want 0", got)
	}
	if cat.Has("PALETA-MISTERIO") {
		t.Error("Has of unknown SKU = true, want false")
	}
}

func TestItemsSorted(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	items := cat.Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].SKU > items[i].SKU {
			t.Errorf("Items not sorted: %q before %q", items[i-1].SKU, items[i].SKU)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte(sampleMenu), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 3 {
		t.Errorf("Len = %d, want 3", cat.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleMenu))
	}))
	defer srv.Close()

	cat, err := Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if cat.Len() != 3 {
		t.Errorf("Len = %d, want 3", cat.Len())
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404, got nil")
	}
}

func TestLoadWithFallbackPrefersLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	if err := os.WriteFile(path, []byte(sampleMenu), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("fallback hit although local menu exists")
	}))
	defer srv.Close()

	_, src, err := LoadWithFallback(context.Background(), path, srv.URL)
	if err != nil {
		t.Fatalf("LoadWithFallback failed: %v", err)
	}
	if src != SourceLocal {
		t.Errorf("source = %q, want %q", src, SourceLocal)
	}
}

func TestLoadWithFallbackUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleMenu))
	}))
	defer srv.Close()

	cat, src, err := LoadWithFallback(context.Background(), filepath.Join(t.TempDir(), "nope.json"), srv.URL)
	if err != nil {
		t.Fatalf("LoadWithFallback failed: %v", err)
	}
	if src != SourceFallback {
		t.Errorf("source = %q, want %q", src, SourceFallback)
	}
	if cat.Len() != 3 {
		t.Errorf("Len = %d, want 3", cat.Len())
	}
}

func TestLoadWithFallbackBothFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, _, err := LoadWithFallback(context.Background(), filepath.Join(t.TempDir(), "nope.json"), srv.URL)
	if err == nil {
		t.Fatal("expected error when both sources fail, got nil")
	}
}
