package issues

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const saleBody = `**Fecha**: 2025-03-14
**Notas**: puesto de la esquina

Items

SKU | Cantidad | Precio
--- | --- | ---
PALETA-FRESA | 2 | 25.00
PALETA-MANGO | 1 |
AGUA-HORCHATA | 3 | $20
`

func TestParseIssue(t *testing.T) {
	r, err := ParseIssue(&Issue{
		Number: 41,
		Title:  "Venta: 3 items @ 2025-03-14",
		Body:   saleBody,
		Labels: []Label{{Name: "Venta"}},
	})
	if err != nil {
		t.Fatalf("ParseIssue failed: %v", err)
	}

	if r.Fecha != "2025-03-14" {
		t.Errorf("Fecha = %q, want %q", r.Fecha, "2025-03-14")
	}
	if r.Number != 41 {
		t.Errorf("Number = %d, want 41", r.Number)
	}
	if r.Mercado() {
		t.Error("Mercado = true for a venta-labeled issue")
	}

	want := []Line{
		{SKU: "PALETA-FRESA", Cantidad: 2, Precio: "25.00"},
		{SKU: "PALETA-MANGO", Cantidad: 1, Precio: ""},
		{SKU: "AGUA-HORCHATA", Cantidad: 3, Precio: "$20"},
	}
	if len(r.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(r.Lines), len(want), r.Lines)
	}
	for i, w := range want {
		if r.Lines[i] != w {
			t.Errorf("line %d = %+v, want %+v", i, r.Lines[i], w)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{"plain body", "", "Fecha: 2025-01-02\nItems\nA | 1", "2025-01-02"},
		{"bold body", "", "**Fecha**: 2025-01-02", "2025-01-02"},
		{"fullwidth colon", "", "Fecha： 2025-01-02", "2025-01-02"},
		{"indented", "", "  Fecha: 2025-01-02  ", "2025-01-02"},
		{"title fallback", "Venta: 2 items @ 2025-06-30", "sin fecha aquí", "2025-06-30"},
		{"title without at", "Mercado 2025-06-30", "", "2025-06-30"},
		{"body wins over title", "Venta @ 2025-06-30", "Fecha: 2025-01-02", "2025-01-02"},
		{"date not at line end", "", "Fecha: 2025-01-02 aprox", ""},
		{"nothing", "Venta de paletas", "puras notas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDate(tt.title, tt.body); got != tt.want {
				t.Errorf("parseDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLinesFilters(t *testing.T) {
	body := `Items
SKU | Cantidad | Precio
----|----------|-------
**Cantidad**: |
sku | 5 | 1
PALETA-LIMON | dos | 22
PALETA-COCO | 4 | 26
 | 3 | 9
`
	lines := parseLines(body)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %+v", len(lines), lines)
	}
	if lines[0] != (Line{SKU: "PALETA-COCO", Cantidad: 4, Precio: "26"}) {
		t.Errorf("line = %+v", lines[0])
	}
}

func TestParseLinesWithoutHeading(t *testing.T) {
	// Without an Items heading the whole body is scanned for pipe rows.
	lines := parseLines("alguna nota\nPALETA-FRESA | 2 | 25\n")
	if len(lines) != 1 || lines[0].SKU != "PALETA-FRESA" {
		t.Fatalf("lines = %+v, want one PALETA-FRESA row", lines)
	}
}

func TestParseIssueErrors(t *testing.T) {
	_, err := ParseIssue(&Issue{Number: 7, Title: "sin nada", Body: "PALETA-FRESA | 2"})
	if !errors.Is(err, ErrNoDate) {
		t.Errorf("err = %v, want ErrNoDate", err)
	}

	_, err = ParseIssue(&Issue{Number: 8, Title: "x", Body: "Fecha: 2025-01-02"})
	if !errors.Is(err, ErrNoItems) {
		t.Errorf("err = %v, want ErrNoItems", err)
	}

	_, err = ParseIssue(nil)
	if !errors.Is(err, ErrNoIssue) {
		t.Errorf("err = %v, want ErrNoIssue", err)
	}
}

func TestMercado(t *testing.T) {
	r, err := ParseIssue(&Issue{
		Title:  "Mercado @ 2025-03-15",
		Body:   "PALETA-FRESA | 2 | 25",
		Labels: []Label{{Name: "Venta-Mercado"}},
	})
	if err != nil {
		t.Fatalf("ParseIssue failed: %v", err)
	}
	if !r.Mercado() {
		t.Error("Mercado = false, want true for Venta-Mercado label")
	}
}

type fakeCatalog map[string]float64

func (f fakeCatalog) Has(sku string) bool      { _, ok := f[sku]; return ok }
func (f fakeCatalog) Price(sku string) float64 { return f[sku] }

func TestResolvePrice(t *testing.T) {
	cat := fakeCatalog{"PALETA-FRESA": 25, "PALETA-MANGO": 28}

	tests := []struct {
		name      string
		line      Line
		want      float64
		wantKnown bool
	}{
		{"own price", Line{SKU: "PALETA-FRESA", Precio: "30"}, 30, true},
		{"dollar sign and comma", Line{SKU: "X", Precio: "$1,250.50"}, 1250.50, true},
		{"empty falls back to catalog", Line{SKU: "PALETA-MANGO", Precio: ""}, 28, true},
		{"zero falls back to catalog", Line{SKU: "PALETA-MANGO", Precio: "0"}, 28, true},
		{"unknown sku without price", Line{SKU: "PALETA-MISTERIO", Precio: ""}, 0, false},
		{"unreadable price records zero", Line{SKU: "X", Precio: "mucho"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := tt.line.ResolvePrice(cat)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("ResolvePrice = (%v, %v), want (%v, %v)", got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestResolvePriceNilSource(t *testing.T) {
	if _, known := (Line{SKU: "X"}).ResolvePrice(nil); known {
		t.Error("known = true with nil source and no own price")
	}
}

func TestImporte(t *testing.T) {
	if got := Importe(2, 25.5); got != 51 {
		t.Errorf("Importe(2, 25.5) = %v, want 51", got)
	}
	if got := Importe(3, 8.333); got != 25 {
		t.Errorf("Importe(3, 8.333) = %v, want 25", got)
	}
}

func TestReadEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{
	  "action": "opened",
	  "issue": {
	    "number": 12,
	    "title": "Venta: 1 item @ 2025-02-01",
	    "body": "Fecha: 2025-02-01\nItems\nPALETA-FRESA | 1 | 25",
	    "labels": [{"name": "venta"}]
	  }
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	ev, err := ReadEvent(path)
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if ev.Action != "opened" {
		t.Errorf("Action = %q, want %q", ev.Action, "opened")
	}
	if ev.Issue == nil || ev.Issue.Number != 12 {
		t.Fatalf("Issue = %+v, want number 12", ev.Issue)
	}
}

func TestReadEventWithoutIssue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(`{"action": "push"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ev, err := ReadEvent(path)
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if ev.Issue != nil {
		t.Errorf("Issue = %+v, want nil", ev.Issue)
	}
}
