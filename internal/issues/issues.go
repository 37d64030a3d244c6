// Package issues parses sale reports out of GitHub issues. The pages file
// an issue per sale through the backend API; the body carries a Fecha line
// and an Items table of SKU | Cantidad | Precio rows. Issues labeled with
// anything containing "mercado" belong to the market stand ledger.
package issues

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoIssue means the event payload carried no issue at all.
	ErrNoIssue = errors.New("event has no issue")
	// ErrNoDate means neither the body nor the title named a date.
	ErrNoDate = errors.New("no date in issue")
	// ErrNoItems means no item row could be parsed from the body.
	ErrNoItems = errors.New("no items in issue")
)

// Event is the slice of a GitHub issues webhook payload that matters here.
type Event struct {
	Action string `json:"action"`
	Issue  *Issue `json:"issue"`
}

// Issue holds the fields of a GitHub issue the parser reads.
type Issue struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Body   string  `json:"body"`
	Labels []Label `json:"labels"`
}

// Label is a GitHub issue label.
type Label struct {
	Name string `json:"name"`
}

// Line is one item row from a report body: SKU | Cantidad | Precio.
// Precio keeps the raw cell; it may be empty or carry $ and commas.
type Line struct {
	SKU      string
	Cantidad int
	Precio   string
}

// Report is a parsed sale report.
type Report struct {
	Number int
	Title  string
	Fecha  string
	Lines  []Line
	Labels []string
}

// Mercado reports whether any label marks this sale as a market-stand one.
func (r *Report) Mercado() bool {
	for _, l := range r.Labels {
		if strings.Contains(l, "mercado") {
			return true
		}
	}
	return false
}

// ReadEvent decodes a GitHub event payload file, typically the file that
// GITHUB_EVENT_PATH points at inside a workflow run.
func ReadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	return &ev, nil
}

var (
	// "Fecha: 2025-03-14" or "**Fecha**: 2025-03-14", full-width colon included.
	dateBodyRx = regexp.MustCompile(`(?im)^\s*\*{0,2}\s*fecha\s*\*{0,2}\s*[:：]\s*([0-9]{4}-[0-9]{2}-[0-9]{2})\s*$`)
	// Title fallback: "Venta: 3 items @ 2025-03-14".
	dateTitleRx = regexp.MustCompile(`@?\s*([0-9]{4}-[0-9]{2}-[0-9]{2})\s*$`)
	// Rows like "**Cantidad**:" that the issue form emits between fields.
	cantidadLabelRx = regexp.MustCompile(`(?i)^\**\s*cantidad\s*\**\s*:?\s*$`)
)

// ParseIssue extracts the sale report from an issue. It returns an error
// wrapping ErrNoIssue, ErrNoDate or ErrNoItems when there is no usable
// report, which callers normally treat as a skip rather than a failure.
func ParseIssue(is *Issue) (*Report, error) {
	if is == nil {
		return nil, ErrNoIssue
	}
	r := &Report{
		Number: is.Number,
		Title:  is.Title,
		Fecha:  parseDate(is.Title, is.Body),
		Lines:  parseLines(is.Body),
	}
	for _, l := range is.Labels {
		r.Labels = append(r.Labels, strings.ToLower(l.Name))
	}

	if r.Fecha == "" {
		return nil, fmt.Errorf("issue #%d %q: %w", is.Number, is.Title, ErrNoDate)
	}
	if len(r.Lines) == 0 {
		return nil, fmt.Errorf("issue #%d %q: %w", is.Number, is.Title, ErrNoItems)
	}
	return r, nil
}

func parseDate(title, body string) string {
	if m := dateBodyRx.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := dateTitleRx.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}

// parseLines scans the body for item rows. Rows are taken from the block
// after an "Items" heading when one exists, otherwise from anywhere in the
// body. Header rows, markdown separators, and form labels are dropped.
func parseLines(body string) []Line {
	lines := strings.Split(body, "\n")

	start := 0
	for i, ln := range lines {
		if strings.EqualFold(strings.TrimSpace(ln), "items") {
			start = i + 1
			break
		}
	}

	var out []Line
	for _, ln := range lines[start:] {
		if !strings.Contains(ln, "|") {
			continue
		}
		cells := strings.Split(ln, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		if len(cells) < 2 {
			continue
		}

		joined := strings.ToLower(strings.Join(cells, " "))
		if strings.Contains(joined, "sku") && (strings.Contains(joined, "cantidad") || strings.Contains(joined, "precio")) {
			continue
		}
		if isSeparatorRow(cells) {
			continue
		}
		if cantidadLabelRx.MatchString(cells[0]) {
			continue
		}

		sku := cells[0]
		if sku == "" || strings.EqualFold(sku, "sku") {
			continue
		}
		cantidad, err := strconv.Atoi(cells[1])
		if err != nil {
			continue
		}

		precio := ""
		if len(cells) >= 3 {
			precio = cells[2]
		}
		out = append(out, Line{SKU: sku, Cantidad: cantidad, Precio: precio})
	}
	return out
}

// isSeparatorRow matches markdown table separators such as "----|:---:".
func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		for _, r := range c {
			switch r {
			case '-', ' ', ':':
			default:
				return false
			}
		}
	}
	return true
}

// PriceSource resolves unit prices for rows that do not carry their own.
// *menu.Catalog satisfies it.
type PriceSource interface {
	Has(sku string) bool
	Price(sku string) float64
}

// ResolvePrice returns the unit price for the line: its own Precio cell
// unless that is empty or zero, in which case the catalog price applies.
// The second return is false when no price could be found anywhere; rows
// recorded that way show an empty price instead of 0.00.
func (l Line) ResolvePrice(src PriceSource) (float64, bool) {
	raw := strings.TrimSpace(l.Precio)
	if raw == "" || raw == "0" {
		if src == nil || !src.Has(l.SKU) {
			return 0, false
		}
		return src.Price(l.SKU), true
	}

	clean := strings.NewReplacer("$", "", ",", "").Replace(raw)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		// A price was written but is unreadable; record it as zero
		// rather than dropping the row.
		return 0, true
	}
	return v, true
}

// Importe is the line total, rounded to cents.
func Importe(cantidad int, price float64) float64 {
	return math.Round(float64(cantidad)*price*100) / 100
}
