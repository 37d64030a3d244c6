// Package inventory seeds the market-stand inventory from the general
// one. Only PALETA- items travel to the stand; their stock starts at zero
// and a YAML stock file overlays the real counts for the day.
package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Row is one inventory line. Precio stays a string so hand-written
// prices pass through unreformatted.
type Row struct {
	Item        string
	Descripcion string
	Precio      string
	Stock       int
}

// Result summarizes a seeding run.
type Result struct {
	// Rows written to the mercado inventory.
	Rows int
	// Paletas found in the general inventory.
	Paletas int
	// Missing lists stock-file SKUs absent from the general inventory;
	// they are appended without description or price.
	Missing []string
}

// Seed builds the mercado inventory at outPath from the general inventory
// at generalPath, overlaying stock counts from the YAML file at stockPath.
// An empty stockPath leaves every count at zero.
func Seed(generalPath, stockPath, outPath string) (*Result, error) {
	general, err := readGeneral(generalPath)
	if err != nil {
		return nil, err
	}

	stock := map[string]int{}
	if stockPath != "" {
		stock, err = readStock(stockPath)
		if err != nil {
			return nil, err
		}
	}

	var rows []Row
	for _, r := range general {
		if !strings.HasPrefix(r.Item, "PALETA-") {
			continue
		}
		r.Stock = 0
		rows = append(rows, r)
	}
	res := &Result{Paletas: len(rows)}

	for sku, count := range stock {
		found := false
		for i := range rows {
			if rows[i].Item == sku {
				rows[i].Stock = count
				found = true
			}
		}
		if !found {
			res.Missing = append(res.Missing, sku)
			rows = append(rows, Row{Item: sku, Stock: count})
		}
	}
	sort.Strings(res.Missing)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Item < rows[j].Item })

	if err := write(outPath, rows); err != nil {
		return nil, err
	}
	res.Rows = len(rows)
	return res, nil
}

// readGeneral reads the general inventory CSV. Column order is free;
// descripcion and precio may be absent.
func readGeneral(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening general inventory: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading general inventory: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("general inventory %s is empty", path)
	}

	col := map[string]int{}
	for i, name := range recs[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	itemIdx, ok := col["item"]
	if !ok {
		return nil, fmt.Errorf("general inventory %s has no item column", path)
	}

	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for _, rec := range recs[1:] {
		if itemIdx >= len(rec) {
			continue
		}
		item := strings.TrimSpace(rec[itemIdx])
		if item == "" {
			continue
		}
		rows = append(rows, Row{
			Item:        item,
			Descripcion: cell(rec, "descripcion"),
			Precio:      cell(rec, "precio"),
		})
	}
	return rows, nil
}

// readStock reads a flat YAML map of SKU to count.
func readStock(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stock file: %w", err)
	}
	stock := map[string]int{}
	if err := yaml.Unmarshal(data, &stock); err != nil {
		return nil, fmt.Errorf("parsing stock file: %w", err)
	}
	return stock, nil
}

func write(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating inventory directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("creating pending inventory: %w", err)
	}
	defer pending.Cleanup()

	w := csv.NewWriter(pending)
	if err := w.Write([]string{"item", "descripcion", "stock", "precio"}); err != nil {
		return fmt.Errorf("writing inventory header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Item, r.Descripcion, strconv.Itoa(r.Stock), r.Precio}); err != nil {
			return fmt.Errorf("writing inventory row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing inventory: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing inventory: %w", err)
	}
	return nil
}
