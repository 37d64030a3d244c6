// Package menu loads the product catalog that drives the menú page and
// enriches recorded sales. The catalog lives in menu.json at the site root;
// a published copy serves as fallback when the local file is unavailable,
// mirroring the lookup order the pages themselves use.
package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Item is one catalog entry. JSON keys match the hand-edited menu.json.
type Item struct {
	SKU         string  `json:"item"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Category    string  `json:"categoria,omitempty"`
}

// UnmarshalJSON tolerates prices written as numbers or as numeric strings,
// both of which show up in hand-edited menus.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		SKU         string          `json:"item"`
		Description string          `json:"descripcion"`
		Price       json.RawMessage `json:"precio"`
		Category    string          `json:"categoria"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	price, err := parsePrice(raw.Price)
	if err != nil {
		return fmt.Errorf("item %q: %w", raw.SKU, err)
	}
	it.SKU = raw.SKU
	it.Description = raw.Description
	it.Price = price
	it.Category = raw.Category
	return nil
}

func parsePrice(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	s = strings.Trim(s, `"`)
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid precio %s", raw)
	}
	return v, nil
}

// Source reports where LoadWithFallback found the catalog.
type Source string

const (
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
)

// Catalog indexes menu items by SKU.
type Catalog struct {
	items []Item
	desc  map[string]string
	price map[string]float64
}

// Parse reads a JSON array of menu items. Entries without a SKU are
// skipped; when a SKU repeats, the last entry wins.
func Parse(r io.Reader) (*Catalog, error) {
	var raw []Item
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding menu: %w", err)
	}

	c := &Catalog{
		desc:  make(map[string]string),
		price: make(map[string]float64),
	}
	for _, it := range raw {
		it.SKU = strings.TrimSpace(it.SKU)
		if it.SKU == "" {
			continue
		}
		if _, seen := c.desc[it.SKU]; seen {
			for i := range c.items {
				if c.items[i].SKU == it.SKU {
					c.items[i] = it
					break
				}
			}
		} else {
			c.items = append(c.items, it)
		}
		c.desc[it.SKU] = it.Description
		c.price[it.SKU] = it.Price
	}
	return c, nil
}

// Load reads the catalog from a local file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening menu: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// Fetch downloads the catalog from a published URL.
func Fetch(ctx context.Context, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building menu request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching menu: unexpected status %s", resp.Status)
	}
	return Parse(resp.Body)
}

// LoadWithFallback tries the local file first and falls back to the
// published URL, the same order the pages use at runtime.
func LoadWithFallback(ctx context.Context, path, url string) (*Catalog, Source, error) {
	cat, localErr := Load(path)
	if localErr == nil {
		return cat, SourceLocal, nil
	}

	cat, err := Fetch(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("menu unavailable: local %q (%v), fallback %q: %w", path, localErr, url, err)
	}
	return cat, SourceFallback, nil
}

// Items returns the catalog entries sorted by SKU.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// Len reports how many items the catalog holds.
func (c *Catalog) Len() int { return len(c.items) }

// Has reports whether the catalog knows the SKU.
func (c *Catalog) Has(sku string) bool {
	_, ok := c.desc[sku]
	return ok
}

// Description returns the description for a SKU, or the SKU itself when
// the catalog does not know it.
func (c *Catalog) Description(sku string) string {
	if d, ok := c.desc[sku]; ok && d != "" {
		return d
	}
	return sku
}

// Price returns the unit price for a SKU, or zero when the catalog does
// not know it.
func (c *Catalog) Price(sku string) float64 {
	return c.price[sku]
}
