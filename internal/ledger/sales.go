package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/casadelapaleta/ventas-site/internal/issues"
)

// ErrNotFound means no sale matches the lookup.
var ErrNotFound = errors.New("sale not found")

// Catalog supplies descriptions and prices for recorded rows.
// *menu.Catalog satisfies it. A nil Catalog is allowed: descriptions fall
// back to the SKU and rows without their own price stay priceless.
type Catalog interface {
	Has(sku string) bool
	Price(sku string) float64
	Description(sku string) string
}

// Sale is one recorded sale with its item rows.
type Sale struct {
	ID          string
	IssueNumber int
	Fecha       string
	Mercado     bool
	Titulo      string
	Items       []Row
}

// Row is one item line of a recorded sale.
type Row struct {
	Fecha       string
	SKU         string
	Descripcion string
	Cantidad    int
	PrecioUnit  float64
	PrecioKnown bool
	Importe     float64
}

// DayTotal aggregates quantity and revenue for one date.
type DayTotal struct {
	Fecha    string
	Cantidad int
	Importe  float64
}

// ItemTotal aggregates quantity and revenue for one SKU.
type ItemTotal struct {
	SKU      string
	Cantidad int
	Importe  float64
}

// Expand turns a parsed report into enriched rows: descriptions and
// missing prices come from the catalog, totals are computed per line.
func Expand(r *issues.Report, cat Catalog) []Row {
	rows := make([]Row, 0, len(r.Lines))
	for _, line := range r.Lines {
		desc := line.SKU
		if cat != nil {
			desc = cat.Description(line.SKU)
		}
		price, known := line.ResolvePrice(cat)
		rows = append(rows, Row{
			Fecha:       r.Fecha,
			SKU:         line.SKU,
			Descripcion: desc,
			Cantidad:    line.Cantidad,
			PrecioUnit:  price,
			PrecioKnown: known,
			Importe:     issues.Importe(line.Cantidad, price),
		})
	}
	return rows
}

// Record stores a parsed report, replacing any earlier recording of the
// same issue so reprocessing an edited issue never duplicates rows.
func (l *Ledger) Record(ctx context.Context, r *issues.Report, cat Catalog) error {
	tx, err := l.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Explicit child delete; the cascade only fires when the driver has
	// foreign keys enabled.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sale_items WHERE sale_id IN (SELECT id FROM sales WHERE issue_number = ?)`,
		r.Number); err != nil {
		return fmt.Errorf("clearing previous items: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sales WHERE issue_number = ?`, r.Number); err != nil {
		return fmt.Errorf("clearing previous sale: %w", err)
	}

	saleID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sales (id, issue_number, fecha, mercado, titulo) VALUES (?, ?, ?, ?, ?)`,
		saleID, r.Number, r.Fecha, btoi(r.Mercado()), r.Title); err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	for _, row := range Expand(r, cat) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, sku, descripcion, cantidad, precio_unit, precio_known, importe)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			saleID, row.SKU, row.Descripcion, row.Cantidad, row.PrecioUnit, btoi(row.PrecioKnown), row.Importe); err != nil {
			return fmt.Errorf("inserting item %s: %w", row.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sale: %w", err)
	}
	return nil
}

// Detail returns every recorded item row for one side of the business,
// ordered by date, SKU, and unit price.
func (l *Ledger) Detail(ctx context.Context, mercado bool) ([]Row, error) {
	rows, err := l.QueryContext(ctx, `
		SELECT s.fecha, i.sku, i.descripcion, i.cantidad, i.precio_unit, i.precio_known, i.importe
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.mercado = ?
		ORDER BY s.fecha, i.sku, i.precio_unit`, btoi(mercado))
	if err != nil {
		return nil, fmt.Errorf("querying detail: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var known int
		if err := rows.Scan(&r.Fecha, &r.SKU, &r.Descripcion, &r.Cantidad, &r.PrecioUnit, &known, &r.Importe); err != nil {
			return nil, fmt.Errorf("scanning detail row: %w", err)
		}
		r.PrecioKnown = known == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Dates returns the distinct sale dates for one side of the business,
// oldest first.
func (l *Ledger) Dates(ctx context.Context, mercado bool) ([]string, error) {
	rows, err := l.QueryContext(ctx,
		`SELECT DISTINCT fecha FROM sales WHERE mercado = ? ORDER BY fecha`, btoi(mercado))
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TotalsByDay aggregates quantity and revenue per date, oldest first.
func (l *Ledger) TotalsByDay(ctx context.Context, mercado bool) ([]DayTotal, error) {
	rows, err := l.QueryContext(ctx, `
		SELECT s.fecha, SUM(i.cantidad), SUM(i.importe)
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.mercado = ?
		GROUP BY s.fecha
		ORDER BY s.fecha`, btoi(mercado))
	if err != nil {
		return nil, fmt.Errorf("querying totals by day: %w", err)
	}
	defer rows.Close()

	var out []DayTotal
	for rows.Next() {
		var t DayTotal
		if err := rows.Scan(&t.Fecha, &t.Cantidad, &t.Importe); err != nil {
			return nil, fmt.Errorf("scanning day total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TotalsByItem aggregates quantity and revenue per SKU, best sellers
// first: quantity descending, then revenue descending, then SKU.
func (l *Ledger) TotalsByItem(ctx context.Context, mercado bool) ([]ItemTotal, error) {
	rows, err := l.QueryContext(ctx, `
		SELECT i.sku, SUM(i.cantidad) AS cantidad, SUM(i.importe) AS importe
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.mercado = ?
		GROUP BY i.sku
		ORDER BY cantidad DESC, importe DESC, i.sku`, btoi(mercado))
	if err != nil {
		return nil, fmt.Errorf("querying totals by item: %w", err)
	}
	defer rows.Close()

	var out []ItemTotal
	for rows.Next() {
		var t ItemTotal
		if err := rows.Scan(&t.SKU, &t.Cantidad, &t.Importe); err != nil {
			return nil, fmt.Errorf("scanning item total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaleByIssue returns the recorded sale for an issue number, or
// ErrNotFound when the issue was never recorded.
func (l *Ledger) SaleByIssue(ctx context.Context, number int) (*Sale, error) {
	s := &Sale{IssueNumber: number}
	var mercado int
	err := l.QueryRowContext(ctx,
		`SELECT id, fecha, mercado, titulo FROM sales WHERE issue_number = ?`, number).
		Scan(&s.ID, &s.Fecha, &mercado, &s.Titulo)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue #%d: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying sale: %w", err)
	}
	s.Mercado = mercado == 1

	rows, err := l.QueryContext(ctx, `
		SELECT sku, descripcion, cantidad, precio_unit, precio_known, importe
		FROM sale_items WHERE sale_id = ? ORDER BY rowid`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := Row{Fecha: s.Fecha}
		var known int
		if err := rows.Scan(&r.SKU, &r.Descripcion, &r.Cantidad, &r.PrecioUnit, &known, &r.Importe); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}
		r.PrecioKnown = known == 1
		s.Items = append(s.Items, r)
	}
	return s, rows.Err()
}

// Count reports how many sales are recorded.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sales: %w", err)
	}
	return n, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
