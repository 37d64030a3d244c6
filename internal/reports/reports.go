// Package reports writes the CSV files the pages read. Two families
// exist: per-day append logs fed by processed issues, and aggregate
// reports rebuilt from the ledger on every run.
package reports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/renameio/v2"

	"github.com/casadelapaleta/ventas-site/internal/ledger"
)

var (
	dailyHeader  = []string{"fecha", "sku", "descripcion", "cantidad", "precio", "importe"}
	detailHeader = []string{"fecha", "item", "descripcion", "cantidad", "precio_unit", "importe"}
	byDayHeader  = []string{"fecha", "cantidad", "importe"}
	byItemHeader = []string{"item", "cantidad", "importe"}
)

// DailyDir returns the append-log directory for one side of the business.
func DailyDir(outDir string, mercado bool) string {
	if mercado {
		return filepath.Join(outDir, "mercado", "diario")
	}
	return filepath.Join(outDir, "diario")
}

// AppendDaily appends rows to <dir>/<fecha>.csv, writing the header first
// when the file is new. The daily files are event logs: reprocessing the
// same issue appends again, it is the ledger that deduplicates.
func AppendDaily(dir, fecha string, rows []ledger.Row) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating daily directory: %w", err)
	}

	path := filepath.Join(dir, fecha+".csv")
	_, statErr := os.Stat(path)
	newFile := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening daily file: %w", err)
	}

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(dailyHeader); err != nil {
			f.Close()
			return fmt.Errorf("writing daily header: %w", err)
		}
	}
	for _, r := range rows {
		rec := []string{r.Fecha, r.SKU, r.Descripcion, strconv.Itoa(r.Cantidad), precioCell(r), money(r.Importe)}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("writing daily row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing daily file: %w", err)
	}
	return f.Close()
}

// Build rebuilds the aggregate report set under outDir from the ledger:
//
//	ventas_detalle.csv            every recorded row
//	diario/<fecha>-ventas.csv     the detail sliced per date
//	ventas_por_dia.csv            quantity and revenue per date
//	ventas_por_item.csv           quantity and revenue per SKU
//
// Aggregates are written even when the ledger is empty so the pages always
// find a header row.
func Build(ctx context.Context, l *ledger.Ledger, outDir string) error {
	detail, err := l.Detail(ctx, false)
	if err != nil {
		return err
	}

	detailRows := make([][]string, 0, len(detail))
	byDate := make(map[string][][]string)
	for _, r := range detail {
		rec := []string{r.Fecha, r.SKU, r.Descripcion, strconv.Itoa(r.Cantidad), precioCell(r), money(r.Importe)}
		detailRows = append(detailRows, rec)
		byDate[r.Fecha] = append(byDate[r.Fecha], rec)
	}
	if err := writeCSV(filepath.Join(outDir, "ventas_detalle.csv"), detailHeader, detailRows); err != nil {
		return err
	}

	for fecha, rows := range byDate {
		path := filepath.Join(outDir, "diario", fecha+"-ventas.csv")
		if err := writeCSV(path, detailHeader, rows); err != nil {
			return err
		}
	}

	days, err := l.TotalsByDay(ctx, false)
	if err != nil {
		return err
	}
	dayRows := make([][]string, 0, len(days))
	for _, d := range days {
		dayRows = append(dayRows, []string{d.Fecha, strconv.Itoa(d.Cantidad), money(d.Importe)})
	}
	if err := writeCSV(filepath.Join(outDir, "ventas_por_dia.csv"), byDayHeader, dayRows); err != nil {
		return err
	}

	items, err := l.TotalsByItem(ctx, false)
	if err != nil {
		return err
	}
	itemRows := make([][]string, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, []string{it.SKU, strconv.Itoa(it.Cantidad), money(it.Importe)})
	}
	return writeCSV(filepath.Join(outDir, "ventas_por_item.csv"), byItemHeader, itemRows)
}

// precioCell renders the unit price, empty when no price was ever found
// so a missing price stays distinguishable from a free item.
func precioCell(r ledger.Row) string {
	if !r.PrecioKnown {
		return ""
	}
	return money(r.PrecioUnit)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// writeCSV replaces path atomically so a crash mid-build never leaves a
// truncated report behind.
func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("creating pending report: %w", err)
	}
	defer pending.Cleanup()

	w := csv.NewWriter(pending)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing report rows: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
