// Package ledger persists parsed sale reports in SQLite. The database is
// the source of truth the aggregate reports are rebuilt from; the daily
// CSVs under docs/ stay append-only event logs.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Ledger wraps a sql.DB with sale-specific helpers.
type Ledger struct {
	*sql.DB
	path string
}

// Open creates or opens the ledger database at the given path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	l := &Ledger{DB: sqlDB, path: path}
	if err := l.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return l, nil
}

// OpenMemory creates an in-memory ledger (useful for testing).
func OpenMemory() (*Ledger, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	l := &Ledger{DB: sqlDB, path: ":memory:"}
	if err := l.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return l, nil
}

// migrate runs all schema migrations.
func (l *Ledger) migrate() error {
	_, err := l.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    issue_number INTEGER NOT NULL UNIQUE,
    fecha TEXT NOT NULL,
    mercado INTEGER NOT NULL DEFAULT 0,
    titulo TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_sales_fecha ON sales(fecha);
CREATE INDEX IF NOT EXISTS idx_sales_mercado ON sales(mercado);

CREATE TABLE IF NOT EXISTS sale_items (
    sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
    sku TEXT NOT NULL,
    descripcion TEXT NOT NULL DEFAULT '',
    cantidad INTEGER NOT NULL DEFAULT 0,
    precio_unit REAL NOT NULL DEFAULT 0,
    precio_known INTEGER NOT NULL DEFAULT 1,
    importe REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);
CREATE INDEX IF NOT EXISTS idx_sale_items_sku ON sale_items(sku);
`
