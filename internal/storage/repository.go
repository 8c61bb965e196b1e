package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"salesdash/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository backs the sales table with a seeded SQLite database and
// keeps the export audit log.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadTable implements dataset.TableReader. Row order follows the seeded
// position column; category order follows first insertion order.
func (r *SQLiteRepository) ReadTable(ctx context.Context) (core.SalesTable, error) {
	table := core.SalesTable{Values: make(map[core.Category][]int64)}

	catRows, err := r.db.QueryContext(ctx,
		`SELECT category FROM monthly_sales GROUP BY category ORDER BY MIN(id)`)
	if err != nil {
		return core.SalesTable{}, fmt.Errorf("query categories: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var c string
		if err := catRows.Scan(&c); err != nil {
			return core.SalesTable{}, fmt.Errorf("scan category: %w", err)
		}
		table.Categories = append(table.Categories, core.Category(c))
	}
	if err := catRows.Err(); err != nil {
		return core.SalesTable{}, fmt.Errorf("iterate categories: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT position, month, category, amount FROM monthly_sales ORDER BY position, id`)
	if err != nil {
		return core.SalesTable{}, fmt.Errorf("query monthly sales: %w", err)
	}
	defer rows.Close()

	lastPosition := -1
	for rows.Next() {
		var (
			position int
			month    string
			category string
			amount   int64
		)
		if err := rows.Scan(&position, &month, &category, &amount); err != nil {
			return core.SalesTable{}, fmt.Errorf("scan monthly sales row: %w", err)
		}
		if position != lastPosition {
			table.Months = append(table.Months, month)
			lastPosition = position
		}
		c := core.Category(category)
		table.Values[c] = append(table.Values[c], amount)
	}
	if err := rows.Err(); err != nil {
		return core.SalesTable{}, fmt.Errorf("iterate monthly sales: %w", err)
	}

	if err := table.Validate(); err != nil {
		return core.SalesTable{}, fmt.Errorf("stored table invalid: %w", err)
	}

	slog.DebugContext(ctx, "Sales table loaded from SQLite",
		"months", len(table.Months),
		"categories", len(table.Categories))

	return table, nil
}

// ExportRecord is one audited export.
type ExportRecord struct {
	ID         int64
	Filename   string
	RowCount   int
	ByteSize   int
	ExportedAt time.Time
}

// RecordExport appends one entry to the export audit log.
func (r *SQLiteRepository) RecordExport(ctx context.Context, filename string, rowCount, byteSize int, exportedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO export_audit (filename, row_count, byte_size, exported_at) VALUES (?, ?, ?, ?)`,
		filename, rowCount, byteSize, exportedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert export audit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("export audit id: %w", err)
	}

	slog.InfoContext(ctx, "Export recorded in audit log",
		"id", id,
		"filename", filename,
		"rows", rowCount,
		"bytes", byteSize)

	return id, nil
}

// ListExports returns the most recent audit entries, newest first.
func (r *SQLiteRepository) ListExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, row_count, byte_size, exported_at
		 FROM export_audit ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query export audit: %w", err)
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.RowCount, &rec.ByteSize, &rec.ExportedAt); err != nil {
			return nil, fmt.Errorf("scan export audit row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export audit: %w", err)
	}
	return out, nil
}
