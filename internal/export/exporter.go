package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/internal/core"
)

// DefaultFilename is where exports land unless configured otherwise.
const DefaultFilename = "sales_data.csv"

// Result is the user-facing outcome of one export. An I/O failure is a
// Result, not an error: the caller surfaces Message and moves on.
type Result struct {
	OK       bool
	Filename string
	Message  string
	Bytes    int
}

// Exporter writes the sales table to a fixed file, overwriting in place.
type Exporter struct {
	path string
}

// New returns an Exporter for the given path; an empty path selects
// DefaultFilename in the working directory.
func New(path string) *Exporter {
	if path == "" {
		path = DefaultFilename
	}
	return &Exporter{path: path}
}

// Path returns the target filename.
func (e *Exporter) Path() string { return e.path }

// Export serializes table and writes it to the configured path, overwriting
// any existing file. Failures of any kind become a failure Result; no error
// escapes and nothing panics.
func (e *Exporter) Export(ctx context.Context, table core.SalesTable) Result {
	data, err := MarshalCSV(table)
	if err != nil {
		slog.ErrorContext(ctx, "CSV serialization failed", "path", e.path, "error", err)
		return Result{
			OK:       false,
			Filename: e.path,
			Message:  fmt.Sprintf("❌ Failed to export data: %v", err),
		}
	}

	if err := os.WriteFile(e.path, data, 0644); err != nil {
		slog.ErrorContext(ctx, "CSV export failed", "path", e.path, "error", err)
		return Result{
			OK:       false,
			Filename: e.path,
			Message:  fmt.Sprintf("❌ Failed to export data: %v", err),
		}
	}

	slog.InfoContext(ctx, "CSV export written", "path", e.path, "bytes", len(data))
	return Result{
		OK:       true,
		Filename: e.path,
		Bytes:    len(data),
		Message:  fmt.Sprintf("✅ Data exported successfully as %s", filepath.Base(e.path)),
	}
}
