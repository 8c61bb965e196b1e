// Package worker records export events into the audit log.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"salesdash/internal/amqp"
)

// AuditRecorder persists one audit entry per export event.
type AuditRecorder interface {
	RecordExport(ctx context.Context, filename string, rowCount, byteSize int, exportedAt time.Time) (int64, error)
}

// AuditWorker consumes export events and writes them to the audit log.
type AuditWorker struct {
	recorder AuditRecorder
}

func NewAuditWorker(recorder AuditRecorder) *AuditWorker {
	return &AuditWorker{recorder: recorder}
}

// HandleExportEvent processes a single export event. Returning an error
// requeues the event.
func (w *AuditWorker) HandleExportEvent(ctx context.Context, ev *amqp.ExportEvent) error {
	if ev == nil {
		return fmt.Errorf("nil export event")
	}

	slog.InfoContext(ctx, "Processing export event",
		"filename", ev.Filename,
		"rows", ev.RowCount,
		"bytes", ev.ByteSize)

	exportedAt := ev.Timestamp
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}

	id, err := w.recorder.RecordExport(ctx, ev.Filename, ev.RowCount, ev.ByteSize, exportedAt)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}

	slog.InfoContext(ctx, "Export event recorded", "audit_id", id)
	return nil
}
