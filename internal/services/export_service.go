package services

import (
	"context"
	"log/slog"

	"salesdash/internal/amqp"
	"salesdash/internal/core"
	"salesdash/internal/export"
)

// EventPublisher announces completed exports to interested consumers.
type EventPublisher interface {
	PublishExportEvent(ctx context.Context, ev *amqp.ExportEvent) error
	Close() error
}

// ExportService orchestrates the CSV write and the optional export event.
// The event bus is best-effort: a publish failure never fails the export.
type ExportService struct {
	exporter  *export.Exporter
	publisher EventPublisher
}

func NewExportService(exporter *export.Exporter, publisher EventPublisher) *ExportService {
	return &ExportService{
		exporter:  exporter,
		publisher: publisher,
	}
}

// Export writes the table to the configured file and, when a publisher is
// configured, announces the successful export. The returned Result is always
// displayable; failures are messages, not errors.
func (s *ExportService) Export(ctx context.Context, table core.SalesTable) export.Result {
	res := s.exporter.Export(ctx, table)
	if !res.OK {
		return res
	}

	if s.publisher != nil {
		ev := amqp.NewExportEvent(res.Filename, len(table.Months), res.Bytes)
		if err := s.publisher.PublishExportEvent(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "Failed to publish export event",
				"filename", res.Filename, "error", err)
			// Don't fail the request - the file is written
		}
	}

	return res
}

// Close releases the publisher connection, if any.
func (s *ExportService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
