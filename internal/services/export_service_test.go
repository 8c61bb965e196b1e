package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"salesdash/internal/amqp"
	"salesdash/internal/core"
	"salesdash/internal/export"
)

type fakePublisher struct {
	events []*amqp.ExportEvent
	err    error
	closed bool
}

func (f *fakePublisher) PublishExportEvent(_ context.Context, ev *amqp.ExportEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestExport_PublishesEventOnSuccess(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExportService(export.New(filepath.Join(t.TempDir(), "out.csv")), pub)

	res := svc.Export(context.Background(), core.DefaultTable())
	if !res.OK {
		t.Fatalf("export failed: %s", res.Message)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.RowCount != 6 {
		t.Errorf("event rows = %d, want 6", ev.RowCount)
	}
	if ev.ByteSize != res.Bytes {
		t.Errorf("event bytes = %d, want %d", ev.ByteSize, res.Bytes)
	}
}

func TestExport_PublishFailureDoesNotFailExport(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExportService(export.New(filepath.Join(t.TempDir(), "out.csv")), pub)

	res := svc.Export(context.Background(), core.DefaultTable())
	if !res.OK {
		t.Fatalf("export should succeed despite publish failure: %s", res.Message)
	}
	if !strings.Contains(res.Message, "✅") {
		t.Errorf("message %q should report success", res.Message)
	}
}

func TestExport_NoEventOnWriteFailure(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExportService(export.New(filepath.Join(t.TempDir(), "missing", "out.csv")), pub)

	res := svc.Export(context.Background(), core.DefaultTable())
	if res.OK {
		t.Fatal("export into missing directory should fail")
	}
	if len(pub.events) != 0 {
		t.Error("failed exports must not publish events")
	}
}

func TestExport_WithoutPublisher(t *testing.T) {
	svc := NewExportService(export.New(filepath.Join(t.TempDir(), "out.csv")), nil)

	res := svc.Export(context.Background(), core.DefaultTable())
	if !res.OK {
		t.Fatalf("export without publisher should succeed: %s", res.Message)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Close without publisher: %v", err)
	}
}

func TestClose_ReleasesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewExportService(export.New(filepath.Join(t.TempDir(), "out.csv")), pub)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed {
		t.Error("Close should release the publisher")
	}
}
