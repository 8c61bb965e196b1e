package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"salesdash/internal/core"
)

func TestExport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales_data.csv")
	table := core.DefaultTable()

	res := New(path).Export(context.Background(), table)
	if !res.OK {
		t.Fatalf("export failed: %s", res.Message)
	}
	if !strings.Contains(res.Message, "✅") || !strings.Contains(res.Message, "sales_data.csv") {
		t.Errorf("success message %q should name the file", res.Message)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("exported %d lines, want header + 6 rows", len(lines))
	}
	if lines[0] != "month,Electronics,Clothing,Food" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Jan,15000,8000,12000" {
		t.Errorf("first row = %q", lines[1])
	}

	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if !reflect.DeepEqual(parsed, table) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", parsed, table)
	}
}

func TestExport_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales_data.csv")
	table := core.DefaultTable()
	exp := New(path)

	if res := exp.Export(context.Background(), table); !res.OK {
		t.Fatalf("first export failed: %s", res.Message)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first export: %v", err)
	}

	if res := exp.Export(context.Background(), table); !res.OK {
		t.Fatalf("second export failed: %s", res.Message)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second export: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated exports should produce byte-identical content")
	}
}

func TestExport_OverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales_data.csv")
	if err := os.WriteFile(path, []byte("stale content"), 0644); err != nil {
		t.Fatal(err)
	}

	res := New(path).Export(context.Background(), core.DefaultTable())
	if !res.OK {
		t.Fatalf("export failed: %s", res.Message)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("export should overwrite the existing file")
	}
}

func TestExport_WriteFailureBecomesMessage(t *testing.T) {
	// Target a path whose parent does not exist.
	path := filepath.Join(t.TempDir(), "missing", "sales_data.csv")

	res := New(path).Export(context.Background(), core.DefaultTable())
	if res.OK {
		t.Fatal("export into a missing directory should fail")
	}
	if !strings.Contains(res.Message, "❌") {
		t.Errorf("failure message %q missing failure marker", res.Message)
	}
	if !strings.Contains(res.Message, "Failed to export data") {
		t.Errorf("failure message %q should embed the error description", res.Message)
	}
}

func TestExport_MalformedTableBecomesMessage(t *testing.T) {
	table := core.DefaultTable()
	table.Values[core.Food] = table.Values[core.Food][:1]

	res := New(filepath.Join(t.TempDir(), "out.csv")).Export(context.Background(), table)
	if res.OK {
		t.Fatal("malformed table should not export")
	}
	if !strings.Contains(res.Message, "❌") {
		t.Errorf("failure message %q missing failure marker", res.Message)
	}
}

func TestNew_DefaultFilename(t *testing.T) {
	if got := New("").Path(); got != DefaultFilename {
		t.Errorf("Path() = %q, want %q", got, DefaultFilename)
	}
}

func TestExport_ConcurrentLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_data.csv")
	exporter := New(path)
	table := core.DefaultTable()

	const writers = 16
	var wg sync.WaitGroup
	results := make([]Result, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = exporter.Export(context.Background(), table)
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if !res.OK {
			t.Errorf("writer %d failed: %s", i, res.Message)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("final file is not a clean export: %v", err)
	}
	if !reflect.DeepEqual(parsed, table) {
		t.Error("final file should round-trip to the exported table")
	}
}
