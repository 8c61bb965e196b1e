package memory

import (
	"context"
	"os"
	"sync"

	"salesdash/internal/core"
	"salesdash/internal/export"
)

// Store holds the sales table in memory. It is the default backend: the
// table is fixed at construction and only ever read afterwards.
type Store struct {
	mu    sync.Mutex
	table core.SalesTable
}

func New(table core.SalesTable) *Store {
	return &Store{table: table}
}

// NewDefault returns a store seeded with the canonical dataset.
func NewDefault() *Store {
	return New(core.DefaultTable())
}

// NewFromFile seeds the store from a CSV file in MarshalCSV layout, falling
// back to the canonical dataset when the file is missing or unreadable.
func NewFromFile(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewDefault()
	}
	table, err := export.ParseCSV(data)
	if err != nil {
		return NewDefault()
	}
	return New(table)
}

// ReadTable returns a copy of the table; callers may keep it freely.
func (s *Store) ReadTable(_ context.Context) (core.SalesTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTable(s.table), nil
}

func copyTable(t core.SalesTable) core.SalesTable {
	out := core.SalesTable{
		Months:     append([]string(nil), t.Months...),
		Categories: append([]core.Category(nil), t.Categories...),
		Values:     make(map[core.Category][]int64, len(t.Values)),
	}
	for c, vals := range t.Values {
		out.Values[c] = append([]int64(nil), vals...)
	}
	return out
}
