package core

import (
	"errors"
	"fmt"
)

// Category identifies one of the tracked product groupings.
type Category string

const (
	Electronics Category = "Electronics"
	Clothing    Category = "Clothing"
	Food        Category = "Food"
)

// DefaultCategory is the selection the dashboard starts with.
const DefaultCategory = Electronics

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrMalformedTable  = errors.New("malformed sales table")
)

// SalesTable is the columnar monthly sales dataset. It is built once at
// process start and never mutated; every column must have one value per month.
type SalesTable struct {
	Months     []string
	Categories []Category
	Values     map[Category][]int64
}

// DefaultTable returns the canonical six-month dataset.
func DefaultTable() SalesTable {
	return SalesTable{
		Months:     []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"},
		Categories: []Category{Electronics, Clothing, Food},
		Values: map[Category][]int64{
			Electronics: {15000, 18000, 22000, 19000, 24000, 21000},
			Clothing:    {8000, 9500, 11000, 10500, 12000, 13000},
			Food:        {12000, 13000, 14000, 14500, 15000, 16000},
		},
	}
}

// Validate checks the table's structural invariant: every category column
// has exactly one value per month.
func (t SalesTable) Validate() error {
	if len(t.Months) == 0 {
		return fmt.Errorf("%w: no months", ErrMalformedTable)
	}
	if len(t.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrMalformedTable)
	}
	for _, c := range t.Categories {
		vals, ok := t.Values[c]
		if !ok {
			return fmt.Errorf("%w: missing values for %q", ErrMalformedTable, c)
		}
		if len(vals) != len(t.Months) {
			return fmt.Errorf("%w: category %q has %d values for %d months",
				ErrMalformedTable, c, len(vals), len(t.Months))
		}
	}
	return nil
}

// HasCategory reports whether c is one of the table's categories.
func (t SalesTable) HasCategory(c Category) bool {
	for _, tc := range t.Categories {
		if tc == c {
			return true
		}
	}
	return false
}

// CategoryValues returns the month-ordered values for c.
func (t SalesTable) CategoryValues(c Category) ([]int64, error) {
	if !t.HasCategory(c) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	vals, ok := t.Values[c]
	if !ok {
		return nil, fmt.Errorf("%w: missing values for %q", ErrMalformedTable, c)
	}
	out := make([]int64, len(vals))
	copy(out, vals)
	return out, nil
}

// Total returns the sum of the category's values.
func (t SalesTable) Total(c Category) (int64, error) {
	vals, err := t.CategoryValues(c)
	if err != nil {
		return 0, err
	}
	var sum int64
	for _, v := range vals {
		sum += v
	}
	return sum, nil
}

// CategoryNames returns the categories as plain strings, in column order.
func (t SalesTable) CategoryNames() []string {
	out := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		out[i] = string(c)
	}
	return out
}
