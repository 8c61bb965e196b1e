// Package dataset defines the port through which the application reads the
// sales table, independent of the backing store.
package dataset

import (
	"context"

	"salesdash/internal/core"
)

// TableReader provides the read-only sales table. Implementations must
// return a table the caller may keep without further synchronization.
type TableReader interface {
	ReadTable(ctx context.Context) (core.SalesTable, error)
}
