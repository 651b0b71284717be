package control

import (
	"context"

	"github.com/mauv0809/bgstats/internal/database"
)

// IDAllocator issues surrogate keys per logical table from the control table.
type IDAllocator interface {
	// Next returns the next free id for table and advances the counter. It
	// must run on the caller's unit of work so an aborted import does not
	// leak ids.
	Next(ctx context.Context, q database.Querier, table string) (int64, error)
}
