package control

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/database"
)

// Logical tables with their own id sequence.
const (
	TablePerson    = "person"
	TableMatch     = "match"
	TableMatchStat = "matchstat"
)

type allocator struct{}

// New creates a new IDAllocator.
func New() IDAllocator {
	return &allocator{}
}

// Next reads and increments the counter in a single statement. The first
// call for a table seeds the counter and returns 0.
func (a *allocator) Next(ctx context.Context, q database.Querier, table string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		"UPDATE control SET next_id = next_id + 1 WHERE tablename = ? RETURNING next_id - 1",
		table,
	).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("%w: failed to advance id counter for %s: %w", database.ErrStoreUnavailable, table, err)
	}

	if _, err := q.ExecContext(ctx, "INSERT INTO control (tablename, next_id) VALUES (?, ?)", table, 1); err != nil {
		return 0, fmt.Errorf("%w: failed to seed id counter for %s: %w", database.ErrStoreUnavailable, table, err)
	}
	log.Debug("Seeded id counter", "table", table)
	return 0, nil
}
