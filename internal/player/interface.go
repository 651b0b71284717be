package player

import (
	"context"

	"github.com/mauv0809/bgstats/internal/database"
)

// Registry maps a nickname within an environment to a person.
type Registry interface {
	// Lookup returns the person behind name in envID, or ErrNotFound.
	Lookup(ctx context.Context, q database.Querier, name string, envID int) (int64, error)
	// ResolveOrCreate returns the person behind name in envID, creating the
	// person and nickname on first sight.
	ResolveOrCreate(ctx context.Context, q database.Querier, name string, envID int) (int64, error)
}
