package player

import (
	"context"

	"github.com/mauv0809/bgstats/internal/database"
)

// Mock is a test double for Registry.
type Mock struct {
	LookupFunc          func(ctx context.Context, q database.Querier, name string, envID int) (int64, error)
	ResolveOrCreateFunc func(ctx context.Context, q database.Querier, name string, envID int) (int64, error)
	Resolved            []string
}

var _ Registry = (*Mock)(nil)

func (m *Mock) Lookup(ctx context.Context, q database.Querier, name string, envID int) (int64, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, q, name, envID)
	}
	return 0, ErrNotFound
}

func (m *Mock) ResolveOrCreate(ctx context.Context, q database.Querier, name string, envID int) (int64, error) {
	m.Resolved = append(m.Resolved, name)
	if m.ResolveOrCreateFunc != nil {
		return m.ResolveOrCreateFunc(ctx, q, name, envID)
	}
	return int64(len(m.Resolved) - 1), nil
}
