package control

import (
	"context"

	"github.com/mauv0809/bgstats/internal/database"
)

// Mock is a test double for IDAllocator.
type Mock struct {
	NextFunc func(ctx context.Context, q database.Querier, table string) (int64, error)
	Tables   []string
}

var _ IDAllocator = (*Mock)(nil)

func (m *Mock) Next(ctx context.Context, q database.Querier, table string) (int64, error) {
	m.Tables = append(m.Tables, table)
	if m.NextFunc != nil {
		return m.NextFunc(ctx, q, table)
	}
	return int64(len(m.Tables) - 1), nil
}
