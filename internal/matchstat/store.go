package matchstat

import (
	"context"
	"fmt"
	"strings"

	"github.com/mauv0809/bgstats/internal/database"
)

var insertQuery = fmt.Sprintf("INSERT INTO matchstat (%s) VALUES (%s)",
	strings.Join(Columns, ", "),
	strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", "),
)

// Insert writes row on q.
func Insert(ctx context.Context, q database.Querier, row *Row) error {
	if _, err := q.ExecContext(ctx, insertQuery, row.Values()...); err != nil {
		return fmt.Errorf("%w: failed to insert matchstat %d: %w", database.ErrStoreUnavailable, row.MatchStatID, err)
	}
	return nil
}

// DeleteForMatch removes both statistics rows of a match.
func DeleteForMatch(ctx context.Context, q database.Querier, matchID int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM matchstat WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("%w: failed to delete matchstat rows of match %d: %w", database.ErrStoreUnavailable, matchID, err)
	}
	return nil
}
