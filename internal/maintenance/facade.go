package maintenance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/database"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/player"
	"github.com/mauv0809/bgstats/internal/pubsub"
)

// New creates a new Facade. Player names are resolved in defaultEnv.
func New(store database.TxRunner, players player.Registry, metrics metrics.Metrics, defaultEnv int) *Facade {
	return &Facade{
		store:      store,
		players:    players,
		metrics:    metrics,
		defaultEnv: defaultEnv,
	}
}

// SetPublisher announces erased players through p.
func (f *Facade) SetPublisher(p pubsub.Publisher) {
	f.publisher = p
}

// ErasePlayer removes a player with every match they took part in. Children
// are deleted before parents so no cascading support is needed.
func (f *Facade) ErasePlayer(ctx context.Context, name string) error {
	var (
		personID int64
		matches  int64
	)
	err := f.store.WithTx(ctx, func(q database.Querier) error {
		var err error
		personID, err = f.players.Lookup(ctx, q, name, f.defaultEnv)
		if err != nil {
			return err
		}

		steps := []struct {
			what  string
			query string
			args  []any
		}{
			{"statistics", "DELETE FROM matchstat WHERE match_id IN (SELECT match_id FROM match WHERE person_id0 = ? OR person_id1 = ?)", []any{personID, personID}},
			{"matches", "DELETE FROM match WHERE person_id0 = ? OR person_id1 = ?", []any{personID, personID}},
			{"nicknames", "DELETE FROM nick WHERE person_id = ?", []any{personID}},
			{"person", "DELETE FROM person WHERE person_id = ?", []any{personID}},
		}
		for _, step := range steps {
			res, err := q.ExecContext(ctx, step.query, step.args...)
			if err != nil {
				return fmt.Errorf("%w: failed to delete %s of %q: %w", database.ErrStoreUnavailable, step.what, name, err)
			}
			if step.what == "matches" {
				matches, _ = res.RowsAffected()
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Erased player", "name", name, "person_id", personID, "matches", matches)
	if f.publisher != nil {
		event := &PlayerErased{Name: name, PersonID: personID, Matches: matches}
		if err := f.publisher.Publish(ctx, pubsub.EventPlayerErased, event); err != nil {
			log.Error("Failed to publish erase event", "error", err, "name", name)
		}
	}
	return nil
}

// EraseAll empties every data table. The control counters are kept so ids
// are never reissued.
func (f *Facade) EraseAll(ctx context.Context) error {
	err := f.store.WithTx(ctx, func(q database.Querier) error {
		for _, table := range []string{"matchstat", "match", "nick", "person"} {
			if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("%w: failed to empty %s: %w", database.ErrStoreUnavailable, table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Warn("Erased all matches and players")
	return nil
}

// PlayerSummary returns the aggregate record of name.
func (f *Facade) PlayerSummary(ctx context.Context, name string) (*Summary, error) {
	summary := &Summary{Name: name}
	err := f.store.WithTx(ctx, func(q database.Querier) error {
		personID, err := f.players.Lookup(ctx, q, name, f.defaultEnv)
		if err != nil {
			return err
		}

		err = q.QueryRowContext(ctx, `
			SELECT COUNT(*),
				COALESCE(SUM(CASE WHEN (person_id0 = ? AND result = 1) OR (person_id1 = ? AND result = -1) THEN 1 ELSE 0 END), 0)
			FROM match
			WHERE person_id0 = ? OR person_id1 = ?`,
			personID, personID, personID, personID,
		).Scan(&summary.GamesPlayed, &summary.GamesWon)
		if err != nil {
			return fmt.Errorf("%w: failed to count matches of %q: %w", database.ErrStoreUnavailable, name, err)
		}

		var avg sql.NullFloat64
		err = q.QueryRowContext(ctx,
			"SELECT AVG(overall_error_per_move_normalised) FROM matchstat WHERE person_id = ?",
			personID,
		).Scan(&avg)
		if err != nil {
			return fmt.Errorf("%w: failed to average error rate of %q: %w", database.ErrStoreUnavailable, name, err)
		}
		summary.AverageErrorRate = avg.Float64
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// RunRead executes "SELECT " + fragment and returns every row.
func (f *Facade) RunRead(ctx context.Context, fragment string) (*QueryResult, error) {
	result := &QueryResult{Rows: make([][]any, 0)}
	err := f.store.WithTx(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, "SELECT "+fragment)
		if err != nil {
			return err
		}
		defer rows.Close()

		result.Columns, err = rows.Columns()
		if err != nil {
			return err
		}
		for rows.Next() {
			values := make([]any, len(result.Columns))
			ptrs := make([]any, len(values))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			result.Rows = append(result.Rows, values)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, f.queryFailed("SELECT", fragment, err)
	}
	return result, nil
}

// RunWrite executes "UPDATE " + fragment and returns the number of rows
// changed.
func (f *Facade) RunWrite(ctx context.Context, fragment string) (int64, error) {
	var affected int64
	err := f.store.WithTx(ctx, func(q database.Querier) error {
		res, err := q.ExecContext(ctx, "UPDATE "+fragment)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, f.queryFailed("UPDATE", fragment, err)
	}
	log.Info("Ad-hoc update executed", "rows", affected)
	return affected, nil
}

func (f *Facade) queryFailed(verb, fragment string, err error) error {
	f.metrics.IncQueriesFailed()
	log.Error("Ad-hoc query failed", "verb", verb, "fragment", fragment, "error", err)
	return ErrQueryFailed
}
