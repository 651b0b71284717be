package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/control"
	"github.com/mauv0809/bgstats/internal/database"
)

// ErrNotFound is returned when no nickname matches.
var ErrNotFound = errors.New("player not found")

type registry struct {
	ids control.IDAllocator
}

// New creates a new Registry allocating person ids from ids.
func New(ids control.IDAllocator) Registry {
	return &registry{ids: ids}
}

func (r *registry) Lookup(ctx context.Context, q database.Querier, name string, envID int) (int64, error) {
	var personID int64
	err := q.QueryRowContext(ctx, "SELECT person_id FROM nick WHERE name = ? AND env_id = ?", name, envID).Scan(&personID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to look up player %q: %w", database.ErrStoreUnavailable, name, err)
	}
	return personID, nil
}

func (r *registry) ResolveOrCreate(ctx context.Context, q database.Querier, name string, envID int) (int64, error) {
	personID, err := r.Lookup(ctx, q, name, envID)
	if !errors.Is(err, ErrNotFound) {
		return personID, err
	}

	personID, err = r.ids.Next(ctx, q, control.TablePerson)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate person id: %w", err)
	}
	if _, err := q.ExecContext(ctx, "INSERT INTO person (person_id, name, notes) VALUES (?, ?, '')", personID, name); err != nil {
		return 0, fmt.Errorf("%w: failed to insert person %q: %w", database.ErrStoreUnavailable, name, err)
	}
	if _, err := q.ExecContext(ctx, "INSERT INTO nick (env_id, person_id, name) VALUES (?, ?, ?)", envID, personID, name); err != nil {
		return 0, fmt.Errorf("%w: failed to insert nickname %q: %w", database.ErrStoreUnavailable, name, err)
	}
	log.Info("Registered new player", "name", name, "env", envID, "person_id", personID)
	return personID, nil
}
