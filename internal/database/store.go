package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Querier is the subset of *sql.DB / *sql.Tx used by the stores. Every
// component that touches the database runs against a Querier so the caller
// decides the unit of work.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner runs fn inside one serialized unit of work.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(q Querier) error) error
}

var _ TxRunner = (*Store)(nil)

// Store owns the database handle. All units of work are serialized through mu
// so that read-then-write sequences cannot interleave on the shared pool.
type Store struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
}

// NewStore wraps an already migrated handle.
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the configured backend name.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx begins a transaction, runs fn and commits. If fn returns an error
// or ctx is cancelled the transaction is rolled back and the store is left
// untouched.
func (s *Store) WithTx(ctx context.Context, fn func(q Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, s.txOptions())
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx, driver: s.driver}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping verifies the connection and that the schema is present.
func (s *Store) Ping(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM match").Scan(&n); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) txOptions() *sql.TxOptions {
	if s.driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	// SQLite transactions are serializable already; the drivers reject
	// explicit isolation levels.
	return nil
}

// Tx adapts *sql.Tx to the driver's placeholder syntax.
type Tx struct {
	tx     *sql.Tx
	driver string
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, Rebind(t.driver, query, len(args)), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, Rebind(t.driver, query, len(args)), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, Rebind(t.driver, query, len(args)), args...)
}

// Rebind rewrites '?' placeholders to '$n' for postgres. Queries without
// arguments are passed through untouched.
func Rebind(driver, query string, nargs int) string {
	if driver != DriverPostgres || nargs == 0 {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + nargs)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
