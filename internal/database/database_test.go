package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	store, teardown, err := InitDB(Options{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"control", "person", "nick", "match", "matchstat"} {
		var name string
		err = store.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}

	require.NoError(t, store.Ping(context.Background()))
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		opts   Options
		want   goose.Dialect
	}{
		{"modernc sqlite", DriverSQLite, Options{Path: "bgstats.db"}, goose.DialectSQLite3},
		{"cgo sqlite", DriverSQLite3, Options{Path: "bgstats.db"}, goose.DialectSQLite3},
		{"libsql without primary", DriverLibSQL, Options{Path: "bgstats.db"}, goose.DialectSQLite3},
		{"turso primary", DriverLibSQL, Options{PrimaryURL: "libsql://club.turso.io"}, goosedb.DialectTurso},
		{"postgres", DriverPostgres, Options{DSN: "postgres://localhost/bgstats"}, goose.DialectPostgres},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dialectFor(tt.driver, tt.opts))
		})
	}
}

func TestInitDB_LibSQLWithoutPrimaryUsesLocalFile(t *testing.T) {
	store, teardown, err := InitDB(Options{Driver: DriverLibSQL, Path: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	assert.Equal(t, DriverLibSQL, store.Driver())
	require.NoError(t, store.Ping(context.Background()))
}

func TestInitDB_UnknownDriver(t *testing.T) {
	_, _, err := InitDB(Options{Driver: "oracle", Path: ":memory:"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestInitDB_PostgresRequiresDSN(t *testing.T) {
	_, _, err := InitDB(Options{Driver: DriverPostgres})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	store, teardown, err := InitDB(Options{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	ctx := context.Background()
	boom := errors.New("boom")
	err = store.WithTx(ctx, func(q Querier) error {
		if _, err := q.ExecContext(ctx, "INSERT INTO control (tablename, next_id) VALUES (?, ?)", "person", 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, store.DB().QueryRow("SELECT COUNT(*) FROM control").Scan(&count))
	assert.Equal(t, 0, count, "the insert should have been rolled back")

	err = store.WithTx(ctx, func(q Querier) error {
		_, err := q.ExecContext(ctx, "INSERT INTO control (tablename, next_id) VALUES (?, ?)", "person", 5)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, store.DB().QueryRow("SELECT COUNT(*) FROM control").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM nick WHERE env_id = ? AND name = ?"
	assert.Equal(t, q, Rebind(DriverSQLite, q, 2))
	assert.Equal(t, "SELECT * FROM nick WHERE env_id = $1 AND name = $2", Rebind(DriverPostgres, q, 2))
	assert.Equal(t, "SELECT '?'", Rebind(DriverPostgres, "SELECT '?'", 0))
}
