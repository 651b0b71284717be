package maintenance_test

import (
	"context"
	"testing"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/control"
	"github.com/mauv0809/bgstats/internal/database"
	"github.com/mauv0809/bgstats/internal/importer"
	"github.com/mauv0809/bgstats/internal/maintenance"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/player"
	"github.com/mauv0809/bgstats/internal/pubsub"
	"github.com/mauv0809/bgstats/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store    *database.Store
	importer *importer.Importer
	facade   *maintenance.Facade
	metrics  *metrics.Mock
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	store, teardown, err := database.InitDB(database.Options{Driver: database.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(teardown)

	ids := control.New()
	players := player.New(ids)
	m := metrics.NewMock()
	return &testEnv{
		store:    store,
		importer: importer.New(store, ids, players, rating.Default{}, m),
		facade:   maintenance.New(store, players, m, 0),
		metrics:  m,
	}
}

func (e *testEnv) mustImport(t *testing.T, rec *analysis.Match) {
	t.Helper()
	res := e.importer.Import(context.Background(), rec, 0, false)
	require.Equal(t, importer.OutcomeImported, res.Outcome, res.Reason)
}

func (e *testEnv) count(t *testing.T, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, e.store.DB().QueryRow(query, args...).Scan(&n))
	return n
}

func TestErasePlayer(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))

	pub := pubsub.NewMock()
	env.facade.SetPublisher(pub)
	require.NoError(t, env.facade.ErasePlayer(ctx, "Alice"))

	assert.Zero(t, env.count(t, "SELECT COUNT(*) FROM matchstat"))
	assert.Zero(t, env.count(t, "SELECT COUNT(*) FROM match"))
	assert.Zero(t, env.count(t, "SELECT COUNT(*) FROM nick WHERE name = 'Alice'"))
	assert.Zero(t, env.count(t, "SELECT COUNT(*) FROM person WHERE name = 'Alice'"))
	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM nick WHERE name = 'Bob'"))
	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM person WHERE name = 'Bob'"))

	require.Len(t, pub.PublishCalls, 1)
	assert.Equal(t, pubsub.EventPlayerErased, pub.PublishCalls[0].Topic)
	event, ok := pub.PublishCalls[0].Data.(*maintenance.PlayerErased)
	require.True(t, ok)
	assert.Equal(t, "Alice", event.Name)
	assert.Equal(t, int64(1), event.Matches)
}

func TestErasePlayer_KeepsOtherMatches(t *testing.T) {
	env := setup(t)
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))
	env.mustImport(t, analysis.Sample("def456", "Bob", "Carol"))

	require.NoError(t, env.facade.ErasePlayer(context.Background(), "Alice"))

	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM match"))
	assert.Equal(t, 2, env.count(t, "SELECT COUNT(*) FROM matchstat"))
	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM match WHERE checksum = 'def456'"))
}

func TestErasePlayer_NotFound(t *testing.T) {
	env := setup(t)
	err := env.facade.ErasePlayer(context.Background(), "Nobody")
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestEraseAll(t *testing.T) {
	env := setup(t)
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))
	env.mustImport(t, analysis.Sample("def456", "Bob", "Carol"))

	require.NoError(t, env.facade.EraseAll(context.Background()))

	for _, table := range []string{"matchstat", "match", "nick", "person"} {
		assert.Zero(t, env.count(t, "SELECT COUNT(*) FROM "+table), "table %s should be empty", table)
	}
	assert.Equal(t, 3, env.count(t, "SELECT COUNT(*) FROM control"), "counters survive")

	// ids keep counting after a wipe
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))
	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM match WHERE match_id = 2"))
}

func TestPlayerSummary(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	// Alice wins as X, loses as O, and one match is unfinished.
	env.mustImport(t, analysis.Sample("m1", "Alice", "Bob"))
	lost := analysis.Sample("m2", "Bob", "Alice")
	env.mustImport(t, lost)
	unfinished := analysis.Sample("m3", "Alice", "Carol")
	unfinished.Info.Winner = nil
	env.mustImport(t, unfinished)

	summary, err := env.facade.PlayerSummary(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", summary.Name)
	assert.Equal(t, 3, summary.GamesPlayed)
	assert.Equal(t, 1, summary.GamesWon)

	// Sample sides: X has (4.0+0.2)/(20+4), O has (2.5+0.2)/(25+4).
	x, o := 4.2/24, 2.7/29
	assert.InDelta(t, (x+o+x)/3, summary.AverageErrorRate, 1e-9)

	bob, err := env.facade.PlayerSummary(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, bob.GamesPlayed)
	assert.Equal(t, 1, bob.GamesWon)
}

func TestPlayerSummary_NotFound(t *testing.T) {
	env := setup(t)
	_, err := env.facade.PlayerSummary(context.Background(), "Nobody")
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestRunRead(t *testing.T) {
	env := setup(t)
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))

	res, err := env.facade.RunRead(context.Background(), "name FROM person ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Alice", res.Rows[0][0])
	assert.Equal(t, "Bob", res.Rows[1][0])

	empty, err := env.facade.RunRead(context.Background(), "name FROM person WHERE name = 'Nobody'")
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
}

func TestRunWrite(t *testing.T) {
	env := setup(t)
	env.mustImport(t, analysis.Sample("abc123", "Alice", "Bob"))

	n, err := env.facade.RunWrite(context.Background(), "person SET notes = 'club champion' WHERE name = 'Alice'")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, env.count(t, "SELECT COUNT(*) FROM person WHERE notes = 'club champion'"))
}

func TestAdHocQueryFailures(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.facade.RunRead(ctx, "* FROM no_such_table")
	assert.Equal(t, maintenance.ErrQueryFailed, err, "the driver error must not leak")

	_, err = env.facade.RunWrite(ctx, "no_such_table SET x = 1")
	assert.Equal(t, maintenance.ErrQueryFailed, err)

	assert.Equal(t, 2, env.metrics.QueriesFailed())
}
