package maintenance

import (
	"errors"

	"github.com/mauv0809/bgstats/internal/database"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/player"
	"github.com/mauv0809/bgstats/internal/pubsub"
)

// ErrQueryFailed is returned for any ad-hoc statement the store rejects. The
// driver's error is logged, never returned.
var ErrQueryFailed = errors.New("query failed")

// Summary aggregates a player's recorded matches.
type Summary struct {
	Name             string  `json:"name"`
	GamesPlayed      int     `json:"games_played"`
	GamesWon         int     `json:"games_won"`
	AverageErrorRate float64 `json:"average_error_rate"`
}

// QueryResult is the outcome of an ad-hoc read.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Facade bundles deletion, reporting and ad-hoc access to the store.
type Facade struct {
	store      database.TxRunner
	players    player.Registry
	metrics    metrics.Metrics
	publisher  pubsub.Publisher
	defaultEnv int
}

// PlayerErased is published after a player has been removed.
type PlayerErased struct {
	Name     string `msgpack:"name"`
	PersonID int64  `msgpack:"person_id"`
	Matches  int64  `msgpack:"matches"`
}
