package importer

import (
	"time"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/control"
	"github.com/mauv0809/bgstats/internal/database"
	"github.com/mauv0809/bgstats/internal/matchstat"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/notifier"
	"github.com/mauv0809/bgstats/internal/player"
	"github.com/mauv0809/bgstats/internal/pubsub"
	"github.com/mauv0809/bgstats/internal/rating"
)

// State is a step of a single import.
type State string

const (
	StateStart           State = "START"
	StateChecksumLookup  State = "CHECKSUM_LOOKUP"
	StateAlreadyPresent  State = "ALREADY_PRESENT"
	StateNotPresent      State = "NOT_PRESENT"
	StatePlayersResolved State = "PLAYERS_RESOLVED"
	StateRowsInserted    State = "ROWS_INSERTED"
	StateCommitted       State = "COMMITTED"
	StateSkipped         State = "SKIPPED"
	StateFailed          State = "FAILED"
)

// Outcome is what the host sees of an import.
type Outcome string

const (
	OutcomeImported Outcome = "IMPORTED"
	OutcomeSkipped  Outcome = "SKIPPED"
	OutcomeFailed   Outcome = "FAILED"
)

// Result reports the outcome of one import.
type Result struct {
	Outcome  Outcome `json:"outcome"`
	MatchID  int64   `json:"match_id"`
	Checksum string  `json:"checksum"`
	Replaced bool    `json:"replaced,omitempty"`
	Reason   string  `json:"reason,omitempty"`
	State    State   `json:"state"`
	Err      error   `json:"-"`
}

// Importer records analysed matches.
type Importer struct {
	store     database.TxRunner
	ids       control.IDAllocator
	players   player.Registry
	rater     rating.Rater
	metrics   metrics.Metrics
	notifier  notifier.Notifier
	publisher pubsub.Publisher
	dryRun    bool
	now       func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// job carries one import through the state machine.
type job struct {
	rec     *analysis.Match
	envID   int
	replace bool

	state      State
	existingID int64
	replaced   bool
	personIDs  [2]int64
	matchID    int64
	rows       [2]matchstat.Row
}
