package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
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

// New creates a new Importer.
func New(store database.TxRunner, ids control.IDAllocator, players player.Registry, rater rating.Rater, metrics metrics.Metrics, opts ...Option) *Importer {
	i := &Importer{
		store:   store,
		ids:     ids,
		players: players,
		rater:   rater,
		metrics: metrics,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// WithNotifier announces every recorded match through n.
func WithNotifier(n notifier.Notifier, dryRun bool) Option {
	return func(i *Importer) {
		i.notifier = n
		i.dryRun = dryRun
	}
}

// WithPublisher publishes a match-imported event for every recorded match.
func WithPublisher(p pubsub.Publisher) Option {
	return func(i *Importer) {
		i.publisher = p
	}
}

// WithClock overrides the clock used for the added timestamp.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		i.now = now
	}
}

type dryRunKey struct{}

// WithDryRun marks ctx so that imports run with it announce in dry-run mode
// even when the Importer was configured to notify for real.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, dryRun)
}

func (i *Importer) isDryRun(ctx context.Context) bool {
	dryRun, _ := ctx.Value(dryRunKey{}).(bool)
	return i.dryRun || dryRun
}

// Import records rec in environment envID. A match whose checksum is already
// recorded is skipped unless replace is set, in which case the old match and
// its statistics are deleted first. Everything up to the commit happens in
// one unit of work; a failure leaves the store untouched.
func (i *Importer) Import(ctx context.Context, rec *analysis.Match, envID int, replace bool) Result {
	start := time.Now()
	defer func() {
		i.metrics.ObserveImportDuration(time.Since(start).Seconds())
	}()

	if err := rec.Validate(); err != nil {
		return i.fail(rec, StateStart, err)
	}

	j := &job{rec: rec, envID: envID, replace: replace, state: StateStart}
	log.Info("Importing match", "checksum", rec.Checksum, "env", envID, "replace", replace)

	err := i.store.WithTx(ctx, func(q database.Querier) error {
		return i.processJob(ctx, q, j)
	})
	if err != nil {
		return i.fail(rec, j.state, err)
	}

	if j.state == StateSkipped {
		i.metrics.IncMatchesSkipped()
		log.Info("Match already recorded, skipping", "checksum", rec.Checksum, "match_id", j.existingID)
		return Result{
			Outcome:  OutcomeSkipped,
			MatchID:  j.existingID,
			Checksum: rec.Checksum,
			Reason:   "already recorded",
			State:    StateSkipped,
		}
	}

	j.state = StateCommitted
	i.metrics.IncMatchesImported()
	log.Info("Match recorded", "checksum", rec.Checksum, "match_id", j.matchID, "replaced", j.replaced)
	i.announce(ctx, j)

	return Result{
		Outcome:  OutcomeImported,
		MatchID:  j.matchID,
		Checksum: rec.Checksum,
		Replaced: j.replaced,
		State:    StateCommitted,
	}
}

func (i *Importer) fail(rec *analysis.Match, state State, err error) Result {
	i.metrics.IncImportsFailed()
	var checksum string
	if rec != nil {
		checksum = rec.Checksum
	}
	if errors.Is(err, analysis.ErrMalformedInput) {
		log.Warn("Rejected malformed match", "checksum", checksum, "error", err)
	} else {
		log.Error("Failed to import match", "checksum", checksum, "state", state, "error", err)
	}
	return Result{
		Outcome:  OutcomeFailed,
		Checksum: checksum,
		Reason:   err.Error(),
		State:    StateFailed,
		Err:      err,
	}
}

// processJob advances j until it is either skipped or has all rows
// inserted. It runs inside the caller's transaction.
func (i *Importer) processJob(ctx context.Context, q database.Querier, j *job) error {
	for {
		currentState := j.state
		log.Debug("Evaluating import state", "checksum", j.rec.Checksum, "state", currentState)

		switch currentState {
		case StateStart:
			j.state = StateChecksumLookup

		case StateChecksumLookup:
			matchID, err := lookupChecksum(ctx, q, j.rec.Checksum)
			switch {
			case errors.Is(err, errNotRecorded):
				j.state = StateNotPresent
			case err != nil:
				return err
			default:
				j.existingID = matchID
				j.state = StateAlreadyPresent
			}

		case StateAlreadyPresent:
			if !j.replace {
				j.state = StateSkipped
				continue
			}
			log.Info("Replacing recorded match", "checksum", j.rec.Checksum, "match_id", j.existingID)
			if err := matchstat.DeleteForMatch(ctx, q, j.existingID); err != nil {
				return err
			}
			if err := deleteMatch(ctx, q, j.existingID); err != nil {
				return err
			}
			j.replaced = true
			if err := i.resolvePlayers(ctx, q, j); err != nil {
				return err
			}
			j.state = StatePlayersResolved

		case StateNotPresent:
			if err := i.resolvePlayers(ctx, q, j); err != nil {
				return err
			}
			j.state = StatePlayersResolved

		case StatePlayersResolved:
			if err := i.insertRows(ctx, q, j); err != nil {
				return err
			}
			j.state = StateRowsInserted

		case StateRowsInserted, StateSkipped:
			return nil

		default:
			return fmt.Errorf("unknown import state %q", currentState)
		}
	}
}

func (i *Importer) resolvePlayers(ctx context.Context, q database.Querier, j *job) error {
	for _, side := range []int{analysis.SideX, analysis.SideO} {
		name := j.rec.Player(side).Name
		personID, err := i.players.ResolveOrCreate(ctx, q, name, j.envID)
		if err != nil {
			return fmt.Errorf("failed to resolve player %q: %w", name, err)
		}
		j.personIDs[side] = personID
	}
	return nil
}

func (i *Importer) insertRows(ctx context.Context, q database.Querier, j *job) error {
	matchID, err := i.ids.Next(ctx, q, control.TableMatch)
	if err != nil {
		return fmt.Errorf("failed to allocate match id: %w", err)
	}
	j.matchID = matchID

	if err := insertMatch(ctx, q, matchRow(j, i.now())); err != nil {
		return err
	}

	for _, side := range []int{analysis.SideX, analysis.SideO} {
		row, err := matchstat.Flatten(matchID, j.personIDs[side], j.rec.Side(side), j.rec.Side(1-side), i.rater)
		if err != nil {
			return fmt.Errorf("failed to flatten statistics for side %d: %w", side, err)
		}
		row.MatchStatID, err = i.ids.Next(ctx, q, control.TableMatchStat)
		if err != nil {
			return fmt.Errorf("failed to allocate matchstat id: %w", err)
		}
		if err := matchstat.Insert(ctx, q, &row); err != nil {
			return err
		}
		j.rows[side] = row
	}
	return nil
}

// announce notifies and publishes a committed import. Failures are logged
// only; the match is already recorded.
func (i *Importer) announce(ctx context.Context, j *job) {
	event := &notifier.MatchImported{
		MatchID:  j.matchID,
		Checksum: j.rec.Checksum,
		EnvID:    j.envID,
		Players:  [2]string{j.rec.Info.X.Name, j.rec.Info.O.Name},
		Length:   j.rec.Info.Length,
		Result:   j.rec.Result(),
		Replaced: j.replaced,
	}
	for side, row := range j.rows {
		event.OverallErrorRate[side] = row.OverallErrorPerMoveNormalised
		event.OverallRating[side] = row.OverallRating
		event.LuckRating[side] = row.LuckRating
	}

	dryRun := i.isDryRun(ctx)
	if i.notifier != nil {
		if err := i.notifier.SendImportNotification(ctx, event, dryRun); err != nil {
			log.Error("Failed to send import notification", "error", err, "match_id", j.matchID)
		}
	}
	if i.publisher != nil && !dryRun {
		if err := i.publisher.Publish(ctx, pubsub.EventMatchImported, event); err != nil {
			log.Error("Failed to publish import event", "error", err, "match_id", j.matchID)
		}
	}
}
