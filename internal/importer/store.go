package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mauv0809/bgstats/internal/database"
)

// maxTextLen bounds the free-text match columns.
const maxTextLen = 80

const addedLayout = "2006-01-02 15:04:05"

var errNotRecorded = errors.New("checksum not recorded")

type matchRecord struct {
	MatchID   int64
	Checksum  string
	EnvID     int
	PersonID0 int64
	PersonID1 int64
	Result    int
	Length    int
	Added     string
	Rating0   string
	Rating1   string
	Event     string
	Round     string
	Place     string
	Annotator string
	Comment   string
	Date      any
}

func matchRow(j *job, now time.Time) matchRecord {
	info := j.rec.Info
	var date any
	if info.Date != nil {
		date = info.Date.String()
	}
	return matchRecord{
		MatchID:   j.matchID,
		Checksum:  j.rec.Checksum,
		EnvID:     j.envID,
		PersonID0: j.personIDs[0],
		PersonID1: j.personIDs[1],
		Result:    j.rec.Result(),
		Length:    info.Length,
		Added:     now.UTC().Format(addedLayout),
		Rating0:   truncate(info.X.Rating),
		Rating1:   truncate(info.O.Rating),
		Event:     truncate(info.Event),
		Round:     truncate(info.Round),
		Place:     truncate(info.Place),
		Annotator: truncate(info.Annotator),
		Comment:   truncate(info.Comment),
		Date:      date,
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxTextLen {
		return s
	}
	return string(r[:maxTextLen])
}

func lookupChecksum(ctx context.Context, q database.Querier, checksum string) (int64, error) {
	var matchID int64
	err := q.QueryRowContext(ctx, "SELECT match_id FROM match WHERE checksum = ?", checksum).Scan(&matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errNotRecorded
	}
	if err != nil {
		return 0, fmt.Errorf("%w: failed to look up checksum %s: %w", database.ErrStoreUnavailable, checksum, err)
	}
	return matchID, nil
}

func insertMatch(ctx context.Context, q database.Querier, m matchRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO match (match_id, checksum, env_id, person_id0, person_id1, result, length, added,
			rating0, rating1, event, round, place, annotator, comment, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Checksum, m.EnvID, m.PersonID0, m.PersonID1, m.Result, m.Length, m.Added,
		m.Rating0, m.Rating1, m.Event, m.Round, m.Place, m.Annotator, m.Comment, m.Date,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert match %s: %w", database.ErrStoreUnavailable, m.Checksum, err)
	}
	return nil
}

func deleteMatch(ctx context.Context, q database.Querier, matchID int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM match WHERE match_id = ?", matchID); err != nil {
		return fmt.Errorf("%w: failed to delete match %d: %w", database.ErrStoreUnavailable, matchID, err)
	}
	return nil
}
