package notifier

import "context"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a match has been committed
	SendImportNotification(ctx context.Context, match *MatchImported, dryRun bool) error
	// On request from the host
	SendPlayerSummary(ctx context.Context, summary *PlayerSummary, dryRun bool) error
}

// MatchImported describes a freshly recorded match. It is also the payload of
// the match-imported event.
type MatchImported struct {
	MatchID          int64      `json:"match_id" msgpack:"match_id"`
	Checksum         string     `json:"checksum" msgpack:"checksum"`
	EnvID            int        `json:"env_id" msgpack:"env_id"`
	Players          [2]string  `json:"players" msgpack:"players"`
	Length           int        `json:"length" msgpack:"length"`
	Result           int        `json:"result" msgpack:"result"`
	Replaced         bool       `json:"replaced" msgpack:"replaced"`
	OverallErrorRate [2]float64 `json:"overall_error_rate" msgpack:"overall_error_rate"`
	OverallRating    [2]int     `json:"overall_rating" msgpack:"overall_rating"`
	LuckRating       [2]int     `json:"luck_rating" msgpack:"luck_rating"`
}

// PlayerSummary is the aggregate record of one player.
type PlayerSummary struct {
	Name             string
	GamesPlayed      int
	GamesWon         int
	AverageErrorRate float64
}
