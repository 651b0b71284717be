package matchstat

import "database/sql"

// Row is one flattened matchstat row. Fields follow the column order of the
// matchstat table.
type Row struct {
	MatchStatID int64
	MatchID     int64
	PersonID    int64

	// chequer play
	TotalMoves                    int
	UnforcedMoves                 int
	UnmarkedMoves                 int
	GoodMoves                     int
	DoubtfulMoves                 int
	BadMoves                      int
	VeryBadMoves                  int
	ChequerErrorTotalNormalised   float64
	ChequerErrorTotal             float64
	ChequerErrorPerMoveNormalised float64
	ChequerErrorPerMove           float64
	ChequerRating                 int

	// luck
	VeryLuckyRolls        int
	LuckyRolls            int
	UnmarkedRolls         int
	UnluckyRolls          int
	VeryUnluckyRolls      int
	LuckTotalNormalised   float64
	LuckTotal             float64
	LuckPerMoveNormalised float64
	LuckPerMove           float64
	LuckRating            int

	// cube
	TotalCubeDecisions                  int
	CloseCubeDecisions                  int
	Doubles                             int
	Takes                               int
	Passes                              int
	MissedDoublesBelowCP                int
	MissedDoublesAboveCP                int
	WrongDoublesBelowDP                 int
	WrongDoublesAboveTG                 int
	WrongTakes                          int
	WrongPasses                         int
	ErrorMissedDoublesBelowCPNormalised float64
	ErrorMissedDoublesAboveCPNormalised float64
	ErrorWrongDoublesBelowDPNormalised  float64
	ErrorWrongDoublesAboveTGNormalised  float64
	ErrorWrongTakesNormalised           float64
	ErrorWrongPassesNormalised          float64
	ErrorMissedDoublesBelowCP           float64
	ErrorMissedDoublesAboveCP           float64
	ErrorWrongDoublesBelowDP            float64
	ErrorWrongDoublesAboveTG            float64
	ErrorWrongTakes                     float64
	ErrorWrongPasses                    float64
	CubeErrorTotalNormalised            float64
	CubeErrorTotal                      float64
	CubeErrorPerMoveNormalised          float64
	CubeErrorPerMove                    float64
	CubeRating                          int

	// overall
	OverallErrorTotalNormalised   float64
	OverallErrorTotal             float64
	OverallErrorPerMoveNormalised float64
	OverallErrorPerMove           float64
	OverallRating                 int
	ActualResult                  float64
	LuckAdjustedResult            float64
	SnowieErrorRatePerMove        float64

	// matches only
	LuckBasedFibsRatingDiff sql.NullFloat64
	ErrorBasedFibsRating    sql.NullFloat64
	ChequerRatingLoss       sql.NullFloat64
	CubeRatingLoss          sql.NullFloat64

	// money sessions only
	ActualAdvantage         sql.NullFloat64
	ActualAdvantageCI       sql.NullFloat64
	LuckAdjustedAdvantage   sql.NullFloat64
	LuckAdjustedAdvantageCI sql.NullFloat64

	TimePenalties             sql.NullInt64
	TimePenaltyLossNormalised sql.NullFloat64
	TimePenaltyLoss           sql.NullFloat64
}

// Columns lists the matchstat columns in insertion order.
var Columns = []string{
	"matchstat_id", "match_id", "person_id",

	"total_moves", "unforced_moves", "unmarked_moves", "good_moves", "doubtful_moves",
	"bad_moves", "very_bad_moves", "chequer_error_total_normalised", "chequer_error_total",
	"chequer_error_per_move_normalised", "chequer_error_per_move", "chequer_rating",

	"very_lucky_rolls", "lucky_rolls", "unmarked_rolls", "unlucky_rolls", "very_unlucky_rolls",
	"luck_total_normalised", "luck_total", "luck_per_move_normalised", "luck_per_move", "luck_rating",

	"total_cube_decisions", "close_cube_decisions", "doubles", "takes", "passes",
	"missed_doubles_below_cp", "missed_doubles_above_cp", "wrong_doubles_below_dp",
	"wrong_doubles_above_tg", "wrong_takes", "wrong_passes",
	"error_missed_doubles_below_cp_normalised", "error_missed_doubles_above_cp_normalised",
	"error_wrong_doubles_below_dp_normalised", "error_wrong_doubles_above_tg_normalised",
	"error_wrong_takes_normalised", "error_wrong_passes_normalised",
	"error_missed_doubles_below_cp", "error_missed_doubles_above_cp",
	"error_wrong_doubles_below_dp", "error_wrong_doubles_above_tg",
	"error_wrong_takes", "error_wrong_passes",
	"cube_error_total_normalised", "cube_error_total", "cube_error_per_move_normalised",
	"cube_error_per_move", "cube_rating",

	"overall_error_total_normalised", "overall_error_total", "overall_error_per_move_normalised",
	"overall_error_per_move", "overall_rating", "actual_result", "luck_adjusted_result",
	"snowie_error_rate_per_move",

	"luck_based_fibs_rating_diff", "error_based_fibs_rating", "chequer_rating_loss", "cube_rating_loss",

	"actual_advantage", "actual_advantage_ci", "luck_adjusted_advantage", "luck_adjusted_advantage_ci",

	"time_penalties", "time_penalty_loss_normalised", "time_penalty_loss",
}

// Values returns the row's values in the order of Columns.
func (r *Row) Values() []any {
	return []any{
		r.MatchStatID, r.MatchID, r.PersonID,

		r.TotalMoves, r.UnforcedMoves, r.UnmarkedMoves, r.GoodMoves, r.DoubtfulMoves,
		r.BadMoves, r.VeryBadMoves, r.ChequerErrorTotalNormalised, r.ChequerErrorTotal,
		r.ChequerErrorPerMoveNormalised, r.ChequerErrorPerMove, r.ChequerRating,

		r.VeryLuckyRolls, r.LuckyRolls, r.UnmarkedRolls, r.UnluckyRolls, r.VeryUnluckyRolls,
		r.LuckTotalNormalised, r.LuckTotal, r.LuckPerMoveNormalised, r.LuckPerMove, r.LuckRating,

		r.TotalCubeDecisions, r.CloseCubeDecisions, r.Doubles, r.Takes, r.Passes,
		r.MissedDoublesBelowCP, r.MissedDoublesAboveCP, r.WrongDoublesBelowDP,
		r.WrongDoublesAboveTG, r.WrongTakes, r.WrongPasses,
		r.ErrorMissedDoublesBelowCPNormalised, r.ErrorMissedDoublesAboveCPNormalised,
		r.ErrorWrongDoublesBelowDPNormalised, r.ErrorWrongDoublesAboveTGNormalised,
		r.ErrorWrongTakesNormalised, r.ErrorWrongPassesNormalised,
		r.ErrorMissedDoublesBelowCP, r.ErrorMissedDoublesAboveCP,
		r.ErrorWrongDoublesBelowDP, r.ErrorWrongDoublesAboveTG,
		r.ErrorWrongTakes, r.ErrorWrongPasses,
		r.CubeErrorTotalNormalised, r.CubeErrorTotal, r.CubeErrorPerMoveNormalised,
		r.CubeErrorPerMove, r.CubeRating,

		r.OverallErrorTotalNormalised, r.OverallErrorTotal, r.OverallErrorPerMoveNormalised,
		r.OverallErrorPerMove, r.OverallRating, r.ActualResult, r.LuckAdjustedResult,
		r.SnowieErrorRatePerMove,

		r.LuckBasedFibsRatingDiff, r.ErrorBasedFibsRating, r.ChequerRatingLoss, r.CubeRatingLoss,

		r.ActualAdvantage, r.ActualAdvantageCI, r.LuckAdjustedAdvantage, r.LuckAdjustedAdvantageCI,

		r.TimePenalties, r.TimePenaltyLossNormalised, r.TimePenaltyLoss,
	}
}
