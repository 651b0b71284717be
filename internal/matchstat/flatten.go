package matchstat

import (
	"database/sql"
	"fmt"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/rating"
)

// CalcRate returns a/b, or 0 when b is 0.
func CalcRate(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Flatten turns one side's nested statistics into a matchstat row. opp is the
// other side of the same match; its total moves feed the combined error rate.
// The returned row has no MatchStatID yet.
func Flatten(matchID, personID int64, own, opp *analysis.Statistics, rater rating.Rater) (Row, error) {
	if err := own.Validate(); err != nil {
		return Row{}, err
	}
	if opp == nil || opp.Chequer == nil {
		return Row{}, fmt.Errorf("%w: missing opponent chequer play section", analysis.ErrMalformedInput)
	}

	chs, lus, cus := own.Chequer, own.Dice, own.Cube
	unforced := float64(chs.UnforcedMoves)
	totalMoves := float64(chs.TotalMoves)
	closeCube := float64(cus.CloseCube)

	row := Row{
		MatchID:  matchID,
		PersonID: personID,

		TotalMoves:                    chs.TotalMoves,
		UnforcedMoves:                 chs.UnforcedMoves,
		UnmarkedMoves:                 chs.Marked.Unmarked,
		GoodMoves:                     chs.Marked.Good,
		DoubtfulMoves:                 chs.Marked.Doubtful,
		BadMoves:                      chs.Marked.Bad,
		VeryBadMoves:                  chs.Marked.VeryBad,
		ChequerErrorTotalNormalised:   chs.ErrorSkill,
		ChequerErrorTotal:             chs.ErrorCost,
		ChequerErrorPerMoveNormalised: CalcRate(chs.ErrorSkill, unforced),
		ChequerErrorPerMove:           CalcRate(chs.ErrorCost, unforced),

		VeryLuckyRolls:        lus.MarkedRolls.VeryGood,
		LuckyRolls:            lus.MarkedRolls.Good,
		UnmarkedRolls:         lus.MarkedRolls.Unmarked,
		UnluckyRolls:          lus.MarkedRolls.Bad,
		VeryUnluckyRolls:      lus.MarkedRolls.VeryBad,
		LuckTotalNormalised:   lus.Luck,
		LuckTotal:             lus.LuckCost,
		LuckPerMoveNormalised: CalcRate(lus.Luck, totalMoves),
		LuckPerMove:           CalcRate(lus.LuckCost, totalMoves),

		TotalCubeDecisions:                  cus.TotalCube,
		CloseCubeDecisions:                  cus.CloseCube,
		Doubles:                             cus.Doubles,
		Takes:                               cus.Takes,
		Passes:                              cus.Drops,
		MissedDoublesBelowCP:                cus.MissedDoubleBelowCP,
		MissedDoublesAboveCP:                cus.MissedDoubleAboveCP,
		WrongDoublesBelowDP:                 cus.WrongDoubleBelowDP,
		WrongDoublesAboveTG:                 cus.WrongDoubleAboveTG,
		WrongTakes:                          cus.WrongTake,
		WrongPasses:                         cus.WrongDrop,
		ErrorMissedDoublesBelowCPNormalised: cus.ErrMissedDoubleBelowCPSkill,
		ErrorMissedDoublesAboveCPNormalised: cus.ErrMissedDoubleAboveCPSkill,
		ErrorWrongDoublesBelowDPNormalised:  cus.ErrWrongDoubleBelowDPSkill,
		ErrorWrongDoublesAboveTGNormalised:  cus.ErrWrongDoubleAboveTGSkill,
		ErrorWrongTakesNormalised:           cus.ErrWrongTakeSkill,
		ErrorWrongPassesNormalised:          cus.ErrWrongDropSkill,
		ErrorMissedDoublesBelowCP:           cus.ErrMissedDoubleBelowCPCost,
		ErrorMissedDoublesAboveCP:           cus.ErrMissedDoubleAboveCPCost,
		ErrorWrongDoublesBelowDP:            cus.ErrWrongDoubleBelowDPCost,
		ErrorWrongDoublesAboveTG:            cus.ErrWrongDoubleAboveTGCost,
		ErrorWrongTakes:                     cus.ErrWrongTakeCost,
		ErrorWrongPasses:                    cus.ErrWrongDropCost,
		CubeErrorTotalNormalised:            cus.ErrorSkill,
		CubeErrorTotal:                      cus.ErrorCost,
		CubeErrorPerMoveNormalised:          CalcRate(cus.ErrorSkill, closeCube),
		CubeErrorPerMove:                    CalcRate(cus.ErrorCost, closeCube),

		OverallErrorTotalNormalised:   cus.ErrorSkill + chs.ErrorSkill,
		OverallErrorTotal:             cus.ErrorCost + chs.ErrorCost,
		OverallErrorPerMoveNormalised: CalcRate(cus.ErrorSkill+chs.ErrorSkill, closeCube+unforced),
		OverallErrorPerMove:           CalcRate(cus.ErrorCost+chs.ErrorCost, closeCube+unforced),
		ActualResult:                  lus.ActualResult,
		LuckAdjustedResult:            lus.LuckAdjustedResult,
		SnowieErrorRatePerMove:        CalcRate(cus.ErrorSkill+chs.ErrorSkill, totalMoves+float64(opp.Chequer.TotalMoves)),

		LuckBasedFibsRatingDiff: nullFloat(lus.FibsRatingDifference),
	}

	row.ChequerRating = rater.ErrorRating(row.ChequerErrorPerMoveNormalised)
	row.LuckRating = rater.LuckRating(row.LuckPerMoveNormalised)
	row.CubeRating = rater.ErrorRating(row.CubeErrorPerMoveNormalised)
	row.OverallRating = rater.ErrorRating(row.OverallErrorPerMoveNormalised)

	if est := own.RatingEstimate; est != nil {
		row.ErrorBasedFibsRating = nullFloat(est.Total)
		row.ChequerRatingLoss = nullFloat(est.Chequer)
		row.CubeRatingLoss = nullFloat(est.Cube)
	}
	if adv := own.MoneyAdvantage; adv != nil {
		row.ActualAdvantage = sql.NullFloat64{Float64: adv.Actual, Valid: true}
		row.ActualAdvantageCI = sql.NullFloat64{Float64: adv.ActualCI, Valid: true}
		row.LuckAdjustedAdvantage = sql.NullFloat64{Float64: adv.LuckAdjusted, Valid: true}
		row.LuckAdjustedAdvantageCI = sql.NullFloat64{Float64: adv.LuckAdjustedCI, Valid: true}
	}
	if tp := own.Time; tp != nil {
		row.TimePenalties = sql.NullInt64{Int64: int64(tp.Penalties), Valid: true}
		row.TimePenaltyLossNormalised = sql.NullFloat64{Float64: tp.PenaltySkill, Valid: true}
		row.TimePenaltyLoss = sql.NullFloat64{Float64: tp.PenaltyCost, Valid: true}
	}
	return row, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
