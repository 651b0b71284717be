package matchstat_test

import (
	"testing"

	"github.com/mauv0809/bgstats/internal/analysis"
	"github.com/mauv0809/bgstats/internal/matchstat"
	"github.com/mauv0809/bgstats/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRater records the rates it was asked to classify.
type fixedRater struct {
	errorRates []float64
	luckRates  []float64
}

func (r *fixedRater) ErrorRating(rate float64) int {
	r.errorRates = append(r.errorRates, rate)
	return 3
}

func (r *fixedRater) LuckRating(rate float64) int {
	r.luckRates = append(r.luckRates, rate)
	return 4
}

func TestCalcRate(t *testing.T) {
	assert.Equal(t, 0.0, matchstat.CalcRate(7, 0))
	assert.Equal(t, 0.0, matchstat.CalcRate(0, 0))
	assert.Equal(t, 2.0, matchstat.CalcRate(10, 5))
	assert.InDelta(t, 0.2, matchstat.CalcRate(4, 20), 1e-12)
}

func TestColumnsMatchValues(t *testing.T) {
	row := matchstat.Row{}
	assert.Len(t, row.Values(), len(matchstat.Columns))
	assert.Len(t, matchstat.Columns, 72)
}

func TestFlatten_DerivedRates(t *testing.T) {
	own := analysis.SampleStatistics(20, 4.0)
	opp := analysis.SampleStatistics(25, 2.5)
	rater := &fixedRater{}

	row, err := matchstat.Flatten(7, 3, own, opp, rater)
	require.NoError(t, err)

	assert.Equal(t, int64(7), row.MatchID)
	assert.Equal(t, int64(3), row.PersonID)
	assert.Equal(t, 25, row.TotalMoves)
	assert.Equal(t, 20, row.UnforcedMoves)
	assert.Equal(t, 1, row.VeryBadMoves)

	assert.InDelta(t, 0.2, row.ChequerErrorPerMoveNormalised, 1e-12)
	assert.InDelta(t, 0.1, row.ChequerErrorPerMove, 1e-12)
	assert.InDelta(t, 0.5/25, row.LuckPerMoveNormalised, 1e-12)
	assert.InDelta(t, 0.2/4, row.CubeErrorPerMoveNormalised, 1e-12)
	assert.InDelta(t, 4.2, row.OverallErrorTotalNormalised, 1e-12)
	assert.InDelta(t, 4.2/24, row.OverallErrorPerMoveNormalised, 1e-12)
	assert.InDelta(t, 4.2/(25+30), row.SnowieErrorRatePerMove, 1e-12)

	assert.Equal(t, 1, row.MissedDoublesAboveCP)
	assert.Equal(t, 0, row.MissedDoublesBelowCP)
	assert.Equal(t, 1, row.Passes)

	assert.Equal(t, 3, row.ChequerRating)
	assert.Equal(t, 3, row.CubeRating)
	assert.Equal(t, 3, row.OverallRating)
	assert.Equal(t, 4, row.LuckRating)
	require.Len(t, rater.errorRates, 3)
	assert.InDelta(t, 0.2, rater.errorRates[0], 1e-12)
	require.Len(t, rater.luckRates, 1)
}

func TestFlatten_RatingFromDefaultPolicy(t *testing.T) {
	row, err := matchstat.Flatten(0, 0, analysis.SampleStatistics(20, 4.0), analysis.SampleStatistics(25, 2.5), rating.Default{})
	require.NoError(t, err)
	assert.Equal(t, rating.Default{}.ErrorRating(0.2), row.ChequerRating)
}

func TestFlatten_ZeroDenominators(t *testing.T) {
	own := analysis.SampleStatistics(0, 1.5)
	own.Chequer.TotalMoves = 0
	own.Cube.CloseCube = 0
	opp := analysis.SampleStatistics(0, 0)
	opp.Chequer.TotalMoves = 0

	row, err := matchstat.Flatten(0, 0, own, opp, rating.Default{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, row.ChequerErrorPerMoveNormalised)
	assert.Equal(t, 0.0, row.LuckPerMoveNormalised)
	assert.Equal(t, 0.0, row.CubeErrorPerMoveNormalised)
	assert.Equal(t, 0.0, row.OverallErrorPerMoveNormalised)
	assert.Equal(t, 0.0, row.SnowieErrorRatePerMove)
}

func TestFlatten_OptionalSections(t *testing.T) {
	t.Run("absent sections are null", func(t *testing.T) {
		row, err := matchstat.Flatten(0, 0, analysis.SampleStatistics(20, 4.0), analysis.SampleStatistics(25, 2.5), rating.Default{})
		require.NoError(t, err)
		assert.False(t, row.LuckBasedFibsRatingDiff.Valid)
		assert.False(t, row.ErrorBasedFibsRating.Valid)
		assert.False(t, row.ActualAdvantage.Valid)
		assert.False(t, row.TimePenalties.Valid)
		assert.False(t, row.TimePenaltyLoss.Valid)
	})

	t.Run("zero penalty is kept", func(t *testing.T) {
		own := analysis.SampleStatistics(20, 4.0)
		own.Time = &analysis.TimePenalty{}
		total, chequer := 1712.5, -12.0
		own.RatingEstimate = &analysis.RatingEstimate{Total: &total, Chequer: &chequer}
		own.MoneyAdvantage = &analysis.MoneyAdvantage{Actual: 0.3, ActualCI: 0.1}

		row, err := matchstat.Flatten(0, 0, own, analysis.SampleStatistics(25, 2.5), rating.Default{})
		require.NoError(t, err)
		assert.True(t, row.TimePenalties.Valid)
		assert.Equal(t, int64(0), row.TimePenalties.Int64)
		assert.True(t, row.ErrorBasedFibsRating.Valid)
		assert.Equal(t, 1712.5, row.ErrorBasedFibsRating.Float64)
		assert.Equal(t, -12.0, row.ChequerRatingLoss.Float64)
		assert.False(t, row.CubeRatingLoss.Valid)
		assert.True(t, row.ActualAdvantage.Valid)
		assert.True(t, row.LuckAdjustedAdvantageCI.Valid)
	})
}

func TestFlatten_MalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		own, opp *analysis.Statistics
	}{
		{"missing own statistics", nil, analysis.SampleStatistics(1, 0)},
		{"missing cube", &analysis.Statistics{Chequer: &analysis.ChequerStats{}, Dice: &analysis.DiceStats{}}, analysis.SampleStatistics(1, 0)},
		{"missing opponent chequer", analysis.SampleStatistics(1, 0), &analysis.Statistics{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matchstat.Flatten(0, 0, tt.own, tt.opp, rating.Default{})
			assert.ErrorIs(t, err, analysis.ErrMalformedInput)
		})
	}
}
