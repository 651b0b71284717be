package rating

// Rater classifies normalised per-move rates into categorical codes. The
// thresholds are policy owned by the analysis engine.
type Rater interface {
	// ErrorRating maps an error rate (normalised error per decision) to a
	// skill code.
	ErrorRating(rate float64) int
	// LuckRating maps a luck rate (normalised luck per move) to a luck code.
	LuckRating(rate float64) int
}
