package rating

// Default reproduces the analysis engine's own classification.
type Default struct{}

var _ Rater = Default{}

// errorThresholds are the upper bounds of the normalised error per decision
// for Beginner through ExtraTerrestrial.
var errorThresholds = [...]float64{1e38, 0.030, 0.025, 0.020, 0.015, 0.010, 0.005}

// luckThresholds are the upper bounds of the normalised luck per move for
// Haaaaaaa through GoToLasVegas.
var luckThresholds = [...]float64{-0.10, -0.06, -0.02, 0.02, 0.06, 0.10}

func (Default) ErrorRating(rate float64) int {
	for i := ExtraTerrestrial; i >= 0; i-- {
		if rate < errorThresholds[i] {
			return i
		}
	}
	return Undefined
}

func (Default) LuckRating(rate float64) int {
	for i, limit := range luckThresholds {
		if rate < limit {
			return i
		}
	}
	return Cheater
}

// SkillName returns the display name of a skill code.
func SkillName(code int) string {
	if code < 0 || code >= len(skillNames) {
		return skillNames[Undefined]
	}
	return skillNames[code]
}

// LuckName returns the display name of a luck code.
func LuckName(code int) string {
	if code < 0 || code >= len(luckNames) {
		return ""
	}
	return luckNames[code]
}
