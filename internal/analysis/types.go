package analysis

import "fmt"

// Match is one analysed match as handed over by the analysis engine.
type Match struct {
	Checksum string    `json:"checksum"`
	Info     MatchInfo `json:"match-info"`
	Stats    SideStats `json:"stats"`
}

// MatchInfo holds the match metadata.
type MatchInfo struct {
	X         PlayerInfo `json:"X"`
	O         PlayerInfo `json:"O"`
	Length    int        `json:"match-length"`
	Date      *Date      `json:"date,omitempty"`
	Event     string     `json:"event,omitempty"`
	Round     string     `json:"round,omitempty"`
	Place     string     `json:"place,omitempty"`
	Annotator string     `json:"annotator,omitempty"`
	Comment   string     `json:"comment,omitempty"`
	// Winner is the winning side (SideX or SideO) when the match is finished.
	Winner *int `json:"winner,omitempty"`
}

// PlayerInfo describes one side of the match.
type PlayerInfo struct {
	Name   string `json:"name"`
	Rating string `json:"rating,omitempty"`
}

// Date is a calendar date as recorded in the match file.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// SideStats holds the statistics for both sides.
type SideStats struct {
	X *Statistics `json:"X"`
	O *Statistics `json:"O"`
}

// Statistics is the nested statistics record of one side. Chequer, Dice and
// Cube are required; the remaining sections are only present for some match
// types and are nil when the engine did not produce them.
type Statistics struct {
	Chequer *ChequerStats `json:"moves,omitempty"`
	Dice    *DiceStats    `json:"dice,omitempty"`
	Cube    *CubeStats    `json:"cube,omitempty"`

	// matches only
	RatingEstimate *RatingEstimate `json:"error-based-fibs-rating,omitempty"`
	// money sessions only
	MoneyAdvantage *MoneyAdvantage `json:"ppg-advantage,omitempty"`
	Time           *TimePenalty    `json:"time,omitempty"`
}

type ChequerStats struct {
	TotalMoves    int       `json:"total-moves"`
	UnforcedMoves int       `json:"unforced-moves"`
	Marked        MoveMarks `json:"marked"`
	ErrorSkill    float64   `json:"error-skill"`
	ErrorCost     float64   `json:"error-cost"`
}

type MoveMarks struct {
	Unmarked int `json:"unmarked"`
	Good     int `json:"good"`
	Doubtful int `json:"doubtful"`
	Bad      int `json:"bad"`
	VeryBad  int `json:"very bad"`
}

type DiceStats struct {
	MarkedRolls        RollMarks `json:"marked-rolls"`
	Luck               float64   `json:"luck"`
	LuckCost           float64   `json:"luck-cost"`
	ActualResult       float64   `json:"actual-result"`
	LuckAdjustedResult float64   `json:"luck-adjusted-result"`
	// FibsRatingDifference is only reported for matches.
	FibsRatingDifference *float64 `json:"fibs-rating-difference,omitempty"`
}

type RollMarks struct {
	VeryGood int `json:"verygood"`
	Good     int `json:"good"`
	Unmarked int `json:"unmarked"`
	Bad      int `json:"bad"`
	VeryBad  int `json:"verybad"`
}

type CubeStats struct {
	TotalCube int `json:"total-cube"`
	CloseCube int `json:"close-cube"`
	Doubles   int `json:"n-doubles"`
	Takes     int `json:"n-takes"`
	Drops     int `json:"n-drops"`

	MissedDoubleBelowCP int `json:"missed-double-below-cp"`
	MissedDoubleAboveCP int `json:"missed-double-above-cp"`
	WrongDoubleBelowDP  int `json:"wrong-double-below-dp"`
	WrongDoubleAboveTG  int `json:"wrong-double-above-tg"`
	WrongTake           int `json:"wrong-take"`
	WrongDrop           int `json:"wrong-drop"`

	ErrMissedDoubleBelowCPSkill float64 `json:"err-missed-double-below-cp-skill"`
	ErrMissedDoubleAboveCPSkill float64 `json:"err-missed-double-above-cp-skill"`
	ErrWrongDoubleBelowDPSkill  float64 `json:"err-wrong-double-below-dp-skill"`
	ErrWrongDoubleAboveTGSkill  float64 `json:"err-wrong-double-above-tg-skill"`
	ErrWrongTakeSkill           float64 `json:"err-wrong-take-skill"`
	ErrWrongDropSkill           float64 `json:"err-wrong-drop-skill"`

	ErrMissedDoubleBelowCPCost float64 `json:"err-missed-double-below-cp-cost"`
	ErrMissedDoubleAboveCPCost float64 `json:"err-missed-double-above-cp-cost"`
	ErrWrongDoubleBelowDPCost  float64 `json:"err-wrong-double-below-dp-cost"`
	ErrWrongDoubleAboveTGCost  float64 `json:"err-wrong-double-above-tg-cost"`
	ErrWrongTakeCost           float64 `json:"err-wrong-take-cost"`
	ErrWrongDropCost           float64 `json:"err-wrong-drop-cost"`

	ErrorSkill float64 `json:"error-skill"`
	ErrorCost  float64 `json:"error-cost"`
}

// RatingEstimate is the error based rating breakdown. Each part may be
// missing on its own.
type RatingEstimate struct {
	Total   *float64 `json:"total,omitempty"`
	Chequer *float64 `json:"chequer,omitempty"`
	Cube    *float64 `json:"cube,omitempty"`
}

// MoneyAdvantage is the points-per-game advantage of a money session.
type MoneyAdvantage struct {
	Actual         float64 `json:"actual"`
	ActualCI       float64 `json:"actual-ci"`
	LuckAdjusted   float64 `json:"luck-adjusted"`
	LuckAdjustedCI float64 `json:"luck-adjusted-ci"`
}

// TimePenalty summarises clock penalties.
type TimePenalty struct {
	Penalties    int     `json:"time-penalty"`
	PenaltySkill float64 `json:"time-penalty-skill"`
	PenaltyCost  float64 `json:"time-penalty-cost"`
}
