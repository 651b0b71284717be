package analysis

import (
	"errors"
	"fmt"
	"time"
)

// Sides of a match as numbered by the analysis engine.
const (
	SideX = 0
	SideO = 1
)

// Stored match results.
const (
	ResultUnknown = 0
	ResultXWon    = 1
	ResultOWon    = -1
)

// ErrMalformedInput is returned when a required part of the analysed match
// is missing.
var ErrMalformedInput = errors.New("malformed analysed match")

// Player returns the metadata for side.
func (m *Match) Player(side int) PlayerInfo {
	if side == SideO {
		return m.Info.O
	}
	return m.Info.X
}

// Side returns the statistics for side.
func (m *Match) Side(side int) *Statistics {
	if side == SideO {
		return m.Stats.O
	}
	return m.Stats.X
}

// Result maps the winner onto the stored result column.
func (m *Match) Result() int {
	if m.Info.Winner == nil {
		return ResultUnknown
	}
	switch *m.Info.Winner {
	case SideX:
		return ResultXWon
	case SideO:
		return ResultOWon
	}
	return ResultUnknown
}

// Validate checks that everything needed to record the match is present.
func (m *Match) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: no match", ErrMalformedInput)
	}
	if m.Checksum == "" {
		return fmt.Errorf("%w: missing checksum", ErrMalformedInput)
	}
	for _, side := range []int{SideX, SideO} {
		if m.Player(side).Name == "" {
			return fmt.Errorf("%w: missing name for side %d", ErrMalformedInput, side)
		}
		if err := m.Side(side).Validate(); err != nil {
			return fmt.Errorf("side %d: %w", side, err)
		}
	}
	if d := m.Info.Date; d != nil && !d.valid() {
		return fmt.Errorf("%w: invalid date %s", ErrMalformedInput, d)
	}
	if w := m.Info.Winner; w != nil && *w != SideX && *w != SideO {
		return fmt.Errorf("%w: invalid winner %d", ErrMalformedInput, *w)
	}
	return nil
}

// Validate checks the required statistics sections.
func (s *Statistics) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: missing statistics", ErrMalformedInput)
	case s.Chequer == nil:
		return fmt.Errorf("%w: missing chequer play section", ErrMalformedInput)
	case s.Dice == nil:
		return fmt.Errorf("%w: missing dice section", ErrMalformedInput)
	case s.Cube == nil:
		return fmt.Errorf("%w: missing cube section", ErrMalformedInput)
	}
	return nil
}

// valid reports whether d names a real calendar day.
func (d Date) valid() bool {
	if d.Year < 1 || d.Year > 9999 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day
}
