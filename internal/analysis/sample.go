package analysis

// Sample returns a fully populated analysed match between x and o. It is used
// by tests and the seeder; the numbers are plausible but not from a real game.
func Sample(checksum, x, o string) *Match {
	winner := SideX
	return &Match{
		Checksum: checksum,
		Info: MatchInfo{
			X:         PlayerInfo{Name: x, Rating: "1650 (212)"},
			O:         PlayerInfo{Name: o, Rating: "1580 (96)"},
			Length:    7,
			Date:      &Date{Day: 14, Month: 3, Year: 2024},
			Event:     "Club night",
			Round:     "1",
			Place:     "Copenhagen",
			Annotator: "gnubg",
			Winner:    &winner,
		},
		Stats: SideStats{
			X: SampleStatistics(20, 4.0),
			O: SampleStatistics(25, 2.5),
		},
	}
}

// SampleStatistics returns a statistics record with the given number of
// unforced moves and normalised chequer error.
func SampleStatistics(unforced int, errorSkill float64) *Statistics {
	return &Statistics{
		Chequer: &ChequerStats{
			TotalMoves:    unforced + 5,
			UnforcedMoves: unforced,
			Marked:        MoveMarks{Unmarked: unforced - 3, Good: 0, Doubtful: 1, Bad: 1, VeryBad: 1},
			ErrorSkill:    errorSkill,
			ErrorCost:     errorSkill / 2,
		},
		Dice: &DiceStats{
			MarkedRolls:        RollMarks{VeryGood: 2, Good: 3, Unmarked: unforced, Bad: 1, VeryBad: 0},
			Luck:               0.5,
			LuckCost:           0.25,
			ActualResult:       1,
			LuckAdjustedResult: 0.4,
		},
		Cube: &CubeStats{
			TotalCube:                   8,
			CloseCube:                   4,
			Doubles:                     2,
			Takes:                       1,
			Drops:                       1,
			MissedDoubleAboveCP:         1,
			WrongTake:                   1,
			ErrMissedDoubleAboveCPSkill: 0.05,
			ErrWrongTakeSkill:           0.15,
			ErrMissedDoubleAboveCPCost:  0.025,
			ErrWrongTakeCost:            0.075,
			ErrorSkill:                  0.2,
			ErrorCost:                   0.1,
		},
	}
}
