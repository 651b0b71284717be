package rating

// Skill ratings, from worst to best.
const (
	Beginner = iota
	Novice
	Intermediate
	Advanced
	Expert
	WorldClass
	ExtraTerrestrial
	Undefined
)

// Luck ratings, from unluckiest to luckiest.
const (
	Haaaaaaa = iota
	GoToBed
	BetterLuckNextTime
	NoLuck
	GoodDice
	GoToLasVegas
	Cheater
)

var skillNames = [...]string{
	Beginner:         "Beginner",
	Novice:           "Novice",
	Intermediate:     "Intermediate",
	Advanced:         "Advanced",
	Expert:           "Expert",
	WorldClass:       "World class",
	ExtraTerrestrial: "Extra-terrestrial",
	Undefined:        "N/A",
}

var luckNames = [...]string{
	Haaaaaaa:           "Haaaaaaa",
	GoToBed:            "Go to bed",
	BetterLuckNextTime: "Better luck next time",
	NoLuck:             "None",
	GoodDice:           "Good dice, man!",
	GoToLasVegas:       "Go to Las Vegas",
	Cheater:            "Cheater :-)",
}
