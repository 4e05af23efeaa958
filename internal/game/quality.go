package game

// Tag is a quality annotation for a completed game. At most one tag
// applies to a game.
type Tag string

const (
	TagNone Tag = ""
	TagGood Tag = "good"
	TagBad  Tag = "bad"
)

// Classify tags a completed game as good, bad, or neither.
//
// Bad games are blowouts where the halftime leader was also the final
// winner. Good games either finished as a one-score game, were won by the
// team trailing at halftime, or were two-score games with an absurd amount
// of scoring.
func Classify(g *Game) Tag {
	awayFinal := g.AwayScores.Final
	homeFinal := g.HomeScores.Final
	awayHalf := g.AwayScores.Halftime()
	homeHalf := g.HomeScores.Halftime()

	finalLead := sign(homeFinal - awayFinal)
	halftimeLead := sign(homeHalf - awayHalf)

	margin := homeFinal - awayFinal
	if margin < 0 {
		margin = -margin
	}
	total := homeFinal + awayFinal

	if margin > 16 && finalLead == halftimeLead {
		return TagBad
	}

	comeback := halftimeLead != 0 && halftimeLead != finalLead
	if margin <= 8 || comeback || (margin <= 16 && total > 60) {
		return TagGood
	}

	return TagNone
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
