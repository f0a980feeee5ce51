package rating

import (
	"fmt"
	"math"
)

// Rating is a club's strength estimate with its uncertainty.
type Rating struct {
	Elo       float64
	Deviation float64
}

// Rules stores the parameters of the Glicko-style update.
type Rules struct {
	KBase            float64
	ScoreSensitivity int
	DeviationBase    float64
}

func DefaultRules() Rules {
	return Rules{
		KBase:            30,
		ScoreSensitivity: 0,
		DeviationBase:    50,
	}
}

// Outcome is one club's side of a finished match.
type Outcome struct {
	Score         int
	OpponentScore int
	Won           bool
}

var q = math.Ln10 / 400

// Update returns the club's new rating after playing opponent.
func Update(club, opponent Rating, outcome Outcome, rules Rules) (Rating, error) {
	if club.Deviation <= 0 {
		return Rating{}, fmt.Errorf("rating deviation must be > 0, got %v", club.Deviation)
	}
	if rules.DeviationBase <= 0 {
		return Rating{}, fmt.Errorf("deviation base must be > 0")
	}

	g := attenuation(opponent.Deviation)
	expected := ExpectedScore(club, opponent)

	diff := outcome.Score - outcome.OpponentScore
	if diff == 0 {
		// a drawn scoreline with a declared winner still counts as a win
		if outcome.Won {
			diff = 1
		} else {
			diff = -1
		}
	}
	actual := 1 / (1 + math.Exp(-float64(diff-rules.ScoreSensitivity)))

	k := rules.KBase * (club.Deviation / rules.DeviationBase)
	newElo := club.Elo + k*g*(actual-expected)

	dSquared := 1 / (q * q * g * g * expected * (1 - expected))
	newDeviation := math.Sqrt(1 / (1/(club.Deviation*club.Deviation) + 1/dSquared))

	return Rating{Elo: newElo, Deviation: newDeviation}, nil
}

// ExpectedScore is the probability that club beats opponent.
func ExpectedScore(club, opponent Rating) float64 {
	g := attenuation(opponent.Deviation)
	return 1 / (1 + math.Pow(10, g*(opponent.Elo-club.Elo)/400))
}

func attenuation(deviation float64) float64 {
	return 1 / math.Sqrt(1+3*math.Pow(q*deviation, 2)/(math.Pi*math.Pi))
}
