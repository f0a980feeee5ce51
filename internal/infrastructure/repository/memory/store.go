package memory

import (
	"slices"
	"sync"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

// Store holds every aggregate behind one lock so a bracket commit and the
// tournament it closes change together.
type Store struct {
	mu sync.RWMutex

	tournaments map[string]tournament.Tournament
	order       []string

	brackets            map[string]bracket.Bracket
	bracketByTournament map[string]string

	availability map[string]map[availabilityKey]tournament.PlayerAvailability
}

type availabilityKey struct {
	clubID   int64
	playerID int64
}

func NewStore() *Store {
	return &Store{
		tournaments:         make(map[string]tournament.Tournament),
		brackets:            make(map[string]bracket.Bracket),
		bracketByTournament: make(map[string]string),
		availability:        make(map[string]map[availabilityKey]tournament.PlayerAvailability),
	}
}

func cloneTournament(t tournament.Tournament) tournament.Tournament {
	t.JoinedClubIDs = slices.Clone(t.JoinedClubIDs)
	t.PrizePool = slices.Clone(t.PrizePool)
	return t
}
