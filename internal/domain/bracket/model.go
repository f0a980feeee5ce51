package bracket

import "time"

// Format is the knockout structure of a tournament.
type Format string

const (
	FormatSingleElimination Format = "SINGLE_ELIM"
	FormatDoubleElimination Format = "DOUBLE_ELIM"
)

func (f Format) Valid() bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination:
		return true
	default:
		return false
	}
}

// Side tags which part of the bracket a round belongs to.
type Side string

const (
	SideWinners    Side = "WINNERS"
	SideLosers     Side = "LOSERS"
	SideGrandFinal Side = "GRAND_FINAL"
)

// SlotRef points at one club slot (1 or 2) of a match.
type SlotRef struct {
	MatchID string
	Slot    int
}

type Match struct {
	ID            string
	RoundID       string
	MatchNumber   int
	Club1ID       *int64
	Club2ID       *int64
	Club1Score    int
	Club2Score    int
	IsOver        bool
	WinningClubID *int64
	AutoResolved  bool
	WinnerTo      *SlotRef
	LoserTo       *SlotRef
	Version       int64
}

// Void reports a match that was closed without any club ever reaching it.
func (m Match) Void() bool {
	return m.IsOver && m.WinningClubID == nil
}

// HasClub reports whether clubID occupies one of the match slots.
func (m Match) HasClub(clubID int64) bool {
	return (m.Club1ID != nil && *m.Club1ID == clubID) || (m.Club2ID != nil && *m.Club2ID == clubID)
}

func (m *Match) slot(n int) **int64 {
	if n == 1 {
		return &m.Club1ID
	}
	return &m.Club2ID
}

type Round struct {
	ID          string
	BracketID   string
	Side        Side
	RoundNumber int
	Matches     []Match
}

type Bracket struct {
	ID            string
	TournamentID  string
	Format        Format
	Rounds        []Round
	WinningClubID *int64
	Losses        map[int64]int
	CreatedAt     time.Time

	index   map[string]position
	feeders map[SlotRef]feeder
}

type position struct {
	round int
	match int
}

type feeder struct {
	matchID string
	loser   bool
}

// Decided reports whether the bracket has a champion.
func (b *Bracket) Decided() bool {
	return b.WinningClubID != nil
}

// Match returns a copy of the match with the given id.
func (b *Bracket) Match(matchID string) (Match, bool) {
	m := b.match(matchID)
	if m == nil {
		return Match{}, false
	}
	return *m, true
}

// RoundOf returns the round holding the match.
func (b *Bracket) RoundOf(matchID string) (Round, bool) {
	b.ensureIndex()
	pos, ok := b.index[matchID]
	if !ok {
		return Round{}, false
	}
	return b.Rounds[pos.round], true
}

// Matches returns every match in round order.
func (b *Bracket) Matches() []Match {
	out := make([]Match, 0)
	for _, r := range b.Rounds {
		out = append(out, r.Matches...)
	}
	return out
}

// Round returns the round with the given side and number.
func (b *Bracket) Round(side Side, number int) (Round, bool) {
	for _, r := range b.Rounds {
		if r.Side == side && r.RoundNumber == number {
			return r, true
		}
	}
	return Round{}, false
}

// Clone returns a deep copy safe to mutate independently of b.
func (b Bracket) Clone() Bracket {
	out := b
	out.WinningClubID = cloneID(b.WinningClubID)
	out.Losses = make(map[int64]int, len(b.Losses))
	for k, v := range b.Losses {
		out.Losses[k] = v
	}
	out.Rounds = make([]Round, len(b.Rounds))
	for i, r := range b.Rounds {
		cr := r
		cr.Matches = make([]Match, len(r.Matches))
		for j, m := range r.Matches {
			cm := m
			cm.Club1ID = cloneID(m.Club1ID)
			cm.Club2ID = cloneID(m.Club2ID)
			cm.WinningClubID = cloneID(m.WinningClubID)
			cm.WinnerTo = cloneRef(m.WinnerTo)
			cm.LoserTo = cloneRef(m.LoserTo)
			cr.Matches[j] = cm
		}
		out.Rounds[i] = cr
	}
	out.index = nil
	out.feeders = nil
	return out
}

func (b *Bracket) match(matchID string) *Match {
	b.ensureIndex()
	pos, ok := b.index[matchID]
	if !ok {
		return nil
	}
	return &b.Rounds[pos.round].Matches[pos.match]
}

func (b *Bracket) ensureIndex() {
	if b.index != nil {
		return
	}
	b.index = make(map[string]position)
	b.feeders = make(map[SlotRef]feeder)
	for ri, r := range b.Rounds {
		for mi, m := range r.Matches {
			b.index[m.ID] = position{round: ri, match: mi}
			if m.WinnerTo != nil {
				b.feeders[*m.WinnerTo] = feeder{matchID: m.ID}
			}
			if m.LoserTo != nil {
				b.feeders[*m.LoserTo] = feeder{matchID: m.ID, loser: true}
			}
		}
	}
}

func (b *Bracket) isGrandFinal(matchID string, roundNumber int) bool {
	b.ensureIndex()
	pos, ok := b.index[matchID]
	if !ok {
		return false
	}
	r := b.Rounds[pos.round]
	return r.Side == SideGrandFinal && r.RoundNumber == roundNumber
}

func cloneID(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneRef(v *SlotRef) *SlotRef {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ReplaceMatch overwrites the stored match with the same id.
func (b *Bracket) ReplaceMatch(m Match) bool {
	target := b.match(m.ID)
	if target == nil {
		return false
	}
	*target = m
	return true
}
