package bracket

import (
	"fmt"
	"math/bits"
	"time"
)

// IDGenerator issues identifiers for bracket, round and match rows.
type IDGenerator interface {
	NewID() (string, error)
}

type BuildInput struct {
	TournamentID string
	Format       Format
	// ClubIDs in join order; position i is seed i+1.
	ClubIDs []int64
	Now     time.Time
}

// Build lays out the full bracket tree for the seeded clubs. Round-one byes
// and structurally empty losers-side slots are resolved before returning.
func Build(in BuildInput, ids IDGenerator) (Bracket, error) {
	if !in.Format.Valid() {
		return Bracket{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, in.Format)
	}
	n := len(in.ClubIDs)
	if n < 2 {
		return Bracket{}, fmt.Errorf("%w: got %d", ErrInsufficientMatches, n)
	}
	seen := make(map[int64]struct{}, n)
	for _, id := range in.ClubIDs {
		if _, ok := seen[id]; ok {
			return Bracket{}, fmt.Errorf("%w: %d", ErrDuplicateClub, id)
		}
		seen[id] = struct{}{}
	}

	size := nextPow2(n)
	depth := bits.TrailingZeros(uint(size))

	bracketID, err := ids.NewID()
	if err != nil {
		return Bracket{}, fmt.Errorf("generate bracket id: %w", err)
	}
	b := Bracket{
		ID:           bracketID,
		TournamentID: in.TournamentID,
		Format:       in.Format,
		Losses:       make(map[int64]int),
		CreatedAt:    in.Now,
	}

	l := layout{b: &b, ids: ids}
	winners := make([]int, depth)
	for r := 1; r <= depth; r++ {
		if winners[r-1], err = l.addRound(SideWinners, r, size>>r); err != nil {
			return Bracket{}, err
		}
	}
	for r := 1; r < depth; r++ {
		l.feedForward(winners[r-1], winners[r])
	}

	if in.Format == FormatDoubleElimination {
		if err := l.addLosersAndFinals(winners, size, depth); err != nil {
			return Bracket{}, err
		}
	}

	order := seedOrder(size)
	first := b.Rounds[winners[0]].Matches
	for j := range first {
		first[j].Club1ID = seedClub(in.ClubIDs, order[2*j])
		first[j].Club2ID = seedClub(in.ClubIDs, order[2*j+1])
	}

	p := newProgression(&b)
	for ri := range b.Rounds {
		for mi := range b.Rounds[ri].Matches {
			if err := p.settle(&b.Rounds[ri].Matches[mi]); err != nil {
				return Bracket{}, err
			}
		}
	}

	return b, nil
}

type layout struct {
	b   *Bracket
	ids IDGenerator
}

func (l layout) addRound(side Side, number, matches int) (int, error) {
	roundID, err := l.ids.NewID()
	if err != nil {
		return 0, fmt.Errorf("generate round id: %w", err)
	}
	r := Round{
		ID:          roundID,
		BracketID:   l.b.ID,
		Side:        side,
		RoundNumber: number,
		Matches:     make([]Match, matches),
	}
	for i := range r.Matches {
		matchID, err := l.ids.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate match id: %w", err)
		}
		r.Matches[i] = Match{ID: matchID, RoundID: roundID, MatchNumber: i + 1}
	}
	l.b.Rounds = append(l.b.Rounds, r)
	return len(l.b.Rounds) - 1, nil
}

func (l layout) matches(round int) []Match {
	return l.b.Rounds[round].Matches
}

// feedForward halves the field: match m winner goes to match ceil(m/2),
// slot 1 when m is odd.
func (l layout) feedForward(from, to int) {
	src, dst := l.matches(from), l.matches(to)
	for i := range src {
		src[i].WinnerTo = halvingSlot(dst, i)
	}
}

func (l layout) addLosersAndFinals(winners []int, size, depth int) error {
	var losers []int
	for n := 1; n <= 2*(depth-1); n++ {
		idx, err := l.addRound(SideLosers, n, size>>((n+1)/2+1))
		if err != nil {
			return err
		}
		losers = append(losers, idx)
	}
	grandFinal, err := l.addRound(SideGrandFinal, 1, 1)
	if err != nil {
		return err
	}
	if _, err := l.addRound(SideGrandFinal, 2, 1); err != nil {
		return err
	}
	gf := l.matches(grandFinal)[0].ID

	wFinal := l.matches(winners[depth-1])
	wFinal[0].WinnerTo = &SlotRef{MatchID: gf, Slot: 1}
	if depth == 1 {
		wFinal[0].LoserTo = &SlotRef{MatchID: gf, Slot: 2}
		return nil
	}

	w1, l1 := l.matches(winners[0]), l.matches(losers[0])
	for i := range w1 {
		w1[i].LoserTo = halvingSlot(l1, i)
	}

	for i := 1; i <= depth-1; i++ {
		odd := l.matches(losers[2*i-2])
		even := l.matches(losers[2*i-1])
		dropping := l.matches(winners[i])
		for j := range odd {
			odd[j].WinnerTo = &SlotRef{MatchID: even[j].ID, Slot: 1}
		}
		// reversed so a dropping club does not meet the side it just beat
		for j := range dropping {
			dropping[j].LoserTo = &SlotRef{MatchID: even[len(even)-1-j].ID, Slot: 2}
		}
		if i < depth-1 {
			next := l.matches(losers[2*i])
			for j := range even {
				even[j].WinnerTo = halvingSlot(next, j)
			}
		} else {
			even[0].WinnerTo = &SlotRef{MatchID: gf, Slot: 2}
		}
	}
	return nil
}

func halvingSlot(dst []Match, i int) *SlotRef {
	slot := 1
	if i%2 == 1 {
		slot = 2
	}
	return &SlotRef{MatchID: dst[i/2].ID, Slot: slot}
}

func seedClub(clubIDs []int64, seed int) *int64 {
	if seed > len(clubIDs) {
		return nil
	}
	id := clubIDs[seed-1]
	return &id
}

// seedOrder returns the standard bracket order for size seeds, e.g.
// [1 8 4 5 2 7 3 6] for 8. Consecutive pairs meet in round one.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		n := len(order) * 2
		next := make([]int, 0, n)
		for _, s := range order {
			next = append(next, s, n+1-s)
		}
		order = next
	}
	return order
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
