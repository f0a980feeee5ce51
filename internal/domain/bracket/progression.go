package bracket

import "fmt"

// FinalResult describes the match that decided the champion.
type FinalResult struct {
	MatchID     string
	WinnerID    int64
	LoserID     int64
	WinnerScore int
	LoserScore  int
}

// Progression lists every match changed by one reported result.
type Progression struct {
	Touched    []Match
	Final      *FinalResult
	Eliminated []int64
	// LossDeltas holds the losses this result added, keyed by club. Stores
	// add them to the persisted counts rather than overwrite them.
	LossDeltas map[int64]int
}

// ReportResult records the outcome of a match and moves both clubs to their
// next slots. The bracket is mutated in place; on error it must be discarded.
func (b *Bracket) ReportResult(matchID string, club1Score, club2Score int, winningClubID int64) (Progression, error) {
	m := b.match(matchID)
	switch {
	case m == nil:
		return Progression{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	case m.AutoResolved:
		return Progression{}, fmt.Errorf("%w: %s", ErrMatchAutoResolved, matchID)
	case m.IsOver:
		return Progression{}, fmt.Errorf("%w: %s", ErrMatchAlreadyFinalized, matchID)
	case m.Club1ID == nil || m.Club2ID == nil:
		return Progression{}, fmt.Errorf("%w: %s", ErrMatchAwaitingParticipants, matchID)
	case !m.HasClub(winningClubID):
		return Progression{}, fmt.Errorf("%w: club %d in match %s", ErrInvalidWinningClub, winningClubID, matchID)
	case club1Score < 0 || club2Score < 0:
		return Progression{}, fmt.Errorf("%w: %d-%d", ErrInvalidScore, club1Score, club2Score)
	}

	loserID := *m.Club1ID
	winnerScore, loserScore := club2Score, club1Score
	if loserID == winningClubID {
		loserID = *m.Club2ID
		winnerScore, loserScore = club1Score, club2Score
	}

	winner := winningClubID
	m.Club1Score, m.Club2Score = club1Score, club2Score
	m.IsOver = true
	m.WinningClubID = &winner

	p := newProgression(b)
	p.touch(m)

	final := func() {
		b.WinningClubID = cloneID(&winner)
		p.final = &FinalResult{
			MatchID:     m.ID,
			WinnerID:    winner,
			LoserID:     loserID,
			WinnerScore: winnerScore,
			LoserScore:  loserScore,
		}
	}

	if b.Format == FormatSingleElimination {
		p.eliminated = append(p.eliminated, loserID)
		if m.WinnerTo == nil {
			final()
			return p.result(), nil
		}
		if err := p.advance(winner, *m.WinnerTo); err != nil {
			return Progression{}, err
		}
		return p.result(), nil
	}

	if b.Losses == nil {
		b.Losses = make(map[int64]int)
	}
	b.Losses[loserID]++
	p.lossDeltas[loserID]++
	switch {
	case b.isGrandFinal(m.ID, 2):
		p.eliminated = append(p.eliminated, loserID)
		final()
	case b.isGrandFinal(m.ID, 1):
		reset := b.resetMatch()
		if b.Losses[loserID] >= 2 {
			p.eliminated = append(p.eliminated, loserID)
			final()
			if reset != nil {
				reset.Club1ID = cloneID(&winner)
				reset.IsOver = true
				reset.AutoResolved = true
				reset.WinningClubID = cloneID(&winner)
				p.touch(reset)
			}
			break
		}
		if reset == nil {
			return Progression{}, fmt.Errorf("%w: grand final reset missing", ErrMatchNotFound)
		}
		if err := p.advance(*m.Club1ID, SlotRef{MatchID: reset.ID, Slot: 1}); err != nil {
			return Progression{}, err
		}
		if err := p.advance(*m.Club2ID, SlotRef{MatchID: reset.ID, Slot: 2}); err != nil {
			return Progression{}, err
		}
	default:
		if m.WinnerTo != nil {
			if err := p.advance(winner, *m.WinnerTo); err != nil {
				return Progression{}, err
			}
		}
		if b.Losses[loserID] < 2 && m.LoserTo != nil {
			if err := p.advance(loserID, *m.LoserTo); err != nil {
				return Progression{}, err
			}
		} else {
			p.eliminated = append(p.eliminated, loserID)
		}
	}

	return p.result(), nil
}

func (b *Bracket) resetMatch() *Match {
	for ri := range b.Rounds {
		r := &b.Rounds[ri]
		if r.Side == SideGrandFinal && r.RoundNumber == 2 && len(r.Matches) == 1 {
			return &r.Matches[0]
		}
	}
	return nil
}

type progression struct {
	b          *Bracket
	seen       map[string]struct{}
	order      []string
	final      *FinalResult
	eliminated []int64
	lossDeltas map[int64]int
}

func newProgression(b *Bracket) *progression {
	b.ensureIndex()
	return &progression{b: b, seen: make(map[string]struct{}), lossDeltas: make(map[int64]int)}
}

func (p *progression) touch(m *Match) {
	if _, ok := p.seen[m.ID]; ok {
		return
	}
	p.seen[m.ID] = struct{}{}
	p.order = append(p.order, m.ID)
}

func (p *progression) result() Progression {
	out := Progression{Final: p.final, Eliminated: p.eliminated}
	if len(p.lossDeltas) > 0 {
		out.LossDeltas = p.lossDeltas
	}
	out.Touched = make([]Match, 0, len(p.order))
	for _, id := range p.order {
		out.Touched = append(out.Touched, *p.b.match(id))
	}
	return out
}

// advance writes clubID into an empty slot and settles the receiving match.
func (p *progression) advance(clubID int64, ref SlotRef) error {
	target := p.b.match(ref.MatchID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, ref.MatchID)
	}
	slot := target.slot(ref.Slot)
	if *slot != nil {
		return fmt.Errorf("%w: slot %d of match %s already holds club %d", ErrConcurrentProgressionConflict, ref.Slot, ref.MatchID, **slot)
	}
	id := clubID
	*slot = &id
	p.touch(target)
	return p.settle(target)
}

// settle closes a match that can no longer be played because one or both of
// its slots will never be filled.
func (p *progression) settle(m *Match) error {
	if m.IsOver || p.b.isGrandFinal(m.ID, 2) {
		return nil
	}
	dead1, dead2 := p.slotDead(m, 1), p.slotDead(m, 2)
	switch {
	case dead1 && dead2:
		m.IsOver = true
		m.AutoResolved = true
		p.touch(m)
		return p.settleTargets(m)
	case dead1 && m.Club2ID != nil:
		return p.bye(m, *m.Club2ID)
	case dead2 && m.Club1ID != nil:
		return p.bye(m, *m.Club1ID)
	}
	return nil
}

func (p *progression) bye(m *Match, clubID int64) error {
	id := clubID
	m.IsOver = true
	m.AutoResolved = true
	m.WinningClubID = &id
	p.touch(m)
	if m.WinnerTo != nil {
		if err := p.advance(clubID, *m.WinnerTo); err != nil {
			return err
		}
	}
	if m.LoserTo != nil {
		return p.settleRef(*m.LoserTo)
	}
	return nil
}

func (p *progression) settleTargets(m *Match) error {
	for _, ref := range []*SlotRef{m.WinnerTo, m.LoserTo} {
		if ref == nil {
			continue
		}
		if err := p.settleRef(*ref); err != nil {
			return err
		}
	}
	return nil
}

func (p *progression) settleRef(ref SlotRef) error {
	target := p.b.match(ref.MatchID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, ref.MatchID)
	}
	return p.settle(target)
}

func (p *progression) slotDead(m *Match, slot int) bool {
	if *m.slot(slot) != nil {
		return false
	}
	f, ok := p.b.feeders[SlotRef{MatchID: m.ID, Slot: slot}]
	if !ok {
		return true
	}
	src := p.b.match(f.matchID)
	if src == nil || !src.IsOver {
		return false
	}
	if f.loser {
		return src.AutoResolved
	}
	return src.WinningClubID == nil
}
