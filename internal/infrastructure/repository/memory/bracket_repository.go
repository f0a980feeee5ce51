package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type BracketRepository struct {
	store *Store
}

func NewBracketRepository(store *Store) *BracketRepository {
	return &BracketRepository{store: store}
}

func (r *BracketRepository) Create(_ context.Context, b bracket.Bracket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tournaments[b.TournamentID]
	if !ok {
		return fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, b.TournamentID)
	}
	if t.BracketID != "" {
		return fmt.Errorf("%w: tournament=%s", bracket.ErrBracketAlreadyCreated, t.ID)
	}

	r.store.brackets[b.ID] = b.Clone()
	r.store.bracketByTournament[t.ID] = b.ID
	t.BracketID = b.ID
	t.Version++
	r.store.tournaments[t.ID] = t
	return nil
}

func (r *BracketRepository) GetByID(_ context.Context, bracketID string) (bracket.Bracket, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.brackets[bracketID]
	if !ok {
		return bracket.Bracket{}, false, nil
	}
	return b.Clone(), true, nil
}

func (r *BracketRepository) GetByTournament(ctx context.Context, tournamentID string) (bracket.Bracket, bool, error) {
	r.store.mu.RLock()
	bracketID, ok := r.store.bracketByTournament[tournamentID]
	r.store.mu.RUnlock()
	if !ok {
		return bracket.Bracket{}, false, nil
	}
	return r.GetByID(ctx, bracketID)
}

func (r *BracketRepository) SaveProgression(_ context.Context, b bracket.Bracket, p bracket.Progression) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.brackets[b.ID]
	if !ok {
		return fmt.Errorf("bracket %s not found", b.ID)
	}
	for _, m := range p.Touched {
		current, ok := stored.Match(m.ID)
		if !ok {
			return fmt.Errorf("%w: %s", bracket.ErrMatchNotFound, m.ID)
		}
		if current.Version != m.Version {
			return fmt.Errorf("%w: match=%s version=%d stored=%d", bracket.ErrConcurrentProgressionConflict, m.ID, m.Version, current.Version)
		}
	}

	next := stored.Clone()
	for _, m := range p.Touched {
		m.Version++
		next.ReplaceMatch(m)
	}
	if len(p.LossDeltas) > 0 && next.Losses == nil {
		next.Losses = make(map[int64]int, len(p.LossDeltas))
	}
	for clubID, n := range p.LossDeltas {
		next.Losses[clubID] += n
	}
	if p.Final != nil {
		winner := p.Final.WinnerID
		next.WinningClubID = &winner

		t, ok := r.store.tournaments[b.TournamentID]
		if !ok {
			return fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, b.TournamentID)
		}
		t.IsOver = true
		t.Version++
		r.store.tournaments[t.ID] = t
	}
	r.store.brackets[b.ID] = next
	return nil
}
