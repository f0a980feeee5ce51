package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) Create(_ context.Context, t tournament.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.tournaments[t.ID]; exists {
		return fmt.Errorf("tournament %s already exists", t.ID)
	}
	r.store.tournaments[t.ID] = cloneTournament(t)
	r.store.order = append(r.store.order, t.ID)
	return nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tournaments[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return cloneTournament(t), true, nil
}

func (r *TournamentRepository) List(_ context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.store.order))
	for _, id := range r.store.order {
		t := r.store.tournaments[id]
		if filter.HostID > 0 && t.HostID != filter.HostID {
			continue
		}
		if filter.ClubID > 0 && !t.HasClub(filter.ClubID) {
			continue
		}
		if filter.VerificationStatus != "" && t.VerificationStatus != filter.VerificationStatus {
			continue
		}
		out = append(out, cloneTournament(t))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *TournamentRepository) Update(_ context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.tournaments[t.ID]
	if !ok {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, t.ID)
	}
	if stored.Version != t.Version {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s version=%d stored=%d", tournament.ErrConcurrentModification, t.ID, t.Version, stored.Version)
	}
	// bracket link and completion are owned by the bracket repository
	t.BracketID = stored.BracketID
	t.IsOver = stored.IsOver
	t.Version++
	r.store.tournaments[t.ID] = cloneTournament(t)
	return cloneTournament(t), nil
}

func (r *TournamentRepository) Delete(_ context.Context, tournamentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tournaments[tournamentID]; !ok {
		return fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, tournamentID)
	}
	delete(r.store.tournaments, tournamentID)
	for i, id := range r.store.order {
		if id == tournamentID {
			r.store.order = append(r.store.order[:i], r.store.order[i+1:]...)
			break
		}
	}
	if bracketID, ok := r.store.bracketByTournament[tournamentID]; ok {
		delete(r.store.brackets, bracketID)
		delete(r.store.bracketByTournament, tournamentID)
	}
	delete(r.store.availability, tournamentID)
	return nil
}
