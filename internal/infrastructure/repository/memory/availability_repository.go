package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type AvailabilityRepository struct {
	store *Store
}

func NewAvailabilityRepository(store *Store) *AvailabilityRepository {
	return &AvailabilityRepository{store: store}
}

func (r *AvailabilityRepository) Upsert(_ context.Context, a tournament.PlayerAvailability) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items, ok := r.store.availability[a.TournamentID]
	if !ok {
		items = make(map[availabilityKey]tournament.PlayerAvailability)
		r.store.availability[a.TournamentID] = items
	}
	items[availabilityKey{clubID: a.ClubID, playerID: a.PlayerID}] = a
	return nil
}

func (r *AvailabilityRepository) ListByTournament(_ context.Context, tournamentID string, clubID int64) ([]tournament.PlayerAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]tournament.PlayerAvailability, 0)
	for key, a := range r.store.availability[tournamentID] {
		if clubID > 0 && key.clubID != clubID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClubID != out[j].ClubID {
			return out[i].ClubID < out[j].ClubID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}
