package cache

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	basecache "github.com/riskibarqy/kickoff-tournaments/internal/platform/cache"
)

const (
	tournamentIDPrefix   = "tournament:id:"
	tournamentListPrefix = "tournament:list:"
)

// TournamentRepository caches tournament reads. Every write through it, or
// through the paired BracketRepository, drops the affected entries.
type TournamentRepository struct {
	next  tournament.Repository
	byID  *basecache.Store[cachedTournament]
	lists *basecache.Store[[]tournament.Tournament]
}

type cachedTournament struct {
	value  tournament.Tournament
	exists bool
}

func NewTournamentRepository(next tournament.Repository, ttl time.Duration, maxEntries int) *TournamentRepository {
	return &TournamentRepository{
		next:  next,
		byID:  basecache.NewStore[cachedTournament](ttl, maxEntries),
		lists: basecache.NewStore[[]tournament.Tournament](ttl, maxEntries),
	}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.invalidate(ctx, t.ID)
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, tournamentIDPrefix+tournamentID, func(ctx context.Context) (cachedTournament, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return cachedTournament{}, err
		}
		return cachedTournament{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	key := fmt.Sprintf("%shost=%d:club=%d:status=%s:limit=%d", tournamentListPrefix, filter.HostID, filter.ClubID, filter.VerificationStatus, filter.Limit)
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	out := make([]tournament.Tournament, 0, len(items))
	for _, t := range items {
		out = append(out, cloneTournament(t))
	}
	return out, nil
}

func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	updated, err := r.next.Update(ctx, t)
	// a version conflict means our copy is stale too
	r.invalidate(ctx, t.ID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	return updated, nil
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID string) error {
	err := r.next.Delete(ctx, tournamentID)
	r.invalidate(ctx, tournamentID)
	return err
}

func (r *TournamentRepository) invalidate(ctx context.Context, tournamentID string) {
	r.byID.Delete(ctx, tournamentIDPrefix+tournamentID)
	r.lists.DeletePrefix(ctx, tournamentListPrefix)
}

// BracketRepository passes bracket calls through and drops the cached
// tournament whenever a bracket write changes it.
type BracketRepository struct {
	next        bracket.Repository
	tournaments *TournamentRepository
}

func NewBracketRepository(next bracket.Repository, tournaments *TournamentRepository) *BracketRepository {
	return &BracketRepository{next: next, tournaments: tournaments}
}

func (r *BracketRepository) Create(ctx context.Context, b bracket.Bracket) error {
	err := r.next.Create(ctx, b)
	r.tournaments.invalidate(ctx, b.TournamentID)
	return err
}

func (r *BracketRepository) GetByID(ctx context.Context, bracketID string) (bracket.Bracket, bool, error) {
	return r.next.GetByID(ctx, bracketID)
}

func (r *BracketRepository) GetByTournament(ctx context.Context, tournamentID string) (bracket.Bracket, bool, error) {
	return r.next.GetByTournament(ctx, tournamentID)
}

func (r *BracketRepository) SaveProgression(ctx context.Context, b bracket.Bracket, p bracket.Progression) error {
	err := r.next.SaveProgression(ctx, b, p)
	if p.Final != nil {
		r.tournaments.invalidate(ctx, b.TournamentID)
	}
	return err
}

func cloneTournament(t tournament.Tournament) tournament.Tournament {
	t.JoinedClubIDs = slices.Clone(t.JoinedClubIDs)
	t.PrizePool = slices.Clone(t.PrizePool)
	return t
}
