package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

type countingTournaments struct {
	tournament.Repository
	gets  int
	lists int
}

func (c *countingTournaments) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, id)
}

func (c *countingTournaments) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	c.lists++
	return c.Repository.List(ctx, filter)
}

func seedTournament() tournament.Tournament {
	start := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	return tournament.Tournament{
		ID:                 "t-1",
		Name:               "Cup",
		StartAt:            start,
		EndAt:              start.Add(6 * time.Hour),
		MaxTeams:           4,
		Format:             tournament.FormatFiveSide,
		KnockoutFormat:     bracket.FormatSingleElimination,
		HostID:             1,
		JoinedClubIDs:      []int64{11, 12},
		VerificationStatus: tournament.VerificationAwaitingPayment,
	}
}

func TestTournamentRepository_CachesReadsUntilWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore()
	inner := &countingTournaments{Repository: memory.NewTournamentRepository(store)}
	repo := NewTournamentRepository(inner, time.Minute, 100)

	require.NoError(t, repo.Create(ctx, seedTournament()))

	for i := 0; i < 3; i++ {
		got, exists, err := repo.GetByID(ctx, "t-1")
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, "Cup", got.Name)
	}
	require.Equal(t, 1, inner.gets)

	got, _, _ := repo.GetByID(ctx, "t-1")
	got.JoinedClubIDs[0] = 99
	again, _, _ := repo.GetByID(ctx, "t-1")
	require.Equal(t, int64(11), again.JoinedClubIDs[0], "callers must not mutate cached slices")

	got.JoinedClubIDs[0] = 11
	got.Name = "Renamed"
	_, err := repo.Update(ctx, got)
	require.NoError(t, err)

	fresh, _, err := repo.GetByID(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", fresh.Name)
	require.Equal(t, 2, inner.gets)
}

func TestTournamentRepository_ListInvalidatedOnCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inner := &countingTournaments{Repository: memory.NewTournamentRepository(memory.NewStore())}
	repo := NewTournamentRepository(inner, time.Minute, 100)

	items, err := repo.List(ctx, tournament.ListFilter{HostID: 1})
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, repo.Create(ctx, seedTournament()))
	items, err = repo.List(ctx, tournament.ListFilter{HostID: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, inner.lists)
}

func TestBracketRepository_CreateDropsCachedTournament(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewStore()
	tournaments := NewTournamentRepository(memory.NewTournamentRepository(store), time.Minute, 100)
	brackets := NewBracketRepository(memory.NewBracketRepository(store), tournaments)

	require.NoError(t, tournaments.Create(ctx, seedTournament()))
	before, _, _ := tournaments.GetByID(ctx, "t-1")
	require.False(t, before.HasBracket())

	require.NoError(t, brackets.Create(ctx, bracket.Bracket{ID: "b-1", TournamentID: "t-1", Format: bracket.FormatSingleElimination}))

	after, _, err := tournaments.GetByID(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, "b-1", after.BracketID)
	require.Equal(t, before.Version+1, after.Version)
}
