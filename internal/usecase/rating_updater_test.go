package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/rating"
	clubmock "github.com/riskibarqy/kickoff-tournaments/internal/mocks/domain/club"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordedJob struct {
	path    string
	payload any
	dedupID string
}

type fakeJobPublisher struct {
	mu   sync.Mutex
	jobs []recordedJob
	err  error
}

func (f *fakeJobPublisher) Enqueue(_ context.Context, path string, payload any, _ time.Duration, deduplicationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, recordedJob{path: path, payload: payload, dedupID: deduplicationID})
	return f.err
}

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func TestRatingUpdater_UpdatesBothFinalists(t *testing.T) {
	t.Parallel()

	ratings := clubmock.NewRatingClient(t)
	ratings.On("GetClubProfile", mock.Anything, int64(1)).Return(club.Profile{ID: 1, Elo: 1500, RatingDeviation: 50}, nil).Once()
	ratings.On("GetClubProfile", mock.Anything, int64(2)).Return(club.Profile{ID: 2, Elo: 1500, RatingDeviation: 50}, nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(1), mock.MatchedBy(func(elo float64) bool { return elo > 1500 }), mock.Anything).Return(nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(2), mock.MatchedBy(func(elo float64) bool { return elo < 1500 }), mock.Anything).Return(nil).Once()

	jobs := &fakeJobPublisher{}
	updater := NewRatingUpdater(ratings, newTestPool(t), jobs, nil)

	updater.UpdateFinalists(context.Background(), "t-1", bracket.FinalResult{
		MatchID: "m-final", WinnerID: 1, LoserID: 2, WinnerScore: 3, LoserScore: 1,
	})

	require.Empty(t, jobs.jobs)
}

func TestRatingUpdater_FailureIsIsolatedAndQueued(t *testing.T) {
	t.Parallel()

	ratings := clubmock.NewRatingClient(t)
	ratings.On("GetClubProfile", mock.Anything, int64(1)).Return(club.Profile{ID: 1, Elo: 1600, RatingDeviation: 60}, nil).Once()
	ratings.On("GetClubProfile", mock.Anything, int64(2)).Return(club.Profile{ID: 2, Elo: 1400, RatingDeviation: 40}, nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(club.ErrRatingUpdateFailed).Once()
	ratings.On("UpdateRating", mock.Anything, int64(2), mock.Anything, mock.Anything).Return(nil).Once()

	jobs := &fakeJobPublisher{}
	updater := NewRatingUpdater(ratings, newTestPool(t), jobs, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	updater.UpdateFinalists(ctx, "t-1", bracket.FinalResult{
		MatchID: "m-final", WinnerID: 1, LoserID: 2, WinnerScore: 2, LoserScore: 2,
	})

	require.Len(t, jobs.jobs, 1)
	job := jobs.jobs[0]
	require.Equal(t, RatingUpdateJobPath, job.path)
	require.Equal(t, "rating-m-final-1", job.dedupID)
	task, ok := job.payload.(RatingUpdateTask)
	require.True(t, ok)
	require.True(t, task.Won)
	require.Equal(t, int64(2), task.OpponentID)
	require.Equal(t, 1600.0, task.EloBefore)
}

func TestRatingUpdater_ReplayWritesSnapshotRating(t *testing.T) {
	t.Parallel()

	winnerBefore := rating.Rating{Elo: 1500, Deviation: 50}
	loserBefore := rating.Rating{Elo: 1700, Deviation: 50}
	wantWinner, err := rating.Update(winnerBefore, loserBefore, rating.Outcome{Score: 1, OpponentScore: 0, Won: true}, rating.DefaultRules())
	require.NoError(t, err)
	wantLoser, err := rating.Update(loserBefore, winnerBefore, rating.Outcome{Score: 0, OpponentScore: 1}, rating.DefaultRules())
	require.NoError(t, err)

	ratings := clubmock.NewRatingClient(t)
	ratings.On("GetClubProfile", mock.Anything, int64(1)).Return(club.Profile{ID: 1, Elo: winnerBefore.Elo, RatingDeviation: winnerBefore.Deviation}, nil).Once()
	ratings.On("GetClubProfile", mock.Anything, int64(2)).Return(club.Profile{ID: 2, Elo: loserBefore.Elo, RatingDeviation: loserBefore.Deviation}, nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(1), wantWinner.Elo, wantWinner.Deviation).Return(club.ErrRatingUpdateFailed).Once()
	ratings.On("UpdateRating", mock.Anything, int64(2), wantLoser.Elo, wantLoser.Deviation).Return(nil).Once()

	jobs := &fakeJobPublisher{}
	updater := NewRatingUpdater(ratings, newTestPool(t), jobs, nil)
	updater.UpdateFinalists(context.Background(), "t-1", bracket.FinalResult{
		MatchID: "m-final", WinnerID: 1, LoserID: 2, WinnerScore: 1, LoserScore: 0,
	})
	require.Len(t, jobs.jobs, 1)
	task := jobs.jobs[0].payload.(RatingUpdateTask)

	// The loser's write already landed; the replay must not re-read it.
	ratings.On("UpdateRating", mock.Anything, int64(1), wantWinner.Elo, wantWinner.Deviation).Return(nil).Twice()
	require.NoError(t, updater.Apply(context.Background(), task))
	require.NoError(t, updater.Apply(context.Background(), task))

	ratings.AssertNumberOfCalls(t, "GetClubProfile", 2)
	ratings.AssertNumberOfCalls(t, "UpdateRating", 4)
}

func TestRatingUpdater_SnapshotFailureQueuesWholeFinal(t *testing.T) {
	t.Parallel()

	ratings := clubmock.NewRatingClient(t)
	ratings.On("GetClubProfile", mock.Anything, int64(1)).Return(club.Profile{}, club.ErrServiceUnavailable).Once()

	jobs := &fakeJobPublisher{}
	updater := NewRatingUpdater(ratings, newTestPool(t), jobs, nil)
	final := bracket.FinalResult{MatchID: "m-final", WinnerID: 1, LoserID: 2, WinnerScore: 2, LoserScore: 0}
	updater.UpdateFinalists(context.Background(), "t-1", final)

	require.Len(t, jobs.jobs, 1)
	require.Equal(t, FinalRatingsJobPath, jobs.jobs[0].path)
	require.Equal(t, "ratings-m-final", jobs.jobs[0].dedupID)
	task, ok := jobs.jobs[0].payload.(FinalRatingsTask)
	require.True(t, ok)
	require.Equal(t, int64(2), task.LoserID)
	ratings.AssertNotCalled(t, "UpdateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	ratings.On("GetClubProfile", mock.Anything, int64(1)).Return(club.Profile{ID: 1, Elo: 1500, RatingDeviation: 50}, nil).Once()
	ratings.On("GetClubProfile", mock.Anything, int64(2)).Return(club.Profile{ID: 2, Elo: 1500, RatingDeviation: 50}, nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(1), mock.MatchedBy(func(elo float64) bool { return elo > 1500 }), mock.Anything).Return(nil).Once()
	ratings.On("UpdateRating", mock.Anything, int64(2), mock.MatchedBy(func(elo float64) bool { return elo < 1500 }), mock.Anything).Return(nil).Once()
	require.NoError(t, updater.ReplayFinal(context.Background(), task))
	require.Len(t, jobs.jobs, 1)
}

func TestRatingUpdater_ApplyRejectsIncompleteTask(t *testing.T) {
	t.Parallel()

	updater := NewRatingUpdater(clubmock.NewRatingClient(t), nil, nil, nil)
	err := updater.Apply(context.Background(), RatingUpdateTask{MatchID: "m", ClubID: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	err = updater.ReplayFinal(context.Background(), FinalRatingsTask{MatchID: "m", WinnerID: 1, LoserID: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
