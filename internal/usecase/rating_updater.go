package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/rating"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
)

const (
	// RatingUpdateJobPath replays one finalist's stored rating write.
	RatingUpdateJobPath = "/v1/internal/jobs/rating-update"
	// FinalRatingsJobPath replays a whole final whose rating snapshot could
	// not be taken.
	FinalRatingsJobPath = "/v1/internal/jobs/final-ratings"
)

// RatingUpdateTask is one finalist's post-final rating write. The target
// rating is computed from the pre-final snapshot of both clubs, so replaying
// the task writes the same value again.
type RatingUpdateTask struct {
	TournamentID    string  `json:"tournamentId" validate:"required"`
	MatchID         string  `json:"matchId" validate:"required"`
	ClubID          int64   `json:"clubId" validate:"required,gt=0"`
	OpponentID      int64   `json:"opponentId" validate:"required,gt=0"`
	Won             bool    `json:"won"`
	EloBefore       float64 `json:"eloBefore"`
	Elo             float64 `json:"elo"`
	RatingDeviation float64 `json:"ratingDeviation" validate:"gt=0"`
}

func (t RatingUpdateTask) deduplicationID() string {
	return fmt.Sprintf("rating-%s-%d", t.MatchID, t.ClubID)
}

// FinalRatingsTask describes a decided final before any rating was read.
type FinalRatingsTask struct {
	TournamentID string `json:"tournamentId" validate:"required"`
	MatchID      string `json:"matchId" validate:"required"`
	WinnerID     int64  `json:"winnerId" validate:"required,gt=0"`
	LoserID      int64  `json:"loserId" validate:"required,gt=0,nefield=WinnerID"`
	WinnerScore  int    `json:"winnerScore" validate:"gte=0"`
	LoserScore   int    `json:"loserScore" validate:"gte=0"`
}

func newFinalRatingsTask(tournamentID string, final bracket.FinalResult) FinalRatingsTask {
	return FinalRatingsTask{
		TournamentID: tournamentID,
		MatchID:      final.MatchID,
		WinnerID:     final.WinnerID,
		LoserID:      final.LoserID,
		WinnerScore:  final.WinnerScore,
		LoserScore:   final.LoserScore,
	}
}

// RatingUpdater pushes new ratings for both finalists once a tournament is
// decided. Both ratings come from one snapshot taken before any write. Each
// write is independent; a failed one is logged and handed to the retry
// queue without affecting the other.
type RatingUpdater struct {
	ratings    club.RatingClient
	rules      rating.Rules
	pool       *ants.Pool
	jobs       JobQueue
	retryDelay time.Duration
	logger     *logging.Logger
}

func NewRatingUpdater(ratings club.RatingClient, pool *ants.Pool, jobs JobQueue, logger *logging.Logger) *RatingUpdater {
	if logger == nil {
		logger = logging.Default()
	}
	return &RatingUpdater{
		ratings:    ratings,
		rules:      rating.DefaultRules(),
		pool:       pool,
		jobs:       jobs,
		retryDelay: 30 * time.Second,
		logger:     logger,
	}
}

// WithRetryDelay sets how long a failed update waits in the job queue.
func (u *RatingUpdater) WithRetryDelay(delay time.Duration) *RatingUpdater {
	if delay > 0 {
		u.retryDelay = delay
	}
	return u
}

// UpdateFinalists blocks until both finalist updates have finished or been
// queued for retry. It outlives the caller's cancellation.
func (u *RatingUpdater) UpdateFinalists(ctx context.Context, tournamentID string, final bracket.FinalResult) {
	ctx, span := startUsecaseSpan(context.WithoutCancel(ctx), "usecase.RatingUpdater.UpdateFinalists")
	defer span.End()

	task := newFinalRatingsTask(tournamentID, final)
	tasks, err := u.plan(ctx, task)
	if err != nil {
		u.logger.ErrorContext(ctx, "final rating snapshot failed",
			"tournament_id", tournamentID,
			"match_id", final.MatchID,
			"error", err,
		)
		u.enqueue(ctx, FinalRatingsJobPath, task, "ratings-"+task.MatchID)
		return
	}
	u.applyAll(ctx, tasks)
}

// ReplayFinal takes the snapshot again and writes both ratings. It is only
// queued when the first snapshot failed, so no rating of this final has been
// written yet.
func (u *RatingUpdater) ReplayFinal(ctx context.Context, task FinalRatingsTask) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingUpdater.ReplayFinal")
	defer span.End()

	if strings.TrimSpace(task.MatchID) == "" || task.WinnerID <= 0 || task.LoserID <= 0 || task.WinnerID == task.LoserID {
		return fmt.Errorf("%w: final replay needs match, winner and loser", ErrInvalidInput)
	}
	tasks, err := u.plan(ctx, task)
	if err != nil {
		return err
	}
	u.applyAll(ctx, tasks)
	return nil
}

// plan reads both finalists once and computes both new ratings from that
// snapshot.
func (u *RatingUpdater) plan(ctx context.Context, task FinalRatingsTask) ([]RatingUpdateTask, error) {
	winner, err := u.ratings.GetClubProfile(ctx, task.WinnerID)
	if err != nil {
		return nil, fmt.Errorf("get winner %d profile: %w", task.WinnerID, err)
	}
	loser, err := u.ratings.GetClubProfile(ctx, task.LoserID)
	if err != nil {
		return nil, fmt.Errorf("get loser %d profile: %w", task.LoserID, err)
	}
	winnerBefore := rating.Rating{Elo: winner.Elo, Deviation: winner.RatingDeviation}
	loserBefore := rating.Rating{Elo: loser.Elo, Deviation: loser.RatingDeviation}

	winnerAfter, err := rating.Update(winnerBefore, loserBefore,
		rating.Outcome{Score: task.WinnerScore, OpponentScore: task.LoserScore, Won: true}, u.rules)
	if err != nil {
		return nil, fmt.Errorf("compute rating for club %d: %w", task.WinnerID, err)
	}
	loserAfter, err := rating.Update(loserBefore, winnerBefore,
		rating.Outcome{Score: task.LoserScore, OpponentScore: task.WinnerScore, Won: false}, u.rules)
	if err != nil {
		return nil, fmt.Errorf("compute rating for club %d: %w", task.LoserID, err)
	}

	return []RatingUpdateTask{
		{
			TournamentID:    task.TournamentID,
			MatchID:         task.MatchID,
			ClubID:          task.WinnerID,
			OpponentID:      task.LoserID,
			Won:             true,
			EloBefore:       winnerBefore.Elo,
			Elo:             winnerAfter.Elo,
			RatingDeviation: winnerAfter.Deviation,
		},
		{
			TournamentID:    task.TournamentID,
			MatchID:         task.MatchID,
			ClubID:          task.LoserID,
			OpponentID:      task.WinnerID,
			EloBefore:       loserBefore.Elo,
			Elo:             loserAfter.Elo,
			RatingDeviation: loserAfter.Deviation,
		},
	}, nil
}

func (u *RatingUpdater) applyAll(ctx context.Context, tasks []RatingUpdateTask) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		run := func() {
			defer wg.Done()
			if err := u.Apply(ctx, task); err != nil {
				u.logger.ErrorContext(ctx, "finalist rating update failed",
					"tournament_id", task.TournamentID,
					"match_id", task.MatchID,
					"club_id", task.ClubID,
					"error", err,
				)
				u.enqueue(ctx, RatingUpdateJobPath, task, task.deduplicationID())
			}
		}
		if u.pool == nil {
			go run()
			continue
		}
		if err := u.pool.Submit(run); err != nil {
			u.logger.WarnContext(ctx, "rating worker pool rejected task, running inline", "club_id", task.ClubID, "error", err)
			go run()
		}
	}
	wg.Wait()
}

// Apply writes one club's precomputed rating. Writing it twice is harmless.
func (u *RatingUpdater) Apply(ctx context.Context, task RatingUpdateTask) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingUpdater.Apply")
	defer span.End()

	if strings.TrimSpace(task.MatchID) == "" || task.ClubID <= 0 || task.RatingDeviation <= 0 {
		return fmt.Errorf("%w: rating update needs match, club and target rating", ErrInvalidInput)
	}

	if err := u.ratings.UpdateRating(ctx, task.ClubID, task.Elo, task.RatingDeviation); err != nil {
		return fmt.Errorf("update club %d rating: %w", task.ClubID, err)
	}

	u.logger.InfoContext(ctx, "club rating updated",
		"club_id", task.ClubID,
		"elo_before", task.EloBefore,
		"elo_after", task.Elo,
		"rd_after", task.RatingDeviation,
	)
	return nil
}

func (u *RatingUpdater) enqueue(ctx context.Context, path string, payload any, deduplicationID string) {
	if u.jobs == nil {
		return
	}
	if err := u.jobs.Enqueue(ctx, path, payload, u.retryDelay, deduplicationID); err != nil {
		u.logger.ErrorContext(ctx, "enqueue rating retry failed",
			"path", path,
			"deduplication_id", deduplicationID,
			"error", err,
		)
	}
}
