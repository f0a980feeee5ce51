package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

// RunRatingUpdateJob replays a finalist rating update queued after a failed
// inline attempt. A non-2xx reply makes the queue retry it.
func (h *Handler) RunRatingUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRatingUpdateJob")
	defer span.End()

	if h.ratingJobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: rating updater is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var task usecase.RatingUpdateTask
	if err := h.decodeRequest(ctx, r, &task); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.ratingJobs.Apply(ctx, task); err != nil {
		h.logger.WarnContext(ctx, "rating update job failed",
			"tournament_id", task.TournamentID,
			"match_id", task.MatchID,
			"club_id", task.ClubID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": task.TournamentID,
		"club_id":       task.ClubID,
		"status":        "completed",
	})
}

// RunFinalRatingsJob replays a final whose rating snapshot failed inline.
func (h *Handler) RunFinalRatingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFinalRatingsJob")
	defer span.End()

	if h.ratingJobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: rating updater is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var task usecase.FinalRatingsTask
	if err := h.decodeRequest(ctx, r, &task); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.ratingJobs.ReplayFinal(ctx, task); err != nil {
		h.logger.WarnContext(ctx, "final ratings job failed",
			"tournament_id", task.TournamentID,
			"match_id", task.MatchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": task.TournamentID,
		"match_id":      task.MatchID,
		"status":        "completed",
	})
}
