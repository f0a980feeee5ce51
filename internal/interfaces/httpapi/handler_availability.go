package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

func (h *Handler) ListPlayerAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerAvailability")
	defer span.End()

	var clubID int64
	if raw := strings.TrimSpace(r.URL.Query().Get("club_id")); raw != "" {
		parsed, err := parseIDParam("club_id", raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		clubID = parsed
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	items, err := h.tournaments.ListPlayerAvailability(ctx, tournamentID, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO(items))
}

func (h *Handler) UpdatePlayerAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerAvailability")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateAvailabilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdatePlayerAvailabilityInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		ClubID:       req.ClubID,
		PlayerID:     req.PlayerID,
		RequesterID:  principal.UserID,
		Available:    *req.Available,
	}
	item, err := h.tournaments.UpdatePlayerAvailability(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update player availability failed",
			"tournament_id", input.TournamentID,
			"club_id", input.ClubID,
			"player_id", input.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityToDTO([]tournament.PlayerAvailability{item})[0])
}
