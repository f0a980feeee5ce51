package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

func (h *Handler) CreateBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBracket")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.CreateBracket(ctx, tournamentID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "create bracket failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bracketToDTO(item))
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.GetBracket(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(item))
}

func (h *Handler) ReportMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReportMatchResult")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req reportMatchResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.ReportMatchResultInput{
		TournamentID:  strings.TrimSpace(r.PathValue("tournamentID")),
		MatchID:       strings.TrimSpace(r.PathValue("matchID")),
		RequesterID:   principal.UserID,
		Club1Score:    req.Club1Score,
		Club2Score:    req.Club2Score,
		WinningClubID: req.WinningClubID,
	}
	report, err := h.tournaments.ReportMatchResult(ctx, input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchReportToDTO(report))
}
