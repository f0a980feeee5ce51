package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

func (h *Handler) MarkPaymentCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkPaymentCompleted")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.MarkPaymentCompleted(ctx, tournamentID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "mark payment completed failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitVerification")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitVerificationRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.SubmitVerification(ctx, tournamentID, principal.UserID, req.ImageURL)
	if err != nil {
		h.logger.WarnContext(ctx, "submit verification failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) ApproveVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveVerification")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.ApproveVerification(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "approve verification failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) RejectVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectVerification")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.RejectVerification(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "reject verification failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) ListTournamentsByVerificationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentsByVerificationStatus")
	defer span.End()

	if _, err := requireAdmin(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	status := tournament.VerificationStatus(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
	if status == "" {
		status = tournament.VerificationPending
	}
	items, err := h.tournaments.ListByVerificationStatus(ctx, status)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}
