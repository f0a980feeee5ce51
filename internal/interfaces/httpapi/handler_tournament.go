package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tournaments.ListTournaments(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	item, err := h.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) GetTournamentOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentOverview")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	overview, err := h.tournaments.GetTournamentOverview(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament overview failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListTournamentClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentClubs")
	defer span.End()

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	clubs, err := h.tournaments.ListClubs(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournament clubs failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if clubs == nil {
		clubs = []int64{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"club_ids": clubs})
}

func (h *Handler) ListClubTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubTournaments")
	defer span.End()

	clubID, err := parseIDParam("clubID", r.PathValue("clubID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	timeline := tournament.Timeline(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("timeline"))))
	if timeline == "" {
		timeline = tournament.TimelineUpcoming
	}

	items, err := h.tournaments.ListTournamentsForClub(ctx, clubID, timeline)
	if err != nil {
		h.logger.WarnContext(ctx, "list club tournaments failed", "club_id", clubID, "timeline", timeline, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournaments.CreateTournament(ctx, usecase.CreateTournamentInput{
		HostID:         principal.UserID,
		Name:           req.Name,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		LocationID:     req.LocationID,
		MaxTeams:       req.MaxTeams,
		Format:         tournament.Format(req.Format),
		KnockoutFormat: bracket.Format(req.KnockoutFormat),
		MinRank:        req.MinRank,
		MaxRank:        req.MaxRank,
		PrizePool:      req.PrizePool,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "host_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateTournamentInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		RequesterID:  principal.UserID,
		Name:         req.Name,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		LocationID:   req.LocationID,
		MaxTeams:     req.MaxTeams,
		MinRank:      req.MinRank,
		MaxRank:      req.MaxRank,
		PrizePool:    req.PrizePool,
	}
	if req.Format != nil {
		format := tournament.Format(*req.Format)
		input.Format = &format
	}
	if req.KnockoutFormat != nil {
		format := bracket.Format(*req.KnockoutFormat)
		input.KnockoutFormat = &format
	}

	item, err := h.tournaments.UpdateTournament(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament failed", "tournament_id", input.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	if err := h.tournaments.DeleteTournament(ctx, tournamentID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) JoinTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.MembershipInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		ClubID:       req.ClubID,
		RequesterID:  principal.UserID,
	}
	item, err := h.tournaments.JoinTournament(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "join tournament failed", "tournament_id", input.TournamentID, "club_id", input.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) LeaveTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	clubID, err := parseIDParam("clubID", r.PathValue("clubID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.MembershipInput{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		ClubID:       clubID,
		RequesterID:  principal.UserID,
	}
	item, err := h.tournaments.LeaveTournament(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "leave tournament failed", "tournament_id", input.TournamentID, "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) ListHostedTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHostedTournaments")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tournaments.ListHostedTournaments(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list hosted tournaments failed", "host_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentsToDTO(items))
}

func (h *Handler) IsTournamentHost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IsTournamentHost")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tournamentID := strings.TrimSpace(r.PathValue("tournamentID"))
	isHost, err := h.tournaments.IsHost(ctx, tournamentID, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"is_host": isHost})
}
