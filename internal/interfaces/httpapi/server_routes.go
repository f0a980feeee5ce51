package httpapi

import (
	"net/http"

	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/overview", handler.GetTournamentOverview)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/clubs", handler.ListTournamentClubs)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/availability", handler.ListPlayerAvailability)
	mux.HandleFunc("GET /v1/clubs/{clubID}/tournaments", handler.ListClubTournaments)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTournamentRoutes(mux, handler, verifier)
	registerAuthorizedBracketRoutes(mux, handler, verifier)
	registerAuthorizedVerificationRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST "+usecase.RatingUpdateJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRatingUpdateJob)))
	mux.Handle("POST "+usecase.FinalRatingsJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFinalRatingsJob)))
}

func registerAuthorizedTournamentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.CreateTournament)))
	mux.Handle("PATCH /v1/tournaments/{tournamentID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTournament)))
	mux.Handle("DELETE /v1/tournaments/{tournamentID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteTournament)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/clubs", RequireAuth(verifier, http.HandlerFunc(handler.JoinTournament)))
	mux.Handle("DELETE /v1/tournaments/{tournamentID}/clubs/{clubID}", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTournament)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/host", RequireAuth(verifier, http.HandlerFunc(handler.IsTournamentHost)))
	mux.Handle("PUT /v1/tournaments/{tournamentID}/availability", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayerAvailability)))
	mux.Handle("GET /v1/me/tournaments/hosted", RequireAuth(verifier, http.HandlerFunc(handler.ListHostedTournaments)))
}

func registerAuthorizedBracketRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments/{tournamentID}/bracket", RequireAuth(verifier, http.HandlerFunc(handler.CreateBracket)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/matches/{matchID}/result", RequireAuth(verifier, http.HandlerFunc(handler.ReportMatchResult)))
}

func registerAuthorizedVerificationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/tournaments/{tournamentID}/verification/payment", RequireAuth(verifier, http.HandlerFunc(handler.MarkPaymentCompleted)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/verification", RequireAuth(verifier, http.HandlerFunc(handler.SubmitVerification)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/verification/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveVerification)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/verification/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectVerification)))
	mux.Handle("GET /v1/admin/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.ListTournamentsByVerificationStatus)))
}
