package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "kickoff-tournaments"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, tournament.ErrNoClubIndicated),
		errors.Is(err, bracket.ErrInvalidScore),
		errors.Is(err, bracket.ErrUnsupportedFormat),
		errors.Is(err, bracket.ErrDuplicateClub):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, bracket.ErrInvalidWinningClub):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidWinningClub",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, bracket.ErrInsufficientMatches):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "insufficientClubs",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, tournament.ErrTournamentNotFound),
		errors.Is(err, bracket.ErrMatchNotFound),
		errors.Is(err, tournament.ErrBracketNotCreated):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, club.ErrProfileNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "clubNotFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{
			HTTPStatus: http.StatusUnauthorized,
			Reason:     "unauthorized",
			Status:     "UNAUTHENTICATED",
		}
	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, tournament.ErrNotHost),
		errors.Is(err, tournament.ErrInvalidJoinRole):
		return mappedError{
			HTTPStatus: http.StatusForbidden,
			Reason:     "forbidden",
			Status:     "PERMISSION_DENIED",
		}
	case errors.Is(err, tournament.ErrClubAlreadyJoined),
		errors.Is(err, tournament.ErrClubNotJoined),
		errors.Is(err, tournament.ErrTournamentFull),
		errors.Is(err, tournament.ErrTournamentOver),
		errors.Is(err, tournament.ErrBracketLocked),
		errors.Is(err, tournament.ErrInvalidVerificationTransition),
		errors.Is(err, bracket.ErrBracketAlreadyCreated),
		errors.Is(err, bracket.ErrMatchAlreadyFinalized),
		errors.Is(err, bracket.ErrMatchAutoResolved):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, tournament.ErrConcurrentModification),
		errors.Is(err, bracket.ErrConcurrentProgressionConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "concurrentModification",
			Status:     "ABORTED",
		}
	case errors.Is(err, tournament.ErrClubEloTooLow),
		errors.Is(err, tournament.ErrClubEloTooHigh),
		errors.Is(err, tournament.ErrClubBlacklisted):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "clubNotEligible",
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable),
		errors.Is(err, tournament.ErrEligibilityCheckFailed),
		errors.Is(err, club.ErrServiceUnavailable),
		errors.Is(err, club.ErrRatingUpdateFailed),
		errors.Is(err, club.ErrPenaltyVerificationFailed):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
