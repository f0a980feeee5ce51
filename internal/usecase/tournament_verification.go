package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

func (s *TournamentService) MarkPaymentCompleted(ctx context.Context, tournamentID string, requesterID int64) (tournament.Tournament, error) {
	return s.moveVerification(ctx, tournamentID, tournament.VerificationPaymentCompleted, func(t *tournament.Tournament) error {
		return requireHost(*t, requesterID)
	})
}

// SubmitVerification attaches the venue proof image and asks for review.
func (s *TournamentService) SubmitVerification(ctx context.Context, tournamentID string, requesterID int64, imageURL string) (tournament.Tournament, error) {
	imageURL = strings.TrimSpace(imageURL)
	parsed, err := url.Parse(imageURL)
	if err != nil || imageURL == "" || parsed.Host == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: verification image url is invalid", ErrInvalidInput)
	}

	return s.moveVerification(ctx, tournamentID, tournament.VerificationPending, func(t *tournament.Tournament) error {
		if err := requireHost(*t, requesterID); err != nil {
			return err
		}
		t.VerificationImageURL = imageURL
		return nil
	})
}

func (s *TournamentService) ApproveVerification(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	return s.moveVerification(ctx, tournamentID, tournament.VerificationApproved, nil)
}

func (s *TournamentService) RejectVerification(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	return s.moveVerification(ctx, tournamentID, tournament.VerificationRejected, nil)
}

func (s *TournamentService) ListByVerificationStatus(ctx context.Context, status tournament.VerificationStatus) ([]tournament.Tournament, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown verification status %q", ErrInvalidInput, status)
	}
	items, err := s.tournaments.List(ctx, tournament.ListFilter{VerificationStatus: status})
	if err != nil {
		return nil, fmt.Errorf("list tournaments by verification status: %w", err)
	}
	return items, nil
}

func (s *TournamentService) moveVerification(
	ctx context.Context,
	tournamentID string,
	next tournament.VerificationStatus,
	guard func(*tournament.Tournament) error,
) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.moveVerification")
	defer span.End()

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if t.IsOver {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentOver, t.ID)
	}
	if guard != nil {
		if err := guard(&t); err != nil {
			return tournament.Tournament{}, err
		}
	}
	if !t.VerificationStatus.CanMoveTo(next) {
		return tournament.Tournament{}, fmt.Errorf("%w: %s -> %s", tournament.ErrInvalidVerificationTransition, t.VerificationStatus, next)
	}

	previous := t.VerificationStatus
	t.VerificationStatus = next
	updated, err := s.save(ctx, t)
	if err != nil {
		return tournament.Tournament{}, err
	}

	s.logger.InfoContext(ctx, "tournament verification moved", "tournament_id", t.ID, "from", string(previous), "to", string(next))
	return updated, nil
}

func requireHost(t tournament.Tournament, requesterID int64) error {
	if t.HostID != requesterID {
		return fmt.Errorf("%w: user=%d", tournament.ErrNotHost, requesterID)
	}
	return nil
}
