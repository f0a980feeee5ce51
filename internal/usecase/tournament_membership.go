package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type MembershipInput struct {
	TournamentID string
	ClubID       int64
	RequesterID  int64
}

func (in MembershipInput) validate() error {
	if in.ClubID <= 0 {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if in.RequesterID <= 0 {
		return fmt.Errorf("%w: requester id is required", ErrInvalidInput)
	}
	return nil
}

// JoinTournament appends the club to the tournament's seeding order once
// every eligibility check passes.
func (s *TournamentService) JoinTournament(ctx context.Context, input MembershipInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.JoinTournament")
	defer span.End()

	if err := input.validate(); err != nil {
		return tournament.Tournament{}, err
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadTournament(ctx, input.TournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if t.IsOver {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentOver, t.ID)
	}
	if t.HasBracket() {
		return tournament.Tournament{}, fmt.Errorf("%w: joining is closed", tournament.ErrBracketLocked)
	}

	if err := s.eligibility.CanJoin(ctx, t, input.ClubID, input.RequesterID); err != nil {
		s.logger.WarnContext(ctx, "join tournament rejected",
			"tournament_id", t.ID,
			"club_id", input.ClubID,
			"requester_id", input.RequesterID,
			"error", err,
		)
		return tournament.Tournament{}, err
	}

	t.JoinedClubIDs = append(slices.Clone(t.JoinedClubIDs), input.ClubID)
	updated, err := s.save(ctx, t)
	if err != nil {
		return tournament.Tournament{}, err
	}

	s.logger.InfoContext(ctx, "club joined tournament", "tournament_id", t.ID, "club_id", input.ClubID, "seed", len(updated.JoinedClubIDs))
	return updated, nil
}

// LeaveTournament removes a club before the bracket is drawn. The host or the
// club's captain may do this.
func (s *TournamentService) LeaveTournament(ctx context.Context, input MembershipInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.LeaveTournament")
	defer span.End()

	if err := input.validate(); err != nil {
		return tournament.Tournament{}, err
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadTournament(ctx, input.TournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if t.IsOver {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentOver, t.ID)
	}
	if t.HasBracket() {
		return tournament.Tournament{}, fmt.Errorf("%w: clubs cannot leave after the draw", tournament.ErrBracketLocked)
	}
	if !t.HasClub(input.ClubID) {
		return tournament.Tournament{}, fmt.Errorf("%w: club=%d", tournament.ErrClubNotJoined, input.ClubID)
	}

	if t.HostID != input.RequesterID {
		role, err := s.roles.RoleOf(ctx, input.RequesterID, input.ClubID)
		if err != nil {
			return tournament.Tournament{}, fmt.Errorf("%w: resolve role: %w", ErrDependencyUnavailable, err)
		}
		if role != club.RoleCaptain {
			return tournament.Tournament{}, fmt.Errorf("%w: only the host or the club captain can remove a club", ErrForbidden)
		}
	}

	t.JoinedClubIDs = t.WithoutClub(input.ClubID)
	updated, err := s.save(ctx, t)
	if err != nil {
		return tournament.Tournament{}, err
	}

	s.logger.InfoContext(ctx, "club left tournament", "tournament_id", t.ID, "club_id", input.ClubID)
	return updated, nil
}

// ListClubs returns joined clubs in seeding order.
func (s *TournamentService) ListClubs(ctx context.Context, tournamentID string) ([]int64, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.JoinedClubIDs), nil
}
