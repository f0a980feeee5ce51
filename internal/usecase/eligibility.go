package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

// EligibilityChecker decides whether a club may join a tournament. Checks run
// in order and stop at the first failure.
type EligibilityChecker struct {
	ratings club.RatingClient
	roles   club.RoleResolver
}

func NewEligibilityChecker(ratings club.RatingClient, roles club.RoleResolver) *EligibilityChecker {
	return &EligibilityChecker{ratings: ratings, roles: roles}
}

func (c *EligibilityChecker) CanJoin(ctx context.Context, t tournament.Tournament, clubID, requesterID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityChecker.CanJoin")
	defer span.End()

	role, err := c.roles.RoleOf(ctx, requesterID, clubID)
	if err != nil {
		return fmt.Errorf("%w: resolve role: %w", tournament.ErrEligibilityCheckFailed, err)
	}
	if role != club.RoleCaptain {
		return fmt.Errorf("%w: user=%d club=%d role=%s", tournament.ErrInvalidJoinRole, requesterID, clubID, role)
	}

	if t.HasClub(clubID) {
		return fmt.Errorf("%w: club=%d", tournament.ErrClubAlreadyJoined, clubID)
	}
	if t.Full() {
		return fmt.Errorf("%w: max teams=%d", tournament.ErrTournamentFull, t.MaxTeams)
	}

	profile, err := c.ratings.GetClubProfile(ctx, clubID)
	if err != nil {
		return fmt.Errorf("%w: %w", tournament.ErrEligibilityCheckFailed, err)
	}
	if profile.Elo < t.MinRank {
		return fmt.Errorf("%w: elo=%.0f min=%.0f", tournament.ErrClubEloTooLow, profile.Elo, t.MinRank)
	}
	if profile.Elo > t.MaxRank {
		return fmt.Errorf("%w: elo=%.0f max=%.0f", tournament.ErrClubEloTooHigh, profile.Elo, t.MaxRank)
	}

	clean, err := c.ratings.VerifyNoPenalty(ctx, clubID)
	if err != nil {
		return fmt.Errorf("%w: %w", tournament.ErrEligibilityCheckFailed, err)
	}
	if !clean {
		return fmt.Errorf("%w: club=%d", tournament.ErrClubBlacklisted, clubID)
	}

	return nil
}
