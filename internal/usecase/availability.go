package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type UpdatePlayerAvailabilityInput struct {
	TournamentID string
	ClubID       int64
	PlayerID     int64
	RequesterID  int64
	Available    bool
}

// UpdatePlayerAvailability records whether a player can play. Captains set it
// for anyone in their club, members only for themselves.
func (s *TournamentService) UpdatePlayerAvailability(ctx context.Context, input UpdatePlayerAvailabilityInput) (tournament.PlayerAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UpdatePlayerAvailability")
	defer span.End()

	if input.ClubID <= 0 {
		return tournament.PlayerAvailability{}, tournament.ErrNoClubIndicated
	}
	if input.PlayerID <= 0 {
		return tournament.PlayerAvailability{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	t, err := s.loadTournament(ctx, input.TournamentID)
	if err != nil {
		return tournament.PlayerAvailability{}, err
	}
	if t.IsOver {
		return tournament.PlayerAvailability{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentOver, t.ID)
	}
	if !t.HasClub(input.ClubID) {
		return tournament.PlayerAvailability{}, fmt.Errorf("%w: club=%d", tournament.ErrClubNotJoined, input.ClubID)
	}

	role, err := s.roles.RoleOf(ctx, input.RequesterID, input.ClubID)
	if err != nil {
		return tournament.PlayerAvailability{}, fmt.Errorf("%w: resolve role: %w", ErrDependencyUnavailable, err)
	}
	switch {
	case role == club.RoleCaptain:
	case role == club.RoleMember && input.PlayerID == input.RequesterID:
	default:
		return tournament.PlayerAvailability{}, fmt.Errorf("%w: user=%d cannot set availability for player=%d", ErrForbidden, input.RequesterID, input.PlayerID)
	}

	a := tournament.PlayerAvailability{
		TournamentID: t.ID,
		ClubID:       input.ClubID,
		PlayerID:     input.PlayerID,
		Available:    input.Available,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.availability.Upsert(ctx, a); err != nil {
		return tournament.PlayerAvailability{}, fmt.Errorf("upsert player availability: %w", err)
	}
	return a, nil
}

// ListPlayerAvailability lists availability for a tournament; clubID 0 lists
// every club.
func (s *TournamentService) ListPlayerAvailability(ctx context.Context, tournamentID string, clubID int64) ([]tournament.PlayerAvailability, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	items, err := s.availability.ListByTournament(ctx, t.ID, clubID)
	if err != nil {
		return nil, fmt.Errorf("list player availability: %w", err)
	}
	return items, nil
}
