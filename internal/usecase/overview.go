package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/sourcegraph/conc/pool"
)

type TournamentOverview struct {
	Tournament   tournament.Tournament
	Bracket      *bracket.Bracket
	Availability []tournament.PlayerAvailability
}

// GetTournamentOverview loads the tournament, its bracket and availability
// concurrently.
func (s *TournamentService) GetTournamentOverview(ctx context.Context, tournamentID string) (TournamentOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetTournamentOverview")
	defer span.End()

	var (
		out        TournamentOverview
		found      bool
		b          bracket.Bracket
		hasBracket bool
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		t, exists, err := s.tournaments.GetByID(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("get tournament: %w", err)
		}
		out.Tournament, found = t, exists
		return nil
	})
	p.Go(func(ctx context.Context) error {
		loaded, exists, err := s.brackets.GetByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("get bracket: %w", err)
		}
		b, hasBracket = loaded, exists
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.availability.ListByTournament(ctx, tournamentID, 0)
		if err != nil {
			return fmt.Errorf("list player availability: %w", err)
		}
		out.Availability = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return TournamentOverview{}, err
	}

	if !found {
		return TournamentOverview{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, tournamentID)
	}
	if hasBracket {
		out.Bracket = &b
	}
	return out, nil
}
