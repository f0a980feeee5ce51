package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type ReportMatchResultInput struct {
	TournamentID  string
	MatchID       string
	RequesterID   int64
	Club1Score    int
	Club2Score    int
	WinningClubID int64
}

type MatchReport struct {
	Bracket     bracket.Bracket
	Progression bracket.Progression
}

// CreateBracket draws the bracket from the current join order. Only the host
// may do this and only once.
func (s *TournamentService) CreateBracket(ctx context.Context, tournamentID string, requesterID int64) (bracket.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateBracket")
	defer span.End()

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := s.loadMutable(ctx, tournamentID, requesterID)
	if err != nil {
		return bracket.Bracket{}, err
	}
	if t.HasBracket() {
		return bracket.Bracket{}, fmt.Errorf("%w: tournament=%s", bracket.ErrBracketAlreadyCreated, t.ID)
	}

	b, err := bracket.Build(bracket.BuildInput{
		TournamentID: t.ID,
		Format:       t.KnockoutFormat,
		ClubIDs:      t.JoinedClubIDs,
		Now:          s.now().UTC(),
	}, s.idGen)
	if err != nil {
		return bracket.Bracket{}, fmt.Errorf("build bracket: %w", err)
	}

	if err := s.brackets.Create(ctx, b); err != nil {
		return bracket.Bracket{}, fmt.Errorf("create bracket: %w", err)
	}

	s.logger.InfoContext(ctx, "bracket created",
		"tournament_id", t.ID,
		"bracket_id", b.ID,
		"format", string(b.Format),
		"clubs", len(t.JoinedClubIDs),
		"rounds", len(b.Rounds),
	)
	return b, nil
}

func (s *TournamentService) GetBracket(ctx context.Context, tournamentID string) (bracket.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetBracket")
	defer span.End()

	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return bracket.Bracket{}, err
	}
	if !t.HasBracket() {
		return bracket.Bracket{}, fmt.Errorf("%w: tournament=%s", tournament.ErrBracketNotCreated, t.ID)
	}
	return s.loadBracket(ctx, t.BracketID)
}

// ReportMatchResult records a result and advances the bracket. When the
// result decides the champion both finalists' ratings are updated after the
// commit; those updates never change the returned report.
func (s *TournamentService) ReportMatchResult(ctx context.Context, input ReportMatchResultInput) (MatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ReportMatchResult")
	defer span.End()

	if strings.TrimSpace(input.MatchID) == "" {
		return MatchReport{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	report, err := s.commitResult(ctx, input)
	if err != nil {
		s.logger.WarnContext(ctx, "match result rejected",
			"tournament_id", input.TournamentID,
			"match_id", input.MatchID,
			"error", err,
		)
		return MatchReport{}, err
	}

	if final := report.Progression.Final; final != nil {
		s.logger.InfoContext(ctx, "tournament decided",
			"tournament_id", input.TournamentID,
			"winner_id", final.WinnerID,
			"runner_up_id", final.LoserID,
		)
		if s.ratings != nil {
			s.ratings.UpdateFinalists(ctx, input.TournamentID, *final)
		}
	}

	return report, nil
}

func (s *TournamentService) commitResult(ctx context.Context, input ReportMatchResultInput) (MatchReport, error) {
	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadMutable(ctx, input.TournamentID, input.RequesterID)
	if err != nil {
		return MatchReport{}, err
	}
	if !t.HasBracket() {
		return MatchReport{}, fmt.Errorf("%w: tournament=%s", tournament.ErrBracketNotCreated, t.ID)
	}

	current, err := s.loadBracket(ctx, t.BracketID)
	if err != nil {
		return MatchReport{}, err
	}

	next := current.Clone()
	progression, err := next.ReportResult(input.MatchID, input.Club1Score, input.Club2Score, input.WinningClubID)
	if err != nil {
		return MatchReport{}, err
	}

	if err := s.brackets.SaveProgression(ctx, next, progression); err != nil {
		return MatchReport{}, fmt.Errorf("save progression: %w", err)
	}

	committed, err := s.loadBracket(ctx, t.BracketID)
	if err != nil {
		return MatchReport{}, err
	}
	return MatchReport{Bracket: committed, Progression: progression}, nil
}

func (s *TournamentService) loadBracket(ctx context.Context, bracketID string) (bracket.Bracket, error) {
	b, exists, err := s.brackets.GetByID(ctx, bracketID)
	if err != nil {
		return bracket.Bracket{}, fmt.Errorf("get bracket: %w", err)
	}
	if !exists {
		return bracket.Bracket{}, fmt.Errorf("%w: bracket=%s", ErrNotFound, bracketID)
	}
	return b, nil
}
