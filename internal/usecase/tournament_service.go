package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	idgen "github.com/riskibarqy/kickoff-tournaments/internal/platform/id"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/resilience"
)

type CreateTournamentInput struct {
	HostID         int64
	Name           string
	StartAt        time.Time
	EndAt          time.Time
	LocationID     string
	MaxTeams       int
	Format         tournament.Format
	KnockoutFormat bracket.Format
	MinRank        float64
	MaxRank        float64
	PrizePool      []float64
}

// UpdateTournamentInput changes only the non-nil fields.
type UpdateTournamentInput struct {
	TournamentID   string
	RequesterID    int64
	Name           *string
	StartAt        *time.Time
	EndAt          *time.Time
	LocationID     *string
	MaxTeams       *int
	Format         *tournament.Format
	KnockoutFormat *bracket.Format
	MinRank        *float64
	MaxRank        *float64
	PrizePool      []float64
}

type joinChecker interface {
	CanJoin(ctx context.Context, t tournament.Tournament, clubID, requesterID int64) error
}

type finalistRatingUpdater interface {
	UpdateFinalists(ctx context.Context, tournamentID string, final bracket.FinalResult)
}

type TournamentDependencies struct {
	Tournaments  tournament.Repository
	Brackets     bracket.Repository
	Availability tournament.AvailabilityRepository
	Eligibility  joinChecker
	Roles        club.RoleResolver
	Ratings      finalistRatingUpdater
	IDGen        idgen.Generator
	Logger       *logging.Logger
}

// TournamentService runs the tournament lifecycle. Mutations of one
// tournament are serialized in-process; the repositories' version checks
// guard against other processes.
type TournamentService struct {
	tournaments  tournament.Repository
	brackets     bracket.Repository
	availability tournament.AvailabilityRepository
	eligibility  joinChecker
	roles        club.RoleResolver
	ratings      finalistRatingUpdater
	idGen        idgen.Generator
	locks        *resilience.KeyedMutex
	logger       *logging.Logger
	now          func() time.Time
}

func NewTournamentService(deps TournamentDependencies) *TournamentService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{
		tournaments:  deps.Tournaments,
		brackets:     deps.Brackets,
		availability: deps.Availability,
		eligibility:  deps.Eligibility,
		roles:        deps.Roles,
		ratings:      deps.Ratings,
		idGen:        deps.IDGen,
		locks:        &resilience.KeyedMutex{},
		logger:       logger,
		now:          time.Now,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.CreateTournament")
	defer span.End()

	if input.HostID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: host id is required", ErrInvalidInput)
	}

	tournamentID, err := s.idGen.NewID()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("generate tournament id: %w", err)
	}

	now := s.now().UTC()
	t := tournament.Tournament{
		ID:                 tournamentID,
		Name:               strings.TrimSpace(input.Name),
		StartAt:            input.StartAt.UTC(),
		EndAt:              input.EndAt.UTC(),
		LocationID:         strings.TrimSpace(input.LocationID),
		MaxTeams:           input.MaxTeams,
		Format:             input.Format,
		KnockoutFormat:     input.KnockoutFormat,
		MinRank:            input.MinRank,
		MaxRank:            input.MaxRank,
		JoinedClubIDs:      []int64{},
		HostID:             input.HostID,
		VerificationStatus: tournament.VerificationAwaitingPayment,
		PrizePool:          slices.Clone(input.PrizePool),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := t.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.tournaments.Create(ctx, t); err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", t.ID, "host_id", t.HostID)
	return t, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetTournament")
	defer span.End()

	return s.loadTournament(ctx, tournamentID)
}

func (s *TournamentService) ListTournaments(ctx context.Context, limit int) ([]tournament.Tournament, error) {
	items, err := s.tournaments.List(ctx, tournament.ListFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) ListHostedTournaments(ctx context.Context, hostID int64) ([]tournament.Tournament, error) {
	if hostID <= 0 {
		return nil, fmt.Errorf("%w: host id is required", ErrInvalidInput)
	}
	items, err := s.tournaments.List(ctx, tournament.ListFilter{HostID: hostID})
	if err != nil {
		return nil, fmt.Errorf("list hosted tournaments: %w", err)
	}
	return items, nil
}

// ListTournamentsForClub returns the club's tournaments on the given timeline.
func (s *TournamentService) ListTournamentsForClub(ctx context.Context, clubID int64, timeline tournament.Timeline) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ListTournamentsForClub")
	defer span.End()

	if clubID <= 0 {
		return nil, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if !timeline.Valid() {
		return nil, fmt.Errorf("%w: unknown timeline %q", ErrInvalidInput, timeline)
	}

	items, err := s.tournaments.List(ctx, tournament.ListFilter{ClubID: clubID})
	if err != nil {
		return nil, fmt.Errorf("list tournaments for club: %w", err)
	}

	now := s.now().UTC()
	out := make([]tournament.Tournament, 0, len(items))
	for _, t := range items {
		if t.InTimeline(timeline, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TournamentService) IsHost(ctx context.Context, tournamentID string, userID int64) (bool, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return false, err
	}
	return t.HostID == userID, nil
}

func (s *TournamentService) UpdateTournament(ctx context.Context, input UpdateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.UpdateTournament")
	defer span.End()

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadMutable(ctx, input.TournamentID, input.RequesterID)
	if err != nil {
		return tournament.Tournament{}, err
	}

	structural := input.MaxTeams != nil || input.Format != nil || input.KnockoutFormat != nil
	if structural && t.HasBracket() {
		return tournament.Tournament{}, fmt.Errorf("%w: capacity and formats are fixed once the bracket exists", tournament.ErrBracketLocked)
	}

	if input.Name != nil {
		t.Name = strings.TrimSpace(*input.Name)
	}
	if input.StartAt != nil {
		t.StartAt = input.StartAt.UTC()
	}
	if input.EndAt != nil {
		t.EndAt = input.EndAt.UTC()
	}
	if input.LocationID != nil {
		t.LocationID = strings.TrimSpace(*input.LocationID)
	}
	if input.MaxTeams != nil {
		if *input.MaxTeams < len(t.JoinedClubIDs) {
			return tournament.Tournament{}, fmt.Errorf("%w: max teams %d is below the %d joined clubs", ErrInvalidInput, *input.MaxTeams, len(t.JoinedClubIDs))
		}
		t.MaxTeams = *input.MaxTeams
	}
	if input.Format != nil {
		t.Format = *input.Format
	}
	if input.KnockoutFormat != nil {
		t.KnockoutFormat = *input.KnockoutFormat
	}
	if input.MinRank != nil {
		t.MinRank = *input.MinRank
	}
	if input.MaxRank != nil {
		t.MaxRank = *input.MaxRank
	}
	if input.PrizePool != nil {
		t.PrizePool = slices.Clone(input.PrizePool)
	}
	if err := t.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.save(ctx, t)
}

func (s *TournamentService) DeleteTournament(ctx context.Context, tournamentID string, requesterID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.DeleteTournament")
	defer span.End()

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := s.loadMutable(ctx, tournamentID, requesterID)
	if err != nil {
		return err
	}
	if err := s.tournaments.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", t.ID)
	return nil
}

func (s *TournamentService) loadTournament(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, exists, err := s.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, tournamentID)
	}
	return t, nil
}

// loadMutable loads a tournament the requester hosts and that still accepts
// changes.
func (s *TournamentService) loadMutable(ctx context.Context, tournamentID string, requesterID int64) (tournament.Tournament, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}
	if t.IsOver {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentOver, t.ID)
	}
	if t.HostID != requesterID {
		return tournament.Tournament{}, fmt.Errorf("%w: user=%d", tournament.ErrNotHost, requesterID)
	}
	return t, nil
}

func (s *TournamentService) save(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	t.UpdatedAt = s.now().UTC()
	updated, err := s.tournaments.Update(ctx, t)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
	}
	return updated, nil
}
