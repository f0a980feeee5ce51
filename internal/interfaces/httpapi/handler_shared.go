package httpapi

import (
	"slices"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

type createTournamentRequest struct {
	Name           string    `json:"name" validate:"required,max=120"`
	StartAt        time.Time `json:"start_at" validate:"required"`
	EndAt          time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
	LocationID     string    `json:"location_id" validate:"omitempty,max=64"`
	MaxTeams       int       `json:"max_teams" validate:"required,gte=2"`
	Format         string    `json:"format" validate:"required,oneof=FIVE_SIDE SEVEN_SIDE ELEVEN_SIDE"`
	KnockoutFormat string    `json:"knockout_format" validate:"required,oneof=SINGLE_ELIM DOUBLE_ELIM"`
	MinRank        float64   `json:"min_rank" validate:"gte=0"`
	MaxRank        float64   `json:"max_rank" validate:"gtefield=MinRank"`
	PrizePool      []float64 `json:"prize_pool" validate:"omitempty,dive,gte=0"`
}

type updateTournamentRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=1,max=120"`
	StartAt        *time.Time `json:"start_at"`
	EndAt          *time.Time `json:"end_at"`
	LocationID     *string    `json:"location_id" validate:"omitempty,max=64"`
	MaxTeams       *int       `json:"max_teams" validate:"omitempty,gte=2"`
	Format         *string    `json:"format" validate:"omitempty,oneof=FIVE_SIDE SEVEN_SIDE ELEVEN_SIDE"`
	KnockoutFormat *string    `json:"knockout_format" validate:"omitempty,oneof=SINGLE_ELIM DOUBLE_ELIM"`
	MinRank        *float64   `json:"min_rank" validate:"omitempty,gte=0"`
	MaxRank        *float64   `json:"max_rank" validate:"omitempty,gte=0"`
	PrizePool      []float64  `json:"prize_pool" validate:"omitempty,dive,gte=0"`
}

type joinTournamentRequest struct {
	ClubID int64 `json:"club_id" validate:"required,gt=0"`
}

type reportMatchResultRequest struct {
	Club1Score    int   `json:"club1_score" validate:"gte=0"`
	Club2Score    int   `json:"club2_score" validate:"gte=0"`
	WinningClubID int64 `json:"winning_club_id" validate:"required,gt=0"`
}

type submitVerificationRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

type updateAvailabilityRequest struct {
	ClubID    int64 `json:"club_id"`
	PlayerID  int64 `json:"player_id" validate:"required,gt=0"`
	Available *bool `json:"available" validate:"required"`
}

type tournamentDTO struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	StartAt              string    `json:"start_at"`
	EndAt                string    `json:"end_at"`
	LocationID           string    `json:"location_id,omitempty"`
	MaxTeams             int       `json:"max_teams"`
	Format               string    `json:"format"`
	KnockoutFormat       string    `json:"knockout_format"`
	MinRank              float64   `json:"min_rank"`
	MaxRank              float64   `json:"max_rank"`
	JoinedClubIDs        []int64   `json:"joined_club_ids"`
	HostID               int64     `json:"host_id"`
	VerificationStatus   string    `json:"verification_status"`
	VerificationImageURL string    `json:"verification_image_url,omitempty"`
	PrizePool            []float64 `json:"prize_pool"`
	IsOver               bool      `json:"is_over"`
	BracketID            string    `json:"bracket_id,omitempty"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
}

type bracketDTO struct {
	ID            string     `json:"id"`
	TournamentID  string     `json:"tournament_id"`
	Format        string     `json:"format"`
	WinningClubID *int64     `json:"winning_club_id"`
	Rounds        []roundDTO `json:"rounds"`
}

type roundDTO struct {
	ID          string     `json:"id"`
	Side        string     `json:"side"`
	RoundNumber int        `json:"round_number"`
	Matches     []matchDTO `json:"matches"`
}

type matchDTO struct {
	ID            string      `json:"id"`
	MatchNumber   int         `json:"match_number"`
	Club1ID       *int64      `json:"club1_id"`
	Club2ID       *int64      `json:"club2_id"`
	Club1Score    int         `json:"club1_score"`
	Club2Score    int         `json:"club2_score"`
	IsOver        bool        `json:"is_over"`
	WinningClubID *int64      `json:"winning_club_id"`
	AutoResolved  bool        `json:"auto_resolved"`
	WinnerTo      *slotRefDTO `json:"winner_to,omitempty"`
	LoserTo       *slotRefDTO `json:"loser_to,omitempty"`
}

type slotRefDTO struct {
	MatchID string `json:"match_id"`
	Slot    int    `json:"slot"`
}

type matchReportDTO struct {
	Bracket    bracketDTO      `json:"bracket"`
	Touched    []string        `json:"touched_match_ids"`
	Eliminated []int64         `json:"eliminated_club_ids"`
	Final      *finalResultDTO `json:"final,omitempty"`
}

type finalResultDTO struct {
	MatchID     string `json:"match_id"`
	WinnerID    int64  `json:"winner_id"`
	RunnerUpID  int64  `json:"runner_up_id"`
	WinnerScore int    `json:"winner_score"`
	LoserScore  int    `json:"loser_score"`
}

type availabilityDTO struct {
	ClubID    int64  `json:"club_id"`
	PlayerID  int64  `json:"player_id"`
	Available bool   `json:"available"`
	UpdatedAt string `json:"updated_at"`
}

type overviewDTO struct {
	Tournament   tournamentDTO     `json:"tournament"`
	Bracket      *bracketDTO       `json:"bracket"`
	Availability []availabilityDTO `json:"availability"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	clubs := slices.Clone(t.JoinedClubIDs)
	if clubs == nil {
		clubs = []int64{}
	}
	prizes := slices.Clone(t.PrizePool)
	if prizes == nil {
		prizes = []float64{}
	}

	return tournamentDTO{
		ID:                   t.ID,
		Name:                 t.Name,
		StartAt:              formatTime(t.StartAt),
		EndAt:                formatTime(t.EndAt),
		LocationID:           t.LocationID,
		MaxTeams:             t.MaxTeams,
		Format:               string(t.Format),
		KnockoutFormat:       string(t.KnockoutFormat),
		MinRank:              t.MinRank,
		MaxRank:              t.MaxRank,
		JoinedClubIDs:        clubs,
		HostID:               t.HostID,
		VerificationStatus:   string(t.VerificationStatus),
		VerificationImageURL: t.VerificationImageURL,
		PrizePool:            prizes,
		IsOver:               t.IsOver,
		BracketID:            t.BracketID,
		CreatedAt:            formatTime(t.CreatedAt),
		UpdatedAt:            formatTime(t.UpdatedAt),
	}
}

func tournamentsToDTO(items []tournament.Tournament) []tournamentDTO {
	out := make([]tournamentDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tournamentToDTO(t))
	}
	return out
}

func bracketToDTO(b bracket.Bracket) bracketDTO {
	rounds := make([]roundDTO, 0, len(b.Rounds))
	for _, r := range b.Rounds {
		matches := make([]matchDTO, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, matchDTO{
				ID:            m.ID,
				MatchNumber:   m.MatchNumber,
				Club1ID:       m.Club1ID,
				Club2ID:       m.Club2ID,
				Club1Score:    m.Club1Score,
				Club2Score:    m.Club2Score,
				IsOver:        m.IsOver,
				WinningClubID: m.WinningClubID,
				AutoResolved:  m.AutoResolved,
				WinnerTo:      slotRefToDTO(m.WinnerTo),
				LoserTo:       slotRefToDTO(m.LoserTo),
			})
		}
		rounds = append(rounds, roundDTO{
			ID:          r.ID,
			Side:        string(r.Side),
			RoundNumber: r.RoundNumber,
			Matches:     matches,
		})
	}

	return bracketDTO{
		ID:            b.ID,
		TournamentID:  b.TournamentID,
		Format:        string(b.Format),
		WinningClubID: b.WinningClubID,
		Rounds:        rounds,
	}
}

func slotRefToDTO(ref *bracket.SlotRef) *slotRefDTO {
	if ref == nil {
		return nil
	}
	return &slotRefDTO{MatchID: ref.MatchID, Slot: ref.Slot}
}

func matchReportToDTO(report usecase.MatchReport) matchReportDTO {
	touched := make([]string, 0, len(report.Progression.Touched))
	for _, m := range report.Progression.Touched {
		touched = append(touched, m.ID)
	}
	out := matchReportDTO{
		Bracket:    bracketToDTO(report.Bracket),
		Touched:    touched,
		Eliminated: append([]int64{}, report.Progression.Eliminated...),
	}
	if final := report.Progression.Final; final != nil {
		out.Final = &finalResultDTO{
			MatchID:     final.MatchID,
			WinnerID:    final.WinnerID,
			RunnerUpID:  final.LoserID,
			WinnerScore: final.WinnerScore,
			LoserScore:  final.LoserScore,
		}
	}
	return out
}

func availabilityToDTO(items []tournament.PlayerAvailability) []availabilityDTO {
	out := make([]availabilityDTO, 0, len(items))
	for _, item := range items {
		out = append(out, availabilityDTO{
			ClubID:    item.ClubID,
			PlayerID:  item.PlayerID,
			Available: item.Available,
			UpdatedAt: formatTime(item.UpdatedAt),
		})
	}
	return out
}

func overviewToDTO(v usecase.TournamentOverview) overviewDTO {
	out := overviewDTO{
		Tournament:   tournamentToDTO(v.Tournament),
		Availability: availabilityToDTO(v.Availability),
	}
	if v.Bracket != nil {
		b := bracketToDTO(*v.Bracket)
		out.Bracket = &b
	}
	return out
}
