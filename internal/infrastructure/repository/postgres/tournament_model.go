package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID                   string          `db:"id"`
	Name                 string          `db:"name"`
	StartAt              time.Time       `db:"start_at"`
	EndAt                time.Time       `db:"end_at"`
	LocationID           string          `db:"location_id"`
	MaxTeams             int             `db:"max_teams"`
	Format               string          `db:"format"`
	KnockoutFormat       string          `db:"knockout_format"`
	MinRank              float64         `db:"min_rank"`
	MaxRank              float64         `db:"max_rank"`
	JoinedClubIDs        pq.Int64Array   `db:"joined_club_ids"`
	HostID               int64           `db:"host_id"`
	VerificationStatus   string          `db:"verification_status"`
	VerificationImageURL string          `db:"verification_image_url"`
	PrizePool            pq.Float64Array `db:"prize_pool"`
	IsOver               bool            `db:"is_over"`
	BracketID            sql.NullString  `db:"bracket_id"`
	Version              int64           `db:"version"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// tournamentInsertModel leaves out bracket_id and is_over; the bracket
// repository owns both.
type tournamentInsertModel struct {
	ID                   string          `db:"id"`
	Name                 string          `db:"name"`
	StartAt              time.Time       `db:"start_at"`
	EndAt                time.Time       `db:"end_at"`
	LocationID           string          `db:"location_id"`
	MaxTeams             int             `db:"max_teams"`
	Format               string          `db:"format"`
	KnockoutFormat       string          `db:"knockout_format"`
	MinRank              float64         `db:"min_rank"`
	MaxRank              float64         `db:"max_rank"`
	JoinedClubIDs        pq.Int64Array   `db:"joined_club_ids"`
	HostID               int64           `db:"host_id"`
	VerificationStatus   string          `db:"verification_status"`
	VerificationImageURL string          `db:"verification_image_url"`
	PrizePool            pq.Float64Array `db:"prize_pool"`
	Version              int64           `db:"version"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

func (row tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:                   row.ID,
		Name:                 row.Name,
		StartAt:              row.StartAt.UTC(),
		EndAt:                row.EndAt.UTC(),
		LocationID:           row.LocationID,
		MaxTeams:             row.MaxTeams,
		Format:               tournament.Format(row.Format),
		KnockoutFormat:       bracket.Format(row.KnockoutFormat),
		MinRank:              row.MinRank,
		MaxRank:              row.MaxRank,
		JoinedClubIDs:        append([]int64{}, row.JoinedClubIDs...),
		HostID:               row.HostID,
		VerificationStatus:   tournament.VerificationStatus(row.VerificationStatus),
		VerificationImageURL: row.VerificationImageURL,
		PrizePool:            append([]float64{}, row.PrizePool...),
		IsOver:               row.IsOver,
		BracketID:            row.BracketID.String,
		Version:              row.Version,
		CreatedAt:            row.CreatedAt.UTC(),
		UpdatedAt:            row.UpdatedAt.UTC(),
	}
}

func newTournamentInsertModel(t tournament.Tournament) tournamentInsertModel {
	return tournamentInsertModel{
		ID:                   t.ID,
		Name:                 t.Name,
		StartAt:              t.StartAt,
		EndAt:                t.EndAt,
		LocationID:           t.LocationID,
		MaxTeams:             t.MaxTeams,
		Format:               string(t.Format),
		KnockoutFormat:       string(t.KnockoutFormat),
		MinRank:              t.MinRank,
		MaxRank:              t.MaxRank,
		JoinedClubIDs:        pq.Int64Array(nonNilInt64s(t.JoinedClubIDs)),
		HostID:               t.HostID,
		VerificationStatus:   string(t.VerificationStatus),
		VerificationImageURL: t.VerificationImageURL,
		PrizePool:            pq.Float64Array(nonNilFloat64s(t.PrizePool)),
		Version:              t.Version,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

type availabilityTableModel struct {
	TournamentID string    `db:"tournament_id"`
	ClubID       int64     `db:"club_id"`
	PlayerID     int64     `db:"player_id"`
	Available    bool      `db:"available"`
	UpdatedAt    time.Time `db:"updated_at"`
}
