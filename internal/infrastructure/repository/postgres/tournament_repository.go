package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	qb "github.com/riskibarqy/kickoff-tournaments/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t tournament.Tournament) error {
	query, args, err := qb.InsertModel("tournaments", newTournamentInsertModel(t), "")
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	conds := make([]qb.Condition, 0, 3)
	if filter.HostID > 0 {
		conds = append(conds, qb.Eq("host_id", filter.HostID))
	}
	if filter.ClubID > 0 {
		conds = append(conds, qb.Contains("joined_club_ids", filter.ClubID))
	}
	if filter.VerificationStatus != "" {
		conds = append(conds, qb.Eq("verification_status", string(filter.VerificationStatus)))
	}

	builder := qb.Select("*").From("tournaments").Where(conds...).OrderBy("created_at", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) Update(ctx context.Context, t tournament.Tournament) (tournament.Tournament, error) {
	query, args, err := qb.Update("tournaments").
		Set("name", t.Name).
		Set("start_at", t.StartAt).
		Set("end_at", t.EndAt).
		Set("location_id", t.LocationID).
		Set("max_teams", t.MaxTeams).
		Set("format", string(t.Format)).
		Set("knockout_format", string(t.KnockoutFormat)).
		Set("min_rank", t.MinRank).
		Set("max_rank", t.MaxRank).
		Set("joined_club_ids", pq.Int64Array(nonNilInt64s(t.JoinedClubIDs))).
		Set("verification_status", string(t.VerificationStatus)).
		Set("verification_image_url", t.VerificationImageURL).
		Set("prize_pool", pq.Float64Array(nonNilFloat64s(t.PrizePool))).
		Set("updated_at", t.UpdatedAt).
		SetExpr("version", "version + 1").
		Where(
			qb.Eq("id", t.ID),
			qb.Eq("version", t.Version),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build update tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return tournament.Tournament{}, fmt.Errorf("update tournament: %w", err)
		}
		_, exists, getErr := r.GetByID(ctx, t.ID)
		if getErr != nil {
			return tournament.Tournament{}, getErr
		}
		if !exists {
			return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, t.ID)
		}
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s version=%d", tournament.ErrConcurrentModification, t.ID, t.Version)
	}
	return row.toDomain(), nil
}

// Delete relies on ON DELETE CASCADE for the bracket and availability rows.
func (r *TournamentRepository) Delete(ctx context.Context, tournamentID string) error {
	query, args, err := qb.DeleteFrom("tournaments").Where(qb.Eq("id", tournamentID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected delete tournament: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, tournamentID)
	}
	return nil
}

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Upsert(ctx context.Context, a tournament.PlayerAvailability) error {
	query, args, err := qb.InsertModel("player_availability", availabilityTableModel{
		TournamentID: a.TournamentID,
		ClubID:       a.ClubID,
		PlayerID:     a.PlayerID,
		Available:    a.Available,
		UpdatedAt:    a.UpdatedAt,
	}, `ON CONFLICT (tournament_id, club_id, player_id)
DO UPDATE SET available = EXCLUDED.available, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert player availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) ListByTournament(ctx context.Context, tournamentID string, clubID int64) ([]tournament.PlayerAvailability, error) {
	conds := []qb.Condition{qb.Eq("tournament_id", tournamentID)}
	if clubID > 0 {
		conds = append(conds, qb.Eq("club_id", clubID))
	}
	query, args, err := qb.Select("*").From("player_availability").
		Where(conds...).
		OrderBy("club_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player availability query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player availability: %w", err)
	}

	out := make([]tournament.PlayerAvailability, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.PlayerAvailability{
			TournamentID: row.TournamentID,
			ClubID:       row.ClubID,
			PlayerID:     row.PlayerID,
			Available:    row.Available,
			UpdatedAt:    row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}
