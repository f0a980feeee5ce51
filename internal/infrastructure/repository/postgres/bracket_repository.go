package postgres

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	qb "github.com/riskibarqy/kickoff-tournaments/internal/platform/querybuilder"
)

type BracketRepository struct {
	db *sqlx.DB
}

func NewBracketRepository(db *sqlx.DB) *BracketRepository {
	return &BracketRepository{db: db}
}

// Create stores the bracket and links it to its tournament in one
// transaction. The tournament row is locked so only one bracket can win.
func (r *BracketRepository) Create(ctx context.Context, b bracket.Bracket) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create bracket: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", b.TournamentID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock tournament query: %w", err)
	}
	var t tournamentTableModel
	if err := tx.GetContext(ctx, &t, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: tournament=%s", tournament.ErrTournamentNotFound, b.TournamentID)
		}
		return fmt.Errorf("lock tournament: %w", err)
	}
	if t.BracketID.Valid {
		return fmt.Errorf("%w: tournament=%s", bracket.ErrBracketAlreadyCreated, b.TournamentID)
	}

	losses, err := encodeLosses(b.Losses)
	if err != nil {
		return err
	}
	bracketQuery, bracketArgs, err := qb.InsertModel("brackets", bracketTableModel{
		ID:            b.ID,
		TournamentID:  b.TournamentID,
		Format:        string(b.Format),
		WinningClubID: nullInt64(b.WinningClubID),
		Losses:        losses,
		CreatedAt:     b.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bracket query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, bracketQuery, bracketArgs...); err != nil {
		return fmt.Errorf("insert bracket: %w", err)
	}

	rounds := make([]roundTableModel, 0, len(b.Rounds))
	matches := make([]matchTableModel, 0)
	for i, round := range b.Rounds {
		rounds = append(rounds, roundTableModel{
			ID:          round.ID,
			BracketID:   b.ID,
			Side:        string(round.Side),
			RoundNumber: round.RoundNumber,
			Position:    i,
		})
		for _, m := range round.Matches {
			matches = append(matches, newMatchTableModel(b.ID, m))
		}
	}

	roundsQuery, roundsArgs, err := qb.InsertModels("bracket_rounds", rounds, "")
	if err != nil {
		return fmt.Errorf("build insert bracket rounds query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, roundsQuery, roundsArgs...); err != nil {
		return fmt.Errorf("insert bracket rounds: %w", err)
	}

	matchesQuery, matchesArgs, err := qb.InsertModels("bracket_matches", matches, "")
	if err != nil {
		return fmt.Errorf("build insert bracket matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, matchesQuery, matchesArgs...); err != nil {
		return fmt.Errorf("insert bracket matches: %w", err)
	}

	linkQuery, linkArgs, err := qb.Update("tournaments").
		Set("bracket_id", b.ID).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", b.TournamentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build link bracket query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, linkQuery, linkArgs...); err != nil {
		return fmt.Errorf("link bracket to tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create bracket tx: %w", err)
	}
	return nil
}

func (r *BracketRepository) GetByID(ctx context.Context, bracketID string) (bracket.Bracket, bool, error) {
	return r.get(ctx, qb.Eq("id", bracketID))
}

func (r *BracketRepository) GetByTournament(ctx context.Context, tournamentID string) (bracket.Bracket, bool, error) {
	return r.get(ctx, qb.Eq("tournament_id", tournamentID))
}

func (r *BracketRepository) get(ctx context.Context, cond qb.Condition) (bracket.Bracket, bool, error) {
	query, args, err := qb.Select("*").From("brackets").Where(cond).ToSQL()
	if err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("build get bracket query: %w", err)
	}
	var row bracketTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bracket.Bracket{}, false, nil
		}
		return bracket.Bracket{}, false, fmt.Errorf("get bracket: %w", err)
	}

	roundsQuery, roundsArgs, err := qb.Select("*").From("bracket_rounds").
		Where(qb.Eq("bracket_id", row.ID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("build select bracket rounds query: %w", err)
	}
	var rounds []roundTableModel
	if err := r.db.SelectContext(ctx, &rounds, roundsQuery, roundsArgs...); err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("select bracket rounds: %w", err)
	}

	matchesQuery, matchesArgs, err := qb.Select("*").From("bracket_matches").
		Where(qb.Eq("bracket_id", row.ID)).
		OrderBy("match_number").
		ToSQL()
	if err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("build select bracket matches query: %w", err)
	}
	var matches []matchTableModel
	if err := r.db.SelectContext(ctx, &matches, matchesQuery, matchesArgs...); err != nil {
		return bracket.Bracket{}, false, fmt.Errorf("select bracket matches: %w", err)
	}

	losses, err := decodeLosses(row.Losses)
	if err != nil {
		return bracket.Bracket{}, false, err
	}

	byRound := make(map[string][]bracket.Match, len(rounds))
	for _, m := range matches {
		byRound[m.RoundID] = append(byRound[m.RoundID], m.toDomain())
	}

	b := bracket.Bracket{
		ID:            row.ID,
		TournamentID:  row.TournamentID,
		Format:        bracket.Format(row.Format),
		WinningClubID: int64Ptr(row.WinningClubID),
		Losses:        losses,
		CreatedAt:     row.CreatedAt.UTC(),
		Rounds:        make([]bracket.Round, 0, len(rounds)),
	}
	for _, round := range rounds {
		b.Rounds = append(b.Rounds, bracket.Round{
			ID:          round.ID,
			BracketID:   row.ID,
			Side:        bracket.Side(round.Side),
			RoundNumber: round.RoundNumber,
			Matches:     byRound[round.ID],
		})
	}
	return b, true, nil
}

// SaveProgression writes every touched match guarded by its version. Any
// stale version aborts the whole progression.
func (r *BracketRepository) SaveProgression(ctx context.Context, b bracket.Bracket, p bracket.Progression) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save progression: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range p.Touched {
		row := newMatchTableModel(b.ID, m)
		query, args, err := qb.Update("bracket_matches").
			Set("club1_id", row.Club1ID).
			Set("club2_id", row.Club2ID).
			Set("club1_score", row.Club1Score).
			Set("club2_score", row.Club2Score).
			Set("is_over", row.IsOver).
			Set("winning_club_id", row.WinningClubID).
			Set("auto_resolved", row.AutoResolved).
			SetExpr("version", "version + 1").
			Where(
				qb.Eq("id", m.ID),
				qb.Eq("bracket_id", b.ID),
				qb.Eq("version", m.Version),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update bracket match query: %w", err)
		}
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update bracket match %s: %w", m.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected update bracket match: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: match=%s version=%d", bracket.ErrConcurrentProgressionConflict, m.ID, m.Version)
		}
	}

	if update, ok := bracketProgressionUpdate(b.ID, p); ok {
		bracketQuery, bracketArgs, err := update.ToSQL()
		if err != nil {
			return fmt.Errorf("build update bracket query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, bracketQuery, bracketArgs...); err != nil {
			return fmt.Errorf("update bracket: %w", err)
		}
	}

	if p.Final != nil {
		overQuery, overArgs, err := qb.Update("tournaments").
			Set("is_over", true).
			SetExpr("version", "version + 1").
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", b.TournamentID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build close tournament query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, overQuery, overArgs...); err != nil {
			return fmt.Errorf("close tournament: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save progression tx: %w", err)
	}
	return nil
}

// bracketProgressionUpdate adds the progression's loss deltas to the stored
// counts in one statement, so disjoint reports committed from the same
// snapshot never drop each other's losses.
func bracketProgressionUpdate(bracketID string, p bracket.Progression) (*qb.UpdateBuilder, bool) {
	update := qb.Update("brackets")
	changed := false
	if len(p.LossDeltas) > 0 {
		clubIDs := make([]int64, 0, len(p.LossDeltas))
		for clubID := range p.LossDeltas {
			clubIDs = append(clubIDs, clubID)
		}
		slices.Sort(clubIDs)

		expr := "losses"
		args := make([]any, 0, 3*len(clubIDs))
		for _, clubID := range clubIDs {
			key := strconv.FormatInt(clubID, 10)
			expr = "jsonb_set(" + expr + ", ARRAY[?]::text[], to_jsonb(COALESCE((losses->>?)::int, 0) + ?))"
			args = append(args, key, key, p.LossDeltas[clubID])
		}
		update = update.SetExpr("losses", expr, args...)
		changed = true
	}
	if p.Final != nil {
		update = update.Set("winning_club_id", p.Final.WinnerID)
		changed = true
	}
	return update.Where(qb.Eq("id", bracketID)), changed
}

func encodeLosses(losses map[int64]int) ([]byte, error) {
	out := make(map[string]int, len(losses))
	for clubID, n := range losses {
		out[strconv.FormatInt(clubID, 10)] = n
	}
	raw, err := sonic.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode bracket losses: %w", err)
	}
	return raw, nil
}

func decodeLosses(raw []byte) (map[int64]int, error) {
	out := make(map[int64]int)
	if len(raw) == 0 {
		return out, nil
	}
	var decoded map[string]int
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode bracket losses: %w", err)
	}
	for key, n := range decoded {
		clubID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode bracket losses: club id %q: %w", key, err)
		}
		out[clubID] = n
	}
	return out, nil
}
