package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
)

type bracketTableModel struct {
	ID            string        `db:"id"`
	TournamentID  string        `db:"tournament_id"`
	Format        string        `db:"format"`
	WinningClubID sql.NullInt64 `db:"winning_club_id"`
	Losses        []byte        `db:"losses"`
	CreatedAt     time.Time     `db:"created_at"`
}

type roundTableModel struct {
	ID          string `db:"id"`
	BracketID   string `db:"bracket_id"`
	Side        string `db:"side"`
	RoundNumber int    `db:"round_number"`
	Position    int    `db:"position"`
}

type matchTableModel struct {
	ID              string         `db:"id"`
	BracketID       string         `db:"bracket_id"`
	RoundID         string         `db:"round_id"`
	MatchNumber     int            `db:"match_number"`
	Club1ID         sql.NullInt64  `db:"club1_id"`
	Club2ID         sql.NullInt64  `db:"club2_id"`
	Club1Score      int            `db:"club1_score"`
	Club2Score      int            `db:"club2_score"`
	IsOver          bool           `db:"is_over"`
	WinningClubID   sql.NullInt64  `db:"winning_club_id"`
	AutoResolved    bool           `db:"auto_resolved"`
	WinnerToMatchID sql.NullString `db:"winner_to_match_id"`
	WinnerToSlot    sql.NullInt16  `db:"winner_to_slot"`
	LoserToMatchID  sql.NullString `db:"loser_to_match_id"`
	LoserToSlot     sql.NullInt16  `db:"loser_to_slot"`
	Version         int64          `db:"version"`
}

func newMatchTableModel(bracketID string, m bracket.Match) matchTableModel {
	row := matchTableModel{
		ID:            m.ID,
		BracketID:     bracketID,
		RoundID:       m.RoundID,
		MatchNumber:   m.MatchNumber,
		Club1ID:       nullInt64(m.Club1ID),
		Club2ID:       nullInt64(m.Club2ID),
		Club1Score:    m.Club1Score,
		Club2Score:    m.Club2Score,
		IsOver:        m.IsOver,
		WinningClubID: nullInt64(m.WinningClubID),
		AutoResolved:  m.AutoResolved,
		Version:       m.Version,
	}
	if m.WinnerTo != nil {
		row.WinnerToMatchID = sql.NullString{String: m.WinnerTo.MatchID, Valid: true}
		row.WinnerToSlot = sql.NullInt16{Int16: int16(m.WinnerTo.Slot), Valid: true}
	}
	if m.LoserTo != nil {
		row.LoserToMatchID = sql.NullString{String: m.LoserTo.MatchID, Valid: true}
		row.LoserToSlot = sql.NullInt16{Int16: int16(m.LoserTo.Slot), Valid: true}
	}
	return row
}

func (row matchTableModel) toDomain() bracket.Match {
	m := bracket.Match{
		ID:            row.ID,
		RoundID:       row.RoundID,
		MatchNumber:   row.MatchNumber,
		Club1ID:       int64Ptr(row.Club1ID),
		Club2ID:       int64Ptr(row.Club2ID),
		Club1Score:    row.Club1Score,
		Club2Score:    row.Club2Score,
		IsOver:        row.IsOver,
		WinningClubID: int64Ptr(row.WinningClubID),
		AutoResolved:  row.AutoResolved,
		Version:       row.Version,
	}
	if row.WinnerToMatchID.Valid {
		m.WinnerTo = &bracket.SlotRef{MatchID: row.WinnerToMatchID.String, Slot: int(row.WinnerToSlot.Int16)}
	}
	if row.LoserToMatchID.Valid {
		m.LoserTo = &bracket.SlotRef{MatchID: row.LoserToMatchID.String, Slot: int(row.LoserToSlot.Int16)}
	}
	return m
}
