package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get tournament: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation tournaments does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestMatchModelRoundTrip(t *testing.T) {
	club1 := int64(7)
	m := bracket.Match{
		ID:          "m1",
		RoundID:     "r1",
		MatchNumber: 2,
		Club1ID:     &club1,
		WinnerTo:    &bracket.SlotRef{MatchID: "m9", Slot: 2},
		Version:     3,
	}

	row := newMatchTableModel("b1", m)
	if row.Club2ID.Valid || row.LoserToMatchID.Valid {
		t.Fatalf("empty fields must map to NULL: %+v", row)
	}

	got := row.toDomain()
	if got.Club1ID == nil || *got.Club1ID != 7 || got.Club2ID != nil {
		t.Fatalf("unexpected clubs %+v", got)
	}
	if got.WinnerTo == nil || *got.WinnerTo != *m.WinnerTo || got.LoserTo != nil {
		t.Fatalf("unexpected links %+v", got)
	}
	if got.Version != 3 {
		t.Fatalf("version lost")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
