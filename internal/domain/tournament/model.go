package tournament

import (
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
)

// Format is the number of players per side on the pitch.
type Format string

const (
	FormatFiveSide   Format = "FIVE_SIDE"
	FormatSevenSide  Format = "SEVEN_SIDE"
	FormatElevenSide Format = "ELEVEN_SIDE"
)

func (f Format) Valid() bool {
	switch f {
	case FormatFiveSide, FormatSevenSide, FormatElevenSide:
		return true
	default:
		return false
	}
}

type VerificationStatus string

const (
	VerificationAwaitingPayment  VerificationStatus = "AWAITING_PAYMENT"
	VerificationPaymentCompleted VerificationStatus = "PAYMENT_COMPLETED"
	VerificationPending          VerificationStatus = "PENDING"
	VerificationApproved         VerificationStatus = "APPROVED"
	VerificationRejected         VerificationStatus = "REJECTED"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationAwaitingPayment, VerificationPaymentCompleted, VerificationPending, VerificationApproved, VerificationRejected:
		return true
	default:
		return false
	}
}

// CanMoveTo reports whether the verification workflow allows next after s.
func (s VerificationStatus) CanMoveTo(next VerificationStatus) bool {
	switch s {
	case VerificationAwaitingPayment:
		return next == VerificationPaymentCompleted
	case VerificationPaymentCompleted:
		return next == VerificationPending
	case VerificationPending:
		return next == VerificationApproved || next == VerificationRejected
	default:
		return false
	}
}

// Timeline filters a club's tournaments relative to now.
type Timeline string

const (
	TimelineUpcoming Timeline = "UPCOMING"
	TimelineCurrent  Timeline = "CURRENT"
	TimelinePast     Timeline = "PAST"
)

func (t Timeline) Valid() bool {
	switch t {
	case TimelineUpcoming, TimelineCurrent, TimelinePast:
		return true
	default:
		return false
	}
}

type Tournament struct {
	ID                   string
	Name                 string
	StartAt              time.Time
	EndAt                time.Time
	LocationID           string
	MaxTeams             int
	Format               Format
	KnockoutFormat       bracket.Format
	MinRank              float64
	MaxRank              float64
	JoinedClubIDs        []int64
	HostID               int64
	VerificationStatus   VerificationStatus
	VerificationImageURL string
	PrizePool            []float64
	IsOver               bool
	BracketID            string
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	if t.StartAt.IsZero() || t.EndAt.IsZero() {
		return fmt.Errorf("tournament schedule is required")
	}
	if t.EndAt.Before(t.StartAt) {
		return fmt.Errorf("tournament must end after it starts")
	}
	if t.MaxTeams < 2 {
		return fmt.Errorf("max teams must be >= 2")
	}
	if len(t.JoinedClubIDs) > t.MaxTeams {
		return fmt.Errorf("joined clubs exceed max teams")
	}
	if !t.Format.Valid() {
		return fmt.Errorf("invalid tournament format: %q", t.Format)
	}
	if !t.KnockoutFormat.Valid() {
		return fmt.Errorf("invalid knockout format: %q", t.KnockoutFormat)
	}
	if t.MinRank > t.MaxRank {
		return fmt.Errorf("min rank must not exceed max rank")
	}
	if !t.VerificationStatus.Valid() {
		return fmt.Errorf("invalid verification status: %q", t.VerificationStatus)
	}
	for _, prize := range t.PrizePool {
		if prize < 0 {
			return fmt.Errorf("prize pool entries must be >= 0")
		}
	}

	return nil
}

func (t Tournament) HasClub(clubID int64) bool {
	return slices.Contains(t.JoinedClubIDs, clubID)
}

func (t Tournament) Full() bool {
	return len(t.JoinedClubIDs) >= t.MaxTeams
}

func (t Tournament) HasBracket() bool {
	return t.BracketID != ""
}

// InTimeline places the tournament on a club's timeline at now.
func (t Tournament) InTimeline(tl Timeline, now time.Time) bool {
	past := t.IsOver || now.After(t.EndAt)
	switch tl {
	case TimelineUpcoming:
		return !past && now.Before(t.StartAt)
	case TimelineCurrent:
		return !past && !now.Before(t.StartAt)
	case TimelinePast:
		return past
	default:
		return false
	}
}

// WithoutClub returns the joined list without clubID, keeping join order.
func (t Tournament) WithoutClub(clubID int64) []int64 {
	out := make([]int64, 0, len(t.JoinedClubIDs))
	for _, id := range t.JoinedClubIDs {
		if id != clubID {
			out = append(out, id)
		}
	}
	return out
}

// PlayerAvailability is a player's declared availability for a tournament.
type PlayerAvailability struct {
	TournamentID string
	ClubID       int64
	PlayerID     int64
	Available    bool
	UpdatedAt    time.Time
}
