package club

import "time"

// Role is the requester's relationship to a club.
type Role string

const (
	RoleCaptain Role = "captain"
	RoleMember  Role = "member"
	RoleNone    Role = "none"
)

type PenaltyType string

const (
	PenaltyNone        PenaltyType = "NONE"
	PenaltyBlacklisted PenaltyType = "BLACKLISTED"
	PenaltyReported    PenaltyType = "REPORTED"
)

type PenaltyStatus struct {
	BanUntil *time.Time
	Type     PenaltyType
}

// Active reports whether an unexpired ban exists at now.
func (p PenaltyStatus) Active(now time.Time) bool {
	if p.BanUntil == nil {
		return false
	}
	return now.Before(*p.BanUntil)
}

// Profile is the club-service view of a club used by tournament rules.
type Profile struct {
	ID              int64
	Name            string
	Elo             float64
	RatingDeviation float64
	CaptainID       int64
	PlayerIDs       []int64
	Penalty         PenaltyStatus
}

func (p Profile) RoleOf(userID int64) Role {
	if userID <= 0 {
		return RoleNone
	}
	if p.CaptainID == userID {
		return RoleCaptain
	}
	for _, id := range p.PlayerIDs {
		if id == userID {
			return RoleMember
		}
	}
	return RoleNone
}

type LookupOutcome string

const (
	LookupFound       LookupOutcome = "found"
	LookupNotFound    LookupOutcome = "not_found"
	LookupUnavailable LookupOutcome = "unavailable"
)

// ProfileResult carries a profile lookup outcome so callers pick their own
// retry policy. Err is set for every outcome except LookupFound.
type ProfileResult struct {
	Profile Profile
	Outcome LookupOutcome
	Err     error
}

// Error maps the outcome onto the club error taxonomy.
func (r ProfileResult) Error() error {
	switch r.Outcome {
	case LookupFound:
		return nil
	case LookupNotFound:
		return wrapCause(ErrProfileNotFound, r.Err)
	default:
		return wrapCause(ErrServiceUnavailable, r.Err)
	}
}
