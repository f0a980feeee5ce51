package club

import "context"

// RatingClient is the club-service boundary for ratings and penalties.
type RatingClient interface {
	GetClubProfile(ctx context.Context, clubID int64) (Profile, error)
	UpdateRating(ctx context.Context, clubID int64, elo, ratingDeviation float64) error
	// VerifyNoPenalty returns true when the club has no active penalty.
	VerifyNoPenalty(ctx context.Context, clubID int64) (bool, error)
}

// RoleResolver answers which role a user holds in a club.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID, clubID int64) (Role, error)
}
