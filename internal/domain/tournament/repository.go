package tournament

import "context"

// ListFilter narrows tournament listings; zero fields match everything.
type ListFilter struct {
	HostID             int64
	ClubID             int64
	VerificationStatus VerificationStatus
	Limit              int
}

type Repository interface {
	Create(ctx context.Context, t Tournament) error
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Tournament, error)
	// Update stores t when the stored version equals t.Version and bumps it.
	// A mismatch returns ErrConcurrentModification.
	Update(ctx context.Context, t Tournament) (Tournament, error)
	// Delete removes the tournament together with its bracket and availability.
	Delete(ctx context.Context, tournamentID string) error
}

type AvailabilityRepository interface {
	Upsert(ctx context.Context, a PlayerAvailability) error
	ListByTournament(ctx context.Context, tournamentID string, clubID int64) ([]PlayerAvailability, error)
}
