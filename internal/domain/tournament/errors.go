package tournament

import "errors"

var (
	ErrTournamentNotFound            = errors.New("tournament not found")
	ErrTournamentOver                = errors.New("tournament is over")
	ErrTournamentFull                = errors.New("tournament is full")
	ErrInvalidJoinRole               = errors.New("only the club captain can join a tournament")
	ErrClubAlreadyJoined             = errors.New("club already joined the tournament")
	ErrClubNotJoined                 = errors.New("club has not joined the tournament")
	ErrClubEloTooLow                 = errors.New("club elo is below the tournament minimum")
	ErrClubEloTooHigh                = errors.New("club elo is above the tournament maximum")
	ErrClubBlacklisted               = errors.New("club has an active penalty")
	ErrEligibilityCheckFailed        = errors.New("club eligibility could not be verified")
	ErrNotHost                       = errors.New("only the tournament host can do this")
	ErrBracketNotCreated             = errors.New("tournament bracket has not been created")
	ErrBracketLocked                 = errors.New("tournament bracket already exists")
	ErrNoClubIndicated               = errors.New("club id is required")
	ErrInvalidVerificationTransition = errors.New("invalid verification status transition")
	ErrConcurrentModification        = errors.New("tournament was modified concurrently")
)
