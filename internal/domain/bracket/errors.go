package bracket

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientMatches           = errors.New("bracket needs at least two clubs")
	ErrUnsupportedFormat             = errors.New("unsupported knockout format")
	ErrDuplicateClub                 = errors.New("club appears more than once in the seeding")
	ErrBracketAlreadyCreated         = errors.New("bracket already created for tournament")
	ErrMatchNotFound                 = errors.New("match not found in bracket")
	ErrMatchAutoResolved             = errors.New("match was resolved automatically")
	ErrMatchAlreadyFinalized         = errors.New("match result already reported")
	ErrInvalidWinningClub            = errors.New("winning club is not a participant of the match")
	ErrInvalidScore                  = errors.New("scores must not be negative")
	ErrConcurrentProgressionConflict = errors.New("bracket progression conflicted with a concurrent update")
)

// ErrMatchAwaitingParticipants matches ErrInvalidWinningClub as well: no club
// can win a match whose slots are not both filled.
var ErrMatchAwaitingParticipants = fmt.Errorf("%w: match is awaiting participants", ErrInvalidWinningClub)
