package club

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound           = errors.New("club profile not found")
	ErrServiceUnavailable        = errors.New("club service unavailable")
	ErrRatingUpdateFailed        = errors.New("club rating update failed")
	ErrPenaltyVerificationFailed = errors.New("penalty status verification failed")
)

func wrapCause(sentinel, cause error) error {
	switch {
	case cause == nil:
		return sentinel
	case errors.Is(cause, sentinel):
		return cause
	default:
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
}
