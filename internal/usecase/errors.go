package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/whalecast/internal/domain/notification"
	"github.com/riskibarqy/whalecast/internal/domain/profile"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// wrapStoreErr tags store outages so transports can report them as unavailable.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, profile.ErrStoreUnavailable) || errors.Is(err, notification.ErrStoreUnavailable) || errors.Is(err, profile.ErrReadOnly) {
		return fmt.Errorf("%s: %w: %w", op, ErrDependencyUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
