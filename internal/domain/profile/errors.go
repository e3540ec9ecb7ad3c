package profile

import "errors"

var (
	// ErrStoreUnavailable means the backing store could not be reached.
	ErrStoreUnavailable = errors.New("profile store unavailable")
	// ErrMalformedRecord means a stored value could not be decoded as a profile.
	ErrMalformedRecord = errors.New("malformed profile record")
	ErrReadOnly        = errors.New("profile repository is read-only")
)
