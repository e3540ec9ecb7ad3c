package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrStoreUnavailable means the backing store could not be reached.
var ErrStoreUnavailable = errors.New("notification store unavailable")

// Details is the opaque notification target issued by the hosting frame.
type Details struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

func (d Details) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("notification url is required")
	}
	if d.Token == "" {
		return fmt.Errorf("notification token is required")
	}
	return nil
}

// Key is the bare user id. It shares the store with profiles but not the prefix.
func Key(fid int64) string {
	return strconv.FormatInt(fid, 10)
}

// Repository stores notification details per user.
type Repository interface {
	Get(ctx context.Context, fid int64) (Details, bool, error)
	Set(ctx context.Context, fid int64, details Details) error
	Delete(ctx context.Context, fid int64) error
}
