package kv

import (
	"context"
	"errors"
)

// ErrUnavailable marks transport failures talking to a backend.
var ErrUnavailable = errors.New("kv store unavailable")

// Store is a flat string-keyed store holding JSON values.
type Store interface {
	// Get returns false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// MGet returns one entry per key, nil where the key does not exist.
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete does not fail when the key is already absent.
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
