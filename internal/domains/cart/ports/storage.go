package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Storage when a key holds no value.
var ErrNotFound = errors.New("storage key not found")

// Storage is a byte-oriented key/value store holding whole snapshots.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
