package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// Storage is an in-memory key/value backend. Values are copied on the way
// in and out.
type Storage struct {
	entries sync.Map
}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.entries.Load(key)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), value.([]byte)...), nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.entries.Store(key, append([]byte(nil), value...))
	return nil
}
