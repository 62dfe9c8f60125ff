package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

var _ ports.Storage = (*Storage)(nil)

// DefaultPrefix namespaces checkout keys inside a shared Redis.
const DefaultPrefix = "checkout:"

// Storage keeps snapshots as plain Redis strings without expiry. Calls go
// through a circuit breaker; a missing key does not count as a failure.
type Storage struct {
	client  *goredis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

type Option func(*Storage)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Storage) { s.prefix = prefix }
}

// WithBreakerSettings replaces the default circuit breaker settings.
func WithBreakerSettings(settings gobreaker.Settings) Option {
	return func(s *Storage) { s.breaker = newBreaker(settings) }
}

func NewStorage(client *goredis.Client, opts ...Option) *Storage {
	s := &Storage{
		client: client,
		prefix: DefaultPrefix,
		breaker: newBreaker(gobreaker.Settings{
			Name:    "redis-storage",
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func newBreaker(settings gobreaker.Settings) *gobreaker.CircuitBreaker[[]byte] {
	settings.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ports.ErrNotFound)
	}
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	return s.breaker.Execute(func() ([]byte, error) {
		data, err := s.client.Get(ctx, s.prefix+key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil, ports.ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}
		return data, nil
	})
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	_, err := s.breaker.Execute(func() ([]byte, error) {
		if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
			return nil, fmt.Errorf("redis set failed: %w", err)
		}
		return nil, nil
	})
	return err
}

func (s *Storage) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis storage not configured")
	}
	return nil
}
