package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

// Source tells where the initial cart came from.
type Source string

const (
	SourceSnapshot Source = "snapshot"
	SourceDefault  Source = "default"
)

// Store owns the canonical cart and writes the whole cart after every
// effective mutation. A mutation is applied to a copy, saved, and only then
// becomes current, so a failed save leaves the previous state in place.
type Store struct {
	mu        sync.Mutex
	cart      domain.Cart
	snapshots ports.SnapshotStore
	source    Source
}

// Open loads the persisted cart, seeding the default cart when the snapshot
// is missing or corrupt. Other storage failures are returned.
func Open(ctx context.Context, snapshots ports.SnapshotStore) (*Store, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot store is nil")
	}
	cart, err := snapshots.Load(ctx)
	source := SourceSnapshot
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrSnapshotNotFound), errors.Is(err, ports.ErrCorruptSnapshot):
		cart = domain.DefaultCart()
		source = SourceDefault
	default:
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	return &Store{cart: cart.Clone(), snapshots: snapshots, source: source}, nil
}

// Source reports whether the cart was restored or seeded.
func (s *Store) Source() Source {
	return s.source
}

// AddLine adds quantity units of productID, creating the line if needed.
func (s *Store) AddLine(ctx context.Context, productID string, quantity int) (domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, line, err := s.cart.Add(productID, quantity)
	if err != nil {
		return domain.CartLine{}, mapError(err)
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
// Unknown products leave the cart and storage untouched.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.QuantityResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, result := s.cart.SetQuantity(productID, quantity)
	if result == domain.QuantityUnchanged {
		return result, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.QuantityUnchanged, err
	}
	return result, nil
}

// RemoveLine drops the line for productID. Nothing is written when no line
// matched.
func (s *Store) RemoveLine(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cart.Remove(productID)
	if !ok {
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// SetDeliveryOption records the chosen delivery option on an existing line.
func (s *Store) SetDeliveryOption(ctx context.Context, productID, deliveryOptionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cart.SetDeliveryOption(productID, deliveryOptionID)
	if !ok {
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot(_ context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) commit(ctx context.Context, next domain.Cart) error {
	if err := s.snapshots.Save(ctx, next); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	s.cart = next
	return nil
}

var _ ports.Service = (*Store)(nil)
