// Package snapshot serializes the whole cart as a JSON array under a single
// storage key.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

// DefaultKey is the storage key the cart lives under.
const DefaultKey = "cart"

var _ ports.SnapshotStore = (*Store)(nil)

// Store implements ports.SnapshotStore over any ports.Storage backend.
type Store struct {
	storage ports.Storage
	key     string
}

// NewStore binds a snapshot store to key, defaulting to DefaultKey.
func NewStore(storage ports.Storage, key string) *Store {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key}
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ports.ErrNotFound) {
		return domain.Cart{}, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}
	return Decode(data)
}

func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	data, err := Encode(cart)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, s.key, data)
}

// line is the wire shape of a cart line.
type line struct {
	ProductID        identifier  `json:"productId"`
	Quantity         int         `json:"quantity"`
	DeliveryOptionID *identifier `json:"deliveryOptionId,omitempty"`
}

// identifier accepts JSON strings and numbers, since older snapshots stored
// numeric product ids.
type identifier string

func (id *identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = identifier(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = identifier(strconv.FormatInt(i, 10))
		return nil
	}
	*id = identifier(n.String())
	return nil
}

// Encode renders the cart as a JSON array. An empty cart encodes as [].
func Encode(cart domain.Cart) ([]byte, error) {
	out := make([]line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		optionID := identifier(l.DeliveryOptionID)
		out = append(out, line{
			ProductID:        identifier(l.ProductID),
			Quantity:         l.Quantity,
			DeliveryOptionID: &optionID,
		})
	}
	return json.Marshal(out)
}

// Decode parses a snapshot. Anything that does not describe a valid cart is
// reported as ports.ErrCorruptSnapshot.
func Decode(data []byte) (domain.Cart, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.Cart{}, ports.ErrSnapshotNotFound
	}
	var raw []line
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ports.ErrCorruptSnapshot, err)
	}
	lines := make([]domain.CartLine, 0, len(raw))
	for _, l := range raw {
		optionID := domain.DefaultDeliveryOptionID
		if l.DeliveryOptionID != nil {
			optionID = string(*l.DeliveryOptionID)
		}
		lines = append(lines, domain.CartLine{
			ProductID:        string(l.ProductID),
			Quantity:         l.Quantity,
			DeliveryOptionID: optionID,
		})
	}
	cart, err := domain.NewCart(lines)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %v", ports.ErrCorruptSnapshot, err)
	}
	return cart, nil
}
