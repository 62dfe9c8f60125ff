package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
)

var (
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	ErrCorruptSnapshot  = errors.New("cart snapshot is corrupt")
)

// SnapshotStore loads and saves the complete cart in one piece.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
