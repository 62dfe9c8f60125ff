package ports

import (
	"context"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
)

// Service exposes the cart store operations to adapters.
type Service interface {
	AddLine(ctx context.Context, productID string, quantity int) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.QuantityResult, error)
	RemoveLine(ctx context.Context, productID string) (bool, error)
	SetDeliveryOption(ctx context.Context, productID, deliveryOptionID string) (bool, error)
	Snapshot(ctx context.Context) domain.Cart
}
