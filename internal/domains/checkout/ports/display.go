package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
)

// ErrUnboundEvent is returned by Dispatch when no handler matches the event.
var ErrUnboundEvent = errors.New("no handler bound for event")

// Handler reacts to a dispatched UI event.
type Handler func(ctx context.Context, event domain.Event) error

// Display is the surface the checkout controller renders onto.
type Display interface {
	ShowOrderSummary(ctx context.Context, summary domain.OrderSummary) error
	// PatchDeliveryDate updates only the delivery date text and the checked
	// choice of one line.
	PatchDeliveryDate(ctx context.Context, productID, deliveryOptionID, date string) error
	ShowPaymentSummary(ctx context.Context, summary domain.PaymentSummary) error
	ShowItemCount(ctx context.Context, label string) error

	// Bind installs handler for binding, replacing any previous one.
	Bind(binding domain.Binding, handler Handler)
	ClearBindings()
	Dispatch(ctx context.Context, event domain.Event) error
}
