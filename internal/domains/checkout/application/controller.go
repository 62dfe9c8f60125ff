package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/ports"
)

// DeliveryStrategy selects how a delivery option change reaches the display.
type DeliveryStrategy string

const (
	// StrategyPatch rewrites only the changed line's delivery date.
	StrategyPatch DeliveryStrategy = "patch"
	// StrategyFull re-renders the whole order summary.
	StrategyFull DeliveryStrategy = "full"
)

// ParseDeliveryStrategy accepts "patch" or "full"; empty means patch.
func ParseDeliveryStrategy(raw string) (DeliveryStrategy, error) {
	switch DeliveryStrategy(raw) {
	case "", StrategyPatch:
		return StrategyPatch, nil
	case StrategyFull:
		return StrategyFull, nil
	default:
		return "", fmt.Errorf("unknown delivery strategy %q", raw)
	}
}

// Controller keeps a display consistent with the cart. Every public method
// runs under one mutex, so events are handled one at a time and in order.
type Controller struct {
	mu       sync.Mutex
	cart     cartports.Service
	renderer *Renderer
	display  ports.Display
	strategy DeliveryStrategy
	now      func() time.Time
}

type Option func(*Controller)

// WithDeliveryStrategy overrides the default patch strategy.
func WithDeliveryStrategy(strategy DeliveryStrategy) Option {
	return func(c *Controller) {
		if strategy != "" {
			c.strategy = strategy
		}
	}
}

// WithClock sets the reference time used for delivery dates.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func NewController(cart cartports.Service, renderer *Renderer, display ports.Display, opts ...Option) *Controller {
	c := &Controller{
		cart:     cart,
		renderer: renderer,
		display:  display,
		strategy: StrategyPatch,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Strategy reports the active delivery strategy.
func (c *Controller) Strategy() DeliveryStrategy {
	return c.strategy
}

// Render performs a full re-render and refreshes the dependents.
func (c *Controller) Render(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderAll(ctx)
}

// Handle dispatches a UI event to whatever the last render bound.
func (c *Controller) Handle(ctx context.Context, event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display.Dispatch(ctx, event)
}

// AddToCart adds quantity units of a catalog product and re-renders.
func (c *Controller) AddToCart(ctx context.Context, productID string, quantity int) (cartdomain.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.renderer.Product(productID); !ok {
		return cartdomain.CartLine{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	line, err := c.cart.AddLine(ctx, productID, quantity)
	if err != nil {
		return cartdomain.CartLine{}, mapError(err)
	}
	return line, c.renderAll(ctx)
}

// Cart returns the current cart snapshot.
func (c *Controller) Cart(ctx context.Context) cartdomain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Snapshot(ctx)
}

// View computes the checkout view from the current cart without touching
// the display.
func (c *Controller) View(ctx context.Context) domain.CheckoutView {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart := c.cart.Snapshot(ctx)
	return domain.CheckoutView{
		OrderSummary:   c.renderer.BuildOrderSummary(cart, c.now()),
		PaymentSummary: c.renderer.BuildPaymentSummary(cart),
		ItemCount:      ItemCountLabel(cart),
	}
}

// ProductGrid lists the catalog with the cart's total quantity.
func (c *Controller) ProductGrid(ctx context.Context) ([]domain.ProductCard, int) {
	return c.renderer.BuildProductGrid(), c.Cart(ctx).TotalQuantity()
}

func (c *Controller) renderAll(ctx context.Context) error {
	cart := c.cart.Snapshot(ctx)
	summary := c.renderer.BuildOrderSummary(cart, c.now())

	c.display.ClearBindings()
	if err := c.display.ShowOrderSummary(ctx, summary); err != nil {
		return fmt.Errorf("show order summary: %w", err)
	}
	for _, line := range summary.Lines {
		c.bindLine(line)
	}
	return c.refreshDependents(ctx, cart)
}

func (c *Controller) bindLine(line domain.LineView) {
	productID := line.ProductID
	c.display.Bind(domain.Binding{Selector: line.Selectors.QuantityInput, Kind: domain.EventInput},
		func(ctx context.Context, event domain.Event) error {
			return c.onQuantityInput(ctx, productID, event.Value)
		})
	c.display.Bind(domain.Binding{Selector: line.Selectors.DeleteLink, Kind: domain.EventClick},
		func(ctx context.Context, _ domain.Event) error {
			return c.onDelete(ctx, productID)
		})
	for _, choice := range line.Choices {
		optionID := choice.OptionID
		c.display.Bind(domain.Binding{Selector: choice.Selector, Kind: domain.EventChange},
			func(ctx context.Context, _ domain.Event) error {
				return c.onDeliveryChange(ctx, productID, optionID)
			})
	}
}

func (c *Controller) onQuantityInput(ctx context.Context, productID, raw string) error {
	quantity, err := cartdomain.ParseQuantity(raw)
	if err != nil {
		return mapError(err)
	}
	if _, err := c.cart.UpdateQuantity(ctx, productID, quantity); err != nil {
		return mapError(err)
	}
	return c.renderAll(ctx)
}

func (c *Controller) onDelete(ctx context.Context, productID string) error {
	if _, err := c.cart.RemoveLine(ctx, productID); err != nil {
		return mapError(err)
	}
	return c.renderAll(ctx)
}

func (c *Controller) onDeliveryChange(ctx context.Context, productID, optionID string) error {
	changed, err := c.cart.SetDeliveryOption(ctx, productID, optionID)
	if err != nil {
		return mapError(err)
	}
	if c.strategy == StrategyFull {
		return c.renderAll(ctx)
	}
	if changed {
		date := c.renderer.DeliveryDate(optionID, c.now())
		if err := c.display.PatchDeliveryDate(ctx, productID, optionID, date); err != nil {
			return fmt.Errorf("patch delivery date: %w", err)
		}
	}
	return c.refreshDependents(ctx, c.cart.Snapshot(ctx))
}

func (c *Controller) refreshDependents(ctx context.Context, cart cartdomain.Cart) error {
	if err := c.display.ShowPaymentSummary(ctx, c.renderer.BuildPaymentSummary(cart)); err != nil {
		return fmt.Errorf("show payment summary: %w", err)
	}
	if err := c.display.ShowItemCount(ctx, ItemCountLabel(cart)); err != nil {
		return fmt.Errorf("show item count: %w", err)
	}
	return nil
}
