// Package display keeps an in-process checkout surface: the mounted view
// model, the event bindings, and an ordered log of the changes applied.
package display

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/ports"
)

var _ ports.Display = (*Page)(nil)

// Markup renders view fragments for the change log. Page records empty
// content when no markup is configured.
type Markup interface {
	OrderSummary(summary domain.OrderSummary) (string, error)
	PaymentSummary(summary domain.PaymentSummary) (string, error)
}

// State is what the page currently shows.
type State struct {
	OrderSummary   domain.OrderSummary
	PaymentSummary domain.PaymentSummary
	ItemCount      string
}

// Page implements ports.Display in memory.
type Page struct {
	mu       sync.Mutex
	markup   Markup
	state    State
	bindings map[domain.Binding]ports.Handler
	changes  []domain.Change
}

type Option func(*Page)

// WithMarkup renders fragment content for replace changes.
func WithMarkup(markup Markup) Option {
	return func(p *Page) { p.markup = markup }
}

func NewPage(opts ...Option) *Page {
	p := &Page{bindings: make(map[domain.Binding]ports.Handler)}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Page) ShowOrderSummary(_ context.Context, summary domain.OrderSummary) error {
	content := ""
	if p.markup != nil {
		var err error
		if content, err = p.markup.OrderSummary(summary); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.OrderSummary = summary.Clone()
	p.changes = append(p.changes, domain.Change{Selector: domain.OrderSummarySelector, Op: domain.OpReplace, Content: content})
	return nil
}

func (p *Page) PatchDeliveryDate(_ context.Context, productID, deliveryOptionID, date string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	lines := p.state.OrderSummary.Lines
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		lines[i].DeliveryDate = date
		lines[i].DeliveryOptionID = deliveryOptionID
		for j := range lines[i].Choices {
			lines[i].Choices[j].Checked = lines[i].Choices[j].OptionID == deliveryOptionID
		}
		p.changes = append(p.changes, domain.Change{
			Selector: lines[i].Selectors.DeliveryDate,
			Op:       domain.OpSetText,
			Content:  "Delivery date: " + date,
		})
		return nil
	}
	return fmt.Errorf("line %s is not mounted", productID)
}

func (p *Page) ShowPaymentSummary(_ context.Context, summary domain.PaymentSummary) error {
	content := ""
	if p.markup != nil {
		var err error
		if content, err = p.markup.PaymentSummary(summary); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.PaymentSummary = summary
	p.changes = append(p.changes, domain.Change{Selector: domain.PaymentSummarySelector, Op: domain.OpReplace, Content: content})
	return nil
}

func (p *Page) ShowItemCount(_ context.Context, label string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ItemCount = label
	p.changes = append(p.changes, domain.Change{Selector: domain.ItemCountSelector, Op: domain.OpSetText, Content: label})
	return nil
}

func (p *Page) Bind(binding domain.Binding, handler ports.Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if handler == nil {
		delete(p.bindings, binding)
		return
	}
	p.bindings[binding] = handler
}

func (p *Page) ClearBindings() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.bindings)
}

// Dispatch runs the handler bound to the event. The page lock is released
// before the handler runs so it can re-render.
func (p *Page) Dispatch(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	handler, ok := p.bindings[event.Binding()]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s on %s", ports.ErrUnboundEvent, event.Kind, event.Selector)
	}
	return handler(ctx, event)
}

// Bindings lists the installed bindings, sorted by selector then kind.
func (p *Page) Bindings() []domain.Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Binding, 0, len(p.bindings))
	for b := range p.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Selector != out[j].Selector {
			return out[i].Selector < out[j].Selector
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Current returns a copy of what the page shows.
func (p *Page) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	state := p.state
	state.OrderSummary = p.state.OrderSummary.Clone()
	return state
}

// Drain returns and forgets the changes applied since the last call.
func (p *Page) Drain() []domain.Change {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.changes
	p.changes = nil
	return out
}
