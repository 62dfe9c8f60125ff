package static

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-checkout/internal/shared/ids"
)

var _ ports.DeliveryCatalog = (*DeliveryCatalog)(nil)

type deliveryOptionRecord struct {
	ID           string `validate:"required"`
	DeliveryDays int    `validate:"gte=0"`
	PriceCents   int64  `validate:"gte=0"`
}

var defaultDeliveryOptions = []deliveryOptionRecord{
	{ID: "1", DeliveryDays: 7, PriceCents: 0},
	{ID: "2", DeliveryDays: 3, PriceCents: 499},
	{ID: "3", DeliveryDays: 1, PriceCents: 999},
}

// DeliveryCatalog serves the ordered shipping choices.
type DeliveryCatalog struct {
	options []domain.DeliveryOption
}

// NewDeliveryCatalog returns the built-in delivery options.
func NewDeliveryCatalog() *DeliveryCatalog {
	catalog, err := newDeliveryCatalog(defaultDeliveryOptions)
	if err != nil {
		panic(err)
	}
	return catalog
}

func newDeliveryCatalog(records []deliveryOptionRecord) (*DeliveryCatalog, error) {
	validate := validator.New()
	options := make([]domain.DeliveryOption, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("delivery option %d: %w", i, err)
		}
		options = append(options, domain.DeliveryOption{
			ID:           ids.Normalize(rec.ID),
			DeliveryDays: rec.DeliveryDays,
			PriceCents:   rec.PriceCents,
		})
	}
	return &DeliveryCatalog{options: options}, nil
}

// DeliveryOption returns the first option whose id matches.
func (c *DeliveryCatalog) DeliveryOption(id string) (domain.DeliveryOption, bool) {
	id = ids.Normalize(id)
	for _, option := range c.options {
		if option.ID == id {
			return option, true
		}
	}
	return domain.DeliveryOption{}, false
}

func (c *DeliveryCatalog) DeliveryOptions() []domain.DeliveryOption {
	return append([]domain.DeliveryOption(nil), c.options...)
}
