package application

import (
	"fmt"
	"time"

	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-gin-checkout/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-checkout/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-checkout/internal/platform/money"
)

// taxRatePercent applies to the total before tax.
const taxRatePercent = 10

// Renderer builds checkout view models from a cart snapshot and the
// read-only catalogs. All methods are pure.
type Renderer struct {
	products catalogports.ProductCatalog
	delivery catalogports.DeliveryCatalog
}

func NewRenderer(products catalogports.ProductCatalog, delivery catalogports.DeliveryCatalog) *Renderer {
	return &Renderer{products: products, delivery: delivery}
}

// Product looks up a catalog product.
func (r *Renderer) Product(id string) (catalogdomain.Product, bool) {
	return r.products.Product(id)
}

// BuildOrderSummary renders every cart line whose product is known, in cart
// order. Unknown delivery options fall back to the first catalog option.
func (r *Renderer) BuildOrderSummary(cart cartdomain.Cart, now time.Time) domain.OrderSummary {
	summary := domain.OrderSummary{}
	options := r.delivery.DeliveryOptions()
	for _, line := range cart.Lines {
		product, ok := r.products.Product(line.ProductID)
		if !ok {
			continue
		}
		selected, _ := catalogports.ResolveDeliveryOption(r.delivery, line.DeliveryOptionID)
		view := domain.LineView{
			ProductID:        product.ID,
			ProductName:      product.Name,
			ProductImage:     product.Image,
			PriceString:      "$" + money.FormatCents(product.PriceCents),
			Quantity:         line.Quantity,
			DeliveryOptionID: line.DeliveryOptionID,
			DeliveryDate:     catalogdomain.FormatDeliveryDate(selected, now),
			Selectors:        domain.SelectorsFor(product.ID),
			Choices:          make([]domain.DeliveryChoice, 0, len(options)),
		}
		for _, option := range options {
			view.Choices = append(view.Choices, domain.DeliveryChoice{
				OptionID:    option.ID,
				Selector:    domain.DeliveryOptionSelector(product.ID, option.ID),
				InputID:     fmt.Sprintf("delivery-%s-%s", product.ID, option.ID),
				InputName:   "delivery-option-" + product.ID,
				DateString:  catalogdomain.FormatDeliveryDate(option, now),
				PriceString: shippingPriceString(option),
				Checked:     option.ID == line.DeliveryOptionID,
			})
		}
		summary.Lines = append(summary.Lines, view)
	}
	return summary
}

// DeliveryDate formats the arrival date for optionID, falling back to the
// first catalog option.
func (r *Renderer) DeliveryDate(optionID string, now time.Time) string {
	option, _ := catalogports.ResolveDeliveryOption(r.delivery, optionID)
	return catalogdomain.FormatDeliveryDate(option, now)
}

// BuildPaymentSummary totals the known lines of cart.
func (r *Renderer) BuildPaymentSummary(cart cartdomain.Cart) domain.PaymentSummary {
	var items, shipping int64
	for _, line := range cart.Lines {
		product, ok := r.products.Product(line.ProductID)
		if !ok {
			continue
		}
		items += product.PriceCents * int64(line.Quantity)
		option, _ := catalogports.ResolveDeliveryOption(r.delivery, line.DeliveryOptionID)
		shipping += option.PriceCents
	}
	beforeTax := items + shipping
	tax := money.Percent(beforeTax, taxRatePercent).Round(0).IntPart()
	total := beforeTax + tax
	return domain.PaymentSummary{
		ItemCount:            cart.TotalQuantity(),
		ItemsCents:           items,
		ShippingCents:        shipping,
		TotalBeforeTaxCents:  beforeTax,
		TaxCents:             tax,
		TotalCents:           total,
		ItemsString:          money.FormatCents(items),
		ShippingString:       money.FormatCents(shipping),
		TotalBeforeTaxString: money.FormatCents(beforeTax),
		TaxString:            money.FormatCents(tax),
		TotalString:          money.FormatCents(total),
	}
}

// BuildProductGrid lists the catalog in order.
func (r *Renderer) BuildProductGrid() []domain.ProductCard {
	products := r.products.Products()
	cards := make([]domain.ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, domain.ProductCard{
			ProductID:   p.ID,
			Name:        p.Name,
			Image:       p.Image,
			RatingImage: p.RatingImage(),
			RatingCount: p.Rating.Count,
			PriceString: "$" + money.FormatCents(p.PriceCents),
		})
	}
	return cards
}

// ItemCountLabel sums quantities across all lines: "0 Item", "1 Item", "3 Items".
func ItemCountLabel(cart cartdomain.Cart) string {
	n := cart.TotalQuantity()
	if n == 0 || n == 1 {
		return fmt.Sprintf("%d Item", n)
	}
	return fmt.Sprintf("%d Items", n)
}

func shippingPriceString(option catalogdomain.DeliveryOption) string {
	if option.IsFree() {
		return "FREE"
	}
	return "$" + money.FormatCents(option.PriceCents) + " -"
}
