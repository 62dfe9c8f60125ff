package mapper

import (
	"strings"

	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
)

// CartLine is the HTTP representation of a cart line.
type CartLine struct {
	ProductID        string `json:"productId"`
	Quantity         int    `json:"quantity"`
	DeliveryOptionID string `json:"deliveryOptionId"`
}

// Cart is the GET /api/cart payload.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	ItemCount string     `json:"itemCount"`
}

// DefaultAddQuantity applies when an add request omits quantity.
const DefaultAddQuantity = 1

// AddLineRequest is the POST /api/cart/lines body and the product grid form.
type AddLineRequest struct {
	ProductID string `json:"productId" form:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" form:"quantity"`
}

// QuantityOrDefault returns the requested quantity, or DefaultAddQuantity
// when the field was omitted. Explicit values pass through unchecked.
func (r AddLineRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return DefaultAddQuantity
	}
	return *r.Quantity
}

// AddLineResponse echoes the resulting line.
type AddLineResponse struct {
	Line      CartLine `json:"line"`
	ItemCount string   `json:"itemCount"`
}

// DeliveryChoice is one selectable shipping option of a line.
type DeliveryChoice struct {
	OptionID    string `json:"optionId"`
	Selector    string `json:"selector"`
	Date        string `json:"date"`
	PriceString string `json:"priceString"`
	Checked     bool   `json:"checked"`
}

// LineSelectors address the interactive parts of a rendered line.
type LineSelectors struct {
	Container     string `json:"container"`
	DeliveryDate  string `json:"deliveryDate"`
	QuantityInput string `json:"quantityInput"`
	DeleteLink    string `json:"deleteLink"`
}

// OrderLine is a rendered line of the order summary.
type OrderLine struct {
	ProductID        string           `json:"productId"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	PriceString      string           `json:"priceString"`
	Quantity         int              `json:"quantity"`
	DeliveryOptionID string           `json:"deliveryOptionId"`
	DeliveryDate     string           `json:"deliveryDate"`
	Selectors        LineSelectors    `json:"selectors"`
	DeliveryOptions  []DeliveryChoice `json:"deliveryOptions"`
}

// PaymentSummary carries the formatted totals.
type PaymentSummary struct {
	ItemCount      int    `json:"itemCount"`
	Items          string `json:"items"`
	Shipping       string `json:"shipping"`
	TotalBeforeTax string `json:"totalBeforeTax"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
}

// Summary is the GET /api/checkout/summary payload.
type Summary struct {
	OrderSummary   []OrderLine    `json:"orderSummary"`
	PaymentSummary PaymentSummary `json:"paymentSummary"`
	ItemCount      string         `json:"itemCount"`
}

// EventRequest is the POST /checkout/events body.
type EventRequest struct {
	Selector string `json:"selector" binding:"required"`
	Event    string `json:"event" binding:"required"`
	Value    string `json:"value"`
}

// EventResponse lists the surface changes the event produced.
type EventResponse struct {
	Changes []domain.Change `json:"changes"`
}

func FromCartLine(line cartdomain.CartLine) CartLine {
	return CartLine{ProductID: line.ProductID, Quantity: line.Quantity, DeliveryOptionID: line.DeliveryOptionID}
}

// FromCart maps the cart and its item-count label.
func FromCart(cart cartdomain.Cart, itemCount string) Cart {
	out := Cart{Lines: make([]CartLine, 0, len(cart.Lines)), ItemCount: itemCount}
	for _, line := range cart.Lines {
		out.Lines = append(out.Lines, FromCartLine(line))
	}
	return out
}

// FromView maps a checkout view.
func FromView(view domain.CheckoutView) Summary {
	out := Summary{
		OrderSummary: make([]OrderLine, 0, len(view.OrderSummary.Lines)),
		PaymentSummary: PaymentSummary{
			ItemCount:      view.PaymentSummary.ItemCount,
			Items:          view.PaymentSummary.ItemsString,
			Shipping:       view.PaymentSummary.ShippingString,
			TotalBeforeTax: view.PaymentSummary.TotalBeforeTaxString,
			Tax:            view.PaymentSummary.TaxString,
			Total:          view.PaymentSummary.TotalString,
		},
		ItemCount: view.ItemCount,
	}
	for _, line := range view.OrderSummary.Lines {
		ol := OrderLine{
			ProductID:        line.ProductID,
			Name:             line.ProductName,
			Image:            line.ProductImage,
			PriceString:      line.PriceString,
			Quantity:         line.Quantity,
			DeliveryOptionID: line.DeliveryOptionID,
			DeliveryDate:     line.DeliveryDate,
			Selectors: LineSelectors{
				Container:     line.Selectors.Container,
				DeliveryDate:  line.Selectors.DeliveryDate,
				QuantityInput: line.Selectors.QuantityInput,
				DeleteLink:    line.Selectors.DeleteLink,
			},
			DeliveryOptions: make([]DeliveryChoice, 0, len(line.Choices)),
		}
		for _, choice := range line.Choices {
			ol.DeliveryOptions = append(ol.DeliveryOptions, DeliveryChoice{
				OptionID:    choice.OptionID,
				Selector:    choice.Selector,
				Date:        choice.DateString,
				PriceString: choice.PriceString,
				Checked:     choice.Checked,
			})
		}
		out.OrderSummary = append(out.OrderSummary, ol)
	}
	return out
}

// ToEvent validates the event name and builds the domain event.
func ToEvent(req EventRequest) (domain.Event, error) {
	kind, err := domain.ParseEventKind(req.Event)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{Selector: strings.TrimSpace(req.Selector), Kind: kind, Value: req.Value}, nil
}

// FromChanges never returns nil so the payload always carries an array.
func FromChanges(changes []domain.Change) EventResponse {
	if changes == nil {
		changes = []domain.Change{}
	}
	return EventResponse{Changes: changes}
}
