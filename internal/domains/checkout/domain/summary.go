// Package domain holds the checkout view model produced from a cart snapshot.
package domain

// OrderSummary is the rendered list of cart lines, in cart order.
type OrderSummary struct {
	Lines []LineView
}

// Line returns the view for productID.
func (s OrderSummary) Line(productID string) (LineView, bool) {
	for _, line := range s.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return LineView{}, false
}

// Clone returns a deep copy.
func (s OrderSummary) Clone() OrderSummary {
	if s.Lines == nil {
		return OrderSummary{}
	}
	out := OrderSummary{Lines: make([]LineView, len(s.Lines))}
	for i, line := range s.Lines {
		out.Lines[i] = line
		out.Lines[i].Choices = append([]DeliveryChoice(nil), line.Choices...)
	}
	return out
}

// LineView is one rendered cart item.
type LineView struct {
	ProductID        string
	ProductName      string
	ProductImage     string
	PriceString      string
	Quantity         int
	DeliveryOptionID string
	DeliveryDate     string
	Selectors        LineSelectors
	Choices          []DeliveryChoice
}

// LineSelectors address the interactive parts of a line.
type LineSelectors struct {
	Container     string
	DeliveryDate  string
	QuantityInput string
	DeleteLink    string
}

// DeliveryChoice is one radio input under a line.
type DeliveryChoice struct {
	OptionID    string
	Selector    string
	InputID     string
	InputName   string
	DateString  string
	PriceString string
	Checked     bool
}

// PaymentSummary totals the cart. Amounts are in cents; the *String fields
// are formatted for display without a currency sign.
type PaymentSummary struct {
	ItemCount           int
	ItemsCents          int64
	ShippingCents       int64
	TotalBeforeTaxCents int64
	TaxCents            int64
	TotalCents          int64

	ItemsString          string
	ShippingString       string
	TotalBeforeTaxString string
	TaxString            string
	TotalString          string
}

// ProductCard is one tile of the product grid.
type ProductCard struct {
	ProductID   string
	Name        string
	Image       string
	RatingImage string
	RatingCount int
	PriceString string
}

// CheckoutView bundles everything shown on the checkout page.
type CheckoutView struct {
	OrderSummary   OrderSummary
	PaymentSummary PaymentSummary
	ItemCount      string
}
