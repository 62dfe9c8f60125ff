package domain

import (
	"errors"
	"math"

	"github.com/Apurer/go-gin-checkout/internal/shared/ids"
)

// DefaultDeliveryOptionID is assigned to lines added without a choice.
const DefaultDeliveryOptionID = "1"

var (
	ErrEmptyProductID  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrDuplicateLine   = errors.New("cart already holds a line for this product")
)

// CartLine is one product entry in the cart.
type CartLine struct {
	ProductID        string
	Quantity         int
	DeliveryOptionID string
}

// Cart is the ordered list of lines. Order follows insertion. The empty cart
// is the zero value, with nil Lines.
type Cart struct {
	Lines []CartLine
}

// DefaultCart returns the seed used when no valid snapshot exists.
func DefaultCart() Cart {
	return Cart{Lines: []CartLine{
		{ProductID: "e43638ce-6aa0-4b85-b27f-e1d07eb678c6", Quantity: 2, DeliveryOptionID: "1"},
		{ProductID: "15b6fc6f-327a-4ec4-896f-486349e85a3d", Quantity: 1, DeliveryOptionID: "2"},
	}}
}

// NewCart validates lines and returns a cart holding normalized copies.
func NewCart(lines []CartLine) (Cart, error) {
	if len(lines) == 0 {
		return Cart{}, nil
	}
	cart := Cart{Lines: make([]CartLine, 0, len(lines))}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line.ProductID = ids.Normalize(line.ProductID)
		line.DeliveryOptionID = ids.Normalize(line.DeliveryOptionID)
		if err := line.Validate(); err != nil {
			return Cart{}, err
		}
		if _, dup := seen[line.ProductID]; dup {
			return Cart{}, ErrDuplicateLine
		}
		seen[line.ProductID] = struct{}{}
		cart.Lines = append(cart.Lines, line)
	}
	return cart, nil
}

// Validate enforces the per-line invariants.
func (l CartLine) Validate() error {
	if l.ProductID == "" {
		return ErrEmptyProductID
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Clone returns a deep copy safe to hand to callers.
func (c Cart) Clone() Cart {
	return Cart{Lines: append([]CartLine(nil), c.Lines...)}
}

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID string) int {
	productID = ids.Normalize(productID)
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID.
func (c Cart) Line(productID string) (CartLine, bool) {
	if i := c.Find(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

// TotalQuantity sums quantities across all lines.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// Add increments an existing line or appends a new one with the default
// delivery option. The receiver is left untouched.
func (c Cart) Add(productID string, quantity int) (Cart, CartLine, error) {
	productID = ids.Normalize(productID)
	if productID == "" {
		return c, CartLine{}, ErrEmptyProductID
	}
	if quantity < 1 {
		return c, CartLine{}, ErrInvalidQuantity
	}
	next := c.Clone()
	if i := next.Find(productID); i >= 0 {
		if quantity > math.MaxInt-next.Lines[i].Quantity {
			return c, CartLine{}, ErrInvalidQuantity
		}
		next.Lines[i].Quantity += quantity
		return next, next.Lines[i], nil
	}
	line := CartLine{ProductID: productID, Quantity: quantity, DeliveryOptionID: DefaultDeliveryOptionID}
	next.Lines = append(next.Lines, line)
	return next, line, nil
}

// Remove drops the line for productID. ok is false when no line matched.
func (c Cart) Remove(productID string) (next Cart, ok bool) {
	i := c.Find(productID)
	if i < 0 {
		return c, false
	}
	if len(c.Lines) == 1 {
		return Cart{}, true
	}
	next = Cart{Lines: make([]CartLine, 0, len(c.Lines)-1)}
	next.Lines = append(next.Lines, c.Lines[:i]...)
	next.Lines = append(next.Lines, c.Lines[i+1:]...)
	return next, true
}

// SetQuantity applies quantity to the line for productID, removing the
// line when quantity is zero or negative.
func (c Cart) SetQuantity(productID string, quantity int) (Cart, QuantityResult) {
	i := c.Find(productID)
	if i < 0 {
		return c, QuantityUnchanged
	}
	if quantity <= 0 {
		next, _ := c.Remove(productID)
		return next, QuantityRemoved
	}
	next := c.Clone()
	next.Lines[i].Quantity = quantity
	return next, QuantityUpdated
}

// SetDeliveryOption records the chosen option on the line for productID.
// The option id is not checked against any catalog.
func (c Cart) SetDeliveryOption(productID, deliveryOptionID string) (Cart, bool) {
	i := c.Find(productID)
	if i < 0 {
		return c, false
	}
	next := c.Clone()
	next.Lines[i].DeliveryOptionID = ids.Normalize(deliveryOptionID)
	return next, true
}
