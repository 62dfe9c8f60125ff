package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityResult describes what an UpdateQuantity call did.
type QuantityResult string

const (
	QuantityUpdated   QuantityResult = "updated"
	QuantityRemoved   QuantityResult = "removed"
	QuantityUnchanged QuantityResult = "unchanged"
)

// ValidationError reports a rejected user input.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseQuantity coerces raw user input to a quantity. Whitespace and an
// optional sign are accepted; empty, fractional and non-numeric inputs are
// rejected. Zero and negative values parse successfully and mean removal.
func ParseQuantity(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ValidationError{Field: "quantity", Value: raw, Err: ErrInvalidQuantity}
	}
	return n, nil
}
