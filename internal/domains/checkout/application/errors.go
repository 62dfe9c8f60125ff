package application

import (
	"errors"
	"fmt"

	cartapp "github.com/Apurer/go-gin-checkout/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals a UI event carried an unusable value.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrUnknownProduct is returned when adding a product the catalog lacks.
	ErrUnknownProduct = errors.New("unknown product")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	if errors.Is(err, cartapp.ErrInvalidInput) ||
		errors.Is(err, cartdomain.ErrInvalidQuantity) ||
		errors.Is(err, cartdomain.ErrEmptyProductID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
