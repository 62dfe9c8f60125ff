package domain

// Page-level regions.
const (
	OrderSummarySelector   = ".js-order-summary"
	PaymentSummarySelector = ".js-payment-summary"
	ItemCountSelector      = ".js-return-to-home-link"
)

func ContainerSelector(productID string) string {
	return ".js-cart-item-container-" + productID
}

func DeliveryDateSelector(productID string) string {
	return ".js-delivery-date-" + productID
}

func QuantityInputSelector(productID string) string {
	return ".js-quantity-input-" + productID
}

func DeleteLinkSelector(productID string) string {
	return ".js-delete-link-" + productID
}

func DeliveryOptionSelector(productID, optionID string) string {
	return ".js-delivery-option-" + productID + "-" + optionID
}

// SelectorsFor builds the per-line selectors.
func SelectorsFor(productID string) LineSelectors {
	return LineSelectors{
		Container:     ContainerSelector(productID),
		DeliveryDate:  DeliveryDateSelector(productID),
		QuantityInput: QuantityInputSelector(productID),
		DeleteLink:    DeleteLinkSelector(productID),
	}
}
