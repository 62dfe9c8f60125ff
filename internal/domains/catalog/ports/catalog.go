package ports

import "github.com/Apurer/go-gin-checkout/internal/domains/catalog/domain"

// ProductCatalog exposes read-only product lookups.
type ProductCatalog interface {
	Product(id string) (domain.Product, bool)
	Products() []domain.Product
}

// DeliveryCatalog exposes the fixed, ordered list of shipping choices.
type DeliveryCatalog interface {
	DeliveryOption(id string) (domain.DeliveryOption, bool)
	DeliveryOptions() []domain.DeliveryOption
}

// ResolveDeliveryOption looks up id and falls back to the first catalog
// entry when it is unknown. ok reports whether id matched. An empty catalog
// yields the zero option and ok=false.
func ResolveDeliveryOption(catalog DeliveryCatalog, id string) (option domain.DeliveryOption, ok bool) {
	if option, ok = catalog.DeliveryOption(id); ok {
		return option, true
	}
	if options := catalog.DeliveryOptions(); len(options) > 0 {
		return options[0], false
	}
	return domain.DeliveryOption{}, false
}
