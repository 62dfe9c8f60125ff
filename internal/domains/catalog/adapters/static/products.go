package static

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-checkout/internal/shared/ids"
)

var _ ports.ProductCatalog = (*ProductCatalog)(nil)

// productRecord is the validated shape of a static product entry.
type productRecord struct {
	ID          string  `validate:"required"`
	Name        string  `validate:"required"`
	Image       string  `validate:"required"`
	PriceCents  int64   `validate:"gte=0"`
	RatingStars float64 `validate:"gte=0,lte=5"`
	RatingCount int     `validate:"gte=0"`
}

var defaultProducts = []productRecord{
	{
		ID:          "e43638ce-6aa0-4b85-b27f-e1d07eb678c6",
		Name:        "Black and Gray Athletic Cotton Socks - 6 Pairs",
		Image:       "images/products/athletic-cotton-socks-6-pairs.jpg",
		PriceCents:  1090,
		RatingStars: 4.5,
		RatingCount: 87,
	},
	{
		ID:          "15b6fc6f-327a-4ec4-896f-486349e85a3d",
		Name:        "Intermediate Size Basketball",
		Image:       "images/products/intermediate-composite-basketball.jpg",
		PriceCents:  2095,
		RatingStars: 4,
		RatingCount: 127,
	},
	{
		ID:          "83d4ca15-0f35-48f5-b7a3-1ea210004f2e",
		Name:        "Adults Plain Cotton T-Shirt - 2 Pack",
		Image:       "images/products/adults-plain-cotton-tshirt-2-pack-teal.jpg",
		PriceCents:  799,
		RatingStars: 4.5,
		RatingCount: 56,
	},
	{
		ID:          "54e0eccd-8f36-462b-b68a-8182611d9add",
		Name:        "2 Slot Toaster - Black",
		Image:       "images/products/black-2-slot-toaster.jpg",
		PriceCents:  1899,
		RatingStars: 5,
		RatingCount: 2197,
	},
	{
		ID:          "3ebe75dc-64d2-4137-8860-1f5a963e534b",
		Name:        "6 Piece White Dinner Plate Set",
		Image:       "images/products/6-piece-white-dinner-plate-set.jpg",
		PriceCents:  2067,
		RatingStars: 4,
		RatingCount: 37,
	},
}

// ProductCatalog serves products from a fixed, validated list.
type ProductCatalog struct {
	products []domain.Product
	byID     map[string]int
}

// NewProductCatalog returns the built-in product list.
func NewProductCatalog() *ProductCatalog {
	catalog, err := newProductCatalog(defaultProducts)
	if err != nil {
		panic(err)
	}
	return catalog
}

func newProductCatalog(records []productRecord) (*ProductCatalog, error) {
	validate := validator.New()
	catalog := &ProductCatalog{
		products: make([]domain.Product, 0, len(records)),
		byID:     make(map[string]int, len(records)),
	}
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		id := ids.Normalize(rec.ID)
		if _, dup := catalog.byID[id]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, id)
		}
		catalog.byID[id] = len(catalog.products)
		catalog.products = append(catalog.products, domain.Product{
			ID:         id,
			Name:       rec.Name,
			Image:      rec.Image,
			PriceCents: rec.PriceCents,
			Rating:     domain.Rating{Stars: rec.RatingStars, Count: rec.RatingCount},
		})
	}
	return catalog, nil
}

func (c *ProductCatalog) Product(id string) (domain.Product, bool) {
	idx, ok := c.byID[ids.Normalize(id)]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[idx], true
}

func (c *ProductCatalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}
