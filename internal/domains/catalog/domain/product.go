package domain

import (
	"math"
	"strconv"
)

// Rating summarises customer reviews for a product.
type Rating struct {
	Stars float64
	Count int
}

// Product is a read-only catalog entry.
type Product struct {
	ID         string
	Name       string
	Image      string
	PriceCents int64
	Rating     Rating
}

// RatingImage returns the star graphic path shown on the product grid.
func (p Product) RatingImage() string {
	return "images/ratings/rating-" + strconv.Itoa(int(math.Round(p.Rating.Stars*10))) + ".png"
}
