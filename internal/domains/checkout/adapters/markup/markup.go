// Package markup renders checkout views as HTML.
package markup

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var _ display.Markup = (*Renderer)(nil)

// MaxQuantity bounds the product grid quantity selector.
const MaxQuantity = 10

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("markup").
		Funcs(template.FuncMap{"class": className}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) OrderSummary(summary domain.OrderSummary) (string, error) {
	return r.execute("order_summary", summary)
}

func (r *Renderer) PaymentSummary(summary domain.PaymentSummary) (string, error) {
	return r.execute("payment_summary", summary)
}

// CheckoutPage renders the full checkout document.
func (r *Renderer) CheckoutPage(view domain.CheckoutView) (string, error) {
	return r.execute("checkout", struct {
		View                   domain.CheckoutView
		OrderSummarySelector   string
		PaymentSummarySelector string
		ItemCountSelector      string
	}{
		View:                   view,
		OrderSummarySelector:   domain.OrderSummarySelector,
		PaymentSummarySelector: domain.PaymentSummarySelector,
		ItemCountSelector:      domain.ItemCountSelector,
	})
}

// ProductGrid renders the product listing with the cart quantity badge.
func (r *Renderer) ProductGrid(cards []domain.ProductCard, cartQuantity int) (string, error) {
	quantities := make([]int, MaxQuantity)
	for i := range quantities {
		quantities[i] = i + 1
	}
	return r.execute("products", struct {
		Cards        []domain.ProductCard
		CartQuantity int
		Quantities   []int
	}{Cards: cards, CartQuantity: cartQuantity, Quantities: quantities})
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// className turns a selector into the class it matches.
func className(selector string) string {
	return strings.TrimPrefix(selector, ".")
}
