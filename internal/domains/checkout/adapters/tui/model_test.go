package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/snapshot"
	cartapp "github.com/Apurer/go-gin-checkout/internal/domains/cart/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/adapters/static"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
)

func newModel(t *testing.T) (Model, *display.Page, *cartapp.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := cartapp.Open(ctx, snapshot.NewStore(memory.NewStorage(), snapshot.DefaultKey))
	require.NoError(t, err)
	page := display.NewPage()
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	controller := checkoutapp.NewController(store,
		checkoutapp.NewRenderer(static.NewProductCatalog(), static.NewDeliveryCatalog()),
		page,
		checkoutapp.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, controller.Render(ctx))
	page.Drain()
	return New(ctx, controller, page), page, store
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_QuantityKeys(t *testing.T) {
	m, page, store := newModel(t)

	m = press(t, m, runes("+"))
	require.NoError(t, m.err)
	assert.Equal(t, 3, store.Snapshot(context.Background()).Lines[0].Quantity)
	assert.Equal(t, "4 Items", page.Current().ItemCount)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("-"))
	require.NoError(t, m.err)
	assert.Len(t, page.Current().OrderSummary.Lines, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_DeliveryKeyPatchesDate(t *testing.T) {
	m, page, _ := newModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("3"))
	require.NoError(t, m.err)

	lines := page.Current().OrderSummary.Lines
	assert.Equal(t, "Monday, June 10", lines[0].DeliveryDate)
	assert.Equal(t, "Tuesday, June 4", lines[1].DeliveryDate)
	assert.Contains(t, m.View(), "Delivery date: Tuesday, June 4")

	m = press(t, m, runes("9"))
	assert.Error(t, m.err)
}

func TestModel_DeleteAndQuit(t *testing.T) {
	m, page, _ := newModel(t)

	m = press(t, m, runes("d"), runes("d"))
	require.NoError(t, m.err)
	assert.Empty(t, page.Current().OrderSummary.Lines)
	assert.Contains(t, m.View(), "Your cart is empty.")
	assert.Contains(t, m.View(), "0 Item")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, clamp(-1, 3))
	assert.Equal(t, 2, clamp(5, 3))
	assert.Equal(t, 0, clamp(1, 0))
}
