// Package tui is a terminal checkout surface driven by bubbletea. It reads
// the mounted view from a display.Page and feeds key presses back as UI
// events through the checkout controller.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
)

// Model is the bubbletea model for the checkout screen.
type Model struct {
	ctx        context.Context
	controller *checkoutapp.Controller
	page       *display.Page
	keys       keyMap
	help       help.Model
	cursor     int
	status     string
	err        error
}

// New expects the controller to have rendered onto page at least once.
func New(ctx context.Context, controller *checkoutapp.Controller, page *display.Page) Model {
	return Model{
		ctx:        ctx,
		controller: controller,
		page:       page,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles events inline so key presses reach the cart in order.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.page.Drain()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Render) {
		m.apply("re-rendered", m.controller.Render(m.ctx))
		return m, nil
	}

	lines := m.page.Current().OrderSummary.Lines
	if len(lines) == 0 {
		return m, nil
	}
	m.cursor = clamp(m.cursor, len(lines))
	line := lines[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(lines))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(lines))
	case key.Matches(msg, m.keys.More):
		m.dispatch(domain.Event{Selector: line.Selectors.QuantityInput, Kind: domain.EventInput, Value: strconv.Itoa(line.Quantity + 1)},
			fmt.Sprintf("%s quantity %d", line.ProductName, line.Quantity+1))
	case key.Matches(msg, m.keys.Less):
		m.dispatch(domain.Event{Selector: line.Selectors.QuantityInput, Kind: domain.EventInput, Value: strconv.Itoa(line.Quantity - 1)},
			fmt.Sprintf("%s quantity %d", line.ProductName, line.Quantity-1))
	case key.Matches(msg, m.keys.Delete):
		m.dispatch(domain.Event{Selector: line.Selectors.DeleteLink, Kind: domain.EventClick}, "removed "+line.ProductName)
	case key.Matches(msg, m.keys.Delivery):
		n, _ := strconv.Atoi(msg.String())
		if n < 1 || n > len(line.Choices) {
			m.status, m.err = "", fmt.Errorf("no delivery option %d", n)
			break
		}
		choice := line.Choices[n-1]
		m.dispatch(domain.Event{Selector: choice.Selector, Kind: domain.EventChange}, "delivery "+choice.DateString)
	}
	m.cursor = clamp(m.cursor, len(m.page.Current().OrderSummary.Lines))
	return m, nil
}

func (m *Model) dispatch(event domain.Event, status string) {
	m.apply(status, m.controller.Handle(m.ctx, event))
}

func (m *Model) apply(status string, err error) {
	// View reads Current; the change log is unused here.
	m.page.Drain()
	if err != nil {
		m.status, m.err = "", err
		return
	}
	m.status, m.err = status, nil
}

func (m Model) View() string {
	state := m.page.Current()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Checkout (%s)", state.ItemCount)))
	b.WriteString("\n\n")

	if len(state.OrderSummary.Lines) == 0 {
		b.WriteString(dimStyle.Render("Your cart is empty."))
		b.WriteString("\n")
	}
	for i, line := range state.OrderSummary.Lines {
		style := lineStyle
		if i == m.cursor {
			style = selectedStyle
		}
		b.WriteString(style.Render(renderLine(line)))
		b.WriteString("\n")
	}

	b.WriteString(paymentStyle.Render(renderPayment(state.PaymentSummary)))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderLine(line domain.LineView) string {
	rows := []string{
		dateStyle.Render("Delivery date: " + line.DeliveryDate),
		nameStyle.Render(line.ProductName),
		fmt.Sprintf("%s  Qty: %d", line.PriceString, line.Quantity),
	}
	for i, choice := range line.Choices {
		mark := "( )"
		if choice.Checked {
			mark = "(•)"
		}
		rows = append(rows, dimStyle.Render(fmt.Sprintf("%d %s %s  %s Shipping", i+1, mark, choice.DateString, choice.PriceString)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderPayment(p domain.PaymentSummary) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Items (%d): $%s", p.ItemCount, p.ItemsString),
		fmt.Sprintf("Shipping & handling: $%s", p.ShippingString),
		fmt.Sprintf("Total before tax: $%s", p.TotalBeforeTaxString),
		fmt.Sprintf("Estimated tax (10%%): $%s", p.TaxString),
		nameStyle.Render(fmt.Sprintf("Order total: $%s", p.TotalString)),
	)
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, controller *checkoutapp.Controller, page *display.Page, opts ...tea.ProgramOption) error {
	if err := controller.Render(ctx); err != nil {
		return err
	}
	page.Drain()
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, controller, page), opts...).Run()
	return err
}
