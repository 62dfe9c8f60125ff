// Package checkouthttp serves the checkout pages, the cart API, and the UI
// event endpoint over gin.
package checkouthttp

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/http/mapper"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/markup"
	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/ports"
	apierrors "github.com/Apurer/go-gin-checkout/internal/shared/errors"
)

// Handler wires the HTTP surface onto one checkout controller and the page it
// renders to.
type Handler struct {
	controller *checkoutapp.Controller
	page       *display.Page
	markup     *markup.Renderer
	responder  *apierrors.Responder
	logger     *slog.Logger

	// pageMu pairs each page-mutating call with the Drain that reads its
	// changes.
	pageMu sync.Mutex
}

func NewHandler(controller *checkoutapp.Controller, page *display.Page, renderer *markup.Renderer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		controller: controller,
		page:       page,
		markup:     renderer,
		responder:  NewResponder(),
		logger:     logger,
	}
}

// NewResponder maps checkout errors onto problem details.
func NewResponder() *apierrors.Responder {
	return apierrors.NewResponder(
		validationMapper,
		apierrors.Is(checkoutapp.ErrInvalidInput, apierrors.ErrValidation),
		apierrors.Is(checkoutapp.ErrUnknownProduct, apierrors.ErrNotFound),
		apierrors.Is(ports.ErrUnboundEvent, apierrors.ErrNotFound),
	)
}

func validationMapper(err error) (apierrors.ProblemDetail, bool) {
	var validation *cartdomain.ValidationError
	if !errors.As(err, &validation) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(map[string]string{validation.Field: validation.Error()}).
		WithDetail(err.Error()), true
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.ProductGrid)
	r.POST("/cart/lines", h.AddLineForm)
	r.GET("/checkout", h.CheckoutPage)
	r.POST("/checkout/events", h.HandleEvent)

	api := r.Group("/api")
	api.GET("/cart", h.GetCart)
	api.POST("/cart/lines", h.AddLine)
	api.GET("/checkout/summary", h.GetSummary)
}

// NewRouter builds a gin engine with recovery, the given middleware, and the
// checkout routes.
func NewRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	h.Register(router)
	return router
}

// Get /
func (h *Handler) ProductGrid(c *gin.Context) {
	cards, quantity := h.controller.ProductGrid(c.Request.Context())
	html, err := h.markup.ProductGrid(cards, quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Post /cart/lines
// Form submission from the product grid; redirects back to it.
func (h *Handler) AddLineForm(c *gin.Context) {
	var req mapper.AddLineRequest
	if err := c.ShouldBind(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	if _, err := h.addLine(c, req); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Get /checkout
// Performs a full render and serves the resulting page.
func (h *Handler) CheckoutPage(c *gin.Context) {
	h.pageMu.Lock()
	err := h.controller.Render(c.Request.Context())
	h.page.Drain()
	state := h.page.Current()
	h.pageMu.Unlock()
	if err != nil {
		h.fail(c, err)
		return
	}
	html, err := h.markup.CheckoutPage(domain.CheckoutView{
		OrderSummary:   state.OrderSummary,
		PaymentSummary: state.PaymentSummary,
		ItemCount:      state.ItemCount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Post /checkout/events
func (h *Handler) HandleEvent(c *gin.Context) {
	var req mapper.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	event, err := mapper.ToEvent(req)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}

	h.pageMu.Lock()
	err = h.controller.Handle(c.Request.Context(), event)
	changes := h.page.Drain()
	h.pageMu.Unlock()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromChanges(changes))
}

// Get /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	cart := h.controller.Cart(c.Request.Context())
	c.JSON(http.StatusOK, mapper.FromCart(cart, checkoutapp.ItemCountLabel(cart)))
}

// Post /api/cart/lines
func (h *Handler) AddLine(c *gin.Context) {
	var req mapper.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	line, err := h.addLine(c, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	cart := h.controller.Cart(c.Request.Context())
	c.JSON(http.StatusCreated, mapper.AddLineResponse{
		Line:      mapper.FromCartLine(line),
		ItemCount: checkoutapp.ItemCountLabel(cart),
	})
}

// Get /api/checkout/summary
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.FromView(h.controller.View(c.Request.Context())))
}

func (h *Handler) addLine(c *gin.Context, req mapper.AddLineRequest) (cartdomain.CartLine, error) {
	h.pageMu.Lock()
	defer h.pageMu.Unlock()
	line, err := h.controller.AddToCart(c.Request.Context(), req.ProductID, req.QuantityOrDefault())
	h.page.Drain()
	return line, err
}

func (h *Handler) fail(c *gin.Context, err error) {
	if status := statusOf(err); status >= http.StatusInternalServerError {
		h.logger.LogAttrs(c.Request.Context(), slog.LevelError, "checkout request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
	}
	h.responder.RespondError(c, err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, checkoutapp.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, checkoutapp.ErrUnknownProduct), errors.Is(err, ports.ErrUnboundEvent):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
