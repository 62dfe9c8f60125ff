package checkouthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/snapshot"
	cartapp "github.com/Apurer/go-gin-checkout/internal/domains/cart/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/adapters/static"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/http/mapper"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/markup"
	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/domain"
	apierrors "github.com/Apurer/go-gin-checkout/internal/shared/errors"
)

const (
	socksID      = "e43638ce-6aa0-4b85-b27f-e1d07eb678c6"
	basketballID = "15b6fc6f-327a-4ec4-896f-486349e85a3d"
	toasterID    = "54e0eccd-8f36-462b-b68a-8182611d9add"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := cartapp.Open(context.Background(), snapshot.NewStore(memory.NewStorage(), snapshot.DefaultKey))
	require.NoError(t, err)
	renderer, err := markup.New()
	require.NoError(t, err)
	page := display.NewPage(display.WithMarkup(renderer))
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	controller := checkoutapp.NewController(store,
		checkoutapp.NewRenderer(static.NewProductCatalog(), static.NewDeliveryCatalog()),
		page,
		checkoutapp.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, controller.Render(context.Background()))
	page.Drain()
	return NewRouter(NewHandler(controller, page, renderer, nil))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetCart(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decode[mapper.Cart](t, rec)
	assert.Equal(t, "3 Items", cart.ItemCount)
	assert.Equal(t, []mapper.CartLine{
		{ProductID: socksID, Quantity: 2, DeliveryOptionID: "1"},
		{ProductID: basketballID, Quantity: 1, DeliveryOptionID: "2"},
	}, cart.Lines)
}

func TestAddLine(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", map[string]any{"productId": toasterID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[mapper.AddLineResponse](t, rec)
	assert.Equal(t, mapper.CartLine{ProductID: toasterID, Quantity: 2, DeliveryOptionID: "1"}, resp.Line)
	assert.Equal(t, "5 Items", resp.ItemCount)
}

func TestAddLine_OmittedQuantityAddsOne(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", map[string]any{"productId": toasterID})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[mapper.AddLineResponse](t, rec)
	assert.Equal(t, mapper.CartLine{ProductID: toasterID, Quantity: 1, DeliveryOptionID: "1"}, resp.Line)
	assert.Equal(t, "4 Items", resp.ItemCount)

	form := url.Values{"productId": {toasterID}}
	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	formRec := httptest.NewRecorder()
	router.ServeHTTP(formRec, req)
	require.Equal(t, http.StatusSeeOther, formRec.Code)

	cart := decode[mapper.Cart](t, doJSON(t, router, http.MethodGet, "/api/cart", nil))
	assert.Equal(t, "5 Items", cart.ItemCount)
	assert.Equal(t, mapper.CartLine{ProductID: toasterID, Quantity: 2, DeliveryOptionID: "1"}, cart.Lines[2])
}

func TestAddLine_Errors(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cart/lines", map[string]any{"productId": "nope", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	for _, quantity := range []int{0, -2} {
		rec = doJSON(t, router, http.MethodPost, "/api/cart/lines", map[string]any{"productId": toasterID, "quantity": quantity})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apierrors.TypeValidation, decode[apierrors.ProblemDetail](t, rec).Type)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/cart/lines", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeBadRequest, decode[apierrors.ProblemDetail](t, rec).Type)
}

func TestAddLineForm_RedirectsToGrid(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{"productId": {toasterID}, "quantity": {"3"}}
	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "6 Items", decode[mapper.Cart](t, doJSON(t, router, http.MethodGet, "/api/cart", nil)).ItemCount)
}

func TestHandleEvent_DeliveryChangePatchesDate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{
		Selector: domain.DeliveryOptionSelector(basketballID, "3"),
		Event:    "change",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[mapper.EventResponse](t, rec)
	require.Len(t, resp.Changes, 3)
	assert.Equal(t, domain.Change{
		Selector: domain.DeliveryDateSelector(basketballID),
		Op:       domain.OpSetText,
		Content:  "Delivery date: Tuesday, June 4",
	}, resp.Changes[0])
	assert.Equal(t, domain.PaymentSummarySelector, resp.Changes[1].Selector)
	assert.Contains(t, resp.Changes[1].Content, "$58.01")
	assert.Equal(t, domain.Change{Selector: domain.ItemCountSelector, Op: domain.OpSetText, Content: "3 Items"}, resp.Changes[2])
}

func TestHandleEvent_QuantityAndDelete(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{
		Selector: domain.QuantityInputSelector(socksID), Event: "input", Value: "5",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[mapper.EventResponse](t, rec)
	require.NotEmpty(t, resp.Changes)
	assert.Equal(t, domain.OrderSummarySelector, resp.Changes[0].Selector)
	assert.Contains(t, resp.Changes[0].Content, `value="5"`)

	rec = doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{
		Selector: domain.DeleteLinkSelector(socksID), Event: "click",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[mapper.EventResponse](t, rec)
	assert.NotContains(t, resp.Changes[0].Content, "js-cart-item-container-"+socksID)
	assert.Equal(t, "1 Item", resp.Changes[len(resp.Changes)-1].Content)
}

func TestHandleEvent_Errors(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{Selector: ".js-nothing", Event: "click"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{
		Selector: domain.QuantityInputSelector(socksID), Event: "input", Value: "lots",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Contains(t, problem.Extensions, "fields")

	rec = doJSON(t, router, http.MethodPost, "/checkout/events", mapper.EventRequest{Selector: ".x", Event: "hover"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummary(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/checkout/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[mapper.Summary](t, rec)
	require.Len(t, summary.OrderSummary, 2)
	assert.Equal(t, "Monday, June 10", summary.OrderSummary[0].DeliveryDate)
	assert.Equal(t, "52.51", summary.PaymentSummary.Total)
	assert.Equal(t, "3 Items", summary.ItemCount)
}

func TestPages(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "js-cart-item-container-"+socksID)
	assert.Contains(t, rec.Body.String(), "3 Items")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Intermediate Size Basketball")
	assert.Contains(t, rec.Body.String(), `js-cart-quantity">3<`)
}
