package checkout

import (
	"context"
	"fmt"
	"log/slog"

	cartobs "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/observability"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/snapshot"
	cartapp "github.com/Apurer/go-gin-checkout/internal/domains/cart/application"
	"github.com/Apurer/go-gin-checkout/internal/domains/catalog/adapters/static"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
	platformobservability "github.com/Apurer/go-gin-checkout/internal/platform/observability"
)

// App holds one wired checkout: the controller and the page it renders onto.
type App struct {
	Controller *checkoutapp.Controller
	Page       *display.Page
	close      func()
}

// Close releases the storage backend.
func (a *App) Close() {
	if a != nil && a.close != nil {
		a.close()
	}
}

// Build opens storage, loads the cart, and performs the first render.
func Build(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, pageOpts ...display.Option) (*App, error) {
	var logger *slog.Logger
	if instruments != nil {
		logger = instruments.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	storage, cleanup := buildStorage(ctx, cfg, logger)
	store, err := cartapp.Open(ctx, snapshot.NewStore(storage, cfg.Storage.Key))
	if err != nil {
		cleanup()
		return nil, err
	}
	logger.Info("cart loaded",
		slog.String("source", string(store.Source())),
		slog.Int("lines", len(store.Snapshot(ctx).Lines)))

	service := cartobs.New(store,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	renderer := checkoutapp.NewRenderer(static.NewProductCatalog(), static.NewDeliveryCatalog())
	page := display.NewPage(pageOpts...)
	controller := checkoutapp.NewController(service, renderer, page,
		checkoutapp.WithDeliveryStrategy(cfg.DeliveryStrategy))
	if err := controller.Render(ctx); err != nil {
		cleanup()
		return nil, fmt.Errorf("initial render: %w", err)
	}
	page.Drain()
	return &App{Controller: controller, Page: page, close: cleanup}, nil
}
