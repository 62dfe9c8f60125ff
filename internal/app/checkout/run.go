package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/display"
	checkouthttp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/http"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/markup"
	"github.com/Apurer/go-gin-checkout/internal/domains/checkout/adapters/tui"
	"github.com/Apurer/go-gin-checkout/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-checkout/internal/platform/observability"
)

const serviceName = "checkout"

// Serve runs the HTTP surface until ctx is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability(instruments.Logger, shutdown)
	logger := instruments.Logger

	renderer, err := markup.New()
	if err != nil {
		return err
	}
	app, err := Build(ctx, cfg, instruments, display.WithMarkup(renderer))
	if err != nil {
		return err
	}
	defer app.Close()

	handler := checkouthttp.NewHandler(app.Controller, app.Page, renderer, logger)
	router := checkouthttp.NewRouter(handler, otelgin.Middleware(serviceName))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("checkout listening",
			slog.String("addr", server.Addr),
			slog.String("delivery_strategy", string(app.Controller.Strategy())))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("checkout server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("checkout shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// RunTUI runs the terminal surface. Logs are discarded so they do not draw
// over the screen.
func RunTUI(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName + "-tui",
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		LogOutput:   io.Discard,
		Exporter:    platformobservability.ExporterNone,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability(instruments.Logger, shutdown)

	app, err := Build(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer app.Close()
	return tui.Run(ctx, app.Controller, app.Page)
}

// Migrate applies the postgres schema.
func Migrate(_ context.Context, cfg Config) error {
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required to run migrations")
	}
	return migrations.UpDSN(cfg.Postgres.DSN)
}

func shutdownObservability(logger *slog.Logger, shutdown func(context.Context) error) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil && logger != nil {
		logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
	}
}
