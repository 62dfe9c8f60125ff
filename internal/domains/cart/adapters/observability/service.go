package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-checkout/internal/domains/cart/adapters/observability/service"

// Service decorates the cart store with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core cart store.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) AddLine(ctx context.Context, productID string, quantity int) (cartdomain.CartLine, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddLine",
		trace.WithAttributes(attribute.String("cart.product_id", productID), attribute.Int("cart.quantity", quantity)))
	defer span.End()

	line, err := s.inner.AddLine(ctx, productID, quantity)
	if err != nil {
		return cartdomain.CartLine{}, s.handleError(ctx, span, err, "failed to add cart line", slog.String("product_id", productID))
	}
	s.metrics.recordAdded(ctx, quantity)
	s.logInfo(ctx, "cart line added", slog.String("product_id", line.ProductID), slog.Int("quantity", line.Quantity))
	return line, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (cartdomain.QuantityResult, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity",
		trace.WithAttributes(attribute.String("cart.product_id", productID), attribute.Int("cart.quantity", quantity)))
	defer span.End()

	result, err := s.inner.UpdateQuantity(ctx, productID, quantity)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to update quantity", slog.String("product_id", productID))
	}
	span.SetAttributes(attribute.String("cart.quantity_result", string(result)))
	s.metrics.recordQuantityUpdate(ctx, result)
	s.logInfo(ctx, "cart quantity updated", slog.String("product_id", productID), slog.String("result", string(result)))
	return result, nil
}

func (s *Service) RemoveLine(ctx context.Context, productID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveLine", trace.WithAttributes(attribute.String("cart.product_id", productID)))
	defer span.End()

	removed, err := s.inner.RemoveLine(ctx, productID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to remove cart line", slog.String("product_id", productID))
	}
	span.SetAttributes(attribute.Bool("cart.removed", removed))
	if removed {
		s.metrics.recordRemoved(ctx)
	}
	s.logInfo(ctx, "cart line remove handled", slog.String("product_id", productID), slog.Bool("removed", removed))
	return removed, nil
}

func (s *Service) SetDeliveryOption(ctx context.Context, productID, deliveryOptionID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetDeliveryOption",
		trace.WithAttributes(attribute.String("cart.product_id", productID), attribute.String("cart.delivery_option_id", deliveryOptionID)))
	defer span.End()

	changed, err := s.inner.SetDeliveryOption(ctx, productID, deliveryOptionID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to set delivery option", slog.String("product_id", productID))
	}
	if changed {
		s.metrics.recordDeliveryChange(ctx, deliveryOptionID)
	}
	s.logInfo(ctx, "delivery option handled",
		slog.String("product_id", productID),
		slog.String("delivery_option_id", deliveryOptionID),
		slog.Bool("changed", changed))
	return changed, nil
}

func (s *Service) Snapshot(ctx context.Context) cartdomain.Cart {
	return s.inner.Snapshot(ctx)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	linesAdded      metric.Int64Counter
	linesRemoved    metric.Int64Counter
	quantityUpdates metric.Int64Counter
	deliveryChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	linesAdded, _ := m.Int64Counter("cart.service.lines_added", metric.WithDescription("Units added to the cart"))
	linesRemoved, _ := m.Int64Counter("cart.service.lines_removed", metric.WithDescription("Cart lines removed"))
	quantityUpdates, _ := m.Int64Counter("cart.service.quantity_updates", metric.WithDescription("Quantity edits by outcome"))
	deliveryChanges, _ := m.Int64Counter("cart.service.delivery_option_changes", metric.WithDescription("Delivery option selections"))
	return serviceMetrics{
		linesAdded:      linesAdded,
		linesRemoved:    linesRemoved,
		quantityUpdates: quantityUpdates,
		deliveryChanges: deliveryChanges,
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context, quantity int) {
	if m.linesAdded != nil {
		m.linesAdded.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.linesRemoved != nil {
		m.linesRemoved.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordQuantityUpdate(ctx context.Context, result cartdomain.QuantityResult) {
	if m.quantityUpdates != nil {
		m.quantityUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.quantity_result", string(result))))
	}
}

func (m serviceMetrics) recordDeliveryChange(ctx context.Context, optionID string) {
	if m.deliveryChanges != nil {
		m.deliveryChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("cart.delivery_option_id", optionID)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ cartports.Service = (*Service)(nil)
