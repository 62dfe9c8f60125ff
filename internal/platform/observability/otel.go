// Package observability sets up the process logger and the OpenTelemetry
// tracer and meter providers shared by every adapter.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Span exporters.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Settings selects the process identity, log sink, and span exporter.
type Settings struct {
	ServiceName string
	Environment string
	// LogLevel is one of debug, info, warn, error. Unknown values mean info.
	LogLevel string
	// LogOutput defaults to stdout.
	LogOutput io.Writer
	// Exporter is otlp (default), stdout or none. An unreachable otlp
	// exporter degrades to stdout.
	Exporter string
	// Endpoint is the OTLP/HTTP host:port; empty uses the SDK default.
	Endpoint string
	Insecure bool
}

// ParseExporter validates an exporter name. Empty means otlp.
func ParseExporter(raw string) (string, error) {
	switch name := strings.ToLower(strings.TrimSpace(raw)); name {
	case "":
		return ExporterOTLP, nil
	case ExporterOTLP, ExporterStdout, ExporterNone:
		return name, nil
	default:
		return "", fmt.Errorf("unknown trace exporter %q", raw)
	}
}

// Init configures slog, tracing, and meters for the process. The returned
// shutdown flushes pending spans and must be called on exit.
func Init(ctx context.Context, settings Settings) (*Instruments, func(context.Context) error, error) {
	exporter, err := ParseExporter(settings.Exporter)
	if err != nil {
		return nil, nil, err
	}
	logger := NewLogger(settings.LogOutput, settings.LogLevel)
	slog.SetDefault(logger)

	res, err := newResource(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != ExporterNone {
		spanExporter, err := newSpanExporter(ctx, exporter, settings, logger)
		if err != nil {
			return nil, nil, err
		}
		traceOpts = append(traceOpts, sdktrace.WithBatcher(spanExporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, shutdown, nil
}

// Tracer returns a named tracer, falling back to the global provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter; a nil receiver yields a noop meter.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// NewLogger builds the JSON slog logger used across the process.
func NewLogger(out io.Writer, level string) *slog.Logger {
	if out == nil {
		out = os.Stdout
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLevel(level), AddSource: true}))
}

// ParseLevel maps a configured level name onto slog.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newResource(ctx context.Context, settings Settings) (*resource.Resource, error) {
	environment := strings.TrimSpace(settings.Environment)
	if environment == "" {
		environment = "local"
	}
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", settings.ServiceName),
			attribute.String("deployment.environment", environment),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter string, settings Settings, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	if exporter == ExporterStdout {
		return stdouttrace.New(stdouttrace.WithWriter(settings.LogOutputOrStdout()))
	}
	var opts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(settings.Endpoint); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if settings.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	otlpExporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return otlpExporter, nil
	}
	logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout",
		slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithWriter(settings.LogOutputOrStdout()))
}

// LogOutputOrStdout returns LogOutput, or stdout when unset.
func (s Settings) LogOutputOrStdout() io.Writer {
	if s.LogOutput == nil {
		return os.Stdout
	}
	return s.LogOutput
}
