// Package otel configures OpenTelemetry tracing for planboard commands.
package otel

import (
	"context"
	"strings"

	"github.com/louisbranch/planboard/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Settings controls tracing export.
type Settings struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
	Enabled  string `env:"OTEL_ENABLED"`
}

// Active reports whether spans should be exported.
func (s Settings) Active() bool {
	if strings.EqualFold(strings.TrimSpace(s.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(s.Endpoint) != ""
}

// Setup initialises tracing for the given service from PLANBOARD_OTEL_*
// environment variables.
//
// Tracing is opt-in: when PLANBOARD_OTEL_ENDPOINT is empty or
// PLANBOARD_OTEL_ENABLED is "false", Setup returns a no-op shutdown and the
// global provider stays the no-op default.
//
// The returned shutdown function flushes pending spans.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var settings Settings
	if err := config.ParseEnv(&settings); err != nil {
		return noopShutdown, err
	}
	return SetupWithSettings(ctx, serviceName, settings)
}

// SetupWithSettings is Setup with explicit settings.
func SetupWithSettings(ctx context.Context, serviceName string, settings Settings) (shutdown func(context.Context) error, err error) {
	if !settings.Active() {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)),
	)
	if err != nil {
		return noopShutdown, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func noopShutdown(context.Context) error { return nil }
