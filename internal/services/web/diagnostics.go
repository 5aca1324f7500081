package web

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/planboard/internal/platform/requestctx"
	"github.com/louisbranch/planboard/internal/pricing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const diagnosticEventName = "pricing.diagnostic"

// telemetryDiagnostics logs component warnings with request correlation and
// records them on the active span.
type telemetryDiagnostics struct {
	logger *log.Logger
}

var _ pricing.ContextDiagnostics = telemetryDiagnostics{}

func (d telemetryDiagnostics) Warnf(format string, args ...any) {
	d.logger.Printf("warn: "+format, args...)
}

func (d telemetryDiagnostics) WarnContext(ctx context.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	d.logger.Printf(
		"warn: %s request_id=%s session=%s",
		message,
		orDash(requestctx.RequestIDFromContext(ctx)),
		orDash(requestctx.SessionIDFromContext(ctx)),
	)
	trace.SpanFromContext(ctx).AddEvent(diagnosticEventName, trace.WithAttributes(
		attribute.String("pricing.message", message),
	))
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
