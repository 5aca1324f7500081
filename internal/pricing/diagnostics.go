package pricing

import (
	"context"
	"log"
)

// Diagnostics receives warnings about malformed component input.
type Diagnostics interface {
	Warnf(format string, args ...any)
}

// ContextDiagnostics is implemented by sinks that want the render context,
// for example to attach warnings to the active trace span.
type ContextDiagnostics interface {
	Diagnostics
	WarnContext(ctx context.Context, format string, args ...any)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(format string, args ...any)

// Warnf calls f.
func (f DiagnosticsFunc) Warnf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// LogDiagnostics writes warnings to logger, or to the standard logger when
// logger is nil.
func LogDiagnostics(logger *log.Logger) Diagnostics {
	if logger == nil {
		logger = log.Default()
	}
	return DiagnosticsFunc(func(format string, args ...any) {
		logger.Printf("warn: "+format, args...)
	})
}

// DiscardDiagnostics drops every warning.
var DiscardDiagnostics Diagnostics = DiagnosticsFunc(func(string, ...any) {})

func diagnosticsOrDefault(d Diagnostics) Diagnostics {
	if d == nil {
		return LogDiagnostics(nil)
	}
	return d
}

func warn(ctx context.Context, d Diagnostics, format string, args ...any) {
	if cd, ok := d.(ContextDiagnostics); ok && ctx != nil {
		cd.WarnContext(ctx, format, args...)
		return
	}
	d.Warnf(format, args...)
}
