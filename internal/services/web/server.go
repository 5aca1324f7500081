package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	platformotel "github.com/louisbranch/planboard/internal/platform/otel"
	"github.com/louisbranch/planboard/internal/platform/timeouts"
	"github.com/louisbranch/planboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/planboard/internal/services/web/platform/observability"
	"github.com/louisbranch/planboard/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/planboard/internal/services/web/sessions"
	"github.com/louisbranch/planboard/internal/services/web/storage"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/planboard/internal/services/web"

// Config defines startup inputs for the pricing host.
type Config struct {
	HTTPAddr string
	// Catalog supplies the plans shown in each session's pricing section.
	Catalog storage.Catalog
	// SessionTTL is the idle lifetime of a mounted session.
	SessionTTL time.Duration
	// MaxSessions bounds the number of mounted sessions.
	MaxSessions int
	// TrustForwardedProto honors X-Forwarded-Proto for secure cookies.
	TrustForwardedProto bool
	// Logger defaults to the standard logger.
	Logger *log.Logger
	// Tracer defaults to the global provider's tracer.
	Tracer trace.Tracer
}

// Server hosts the pricing HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    *handler
}

// NewHandler builds the root handler for the pricing host.
func NewHandler(cfg Config) (http.Handler, error) {
	h, err := newHandler(cfg)
	if err != nil {
		return nil, err
	}
	return h.chain(), nil
}

func newHandler(cfg Config) (*handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("plan catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = platformotel.Tracer(tracerName)
	}
	h := &handler{
		catalog:     cfg.Catalog,
		diagnostics: telemetryDiagnostics{logger: logger},
		logger:      logger,
		tracer:      tracer,
		policy:      requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	}
	h.sessions = sessions.New[*visitor](cfg.MaxSessions, cfg.SessionTTL, h.unmountVisitor)
	return h, nil
}

func (h *handler) chain() http.Handler {
	return httpx.Chain(h.routes(),
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(h.logger),
	)
}

// NewServer validates config and constructs a pricing server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	h, err := newHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose pricing handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		handler:  h,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           h.chain(),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("pricing server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	log.Printf("pricing web listening at %s", s.httpAddr)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown pricing http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve pricing http: %w", err)
	}
}

// Close stops the listener and unmounts every session.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.handler != nil {
		s.handler.sessions.Purge()
	}
}
