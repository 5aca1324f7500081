// Package planboard parses planboard command flags and launches the pricing host.
package planboard

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/planboard/internal/platform/cmd"
	"github.com/louisbranch/planboard/internal/services/web"
	"github.com/louisbranch/planboard/internal/services/web/storage"
	"github.com/louisbranch/planboard/internal/services/web/storage/sqlite"
)

// Config holds planboard command configuration.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"DB_PATH"`
	SeedDefaults        bool          `env:"SEED_DEFAULTS" envDefault:"true"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions         int           `env:"MAX_SESSIONS" envDefault:"1024"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Plan catalog SQLite path; empty serves the built-in catalog")
	fs.BoolVar(&cfg.SeedDefaults, "seed-defaults", cfg.SeedDefaults, "Seed the default plans into an empty SQLite catalog")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle lifetime of a pricing session")
	fs.IntVar(&cfg.MaxSessions, "max-sessions", cfg.MaxSessions, "Maximum number of live pricing sessions")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto for secure cookies")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the pricing host.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlanboard, func(ctx context.Context) error {
		catalog, closeCatalog, err := openCatalog(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeCatalog()

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Catalog:             catalog,
			SessionTTL:          cfg.SessionTTL,
			MaxSessions:         cfg.MaxSessions,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// openCatalog selects the plan catalog: SQLite when a path is configured,
// the built-in plans otherwise.
func openCatalog(ctx context.Context, cfg Config) (storage.Catalog, func(), error) {
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return storage.NewStaticCatalog(storage.DefaultPlans()), func() {}, nil
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open plan catalog: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("close plan catalog: %v", err)
		}
	}
	if cfg.SeedDefaults {
		seeded, err := store.SeedDefaults(ctx, storage.DefaultPlans())
		if err != nil {
			closeStore()
			return nil, nil, fmt.Errorf("seed plan catalog: %w", err)
		}
		if seeded > 0 {
			log.Printf("seeded plan catalog plans=%d path=%s", seeded, path)
		}
	}
	return store, closeStore, nil
}
