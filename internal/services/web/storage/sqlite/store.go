package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/planboard/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/planboard/internal/pricing"
	"github.com/louisbranch/planboard/internal/services/web/storage"
	"github.com/louisbranch/planboard/internal/services/web/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists the plan catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite plan catalog and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ListPlans returns every plan ordered by position, then id.
func (s *Store) ListPlans(ctx context.Context) ([]pricing.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT plan_id, title, price, variant, popular
		   FROM plans
		  ORDER BY position ASC, plan_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []pricing.Plan
	index := make(map[string]int)
	for rows.Next() {
		var (
			plan    pricing.Plan
			variant string
			popular int
		)
		if err := rows.Scan(&plan.ID, &plan.Title, &plan.Price, &variant, &popular); err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		plan.Variant, err = pricing.ParseVariant(variant)
		if err != nil {
			return nil, fmt.Errorf("list plans: plan %q: %w", plan.ID, err)
		}
		plan.Popular = popular != 0
		index[plan.ID] = len(plans)
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if len(plans) == 0 {
		return plans, nil
	}

	featureRows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT plan_id, feature
		   FROM plan_features
		  ORDER BY plan_id ASC, ordinal ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list plan features: %w", err)
	}
	defer featureRows.Close()

	for featureRows.Next() {
		var planID, feature string
		if err := featureRows.Scan(&planID, &feature); err != nil {
			return nil, fmt.Errorf("list plan features: %w", err)
		}
		idx, ok := index[planID]
		if !ok {
			continue
		}
		plans[idx].Features = append(plans[idx].Features, feature)
	}
	if err := featureRows.Err(); err != nil {
		return nil, fmt.Errorf("list plan features: %w", err)
	}
	return plans, nil
}

// CreatePlan inserts a new plan at position. It returns
// storage.ErrAlreadyExists when the id is taken.
func (s *Store) CreatePlan(ctx context.Context, plan pricing.Plan, position int) error {
	return s.writePlan(ctx, plan, position, false)
}

// PutPlan inserts or replaces a plan and its features at position.
func (s *Store) PutPlan(ctx context.Context, plan pricing.Plan, position int) error {
	return s.writePlan(ctx, plan, position, true)
}

func (s *Store) writePlan(ctx context.Context, plan pricing.Plan, position int, upsert bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	planID := strings.TrimSpace(plan.ID)
	if planID == "" {
		return fmt.Errorf("plan id is required")
	}
	variant, err := pricing.ParseVariant(string(plan.Variant))
	if err != nil {
		return err
	}
	popular := 0
	if plan.Popular {
		popular = 1
	}
	now := toMillis(s.now())

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin plan write: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO plans (plan_id, position, title, price, variant, popular, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += `
	          ON CONFLICT(plan_id) DO UPDATE SET
	            position = excluded.position,
	            title = excluded.title,
	            price = excluded.price,
	            variant = excluded.variant,
	            popular = excluded.popular,
	            updated_at = excluded.updated_at`
	}
	if _, err := tx.ExecContext(ctx, query,
		planID,
		position,
		plan.Title,
		plan.Price,
		string(variant),
		popular,
		now,
		now,
	); err != nil {
		if isPlanUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("write plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_features WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("clear plan features: %w", err)
	}
	for ordinal, feature := range plan.Features {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plan_features (plan_id, ordinal, feature) VALUES (?, ?, ?)`,
			planID,
			ordinal,
			feature,
		); err != nil {
			return fmt.Errorf("write plan feature: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plan write: %w", err)
	}
	return nil
}

// DeletePlan removes a plan and its features.
func (s *Store) DeletePlan(ctx context.Context, planID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return fmt.Errorf("plan id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin plan delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_features WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("delete plan features: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE plan_id = ?`, planID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plan delete: %w", err)
	}
	return nil
}

// SeedDefaults writes plans, in order, when the catalog is empty. It
// returns how many plans were written.
func (s *Store) SeedDefaults(ctx context.Context, plans []pricing.Plan) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count plans: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	written := 0
	for position, plan := range plans {
		err := s.CreatePlan(ctx, plan, position)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("seed plan %q: %w", plan.ID, err)
		}
		written++
	}
	return written, nil
}

func isPlanUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "plans.plan_id")
}

var (
	_ storage.Catalog       = (*Store)(nil)
	_ storage.CatalogWriter = (*Store)(nil)
)
