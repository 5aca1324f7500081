// Package storage defines the plan catalog contracts used by the web host.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/planboard/internal/pricing"
)

var (
	// ErrNotFound indicates a requested plan is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained plan already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Catalog lists the plans offered on the pricing page, in display order.
type Catalog interface {
	ListPlans(ctx context.Context) ([]pricing.Plan, error)
}

// CatalogWriter edits the plan catalog.
type CatalogWriter interface {
	// CreatePlan inserts a plan at position, failing with ErrAlreadyExists
	// when the id is taken.
	CreatePlan(ctx context.Context, plan pricing.Plan, position int) error
	// PutPlan inserts or replaces a plan at position.
	PutPlan(ctx context.Context, plan pricing.Plan, position int) error
	DeletePlan(ctx context.Context, planID string) error
}
