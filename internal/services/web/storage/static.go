package storage

import (
	"context"

	"github.com/louisbranch/planboard/internal/pricing"
)

// StaticCatalog serves a fixed plan list.
type StaticCatalog struct {
	plans []pricing.Plan
}

// NewStaticCatalog copies plans into a fixed catalog.
func NewStaticCatalog(plans []pricing.Plan) *StaticCatalog {
	return &StaticCatalog{plans: copyPlans(plans)}
}

// ListPlans returns a copy of the fixed plans.
func (c *StaticCatalog) ListPlans(ctx context.Context) ([]pricing.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return copyPlans(c.plans), nil
}

// DefaultPlans is the catalog shown by the demo page.
func DefaultPlans() []pricing.Plan {
	return []pricing.Plan{
		{
			ID:       "basic",
			Title:    "Basic Plan",
			Price:    "$9.99/month",
			Features: []string{"1 GB Storage", "Basic Support", "All Core Features", "Email Support"},
			Variant:  pricing.VariantDefault,
		},
		{
			ID:       "pro",
			Title:    "Pro Plan",
			Price:    "$19.99/month",
			Features: []string{"10 GB Storage", "Priority Support", "All Core Features", "Advanced Analytics", "API Access", "Phone Support"},
			Variant:  pricing.VariantFeatured,
			Popular:  true,
		},
		{
			ID:       "enterprise",
			Title:    "Enterprise",
			Price:    "$49.99/month",
			Features: []string{"Unlimited Storage", "24/7 Support", "All Core Features", "Advanced Analytics", "API Access", "Phone Support", "Custom Integrations", "Dedicated Account Manager"},
			Variant:  pricing.VariantDefault,
		},
	}
}

func copyPlans(plans []pricing.Plan) []pricing.Plan {
	out := make([]pricing.Plan, len(plans))
	for i, plan := range plans {
		plan.Features = append([]string(nil), plan.Features...)
		out[i] = plan
	}
	return out
}

var _ Catalog = (*StaticCatalog)(nil)
