package storage

import (
	"context"
	"testing"
)

func TestStaticCatalogReturnsCopies(t *testing.T) {
	t.Parallel()

	catalog := NewStaticCatalog(DefaultPlans())
	first, err := catalog.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	first[0].Features[0] = "mutated"
	first[1].Title = "mutated"

	second, err := catalog.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if second[0].Features[0] != "1 GB Storage" || second[1].Title != "Pro Plan" {
		t.Fatalf("catalog mutated through returned slice: %+v", second[:2])
	}
}

func TestStaticCatalogHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewStaticCatalog(nil).ListPlans(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDefaultPlansHasOnePopularPlan(t *testing.T) {
	t.Parallel()

	popular := 0
	ids := map[string]bool{}
	for _, plan := range DefaultPlans() {
		if plan.Popular {
			popular++
		}
		if ids[plan.ID] {
			t.Fatalf("duplicate id %q", plan.ID)
		}
		ids[plan.ID] = true
	}
	if popular != 1 {
		t.Fatalf("popular plans = %d, want 1", popular)
	}
}
