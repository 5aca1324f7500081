package pricing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownVariant indicates a variant name outside the supported set.
var ErrUnknownVariant = errors.New("unknown card variant")

// Variant selects the visual treatment of a card.
type Variant string

const (
	VariantDefault  Variant = "default"
	VariantFeatured Variant = "featured"
	VariantMinimal  Variant = "minimal"
)

// Variants lists every supported variant in display order.
func Variants() []Variant {
	return []Variant{VariantDefault, VariantFeatured, VariantMinimal}
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	return slices.Contains(Variants(), v)
}

// ParseVariant resolves a variant name. An empty name resolves to
// VariantDefault.
func ParseVariant(raw string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return VariantDefault, nil
	}
	v := Variant(name)
	if !v.Valid() {
		return VariantDefault, fmt.Errorf("%w: %q", ErrUnknownVariant, raw)
	}
	return v, nil
}

// Plan is one pricing plan's display data as supplied by the host.
type Plan struct {
	// ID identifies the plan within one rendered section.
	ID string
	// Title is the plan name shown in the card heading.
	Title string
	// Price is display text such as "$9.99/month"; it is never parsed.
	Price string
	// Features are rendered in order.
	Features []string
	// Variant defaults to VariantDefault when empty.
	Variant Variant
	// Popular adds the "Most Popular" badge.
	Popular bool
}

func clonePlans(plans []Plan) []Plan {
	if plans == nil {
		return nil
	}
	out := make([]Plan, len(plans))
	for i, plan := range plans {
		plan.Features = append([]string(nil), plan.Features...)
		out[i] = plan
	}
	return out
}
