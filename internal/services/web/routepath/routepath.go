// Package routepath stores canonical HTTP paths for the pricing host.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                       = "/"
	Health                     = "/healthz"
	StaticPrefix               = "/static/"
	Stylesheet                 = StaticPrefix + "pricing.css"
	Examples                   = "/examples"
	PlansPrefix                = "/plans/"
	PlanSelectPattern          = PlansPrefix + "{planID}/select"
	CardsPrefix                = "/cards/"
	CardActivatePattern        = CardsPrefix + "{cardID}/activate"
	ExamplesPrefix             = "/examples/"
	ExampleCardActivatePattern = ExamplesPrefix + "cards/{cardID}/activate"
	ExamplePlanSelectPattern   = ExamplesPrefix + "{example}/plans/{planID}/select"
)

// PlanSelect returns the session pricing section's plan-select route.
func PlanSelect(planID string) string {
	return PlansPrefix + escapeSegment(planID) + "/select"
}

// CardActivate returns the standalone demo card activation route.
func CardActivate(cardID string) string {
	return CardsPrefix + escapeSegment(cardID) + "/activate"
}

// ExampleCardActivate returns the gallery card activation route.
func ExampleCardActivate(cardID string) string {
	return ExamplesPrefix + "cards/" + escapeSegment(cardID) + "/activate"
}

// ExamplePlanSelect returns the gallery section plan-select route.
func ExamplePlanSelect(example string, planID string) string {
	return ExamplesPrefix + escapeSegment(example) + "/plans/" + escapeSegment(planID) + "/select"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
