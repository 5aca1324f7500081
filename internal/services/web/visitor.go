package web

import (
	"sync/atomic"

	"github.com/louisbranch/planboard/internal/pricing"
	"github.com/louisbranch/planboard/internal/pricing/examples"
	"github.com/louisbranch/planboard/internal/services/web/routepath"
)

const (
	sectionHeading    = "Choose Your Perfect Plan"
	sectionSubheading = "Start with our basic plan and upgrade as you grow"
)

// visitor is the component state mounted for one session.
type visitor struct {
	id          string
	pricing     *pricing.Section
	examples    []examples.Example
	selections  atomic.Uint64
	unsubscribe func()
}

// mountVisitor builds the session's components. The pricing section starts
// empty; plans are loaded from the catalog on every request.
func (h *handler) mountVisitor(sessionID string) *visitor {
	v := &visitor{id: sessionID}
	v.pricing = pricing.NewSection(nil,
		pricing.WithHeading(sectionHeading),
		pricing.WithSubheading(sectionSubheading),
		pricing.WithDiagnostics(h.diagnostics),
		pricing.WithActionURL(routepath.PlanSelect),
		pricing.WithSelectHandler(func(planID string) {
			h.logger.Printf("plan selected plan_id=%s session=%s", planID, sessionID)
		}),
	)
	v.unsubscribe = v.pricing.Subscribe(func() {
		v.selections.Add(1)
	})
	v.examples = examples.All(examples.Options{
		Diagnostics:      h.diagnostics,
		CardActionURL:    routepath.ExampleCardActivate,
		SectionActionURL: routepath.ExamplePlanSelect,
		OnCardActivate: func(cardID string) {
			h.logger.Printf("example card activated card=%s session=%s", cardID, sessionID)
		},
		OnPlanSelect: func(example string, planID string) {
			h.logger.Printf("example plan selected example=%s plan_id=%s session=%s", example, planID, sessionID)
		},
	})
	return v
}

// unmount releases the visitor's subscriptions when the session is evicted.
func (h *handler) unmountVisitor(sessionID string, v *visitor) {
	if v == nil {
		return
	}
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
	h.logger.Printf("session unmounted session=%s selections=%d", sessionID, v.selections.Load())
}
