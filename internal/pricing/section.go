package pricing

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

const (
	// DefaultHeading is the section heading when none is configured.
	DefaultHeading = "Choose Your Plan"
	// DefaultSubheading is the section subheading when none is configured.
	DefaultSubheading = "Select the perfect plan for your needs"
	// SelectedButtonText labels the selected plan's action.
	SelectedButtonText = "Selected"
	// ChooseButtonText labels every other plan's action.
	ChooseButtonText = "Choose Plan"
	// PopularBadgeText labels popular plans.
	PopularBadgeText = "Most Popular"
	// NoPlansMessage is shown in place of the grid when there are no plans.
	NoPlansMessage = "No pricing plans available at the moment."
	// DefaultSectionID is the id of the section's root element.
	DefaultSectionID = "pricing-section"

	selectedCardClass = "pricing-section__card--selected"
	noPlansWarning    = "pricing section: no plans provided"
)

// SectionOption configures a Section.
type SectionOption func(*Section)

// WithHeading sets the section heading.
func WithHeading(heading string) SectionOption {
	return func(s *Section) {
		s.heading = heading
	}
}

// WithSubheading sets the section subheading. An empty subheading is not
// rendered.
func WithSubheading(subheading string) SectionOption {
	return func(s *Section) {
		s.subheading = subheading
	}
}

// WithSelectHandler sets the callback invoked with the plan id on every
// activation.
func WithSelectHandler(fn func(planID string)) SectionOption {
	return func(s *Section) {
		s.onSelect = fn
	}
}

// WithDiagnostics sets the warning sink shared by the section and its cards.
func WithDiagnostics(diag Diagnostics) SectionOption {
	return func(s *Section) {
		s.diag = diag
	}
}

// WithActionURL makes card actions post back to the URL built for each plan.
// Responses are swapped into the section root.
func WithActionURL(fn func(planID string) string) SectionOption {
	return func(s *Section) {
		s.actionURL = fn
	}
}

// WithSectionID overrides the id of the section's root element.
func WithSectionID(id string) SectionOption {
	return func(s *Section) {
		if id = strings.TrimSpace(id); id != "" {
			s.elementID = id
		}
	}
}

// Section renders plans as cards and holds the single selected plan id.
//
// Selection survives SetPlans even when the new list no longer contains the
// selected id; only a new Section starts without a selection.
type Section struct {
	heading    string
	subheading string
	onSelect   func(string)
	diag       Diagnostics
	actionURL  func(string) string
	elementID  string

	mu           sync.Mutex
	plans        []Plan
	selected     string
	hasSelection bool
	subscribers  []subscriber
	nextSubID    uint64
}

type subscriber struct {
	id uint64
	fn func()
}

var _ templ.Component = (*Section)(nil)

// NewSection builds a section for plans.
func NewSection(plans []Plan, opts ...SectionOption) *Section {
	s := &Section{
		heading:    DefaultHeading,
		subheading: DefaultSubheading,
		elementID:  DefaultSectionID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.diag = diagnosticsOrDefault(s.diag)
	s.plans = clonePlans(plans)
	s.warnDuplicateIDs(s.plans)
	return s
}

// SetPlans replaces the plan list. The current selection is kept as is.
func (s *Section) SetPlans(plans []Plan) {
	next := clonePlans(plans)
	s.warnDuplicateIDs(next)
	s.mu.Lock()
	s.plans = next
	s.mu.Unlock()
}

// Plans returns a copy of the current plan list.
func (s *Section) Plans() []Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlans(s.plans)
}

// Selected returns the selected plan id, if any.
func (s *Section) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasSelection
}

// ElementID returns the id of the section's root element.
func (s *Section) ElementID() string {
	return s.elementID
}

// TitleID is the id of the section heading element.
func (s *Section) TitleID() string {
	return s.elementID + "-title"
}

// Subscribe registers fn to run after every selection. The returned func
// removes the subscription.
func (s *Section) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for idx, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:idx], s.subscribers[idx+1:]...)
					return
				}
			}
		})
	}
}

// Cards returns one card per plan, configured for the current selection.
func (s *Section) Cards() []Card {
	return s.cardsFor(s.snapshot())
}

type sectionSnapshot struct {
	plans        []Plan
	selected     string
	hasSelection bool
}

func (s *Section) snapshot() sectionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sectionSnapshot{
		plans:        clonePlans(s.plans),
		selected:     s.selected,
		hasSelection: s.hasSelection,
	}
}

func (s *Section) cardsFor(snap sectionSnapshot) []Card {
	cards := make([]Card, 0, len(snap.plans))
	marked := false
	for _, plan := range snap.plans {
		selected := !marked && snap.hasSelection && plan.ID == snap.selected
		if selected {
			marked = true
		}
		cards = append(cards, s.cardFor(plan, selected))
	}
	return cards
}

// Activate forwards an activation to the card of planID. It reports false,
// leaving the selection untouched, when no current plan has that id.
func (s *Section) Activate(planID string) bool {
	s.mu.Lock()
	var (
		plan     Plan
		found    bool
		selected = s.hasSelection && s.selected == planID
	)
	for _, candidate := range s.plans {
		if candidate.ID == planID {
			plan = candidate
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return false
	}
	return s.cardFor(plan, selected).Activate()
}

func (s *Section) cardFor(plan Plan, selected bool) Card {
	buttonText := ChooseButtonText
	class := ""
	if selected {
		buttonText = SelectedButtonText
		class = selectedCardClass
	}
	variant := plan.Variant
	if variant == "" {
		variant = VariantDefault
	}
	actionURL := ""
	if s.actionURL != nil {
		actionURL = s.actionURL(plan.ID)
	}
	planID := plan.ID
	return NewCard(CardConfig{
		ID:           planID,
		Scope:        s.elementID,
		Title:        plan.Title,
		Price:        plan.Price,
		Features:     plan.Features,
		ButtonText:   buttonText,
		OnActivate:   func() { s.selectPlan(planID) },
		Class:        class,
		Variant:      variant,
		ActionURL:    actionURL,
		ActionTarget: "#" + s.elementID,
		Diagnostics:  s.diag,
	})
}

func (s *Section) selectPlan(planID string) {
	s.mu.Lock()
	s.selected = planID
	s.hasSelection = true
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	if s.onSelect != nil {
		s.onSelect(planID)
	}
	for _, sub := range subs {
		sub.fn()
	}
}

func (s *Section) warnDuplicateIDs(plans []Plan) {
	seen := make(map[string]struct{}, len(plans))
	for _, plan := range plans {
		if _, ok := seen[plan.ID]; ok {
			s.diag.Warnf("pricing section: duplicate plan id %q, first occurrence wins", plan.ID)
			continue
		}
		seen[plan.ID] = struct{}{}
	}
}

// Render writes the section markup, or the placeholder when there are no
// plans.
func (s *Section) Render(ctx context.Context, w io.Writer) error {
	elementID := esc(s.elementID)
	snap := s.snapshot()
	if len(snap.plans) == 0 {
		warn(ctx, s.diag, noPlansWarning)
		_, err := io.WriteString(w, `<div id="`+elementID+`" class="pricing-section pricing-section--error"><p>`+esc(NoPlansMessage)+`</p></div>`)
		return err
	}

	var head strings.Builder
	head.WriteString(`<section id="`)
	head.WriteString(elementID)
	head.WriteString(`" class="pricing-section" aria-labelledby="`)
	head.WriteString(esc(s.TitleID()))
	head.WriteString(`"><header class="pricing-section__header"><h1 id="`)
	head.WriteString(esc(s.TitleID()))
	head.WriteString(`" class="pricing-section__title">`)
	head.WriteString(esc(s.heading))
	head.WriteString(`</h1>`)
	if s.subheading != "" {
		head.WriteString(`<p class="pricing-section__subtitle">`)
		head.WriteString(esc(s.subheading))
		head.WriteString(`</p>`)
	}
	head.WriteString(`</header><div class="pricing-section__grid">`)
	if _, err := io.WriteString(w, head.String()); err != nil {
		return err
	}

	for idx, card := range s.cardsFor(snap) {
		popular := snap.plans[idx].Popular
		wrapper := `<div class="` + esc(joinClasses("pricing-section__card-wrapper", ifClass(popular, "pricing-section__card-wrapper--popular"))) + `">`
		if popular {
			wrapper += `<div class="pricing-section__popular-badge">` + esc(PopularBadgeText) + `</div>`
		}
		if _, err := io.WriteString(w, wrapper); err != nil {
			return err
		}
		if err := card.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, `</div></section>`)
	return err
}
