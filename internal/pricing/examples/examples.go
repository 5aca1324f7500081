// Package examples assembles the reference usage of pricing cards and
// sections shown in the example gallery.
package examples

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/planboard/internal/pricing"
)

// Options wires example components to a host.
type Options struct {
	// Diagnostics receives component warnings.
	Diagnostics pricing.Diagnostics
	// OnCardActivate runs with the card id when an example card is activated.
	OnCardActivate func(cardID string)
	// OnPlanSelect runs with the example name and plan id on section selection.
	OnPlanSelect func(example string, planID string)
	// CardActionURL builds the post-back URL for an example card.
	CardActionURL func(cardID string) string
	// SectionActionURL builds the post-back URL for a plan of an example
	// section.
	SectionActionURL func(example string, planID string) string
}

// Example is one named gallery entry.
type Example struct {
	Name    string
	Heading string
	Cards   []pricing.Card
	Section *pricing.Section
}

// Component renders the example body.
func (e Example) Component() templ.Component {
	if e.Section != nil {
		return e.Section
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="examples__grid">`); err != nil {
			return err
		}
		for _, card := range e.Cards {
			if err := card.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// All returns every example in gallery order.
func All(opts Options) []Example {
	b := builder{opts: opts}
	return []Example{
		{
			Name:    "basic",
			Heading: "Basic Card",
			Cards: []pricing.Card{b.card(pricing.CardConfig{
				ID:       "starter",
				Title:    "Starter Plan",
				Price:    "$4.99/month",
				Features: []string{"500 MB Storage", "Community Support", "Basic Features"},
			})},
		},
		{
			Name:    "featured",
			Heading: "Featured Card with Custom Button",
			Cards: []pricing.Card{b.card(pricing.CardConfig{
				ID:         "pro",
				Title:      "Pro Plan",
				Price:      "$19.99/month",
				Features:   []string{"10 GB Storage", "Priority Support", "Advanced Features", "API Access"},
				ButtonText: "Get Pro Now",
				Variant:    pricing.VariantFeatured,
			})},
		},
		{
			Name:    "minimal",
			Heading: "Minimal Card",
			Cards: []pricing.Card{b.card(pricing.CardConfig{
				ID:         "enterprise",
				Title:      "Enterprise",
				Price:      "Custom Pricing",
				Features:   []string{"Unlimited Storage", "24/7 Support", "Custom Features", "Dedicated Manager"},
				ButtonText: "Contact Sales",
				Variant:    pricing.VariantMinimal,
			})},
		},
		{
			Name:    "disabled",
			Heading: "Disabled Card",
			Cards: []pricing.Card{b.card(pricing.CardConfig{
				ID:         "coming-soon",
				Title:      "Coming Soon",
				Price:      "TBD",
				Features:   []string{"AI-Powered Features", "Advanced Analytics", "Custom Workflows"},
				ButtonText: "Notify Me",
				Disabled:   true,
			})},
		},
		{
			Name:    "complete",
			Heading: "Complete Pricing Section",
			Section: b.section("complete", []pricing.Plan{
				{ID: "basic", Title: "Basic", Price: "$9.99/month", Features: []string{"1 GB Storage", "Basic Support", "Core Features"}, Variant: pricing.VariantDefault},
				{ID: "pro", Title: "Professional", Price: "$29.99/month", Features: []string{"10 GB Storage", "Priority Support", "Advanced Features", "API Access"}, Variant: pricing.VariantFeatured, Popular: true},
				{ID: "enterprise", Title: "Enterprise", Price: "$99.99/month", Features: []string{"Unlimited Storage", "24/7 Support", "Custom Features", "Dedicated Manager"}, Variant: pricing.VariantDefault},
			},
				pricing.WithHeading("Choose Your Perfect Plan"),
				pricing.WithSubheading("Start with our basic plan and upgrade as you grow"),
			),
		},
		{
			Name:    "dynamic",
			Heading: "Dynamic Card Generation",
			Cards: []pricing.Card{
				b.card(pricing.CardConfig{ID: "plan-a", Title: "Plan A", Price: "$10", Features: []string{"Feature 1", "Feature 2"}}),
				b.card(pricing.CardConfig{ID: "plan-b", Title: "Plan B", Price: "$20", Features: []string{"Feature 1", "Feature 2", "Feature 3"}}),
				b.card(pricing.CardConfig{ID: "plan-c", Title: "Plan C", Price: "$30", Features: []string{"Feature 1", "Feature 2", "Feature 3", "Feature 4"}}),
			},
		},
		{
			Name:    "custom",
			Heading: "Card with Custom Styling",
			Cards: []pricing.Card{b.card(pricing.CardConfig{
				ID:       "custom",
				Title:    "Custom Plan",
				Price:    "$15.99/month",
				Features: []string{"Custom Feature 1", "Custom Feature 2", "Custom Feature 3"},
				Class:    "custom-card-style",
			})},
		},
		{
			Name:    "interactive",
			Heading: "Interactive Pricing Section",
			Section: b.section("interactive", []pricing.Plan{
				{ID: "monthly", Title: "Monthly", Price: "$19.99/month", Features: []string{"Flexible billing", "Cancel anytime"}, Variant: pricing.VariantDefault},
				{ID: "yearly", Title: "Yearly", Price: "$199.99/year", Features: []string{"2 months free", "Best value", "Locked in rate"}, Variant: pricing.VariantFeatured, Popular: true},
			},
				pricing.WithHeading("Choose Your Billing Cycle"),
				pricing.WithSubheading("Save money with annual billing"),
			),
		},
	}
}

// FindCard returns the example card with cardID.
func FindCard(examples []Example, cardID string) (pricing.Card, bool) {
	cardID = strings.TrimSpace(cardID)
	for _, example := range examples {
		for _, card := range example.Cards {
			if card.Config().ID == cardID {
				return card, true
			}
		}
	}
	return pricing.Card{}, false
}

// Find returns the example named name.
func Find(examples []Example, name string) (Example, bool) {
	name = strings.TrimSpace(name)
	for _, example := range examples {
		if example.Name == name {
			return example, true
		}
	}
	return Example{}, false
}

// SelectionSummary renders the selected plan of section, or nothing before
// the first selection.
func SelectionSummary(section *pricing.Section) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if section == nil {
			return nil
		}
		selected, ok := section.Selected()
		if !ok {
			return nil
		}
		_, err := io.WriteString(w, `<div class="examples__selection"><p>You selected: <strong>`+templ.EscapeString(selected)+`</strong></p></div>`)
		return err
	})
}

type builder struct {
	opts Options
}

func (b builder) card(cfg pricing.CardConfig) pricing.Card {
	cardID := cfg.ID
	if b.opts.OnCardActivate != nil {
		cfg.OnActivate = func() { b.opts.OnCardActivate(cardID) }
	}
	if b.opts.CardActionURL != nil {
		cfg.ActionURL = b.opts.CardActionURL(cardID)
	}
	cfg.Diagnostics = b.opts.Diagnostics
	return pricing.NewCard(cfg)
}

func (b builder) section(name string, plans []pricing.Plan, opts ...pricing.SectionOption) *pricing.Section {
	opts = append(opts,
		pricing.WithSectionID("example-"+name),
		pricing.WithDiagnostics(b.opts.Diagnostics),
	)
	if b.opts.SectionActionURL != nil {
		opts = append(opts, pricing.WithActionURL(func(planID string) string {
			return b.opts.SectionActionURL(name, planID)
		}))
	}
	if b.opts.OnPlanSelect != nil {
		opts = append(opts, pricing.WithSelectHandler(func(planID string) {
			b.opts.OnPlanSelect(name, planID)
		}))
	}
	return pricing.NewSection(plans, opts...)
}
