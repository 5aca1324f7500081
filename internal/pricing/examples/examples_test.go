package examples

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/planboard/internal/pricing"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestAllExamplesRenderContent(t *testing.T) {
	t.Parallel()

	for _, example := range All(Options{Diagnostics: pricing.DiscardDiagnostics}) {
		got := renderString(t, example.Component())
		if !strings.Contains(got, "<article") {
			t.Fatalf("example %q rendered no card: %q", example.Name, got)
		}
	}
}

func TestExampleCardActivationForwardsToCallback(t *testing.T) {
	t.Parallel()

	var activated []string
	all := All(Options{
		Diagnostics:    pricing.DiscardDiagnostics,
		OnCardActivate: func(id string) { activated = append(activated, id) },
	})
	planB, ok := FindCard(all, "plan-b")
	if !ok || !planB.Activate() {
		t.Fatal("expected plan-b activation")
	}
	comingSoon, ok := FindCard(all, "coming-soon")
	if !ok || comingSoon.Activate() {
		t.Fatal("disabled card should not activate")
	}
	if len(activated) != 1 || activated[0] != "plan-b" {
		t.Fatalf("activated = %v, want [plan-b]", activated)
	}
}

func TestCardActionURLIsApplied(t *testing.T) {
	t.Parallel()

	all := All(Options{
		Diagnostics:   pricing.DiscardDiagnostics,
		CardActionURL: func(id string) string { return "/examples/cards/" + id + "/activate" },
	})
	got := renderString(t, all[0].Component())
	if !strings.Contains(got, `hx-post="/examples/cards/starter/activate"`) {
		t.Fatalf("expected action URL, got %q", got)
	}
}

func TestSelectionSummaryFollowsSection(t *testing.T) {
	t.Parallel()

	var selections []string
	var interactive Example
	for _, example := range All(Options{
		Diagnostics:  pricing.DiscardDiagnostics,
		OnPlanSelect: func(name, id string) { selections = append(selections, name+"/"+id) },
	}) {
		if example.Name == "interactive" {
			interactive = example
		}
	}
	if interactive.Section == nil {
		t.Fatal("interactive example missing")
	}
	if got := renderString(t, SelectionSummary(interactive.Section)); got != "" {
		t.Fatalf("summary before selection = %q, want empty", got)
	}
	interactive.Section.Activate("yearly")
	if got := renderString(t, SelectionSummary(interactive.Section)); !strings.Contains(got, "You selected: <strong>yearly</strong>") {
		t.Fatalf("summary = %q", got)
	}
	if len(selections) != 1 || selections[0] != "interactive/yearly" {
		t.Fatalf("selections = %v", selections)
	}
}

func TestSectionActionURLScopesByExample(t *testing.T) {
	t.Parallel()

	all := All(Options{
		Diagnostics: pricing.DiscardDiagnostics,
		SectionActionURL: func(name, id string) string {
			return "/examples/" + name + "/plans/" + id + "/select"
		},
	})
	complete, ok := Find(all, "complete")
	if !ok {
		t.Fatal("complete example missing")
	}
	got := renderString(t, complete.Component())
	if !strings.Contains(got, `hx-post="/examples/complete/plans/pro/select"`) {
		t.Fatalf("expected scoped action URL, got %q", got)
	}
	if !strings.Contains(got, `hx-target="#example-complete"`) {
		t.Fatalf("expected section target, got %q", got)
	}
}

func TestFindUnknownExample(t *testing.T) {
	t.Parallel()

	if _, ok := Find(All(Options{Diagnostics: pricing.DiscardDiagnostics}), "missing"); ok {
		t.Fatal("Find(missing) ok = true, want false")
	}
}

func TestFindCard(t *testing.T) {
	t.Parallel()

	all := All(Options{Diagnostics: pricing.DiscardDiagnostics})
	card, ok := FindCard(all, " custom ")
	if !ok {
		t.Fatal("FindCard(custom) ok = false, want true")
	}
	if got := card.Config().Title; got != "Custom Plan" {
		t.Fatalf("title = %q, want %q", got, "Custom Plan")
	}
	if _, ok := FindCard(all, "yearly"); ok {
		t.Fatal("section plans are not standalone cards")
	}
}
