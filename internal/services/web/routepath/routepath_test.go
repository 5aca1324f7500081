package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/healthz" {
		t.Fatalf("Health = %q", Health)
	}
	if Examples != "/examples" {
		t.Fatalf("Examples = %q", Examples)
	}
	if Stylesheet != "/static/pricing.css" {
		t.Fatalf("Stylesheet = %q", Stylesheet)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "PlanSelect", got: PlanSelect("pro"), want: "/plans/pro/select"},
		{name: "CardActivate", got: CardActivate("starter"), want: "/cards/starter/activate"},
		{name: "ExampleCardActivate", got: ExampleCardActivate("plan-a"), want: "/examples/cards/plan-a/activate"},
		{name: "ExamplePlanSelect", got: ExamplePlanSelect("interactive", "yearly"), want: "/examples/interactive/plans/yearly/select"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s() = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestRouteBuildersEscapeSegments(t *testing.T) {
	t.Parallel()

	if got := PlanSelect(" team plan/2 "); got != "/plans/team%20plan%2F2/select" {
		t.Fatalf("PlanSelect() = %q", got)
	}
}
