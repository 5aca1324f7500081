package web

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/planboard/internal/platform/id"
	"github.com/louisbranch/planboard/internal/platform/requestctx"
	"github.com/louisbranch/planboard/internal/pricing"
	"github.com/louisbranch/planboard/internal/pricing/examples"
	apperrors "github.com/louisbranch/planboard/internal/services/web/platform/errors"
	"github.com/louisbranch/planboard/internal/services/web/platform/flash"
	"github.com/louisbranch/planboard/internal/services/web/platform/httpx"
	"github.com/louisbranch/planboard/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/planboard/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/planboard/internal/services/web/platform/weberror"
	"github.com/louisbranch/planboard/internal/services/web/routepath"
	"github.com/louisbranch/planboard/internal/services/web/sessions"
	"github.com/louisbranch/planboard/internal/services/web/static"
	"github.com/louisbranch/planboard/internal/services/web/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	starterCardID      = "starter"
	comingSoonCardID   = "coming-soon"
	interactiveExample = "interactive"
)

type handler struct {
	catalog     storage.Catalog
	sessions    *sessions.Store[*visitor]
	diagnostics pricing.Diagnostics
	logger      *log.Logger
	tracer      trace.Tracer
	policy      requestmeta.SchemePolicy
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST "+routepath.PlanSelectPattern, h.handlePlanSelect)
	mux.HandleFunc("POST "+routepath.CardActivatePattern, h.handleCardActivate)
	mux.HandleFunc("GET "+routepath.Examples, h.handleExamples)
	mux.HandleFunc("POST "+routepath.ExampleCardActivatePattern, h.handleExampleCardActivate)
	mux.HandleFunc("POST "+routepath.ExamplePlanSelectPattern, h.handleExamplePlanSelect)
	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, span := h.tracer.Start(ctx, "pricing.render_home")
	defer span.End()
	if err := h.loadPlans(ctx, v); err != nil {
		h.failSpan(w, r, span, err)
		return
	}
	starter, comingSoon := h.homeCards(v.id)
	h.render(ctx, w, r, pageLayout(appTitle, templ.Join(
		h.takeNotice(w, r),
		demoSection("Individual Card Example", starter),
		sectionBlock(v.pricing),
		demoSection("Disabled Card Example", comingSoon),
	)))
}

func (h *handler) handlePlanSelect(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	planID := r.PathValue("planID")
	ctx, span := h.tracer.Start(ctx, "pricing.select_plan", trace.WithAttributes(
		attribute.String("pricing.plan_id", planID),
	))
	defer span.End()
	if err := h.loadPlans(ctx, v); err != nil {
		h.failSpan(w, r, span, err)
		return
	}
	if !v.pricing.Activate(planID) {
		h.failSpan(w, r, span, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("plan %q not found", planID)))
		return
	}
	if !httpx.IsHTMXRequest(r) {
		flash.Write(w, r, flash.NoticeSuccess("You selected: "+planTitle(v.pricing.Plans(), planID)), h.policy)
		httpx.WriteRedirect(w, r, routepath.Root)
		return
	}
	h.render(ctx, w, r, v.pricing)
}

func (h *handler) handleCardActivate(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cardID := r.PathValue("cardID")
	starter, comingSoon := h.homeCards(v.id)
	var card pricing.Card
	switch cardID {
	case starterCardID:
		card = starter
	case comingSoonCardID:
		card = comingSoon
	default:
		h.fail(w, r, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("card %q not found", cardID)))
		return
	}
	activated := card.Activate()
	_, span := h.tracer.Start(ctx, "pricing.activate_card", trace.WithAttributes(
		attribute.String("pricing.card_id", cardID),
		attribute.Bool("pricing.activated", activated),
	))
	span.End()
	h.acknowledge(w, r, routepath.Root, activationNotice(card.Config().Title, activated))
}

func (h *handler) handleExamples(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, span := h.tracer.Start(ctx, "pricing.render_examples")
	defer span.End()
	parts := make([]templ.Component, 0, len(v.examples)+1)
	parts = append(parts, h.takeNotice(w, r))
	for _, example := range v.examples {
		parts = append(parts, exampleEntry(example))
	}
	h.render(ctx, w, r, pageLayout("Examples | "+appTitle, templ.Join(parts...)))
}

func (h *handler) handleExampleCardActivate(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cardID := r.PathValue("cardID")
	card, ok := examples.FindCard(v.examples, cardID)
	if !ok {
		h.fail(w, r, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("example card %q not found", cardID)))
		return
	}
	activated := card.Activate()
	_, span := h.tracer.Start(ctx, "pricing.activate_example_card", trace.WithAttributes(
		attribute.String("pricing.card_id", cardID),
		attribute.Bool("pricing.activated", activated),
	))
	span.End()
	h.acknowledge(w, r, routepath.Examples, activationNotice(card.Config().Title, activated))
}

func (h *handler) handleExamplePlanSelect(w http.ResponseWriter, r *http.Request) {
	v, ctx, err := h.resolveVisitor(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	name := r.PathValue("example")
	planID := r.PathValue("planID")
	ctx, span := h.tracer.Start(ctx, "pricing.select_example_plan", trace.WithAttributes(
		attribute.String("pricing.example", name),
		attribute.String("pricing.plan_id", planID),
	))
	defer span.End()
	example, ok := examples.Find(v.examples, name)
	if !ok || example.Section == nil {
		h.failSpan(w, r, span, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("example section %q not found", name)))
		return
	}
	if !example.Section.Activate(planID) {
		h.failSpan(w, r, span, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("plan %q not found", planID)))
		return
	}
	if !httpx.IsHTMXRequest(r) {
		flash.Write(w, r, flash.NoticeSuccess("You selected: "+planTitle(example.Section.Plans(), planID)), h.policy)
		httpx.WriteRedirect(w, r, routepath.Examples)
		return
	}
	fragment := templ.Component(example.Section)
	if example.Name == interactiveExample {
		fragment = templ.Join(example.Section, selectionSummary(example, true))
	}
	h.render(ctx, w, r, fragment)
}

// resolveVisitor reads or issues the session cookie and mounts the session's
// components. The returned context carries the session id.
func (h *handler) resolveVisitor(w http.ResponseWriter, r *http.Request) (*visitor, context.Context, error) {
	sessionID, ok := sessioncookie.Read(r)
	if !ok || !validSessionID(sessionID) {
		issued, err := id.NewID()
		if err != nil {
			return nil, nil, fmt.Errorf("issue session: %w", err)
		}
		sessionID = issued
	}
	v, created := h.sessions.Mount(sessionID, h.mountVisitor)
	if created {
		h.logger.Printf("session mounted session=%s active=%d", sessionID, h.sessions.Len())
	}
	sessioncookie.Write(w, r, sessionID, h.sessions.TTL(), h.policy)
	return v, requestctx.WithSessionID(httpx.RequestContext(r), sessionID), nil
}

// validSessionID accepts the 26 lowercase base32 characters id.NewID emits.
func validSessionID(value string) bool {
	if len(value) != 26 {
		return false
	}
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			return false
		}
	}
	return true
}

// loadPlans refreshes the mounted section from the catalog.
func (h *handler) loadPlans(ctx context.Context, v *visitor) error {
	plans, err := h.catalog.ListPlans(ctx)
	if err != nil {
		return apperrors.E(apperrors.KindUnavailable, "plan catalog unavailable: "+err.Error())
	}
	v.pricing.SetPlans(plans)
	return nil
}

// homeCards builds the standalone demo cards shown around the section.
func (h *handler) homeCards(sessionID string) (starter pricing.Card, comingSoon pricing.Card) {
	starter = pricing.NewCard(pricing.CardConfig{
		ID:         starterCardID,
		Title:      "Starter Plan",
		Price:      "$4.99/month",
		Features:   []string{"500 MB Storage", "Community Support", "Basic Features"},
		ButtonText: "Get Started",
		Variant:    pricing.VariantMinimal,
		ActionURL:  routepath.CardActivate(starterCardID),
		OnActivate: func() {
			h.logger.Printf("card activated card=%s session=%s", starterCardID, sessionID)
		},
		Diagnostics: h.diagnostics,
	})
	comingSoon = pricing.NewCard(pricing.CardConfig{
		ID:          comingSoonCardID,
		Title:       "Coming Soon",
		Price:       "TBD",
		Features:    []string{"Advanced AI Features", "Custom Workflows", "Enterprise Security"},
		ButtonText:  "Notify Me",
		Disabled:    true,
		ActionURL:   routepath.CardActivate(comingSoonCardID),
		Diagnostics: h.diagnostics,
	})
	return starter, comingSoon
}

// acknowledge answers a fire-and-forget activation. Redirected requests
// carry notice to the next page.
func (h *handler) acknowledge(w http.ResponseWriter, r *http.Request, fallback string, notice flash.Notice) {
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	flash.Write(w, r, notice, h.policy)
	httpx.WriteRedirect(w, r, fallback)
}

// takeNotice consumes the pending flash notice, if any.
func (h *handler) takeNotice(w http.ResponseWriter, r *http.Request) templ.Component {
	notice, ok := flash.ReadAndClear(w, r, h.policy)
	if !ok {
		return templ.NopComponent
	}
	return noticeBanner(notice)
}

func activationNotice(name string, activated bool) flash.Notice {
	if !activated {
		return flash.NoticeInfo(name + " is not available yet")
	}
	return flash.NoticeSuccess(name + " activated")
}

// planTitle returns the title of planID, or the id when it has none.
func planTitle(plans []pricing.Plan, planID string) string {
	for _, plan := range plans {
		if plan.ID == planID && plan.Title != "" {
			return plan.Title
		}
	}
	return planID
}

// render serves component with ctx so diagnostics see the active span and
// session.
func (h *handler) render(ctx context.Context, w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.fail(w, r, fmt.Errorf("render: %w", err))
		})
	})).ServeHTTP(w, r.WithContext(ctx))
}

func (h *handler) failSpan(w http.ResponseWriter, r *http.Request, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	h.fail(w, r, err)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		h.logger.Printf("request failed method=%s path=%s status=%d request_id=%s err=%v", r.Method, r.URL.Path, status, httpx.RequestIDFrom(r), err)
	}
	weberror.WriteError(w, r, err, pageLayout)
}
