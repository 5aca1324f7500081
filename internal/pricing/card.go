package pricing

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// DefaultButtonText labels the card action when CardConfig.ButtonText is empty.
const DefaultButtonText = "Start Trial"

const missingCardDataWarning = "card: missing required fields (title, price, or features)"

// CardConfig describes one card render.
type CardConfig struct {
	// ID scopes element ids so several cards can share a page.
	ID string
	// Scope prefixes element ids with the enclosing container, so the same
	// ID can appear in two sections of one page.
	Scope    string
	Title    string
	Price    string
	Features []string
	// ButtonText defaults to DefaultButtonText.
	ButtonText string
	// OnActivate runs when the enabled card's action is activated.
	OnActivate func()
	// Class is appended to the composed class list.
	Class   string
	Variant Variant
	// Disabled renders an inert action and suppresses OnActivate.
	Disabled bool
	// ActionURL, when set, posts activation back to the host.
	ActionURL string
	// ActionTarget is the hx-target selector swapped with the response.
	ActionTarget string
	// Diagnostics defaults to the standard logger.
	Diagnostics Diagnostics
}

// Card renders a single plan and exposes its one interaction.
type Card struct {
	cfg CardConfig
}

var _ templ.Component = Card{}

// NewCard applies defaults to cfg.
func NewCard(cfg CardConfig) Card {
	if cfg.ButtonText == "" {
		cfg.ButtonText = DefaultButtonText
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantDefault
	}
	return Card{cfg: cfg}
}

// Config returns the card configuration with defaults applied.
func (c Card) Config() CardConfig {
	return c.cfg
}

// Valid reports whether the card has the title, price, and features it
// needs to render.
func (c Card) Valid() bool {
	return c.cfg.Title != "" && c.cfg.Price != "" && len(c.cfg.Features) > 0
}

// Activate runs OnActivate unless the card is disabled. It reports whether
// the callback ran.
func (c Card) Activate() bool {
	if c.cfg.Disabled || c.cfg.OnActivate == nil {
		return false
	}
	c.cfg.OnActivate()
	return true
}

// ClassName joins the base, variant, disabled, and caller classes, skipping
// empty segments.
func (c Card) ClassName() string {
	return joinClasses(
		"card",
		"card--"+string(c.variant()),
		ifClass(c.cfg.Disabled, "card--disabled"),
		c.cfg.Class,
	)
}

// TitleID is the id of the card heading element: card-<scope>-<id>-title
// with both parts slugged and omitted when empty.
func (c Card) TitleID() string {
	parts := []string{"card"}
	if scope := strings.TrimSpace(c.cfg.Scope); scope != "" {
		parts = append(parts, slug(scope))
	}
	if id := strings.TrimSpace(c.cfg.ID); id != "" {
		parts = append(parts, slug(id))
	}
	return strings.Join(append(parts, "title"), "-")
}

func (c Card) variant() Variant {
	if c.cfg.Variant.Valid() {
		return c.cfg.Variant
	}
	return VariantDefault
}

// Render writes the card markup. Invalid cards write nothing.
func (c Card) Render(ctx context.Context, w io.Writer) error {
	diag := diagnosticsOrDefault(c.cfg.Diagnostics)
	if !c.Valid() {
		warn(ctx, diag, missingCardDataWarning)
		return nil
	}
	if c.cfg.Variant != "" && !c.cfg.Variant.Valid() {
		warn(ctx, diag, "card: unknown variant %q for %q, using %q", string(c.cfg.Variant), c.cfg.Title, string(VariantDefault))
	}

	titleID := c.TitleID()
	var b strings.Builder
	b.WriteString(`<article class="`)
	b.WriteString(esc(c.ClassName()))
	b.WriteString(`" role="article" aria-labelledby="`)
	b.WriteString(esc(titleID))
	b.WriteString(`">`)

	b.WriteString(`<header class="card__header"><h2 id="`)
	b.WriteString(esc(titleID))
	b.WriteString(`" class="card__title">`)
	b.WriteString(esc(c.cfg.Title))
	b.WriteString(`</h2><p class="card__price" aria-label="`)
	b.WriteString(esc("Price: " + c.cfg.Price))
	b.WriteString(`">`)
	b.WriteString(esc(c.cfg.Price))
	b.WriteString(`</p></header>`)

	b.WriteString(`<section class="card__features" aria-labelledby="`)
	b.WriteString(esc(titleID))
	b.WriteString(`"><ul class="card__features-list" role="list">`)
	b.WriteString(featureItems(c.cfg.Features))
	b.WriteString(`</ul></section>`)

	b.WriteString(`<footer class="card__footer">`)
	c.writeAction(&b, titleID)
	b.WriteString(`</footer></article>`)

	_, err := io.WriteString(w, b.String())
	return err
}

func (c Card) writeAction(b *strings.Builder, titleID string) {
	interactive := !c.cfg.Disabled && strings.TrimSpace(c.cfg.ActionURL) != ""
	if interactive {
		action := esc(c.cfg.ActionURL)
		b.WriteString(`<form method="post" action="`)
		b.WriteString(action)
		b.WriteString(`" hx-post="`)
		b.WriteString(action)
		b.WriteString(`"`)
		if target := strings.TrimSpace(c.cfg.ActionTarget); target != "" {
			b.WriteString(` hx-target="`)
			b.WriteString(esc(target))
			b.WriteString(`" hx-swap="outerHTML"`)
		}
		b.WriteString(`>`)
	}

	buttonType := "button"
	if interactive {
		buttonType = "submit"
	}
	b.WriteString(`<button type="`)
	b.WriteString(buttonType)
	b.WriteString(`" class="card__button" aria-describedby="`)
	b.WriteString(esc(titleID))
	b.WriteString(`" aria-label="`)
	b.WriteString(esc(c.cfg.ButtonText + " for " + c.cfg.Title))
	b.WriteString(`"`)
	if c.cfg.Disabled {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>`)
	b.WriteString(esc(c.cfg.ButtonText))
	b.WriteString(`</button>`)

	if interactive {
		b.WriteString(`</form>`)
	}
}

// featureItems renders one list item per feature. Keys combine text and
// position so repeated feature text stays distinct.
func featureItems(features []string) string {
	var b strings.Builder
	for idx, feature := range features {
		b.WriteString(`<li class="card__feature" data-key="`)
		b.WriteString(esc(feature + "-" + strconv.Itoa(idx)))
		b.WriteString(`">`)
		b.WriteString(esc(feature))
		b.WriteString(`</li>`)
	}
	return b.String()
}
