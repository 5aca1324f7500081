package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/planboard/internal/services/web/platform/flash"
	"github.com/louisbranch/planboard/internal/services/web/routepath"
)

const (
	appTitle    = "Pricing Component Demo"
	appTagline  = "Modern, responsive pricing cards rendered on the server"
	htmxScript  = "https://unpkg.com/htmx.org@2.0.4"
	footerNotes = "Pricing Component Demo. Built with Go and htmx."
)

// pageLayout wraps body in the document shell shared by every full page.
func pageLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(title)+`</title>`+
			`<link rel="stylesheet" href="`+routepath.Stylesheet+`">`+
			`<script src="`+htmxScript+`" defer></script>`+
			`</head><body><div class="app"><header class="app__header"><h1>`+templ.EscapeString(appTitle)+`</h1>`+
			`<p>`+templ.EscapeString(appTagline)+`</p>`+
			`<nav class="app__nav"><a href="`+routepath.Root+`">Home</a><a href="`+routepath.Examples+`">Examples</a></nav>`+
			`</header><main class="app__main">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main><footer class="app__footer"><p>`+templ.EscapeString(footerNotes)+`</p></footer></div></body></html>`)
		return err
	})
}

// demoSection wraps a component in a titled page section.
func demoSection(heading string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<section class="app__section">`
		if heading != "" {
			open += `<h2>` + templ.EscapeString(heading) + `</h2>`
		}
		if _, err := io.WriteString(w, open+`<div class="app__card-demo">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></section>`)
		return err
	})
}

// sectionBlock wraps a full-width component without the card-width container.
func sectionBlock(body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="app__section">`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// noticeBanner renders a one-time flash notice.
func noticeBanner(notice flash.Notice) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="app__notice app__notice--`+templ.EscapeString(string(notice.Kind))+`" role="status">`+
			templ.EscapeString(notice.Message)+`</div>`)
		return err
	})
}
