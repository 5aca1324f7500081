package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/planboard/internal/pricing/examples"
)

// exampleEntry renders one gallery entry with its heading.
func exampleEntry(example examples.Example) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="examples__entry" id="example-entry-`+templ.EscapeString(example.Name)+`"><h2>`+templ.EscapeString(example.Heading)+`</h2>`); err != nil {
			return err
		}
		if err := example.Component().Render(ctx, w); err != nil {
			return err
		}
		if example.Name == interactiveExample {
			if err := selectionSummary(example, false).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// selectionSummary renders the summary slot under an example section. The
// out-of-band form is appended to selection responses so htmx refreshes the
// slot alongside the section swap.
func selectionSummary(example examples.Example, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div id="` + templ.EscapeString(summaryID(example)) + `"`
		if oob {
			open += ` hx-swap-oob="true"`
		}
		if _, err := io.WriteString(w, open+`>`); err != nil {
			return err
		}
		if err := examples.SelectionSummary(example.Section).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func summaryID(example examples.Example) string {
	return "example-" + example.Name + "-summary"
}
