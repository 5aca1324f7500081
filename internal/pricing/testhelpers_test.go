package pricing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

type recordingDiagnostics struct {
	warnings []string
}

func (r *recordingDiagnostics) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func buttonLabels(html string) []string {
	var labels []string
	rest := html
	for {
		start := strings.Index(rest, `class="card__button"`)
		if start < 0 {
			return labels
		}
		rest = rest[start:]
		open := strings.Index(rest, ">")
		end := strings.Index(rest, "</button>")
		labels = append(labels, rest[open+1:end])
		rest = rest[end:]
	}
}

func countLabel(labels []string, want string) int {
	n := 0
	for _, label := range labels {
		if label == want {
			n++
		}
	}
	return n
}
