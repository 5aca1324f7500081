package pricing

import (
	"strings"

	"github.com/a-h/templ"
)

func esc(value string) string {
	return templ.EscapeString(value)
}

func joinClasses(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" {
			continue
		}
		parts = append(parts, class)
	}
	return strings.Join(parts, " ")
}

func ifClass(ok bool, class string) string {
	if !ok {
		return ""
	}
	return class
}

// slug lowercases value and replaces runs of anything outside [a-z0-9] with
// a single hyphen.
func slug(value string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}
