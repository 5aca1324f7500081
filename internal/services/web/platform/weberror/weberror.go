// Package weberror renders error responses for the pricing host.
package weberror

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/planboard/internal/services/web/platform/errors"
	"github.com/louisbranch/planboard/internal/services/web/platform/httpx"
)

// Shell wraps error content in the full page layout.
type Shell func(title string, body templ.Component) templ.Component

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe error message. Error text is never
// exposed; only the status text of the mapped status is.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// ErrorState renders the error panel for statusCode.
func ErrorState(statusCode int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="app-error-state" class="app-error" role="alert"><h2>`+
			strconv.Itoa(statusCode)+`</h2><p>`+templ.EscapeString(http.StatusText(statusCode))+`</p></div>`)
		return err
	})
}

// WriteAppError writes the error page for full-page requests and the bare
// error panel for htmx requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, shell Shell) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	component := ErrorState(statusCode)
	if !httpx.IsHTMXRequest(r) && shell != nil {
		component = shell(http.StatusText(statusCode), component)
	}
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		log.Printf("render error page status=%d request_id=%s err=%v", statusCode, httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}
	if err := httpx.WriteHTML(w, statusCode, buf.String()); err != nil {
		log.Printf("write error page status=%d request_id=%s err=%v", statusCode, httpx.RequestIDFrom(r), err)
	}
}

// WriteError maps err to a status and writes the matching response: the
// error page for not-found and server failures, plain text otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, err error, shell Shell) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, shell)
		return
	}
	http.Error(w, PublicMessage(err), statusCode)
}
