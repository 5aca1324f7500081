package observability

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/louisbranch/planboard/internal/services/web/platform/httpx"
)

const sectionFragment = `<section id="pricing-section" class="pricing-section"></section>`

func pricingRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plans/{planID}/select", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("planID") != "pro" {
			http.NotFound(w, r)
			return
		}
		if !httpx.IsHTMXRequest(r) {
			httpx.WriteRedirect(w, r, "/")
			return
		}
		_ = httpx.WriteHTML(w, http.StatusOK, sectionFragment)
	})
	mux.HandleFunc("POST /cards/{cardID}/activate", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestRequestLoggerRecordsPricingOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		htmx    bool
		markers []string
	}{
		{
			name:    "select without htmx redirects",
			target:  "/plans/pro/select",
			markers: []string{"method=POST", "path=/plans/pro/select", "status=303"},
		},
		{
			name:    "select with htmx returns the fragment",
			target:  "/plans/pro/select",
			htmx:    true,
			markers: []string{"status=200", "bytes=" + strconv.Itoa(len(sectionFragment))},
		},
		{
			name:    "unknown plan",
			target:  "/plans/gold/select",
			markers: []string{"path=/plans/gold/select", "status=404"},
		},
		{
			name:    "card activation acknowledges",
			target:  "/cards/starter/activate",
			htmx:    true,
			markers: []string{"status=204", "bytes=0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buffer bytes.Buffer
			h := RequestLogger(log.New(&buffer, "", 0))(pricingRoutes())
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			logLine := buffer.String()
			if !strings.HasPrefix(logLine, "http request ") || !strings.Contains(logLine, "latency=") {
				t.Fatalf("unexpected log line %q", logLine)
			}
			for _, marker := range tt.markers {
				if !strings.Contains(logLine, marker) {
					t.Fatalf("log line missing marker %q: %q", marker, logLine)
				}
			}
		})
	}
}

func TestRequestLoggerSeesRequestIDFromChain(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	h := httpx.Chain(pricingRoutes(), httpx.RequestID(), RequestLogger(log.New(&buffer, "", 0)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans/pro/select", nil))

	rid := rr.Header().Get("X-Request-ID")
	if rid == "" {
		t.Fatal("chain did not assign a request id")
	}
	if !strings.Contains(buffer.String(), "request_id="+rid) {
		t.Fatalf("log line missing request_id=%s: %q", rid, buffer.String())
	}
}

func TestStatusRecorderKeepsFirstStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr}
	rec.WriteHeader(http.StatusSeeOther)
	rec.WriteHeader(http.StatusInternalServerError)
	if got := rec.statusCode(); got != http.StatusSeeOther {
		t.Fatalf("statusCode() = %d, want %d", got, http.StatusSeeOther)
	}
	if rec.Unwrap() != rr {
		t.Fatal("Unwrap() did not return the wrapped writer")
	}
}
