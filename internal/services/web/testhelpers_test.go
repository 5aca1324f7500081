package web

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/louisbranch/planboard/internal/pricing"
	"github.com/louisbranch/planboard/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/planboard/internal/services/web/storage"
	"golang.org/x/net/html"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeCatalog struct {
	mu    sync.Mutex
	plans []pricing.Plan
	err   error
}

func (c *fakeCatalog) ListPlans(ctx context.Context) ([]pricing.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return append([]pricing.Plan(nil), c.plans...), nil
}

func (c *fakeCatalog) set(plans []pricing.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans = plans
}

type testHost struct {
	t       *testing.T
	handler http.Handler
	logs    *lockedBuffer
	spans   *tracetest.SpanRecorder
}

func newTestHost(t *testing.T, cfg Config) *testHost {
	t.Helper()
	logs := &lockedBuffer{}
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	if cfg.Catalog == nil {
		cfg.Catalog = storage.NewStaticCatalog(storage.DefaultPlans())
	}
	cfg.Logger = log.New(logs, "", 0)
	cfg.Tracer = provider.Tracer("planboard-test")
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return &testHost{t: t, handler: h, logs: logs, spans: spans}
}

// do serves one request. An empty session sends no cookie.
func (h *testHost) do(method, target, session string, htmx bool) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: session})
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

// session opens the home page and returns the issued session id.
func (h *testHost) session() string {
	h.t.Helper()
	rr := h.do(http.MethodGet, "/", "", false)
	if rr.Code != http.StatusOK {
		h.t.Fatalf("GET / status = %d, want %d", rr.Code, http.StatusOK)
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			return cookie.Value
		}
	}
	h.t.Fatalf("GET / issued no session cookie")
	return ""
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "id") == id }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// buttonTexts returns the visible labels of every button under n.
func buttonTexts(n *html.Node) []string {
	var labels []string
	for _, button := range findAll(n, byTag("button")) {
		labels = append(labels, textOf(button))
	}
	return labels
}

// sectionButtons returns the button labels inside the pricing section.
func sectionButtons(t *testing.T, body string, sectionID string) []string {
	t.Helper()
	sections := findAll(parseHTML(t, body), byID(sectionID))
	if len(sections) != 1 {
		t.Fatalf("found %d elements with id %q, want 1", len(sections), sectionID)
	}
	return buttonTexts(sections[0])
}
