package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/planboard/internal/services/web/platform/requestmeta"
)

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatalf("expected nil request to have no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, ok := Read(req); ok {
		t.Fatalf("expected missing cookie")
	}

	req.AddCookie(&http.Cookie{Name: Name, Value: "  ps-1  "})
	value, ok := Read(req)
	if !ok {
		t.Fatalf("expected cookie to be present")
	}
	if value != "ps-1" {
		t.Fatalf("value = %q, want %q", value, "ps-1")
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	secureReq := httptest.NewRequest(http.MethodGet, "https://plans.example.test", nil)
	secureRR := httptest.NewRecorder()
	Write(secureRR, secureReq, "ps-1", 30*time.Minute, requestmeta.SchemePolicy{})
	secureCookie, err := http.ParseSetCookie(secureRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if secureCookie.Name != Name {
		t.Fatalf("cookie name = %q, want %q", secureCookie.Name, Name)
	}
	if secureCookie.Value != "ps-1" {
		t.Fatalf("cookie value = %q, want %q", secureCookie.Value, "ps-1")
	}
	if !secureCookie.Secure {
		t.Fatalf("expected secure cookie for https request")
	}
	if secureCookie.MaxAge != 1800 {
		t.Fatalf("cookie max-age = %d, want %d", secureCookie.MaxAge, 1800)
	}
	if !secureCookie.HttpOnly {
		t.Fatalf("expected http-only cookie")
	}

	httpReq := httptest.NewRequest(http.MethodGet, "http://plans.example.test", nil)
	httpRR := httptest.NewRecorder()
	Write(httpRR, httpReq, "ps-1", 0, requestmeta.SchemePolicy{})
	httpCookie, err := http.ParseSetCookie(httpRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if httpCookie.Secure {
		t.Fatalf("expected non-secure cookie for http request")
	}
	if httpCookie.MaxAge != 0 {
		t.Fatalf("cookie max-age = %d, want session cookie", httpCookie.MaxAge)
	}

	policyReq := httptest.NewRequest(http.MethodGet, "http://plans.example.test", nil)
	policyReq.Header.Set("X-Forwarded-Proto", "https")
	policyRR := httptest.NewRecorder()
	Write(policyRR, policyReq, "ps-1", 0, requestmeta.SchemePolicy{TrustForwardedProto: true})
	policyCookie, err := http.ParseSetCookie(policyRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if !policyCookie.Secure {
		t.Fatalf("expected secure cookie when trusted policy is enabled")
	}
}

func TestWriteNilWriterSafety(t *testing.T) {
	t.Parallel()

	Write(nil, nil, "ps-1", 0, requestmeta.SchemePolicy{})
}
