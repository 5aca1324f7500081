// Package flash provides one-time notices persisted across redirects.
//
// Form posts without htmx answer with a redirect; the notice carries the
// outcome to the page rendered next.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/louisbranch/planboard/internal/services/web/platform/requestmeta"
)

// CookieName is the canonical cookie used for one-time notices.
const CookieName = "planboard_flash"

const maxMessageLength = 200

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is one message shown on the next page render.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// NoticeSuccess creates a success notice.
func NoticeSuccess(message string) Notice {
	return Notice{Kind: KindSuccess, Message: message}
}

// NoticeInfo creates an informational notice.
func NoticeInfo(message string) Notice {
	return Notice{Kind: KindInfo, Message: message}
}

// Write stores a notice cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the notice cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	if w != nil {
		Clear(w, r, policy)
	}
	return decodeNotice(cookie.Value)
}

// Clear expires any notice cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Message == "" || !utf8.ValidString(notice.Message) {
		return Notice{}, false
	}
	if len(notice.Message) > maxMessageLength {
		cut := maxMessageLength
		for cut > 0 && !utf8.RuneStart(notice.Message[cut]) {
			cut--
		}
		notice.Message = notice.Message[:cut]
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
