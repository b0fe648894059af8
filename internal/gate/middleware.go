package gate

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"vitrina/internal/platform/middleware"
	"vitrina/internal/platform/privacy"
	dErrors "vitrina/pkg/domain-errors"
	"vitrina/pkg/platform/httputil"
)

// InitDataHeader carries the launch payload on requests from the Mini-App shell.
const InitDataHeader = "X-Telegram-Init-Data"

// Middleware wraps protected routes with the gate. Requests reach the next
// handler only in the Authorized state; everything else is redirected to the
// denial view (browser navigation) or answered with access_denied (API).
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		decision := g.Run(ctx, RequestFrom(r))
		if !decision.Authorized() {
			g.logDenied(r)
			clearSessionCookie(w)
			if wantsJSON(r) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeAccessDenied, ""))
				return
			}
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			return
		}

		if decision.SessionToken != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    decision.SessionToken,
				Path:     "/",
				MaxAge:   int(g.tokens.TTL().Seconds()),
				HttpOnly: true,
				Secure:   true,
				SameSite: http.SameSiteNoneMode,
			})
		}

		ctx = WithIdentity(ctx, decision.Identity)
		ctx = WithBridge(ctx, decision.Bridge)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestFrom extracts the gate inputs from an HTTP request. The payload is
// accepted from the Mini-App header or, on first navigation, a query value.
func RequestFrom(r *http.Request) *Request {
	raw := r.Header.Get(InitDataHeader)
	if raw == "" {
		raw = r.URL.Query().Get("initData")
	}

	token := ""
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}

	return &Request{InitDataRaw: raw, SessionToken: token}
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// logDenied records client context for support without storing raw PII.
func (g *Gate) logDenied(r *http.Request) {
	ua := useragent.New(r.UserAgent())
	browser, _ := ua.Browser()

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	g.logger.InfoContext(r.Context(), "redirecting to denial view",
		"request_id", middleware.GetRequestID(r.Context()),
		"path", r.URL.Path,
		"client_os", ua.OS(),
		"client_browser", browser,
		"client_ip", privacy.AnonymizeIP(ip),
	)
}
