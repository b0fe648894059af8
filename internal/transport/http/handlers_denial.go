package httptransport

import (
	"html/template"
	"log/slog"
	"net/http"

	"vitrina/internal/gate"
	"vitrina/internal/initdata"
)

// denialTemplate is the whole denial view. It shows the caller who they are to
// the platform so they can ask an operator to grant them access; it never
// re-runs the access check.
var denialTemplate = template.Must(template.New("denied").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Access required</title>
<style>
  body { font-family: -apple-system, sans-serif; margin: 0; padding: 48px 24px; text-align: center; background: var(--tg-theme-bg-color, #fff); color: var(--tg-theme-text-color, #000); }
  h1 { font-size: 1.3rem; }
  p { color: var(--tg-theme-hint-color, #666); }
  code { font-size: 1.1rem; }
  button { margin-top: 16px; padding: 10px 20px; border: 0; border-radius: 8px; background: var(--tg-theme-button-color, #2481cc); color: var(--tg-theme-button-text-color, #fff); }
</style>
</head>
<body>
<h1>Access required</h1>
{{if .HasIdentity}}
<p>{{.Name}}, your account is not on the access list yet.</p>
<p>Send this id to your administrator:</p>
<code id="tid">{{.TelegramID}}</code>
<br>
<button onclick="navigator.clipboard.writeText(document.getElementById('tid').textContent)">Copy my id</button>
{{else}}
<p>This app only works inside Telegram.</p>
{{end}}
</body>
</html>`))

type denialView struct {
	HasIdentity bool
	Name        string
	TelegramID  int64
}

// DenialHandler renders the unauthorized page.
type DenialHandler struct {
	logger *slog.Logger
}

// NewDenialHandler creates the denial view handler.
func NewDenialHandler(logger *slog.Logger) *DenialHandler {
	return &DenialHandler{logger: logger}
}

// HandleDenied renders the denial view. The identity is re-derived from the
// payload for display only; nothing here grants access.
func (h *DenialHandler) HandleDenied(w http.ResponseWriter, r *http.Request) {
	view := denialView{}
	if data, err := initdata.Parse(gate.RequestFrom(r).InitDataRaw); err == nil {
		if identity, err := data.Identity(); err == nil {
			view.HasIdentity = true
			view.Name = identity.DisplayName()
			view.TelegramID = identity.ID
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := denialTemplate.Execute(w, view); err != nil {
		h.logger.ErrorContext(r.Context(), "denial view render failed", "error", err)
	}
}
