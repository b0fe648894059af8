package httptransport

import (
	"net/http"

	"vitrina/internal/gate"
	"vitrina/internal/initdata"
	"vitrina/internal/platform/config"
	"vitrina/internal/theme"
	"vitrina/pkg/platform/httputil"
)

// ConfigHandler serves the public client bootstrap values.
type ConfigHandler struct {
	showcaseDomain string
}

// NewConfigHandler creates the config handler.
func NewConfigHandler(cfg *config.Server) *ConfigHandler {
	return &ConfigHandler{showcaseDomain: cfg.ShowcaseDomain}
}

// HandleConfig answers with the values the front end needs before it renders.
func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"showcaseDomain": h.showcaseDomain,
	})
}

// HandleTheme answers with the palette derived from the launch payload. The
// route sits behind the gate, so the payload has already been verified; a dev
// session without a payload falls back to the default palette.
func HandleTheme(w http.ResponseWriter, r *http.Request) {
	raw := gate.RequestFrom(r).InitDataRaw

	var palette theme.Palette
	if data, err := initdata.Parse(raw); err == nil {
		palette = theme.FromInitData(data)
	} else {
		palette = theme.Default()
	}

	httputil.WriteJSON(w, http.StatusOK, palette)
}
