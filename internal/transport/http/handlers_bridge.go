package httptransport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vitrina/internal/gate"
	"vitrina/internal/gate/bridge"
	"vitrina/internal/platform/middleware"
	"vitrina/internal/sentinel"
	dErrors "vitrina/pkg/domain-errors"
	"vitrina/pkg/platform/httputil"
)

// BridgeHandler relays Mini-App events between the service and the front end.
//
// Ready and alert events are recorded on the per-request bridge and returned
// in the response. Confirm dialogs span requests: the confirm endpoint blocks
// on the shared dialog broker until the answer endpoint resolves it or the
// request deadline expires.
type BridgeHandler struct {
	dialogs *bridge.Live
	logger  *slog.Logger
}

// NewBridgeHandler creates the bridge handler around the shared dialog broker.
func NewBridgeHandler(dialogs *bridge.Live, logger *slog.Logger) *BridgeHandler {
	return &BridgeHandler{dialogs: dialogs, logger: logger}
}

// Register mounts the bridge routes. They must sit behind the gate.
func (h *BridgeHandler) Register(r chi.Router) {
	r.Post("/ready", h.HandleReady)
	r.Get("/events", h.HandleEvents)
	r.Post("/alert", h.HandleAlert)
	r.Post("/confirm", h.HandleConfirm)
	r.Post("/answer", h.HandleAnswer)
}

// HandleReady signals readiness and full-height layout to the host client and
// returns the emitted events for the front end to relay.
func (h *BridgeHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	b, ok := gate.BridgeFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "no platform bridge"))
		return
	}

	b.Ready()
	b.Expand()
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": drain(b)})
}

// HandleEvents drains pending dialog events, including confirm requests opened
// by a concurrent confirm call.
func (h *BridgeHandler) HandleEvents(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": h.dialogs.DrainEvents()})
}

// AlertRequest asks the host client to show a dismissable message.
type AlertRequest struct {
	Message string `json:"message"`
}

func (a *AlertRequest) Normalize() {
	if a != nil {
		a.Message = strings.TrimSpace(a.Message)
	}
}

func (a *AlertRequest) Validate() error {
	if a == nil || a.Message == "" {
		return dErrors.New(dErrors.CodeValidation, "message is required")
	}
	return nil
}

func (h *BridgeHandler) HandleAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AlertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	b, okBridge := gate.BridgeFrom(ctx)
	if !okBridge {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "no platform bridge"))
		return
	}

	if err := b.Alert(ctx, req.Message); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "alert failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": drain(b)})
}

// HandleConfirm opens a confirm dialog and blocks until the answer arrives.
// The front end polls /events to pick up the dialog and posts /answer with
// the verdict. Request deadline expiry answers "no".
func (h *BridgeHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AlertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	confirmed, err := h.dialogs.Confirm(ctx, req.Message)
	if err != nil {
		h.logger.InfoContext(ctx, "confirm dialog expired unanswered", "request_id", requestID)
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"confirmed": false})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"confirmed": confirmed})
}

// AnswerRequest resolves a pending confirm dialog.
type AnswerRequest struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

func (a *AnswerRequest) Normalize() {
	if a != nil {
		a.ID = strings.TrimSpace(a.ID)
	}
}

func (a *AnswerRequest) Validate() error {
	if a == nil || a.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "id is required")
	}
	return nil
}

func (h *BridgeHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnswerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.dialogs.Answer(req.ID, req.Confirmed); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no pending dialog with that id"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "answer failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// drain empties the per-request event recorder when the bridge has one.
func drain(b bridge.Bridge) []bridge.Event {
	if live, ok := b.(*bridge.Live); ok {
		return live.DrainEvents()
	}
	return []bridge.Event{}
}
