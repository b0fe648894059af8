// Package handler exposes allow-list maintenance over HTTP. The routes sit
// behind the shared admin token, not the session gate.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vitrina/internal/access/models"
	"vitrina/internal/platform/middleware"
	dErrors "vitrina/pkg/domain-errors"
	"vitrina/pkg/platform/httputil"
)

// Service defines the allow-list operations the HTTP layer needs.
type Service interface {
	Grant(ctx context.Context, telegramID int64) (*models.AccessRecord, error)
	Revoke(ctx context.Context, telegramID int64) error
	List(ctx context.Context) ([]*models.AccessRecord, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the maintenance routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleGrant)
	r.Delete("/{telegramID}", h.HandleRevoke)
}

// GrantRequest adds one telegram id to the allow-list.
type GrantRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

func (g *GrantRequest) Validate() error {
	if g == nil || g.TelegramID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "telegram_id must be a positive number")
	}
	return nil
}

// RecordResponse is the JSON shape of one allow-list record.
type RecordResponse struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GrantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Grant(ctx, req.TelegramID)
	if err != nil {
		h.logger.ErrorContext(ctx, "grant failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toRecordResponse(record))
}

func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil || telegramID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid telegram id"))
		return
	}

	if err := h.service.Revoke(ctx, telegramID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]RecordResponse, len(records))
	for i, record := range records {
		responses[i] = toRecordResponse(record)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"records": responses})
}

func toRecordResponse(r *models.AccessRecord) RecordResponse {
	return RecordResponse{
		ID:         r.ID.String(),
		TelegramID: r.TelegramID,
		CreatedAt:  r.CreatedAt,
	}
}
