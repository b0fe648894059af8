package upload

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitrina/internal/platform/middleware"
	dErrors "vitrina/pkg/domain-errors"
	"vitrina/pkg/platform/httputil"
)

// Handler exposes the upload endpoint. The route must sit behind the gate.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates the upload HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the upload route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/upload", h.HandleUpload)
}

// HandleUpload accepts a multipart form with a single "file" part and answers
// with the public URL of the stored image.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxBytes())
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "file part is required"))
		return
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	url, err := h.service.Upload(ctx, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "upload failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"url": url})
}
