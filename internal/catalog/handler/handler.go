package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vitrina/internal/catalog/models"
	"vitrina/internal/catalog/service"
	"vitrina/internal/platform/middleware"
	dErrors "vitrina/pkg/domain-errors"
	"vitrina/pkg/platform/httputil"
)

// Service defines the catalog operations the HTTP layer needs.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	CreateShowcase(ctx context.Context, cmd *service.CreateShowcaseCommand) (*models.Showcase, error)
	GetShowcase(ctx context.Context, id uuid.UUID) (*models.ShowcaseDetail, error)
	UpdateShowcase(ctx context.Context, id uuid.UUID, cmd *service.UpdateShowcaseCommand) (*models.Showcase, error)
	DeleteShowcase(ctx context.Context, id uuid.UUID) error
	ListShowcases(ctx context.Context) ([]*models.Showcase, error)

	CreateTopic(ctx context.Context, cmd *service.CreateTopicCommand) (*models.Topic, error)
	GetTopic(ctx context.Context, id uuid.UUID) (*models.TopicDetail, error)
	UpdateTopic(ctx context.Context, id uuid.UUID, cmd *service.UpdateTopicCommand) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, cmd *service.CreateCategoryCommand) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, title string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, cmd *service.CreateProductCommand) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, cmd *service.UpdateProductCommand) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the catalog routes. The router passed in must already sit
// behind the session gate.
func (h *Handler) Register(r chi.Router) {
	r.Post("/showcases", h.HandleCreateShowcase)
	r.Get("/showcases", h.HandleListShowcases)
	r.Get("/showcases/{id}", h.HandleGetShowcase)
	r.Put("/showcases/{id}", h.HandleUpdateShowcase)
	r.Delete("/showcases/{id}", h.HandleDeleteShowcase)

	r.Post("/topics", h.HandleCreateTopic)
	r.Get("/topics/{id}", h.HandleGetTopic)
	r.Put("/topics/{id}", h.HandleUpdateTopic)
	r.Delete("/topics/{id}", h.HandleDeleteTopic)

	r.Post("/categories", h.HandleCreateCategory)
	r.Put("/categories/{id}", h.HandleUpdateCategory)
	r.Delete("/categories/{id}", h.HandleDeleteCategory)

	r.Post("/products", h.HandleCreateProduct)
	r.Get("/products/{id}", h.HandleGetProduct)
	r.Put("/products/{id}", h.HandleUpdateProduct)
	r.Delete("/products/{id}", h.HandleDeleteProduct)
}

func (h *Handler) HandleCreateShowcase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateShowcaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	showcase, err := h.service.CreateShowcase(ctx, req.ToCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "create showcase failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toShowcaseResponse(showcase))
}

func (h *Handler) HandleListShowcases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	showcases, err := h.service.ListShowcases(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list showcases failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	responses := make([]ShowcaseResponse, len(showcases))
	for i, showcase := range showcases {
		responses[i] = toShowcaseResponse(showcase)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"showcases": responses})
}

func (h *Handler) HandleGetShowcase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid showcase id")
	if !ok {
		return
	}

	detail, err := h.service.GetShowcase(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toShowcaseDetailResponse(detail))
}

func (h *Handler) HandleUpdateShowcase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := pathID(w, r, "invalid showcase id")
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateShowcaseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	showcase, err := h.service.UpdateShowcase(ctx, id, req.ToCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "update showcase failed", "error", err, "request_id", requestID, "showcase_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toShowcaseResponse(showcase))
}

func (h *Handler) HandleDeleteShowcase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid showcase id")
	if !ok {
		return
	}

	if err := h.service.DeleteShowcase(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCreateTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTopicRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	topic, err := h.service.CreateTopic(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "create topic failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toTopicResponse(topic))
}

func (h *Handler) HandleGetTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid topic id")
	if !ok {
		return
	}

	detail, err := h.service.GetTopic(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTopicDetailResponse(detail))
}

func (h *Handler) HandleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := pathID(w, r, "invalid topic id")
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateTopicRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	topic, err := h.service.UpdateTopic(ctx, id, req.ToCommand())
	if err != nil {
		h.logger.ErrorContext(ctx, "update topic failed", "error", err, "request_id", requestID, "topic_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toTopicResponse(topic))
}

func (h *Handler) HandleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid topic id")
	if !ok {
		return
	}

	if err := h.service.DeleteTopic(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCategoryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	category, err := h.service.CreateCategory(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "create category failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *Handler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := pathID(w, r, "invalid category id")
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateCategoryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	category, err := h.service.UpdateCategory(ctx, id, req.Title)
	if err != nil {
		h.logger.ErrorContext(ctx, "update category failed", "error", err, "request_id", requestID, "category_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid category id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateProductRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	product, err := h.service.CreateProduct(ctx, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "create product failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid product id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, ok := pathID(w, r, "invalid product id")
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProductRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(ctx, id, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "update product failed", "error", err, "request_id", requestID, "product_id", id)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r, "invalid product id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, badMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, badMsg))
		return uuid.Nil, false
	}
	return id, true
}
