package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/catalog/service"
	"vitrina/internal/catalog/store"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createShowcase(t *testing.T, router chi.Router) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/showcases", map[string]string{
		"title":  "Autumn Catalog",
		"domain": "Shop.Example.COM",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ShowcaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestHandleCreateShowcase_NormalizesDomain(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/showcases", map[string]string{
		"title":  "  Autumn Catalog  ",
		"domain": "Shop.Example.COM",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ShowcaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Autumn Catalog", resp.Title)
	assert.Equal(t, "shop.example.com", resp.Domain)
}

func TestHandleCreateShowcase_MissingTitle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/showcases", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestHandleCreateShowcase_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/showcases", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetShowcase_DetailCarriesTopics(t *testing.T) {
	router := newTestRouter(t)
	showcaseID := createShowcase(t, router)

	rec := doJSON(t, router, http.MethodPost, "/topics", map[string]string{
		"showcase_id": showcaseID,
		"title":       "Outerwear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/showcases/"+showcaseID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail ShowcaseDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Topics, 1)
	assert.Equal(t, "Outerwear", detail.Topics[0].Title)
}

func TestHandleGetShowcase_BadID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/showcases/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetShowcase_Unknown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/showcases/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandleUpdateShowcase_Partial(t *testing.T) {
	router := newTestRouter(t)
	showcaseID := createShowcase(t, router)

	rec := doJSON(t, router, http.MethodPut, "/showcases/"+showcaseID, map[string]string{
		"title": "Winter Catalog",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ShowcaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Winter Catalog", resp.Title)
	assert.Equal(t, "shop.example.com", resp.Domain)
}

func TestHandleDeleteShowcase(t *testing.T) {
	router := newTestRouter(t)
	showcaseID := createShowcase(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/showcases/"+showcaseID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/showcases/"+showcaseID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateTopic_UnknownShowcase(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/topics", map[string]string{
		"showcase_id": "00000000-0000-0000-0000-000000000001",
		"title":       "Orphan",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)
	showcaseID := createShowcase(t, router)

	rec := doJSON(t, router, http.MethodPost, "/topics", map[string]string{
		"showcase_id": showcaseID,
		"title":       "Outerwear",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var topic TopicResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topic))

	rec = doJSON(t, router, http.MethodPost, "/categories", map[string]string{
		"topic_id": topic.ID,
		"title":    "Jackets",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))

	rec = doJSON(t, router, http.MethodPost, "/products", map[string]string{
		"topic_id":    topic.ID,
		"category_id": category.ID,
		"title":       "Parka",
		"price":       "4990 RUB",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var product ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, category.ID, product.CategoryID)

	// Detach from the category via an explicit empty string.
	rec = doJSON(t, router, http.MethodPut, "/products/"+product.ID, map[string]string{
		"category_id": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Empty(t, product.CategoryID)

	rec = doJSON(t, router, http.MethodGet, "/topics/"+topic.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail TopicDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Len(t, detail.Products, 1)
	assert.Len(t, detail.Categories, 1)

	rec = doJSON(t, router, http.MethodDelete, "/products/"+product.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
