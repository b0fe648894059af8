package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/catalog/store"
	dErrors "vitrina/pkg/domain-errors"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(store.NewInMemory(),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func seedShowcase(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	showcase, err := svc.CreateShowcase(context.Background(), &CreateShowcaseCommand{
		Title:  "Autumn Catalog",
		Domain: "shop.example.com",
	})
	require.NoError(t, err)
	return showcase.ID
}

func seedTopic(t *testing.T, svc *Service, showcaseID uuid.UUID) uuid.UUID {
	t.Helper()
	topic, err := svc.CreateTopic(context.Background(), &CreateTopicCommand{
		ShowcaseID: showcaseID,
		Title:      "Outerwear",
	})
	require.NoError(t, err)
	return topic.ID
}

func TestCreateShowcase_RequiresTitle(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateShowcase(context.Background(), &CreateShowcaseCommand{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestGetShowcase_ReturnsTopics(t *testing.T) {
	svc := newService(t)
	showcaseID := seedShowcase(t, svc)
	seedTopic(t, svc, showcaseID)
	seedTopic(t, svc, showcaseID)

	detail, err := svc.GetShowcase(context.Background(), showcaseID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Catalog", detail.Title)
	assert.Len(t, detail.Topics, 2)
}

func TestGetShowcase_UnknownIDIsNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetShowcase(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateShowcase_PartialUpdateKeepsOtherFields(t *testing.T) {
	svc := newService(t)
	showcaseID := seedShowcase(t, svc)

	newTitle := "Winter Catalog"
	updated, err := svc.UpdateShowcase(context.Background(), showcaseID, &UpdateShowcaseCommand{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "Winter Catalog", updated.Title)
	assert.Equal(t, "shop.example.com", updated.Domain)
}

func TestUpdateShowcase_RejectsEmptyTitle(t *testing.T) {
	svc := newService(t)
	showcaseID := seedShowcase(t, svc)

	empty := ""
	_, err := svc.UpdateShowcase(context.Background(), showcaseID, &UpdateShowcaseCommand{
		Title: &empty,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestDeleteShowcase_RemovesSubtree(t *testing.T) {
	svc := newService(t)
	showcaseID := seedShowcase(t, svc)
	topicID := seedTopic(t, svc, showcaseID)

	require.NoError(t, svc.DeleteShowcase(context.Background(), showcaseID))

	_, err := svc.GetTopic(context.Background(), topicID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestCreateTopic_UnknownShowcaseIsNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateTopic(context.Background(), &CreateTopicCommand{
		ShowcaseID: uuid.New(),
		Title:      "Orphan",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestGetTopic_ResolvesCategoriesAndProducts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	showcaseID := seedShowcase(t, svc)
	topicID := seedTopic(t, svc, showcaseID)

	category, err := svc.CreateCategory(ctx, &CreateCategoryCommand{TopicID: topicID, Title: "Jackets"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, &CreateProductCommand{
		TopicID:    topicID,
		CategoryID: &category.ID,
		Title:      "Parka",
		Price:      "4990 RUB",
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, &CreateProductCommand{
		TopicID: topicID,
		Title:   "Scarf",
	})
	require.NoError(t, err)

	detail, err := svc.GetTopic(ctx, topicID)
	require.NoError(t, err)
	assert.Len(t, detail.Categories, 1)
	assert.Len(t, detail.Products, 2)
}

func TestDeleteCategory_DetachesProducts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	showcaseID := seedShowcase(t, svc)
	topicID := seedTopic(t, svc, showcaseID)

	category, err := svc.CreateCategory(ctx, &CreateCategoryCommand{TopicID: topicID, Title: "Jackets"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, &CreateProductCommand{
		TopicID:    topicID,
		CategoryID: &category.ID,
		Title:      "Parka",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "product survives its category")
}

func TestUpdateProduct_MovesAndDetachesCategory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	showcaseID := seedShowcase(t, svc)
	topicID := seedTopic(t, svc, showcaseID)

	category, err := svc.CreateCategory(ctx, &CreateCategoryCommand{TopicID: topicID, Title: "Jackets"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, &CreateProductCommand{TopicID: topicID, Title: "Parka"})
	require.NoError(t, err)

	moved, err := svc.UpdateProduct(ctx, product.ID, &UpdateProductCommand{
		SetCategory: true,
		CategoryID:  &category.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, moved.CategoryID)
	assert.Equal(t, category.ID, *moved.CategoryID)

	detached, err := svc.UpdateProduct(ctx, product.ID, &UpdateProductCommand{SetCategory: true})
	require.NoError(t, err)
	assert.Nil(t, detached.CategoryID)
}

func TestDeleteProduct_UnknownIsNotFound(t *testing.T) {
	svc := newService(t)

	err := svc.DeleteProduct(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
