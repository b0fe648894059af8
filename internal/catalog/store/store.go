// Package store persists the catalog tree.
//
// Error contract: Get methods return sentinel.ErrNotFound when the row does
// not exist; Update and Delete return sentinel.ErrNotFound when nothing
// matched. Deleting a parent removes its subtree.
package store

import (
	"context"

	"github.com/google/uuid"

	"vitrina/internal/catalog/models"
)

// ShowcaseStore persists showcases.
type ShowcaseStore interface {
	CreateShowcase(ctx context.Context, showcase *models.Showcase) error
	GetShowcase(ctx context.Context, id uuid.UUID) (*models.Showcase, error)
	UpdateShowcase(ctx context.Context, showcase *models.Showcase) error
	DeleteShowcase(ctx context.Context, id uuid.UUID) error
	ListShowcases(ctx context.Context) ([]*models.Showcase, error)
}

// TopicStore persists topics under a showcase.
type TopicStore interface {
	CreateTopic(ctx context.Context, topic *models.Topic) error
	GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	UpdateTopic(ctx context.Context, topic *models.Topic) error
	DeleteTopic(ctx context.Context, id uuid.UUID) error
	ListTopicsByShowcase(ctx context.Context, showcaseID uuid.UUID) ([]*models.Topic, error)
}

// CategoryStore persists categories under a topic.
type CategoryStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategoriesByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Category, error)
}

// ProductStore persists products under a topic or category.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProductsByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Product, error)
}

// Store is the full catalog persistence surface.
type Store interface {
	ShowcaseStore
	TopicStore
	CategoryStore
	ProductStore
}
