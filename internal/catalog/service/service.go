// Package service implements the catalog operations behind the admin API.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"vitrina/internal/catalog/models"
	"vitrina/internal/catalog/store"
	"vitrina/internal/platform/metrics"
	"vitrina/internal/sentinel"
	dErrors "vitrina/pkg/domain-errors"
)

// Service wraps the catalog store with validation and read models.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables catalog write counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates the catalog service.
func New(st store.Store, opts ...Option) *Service {
	svc := &Service{
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// CreateShowcaseCommand carries validated showcase fields.
type CreateShowcaseCommand struct {
	Title       string
	Description string
	Domain      string
	ImageURL    string
}

// UpdateShowcaseCommand updates only the fields that are non-nil.
type UpdateShowcaseCommand struct {
	Title       *string
	Description *string
	Domain      *string
	ImageURL    *string
}

func (s *Service) CreateShowcase(ctx context.Context, cmd *CreateShowcaseCommand) (*models.Showcase, error) {
	if cmd.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}

	now := s.now()
	showcase := &models.Showcase{
		ID:          uuid.New(),
		Title:       cmd.Title,
		Description: cmd.Description,
		Domain:      cmd.Domain,
		ImageURL:    cmd.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateShowcase(ctx, showcase); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create showcase")
	}

	s.countWrite("showcase_create")
	s.logger.InfoContext(ctx, "showcase created", "showcase_id", showcase.ID)
	return showcase, nil
}

// GetShowcase returns the showcase with its topics. The topic lookup runs
// concurrently with nothing else today but keeps the detail shape in one place.
func (s *Service) GetShowcase(ctx context.Context, id uuid.UUID) (*models.ShowcaseDetail, error) {
	showcase, err := s.store.GetShowcase(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "showcase not found")
	}

	topics, err := s.store.ListTopicsByShowcase(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load topics")
	}

	return &models.ShowcaseDetail{Showcase: *showcase, Topics: topics}, nil
}

func (s *Service) UpdateShowcase(ctx context.Context, id uuid.UUID, cmd *UpdateShowcaseCommand) (*models.Showcase, error) {
	showcase, err := s.store.GetShowcase(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "showcase not found")
	}

	applyString(&showcase.Title, cmd.Title)
	applyString(&showcase.Description, cmd.Description)
	applyString(&showcase.Domain, cmd.Domain)
	applyString(&showcase.ImageURL, cmd.ImageURL)
	if showcase.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	showcase.UpdatedAt = s.now()

	if err := s.store.UpdateShowcase(ctx, showcase); err != nil {
		return nil, translateLookup(err, "showcase not found")
	}

	s.countWrite("showcase_update")
	return showcase, nil
}

func (s *Service) DeleteShowcase(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteShowcase(ctx, id); err != nil {
		return translateLookup(err, "showcase not found")
	}
	s.countWrite("showcase_delete")
	s.logger.InfoContext(ctx, "showcase deleted", "showcase_id", id)
	return nil
}

func (s *Service) ListShowcases(ctx context.Context) ([]*models.Showcase, error) {
	showcases, err := s.store.ListShowcases(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list showcases")
	}
	return showcases, nil
}

// CreateTopicCommand carries validated topic fields.
type CreateTopicCommand struct {
	ShowcaseID  uuid.UUID
	Title       string
	Description string
	ImageURL    string
}

// UpdateTopicCommand updates only the fields that are non-nil.
type UpdateTopicCommand struct {
	Title       *string
	Description *string
	ImageURL    *string
}

func (s *Service) CreateTopic(ctx context.Context, cmd *CreateTopicCommand) (*models.Topic, error) {
	if cmd.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}

	now := s.now()
	topic := &models.Topic{
		ID:          uuid.New(),
		ShowcaseID:  cmd.ShowcaseID,
		Title:       cmd.Title,
		Description: cmd.Description,
		ImageURL:    cmd.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTopic(ctx, topic); err != nil {
		return nil, translateLookup(err, "showcase not found")
	}

	s.countWrite("topic_create")
	return topic, nil
}

// GetTopic returns the topic with its categories and products. Both child
// lookups run concurrently; the first failure cancels the other.
func (s *Service) GetTopic(ctx context.Context, id uuid.UUID) (*models.TopicDetail, error) {
	topic, err := s.store.GetTopic(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "topic not found")
	}

	detail := &models.TopicDetail{Topic: *topic}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.store.ListCategoriesByTopic(gctx, id)
		if err != nil {
			return err
		}
		detail.Categories = categories
		return nil
	})
	g.Go(func() error {
		products, err := s.store.ListProductsByTopic(gctx, id)
		if err != nil {
			return err
		}
		detail.Products = products
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load topic children")
	}

	return detail, nil
}

func (s *Service) UpdateTopic(ctx context.Context, id uuid.UUID, cmd *UpdateTopicCommand) (*models.Topic, error) {
	topic, err := s.store.GetTopic(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "topic not found")
	}

	applyString(&topic.Title, cmd.Title)
	applyString(&topic.Description, cmd.Description)
	applyString(&topic.ImageURL, cmd.ImageURL)
	if topic.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	topic.UpdatedAt = s.now()

	if err := s.store.UpdateTopic(ctx, topic); err != nil {
		return nil, translateLookup(err, "topic not found")
	}

	s.countWrite("topic_update")
	return topic, nil
}

func (s *Service) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteTopic(ctx, id); err != nil {
		return translateLookup(err, "topic not found")
	}
	s.countWrite("topic_delete")
	return nil
}

// CreateCategoryCommand carries validated category fields.
type CreateCategoryCommand struct {
	TopicID uuid.UUID
	Title   string
}

func (s *Service) CreateCategory(ctx context.Context, cmd *CreateCategoryCommand) (*models.Category, error) {
	if cmd.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}

	now := s.now()
	category := &models.Category{
		ID:        uuid.New(),
		TopicID:   cmd.TopicID,
		Title:     cmd.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, translateLookup(err, "topic not found")
	}

	s.countWrite("category_create")
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, title string) (*models.Category, error) {
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}

	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "category not found")
	}

	category.Title = title
	category.UpdatedAt = s.now()
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, translateLookup(err, "category not found")
	}

	s.countWrite("category_update")
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return translateLookup(err, "category not found")
	}
	s.countWrite("category_delete")
	return nil
}

// CreateProductCommand carries validated product fields.
type CreateProductCommand struct {
	TopicID     uuid.UUID
	CategoryID  *uuid.UUID
	Title       string
	Description string
	Price       string
	ImageURL    string
}

// UpdateProductCommand updates only the fields that are non-nil. SetCategory
// distinguishes "leave the category alone" from "detach the category".
type UpdateProductCommand struct {
	Title       *string
	Description *string
	Price       *string
	ImageURL    *string
	CategoryID  *uuid.UUID
	SetCategory bool
}

func (s *Service) CreateProduct(ctx context.Context, cmd *CreateProductCommand) (*models.Product, error) {
	if cmd.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}

	now := s.now()
	product := &models.Product{
		ID:          uuid.New(),
		TopicID:     cmd.TopicID,
		CategoryID:  cmd.CategoryID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Price:       cmd.Price,
		ImageURL:    cmd.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, translateLookup(err, "parent not found")
	}

	s.countWrite("product_create")
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "product not found")
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, cmd *UpdateProductCommand) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, translateLookup(err, "product not found")
	}

	applyString(&product.Title, cmd.Title)
	applyString(&product.Description, cmd.Description)
	applyString(&product.Price, cmd.Price)
	applyString(&product.ImageURL, cmd.ImageURL)
	if cmd.SetCategory {
		product.CategoryID = cmd.CategoryID
	}
	if product.Title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	product.UpdatedAt = s.now()

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, translateLookup(err, "product not found")
	}

	s.countWrite("product_update")
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return translateLookup(err, "product not found")
	}
	s.countWrite("product_delete")
	return nil
}

func (s *Service) countWrite(op string) {
	if s.metrics != nil {
		s.metrics.CatalogWrites.WithLabelValues(op).Inc()
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func translateLookup(err error, notFoundMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "catalog store failed")
}
