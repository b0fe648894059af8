package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"vitrina/internal/catalog/models"
	"vitrina/internal/sentinel"
)

// InMemory keeps the catalog tree in memory for development and tests.
type InMemory struct {
	mu         sync.RWMutex
	showcases  map[uuid.UUID]*models.Showcase
	topics     map[uuid.UUID]*models.Topic
	categories map[uuid.UUID]*models.Category
	products   map[uuid.UUID]*models.Product
}

// NewInMemory creates an empty in-memory catalog store.
func NewInMemory() *InMemory {
	return &InMemory{
		showcases:  make(map[uuid.UUID]*models.Showcase),
		topics:     make(map[uuid.UUID]*models.Topic),
		categories: make(map[uuid.UUID]*models.Category),
		products:   make(map[uuid.UUID]*models.Product),
	}
}

func (s *InMemory) CreateShowcase(_ context.Context, showcase *models.Showcase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *showcase
	s.showcases[showcase.ID] = &copied
	return nil
}

func (s *InMemory) GetShowcase(_ context.Context, id uuid.UUID) (*models.Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	showcase, ok := s.showcases[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *showcase
	return &copied, nil
}

func (s *InMemory) UpdateShowcase(_ context.Context, showcase *models.Showcase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.showcases[showcase.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *showcase
	s.showcases[showcase.ID] = &copied
	return nil
}

// DeleteShowcase removes the showcase and every topic, category, and product
// under it, mirroring the cascade the SQL schema enforces.
func (s *InMemory) DeleteShowcase(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.showcases[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.showcases, id)
	for topicID, topic := range s.topics {
		if topic.ShowcaseID == id {
			s.removeTopicSubtree(topicID)
		}
	}
	return nil
}

func (s *InMemory) ListShowcases(_ context.Context) ([]*models.Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	showcases := make([]*models.Showcase, 0, len(s.showcases))
	for _, showcase := range s.showcases {
		copied := *showcase
		showcases = append(showcases, &copied)
	}
	sortByCreatedAt(showcases, func(sc *models.Showcase) int64 { return sc.CreatedAt.UnixNano() })
	return showcases, nil
}

func (s *InMemory) CreateTopic(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.showcases[topic.ShowcaseID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *topic
	s.topics[topic.ID] = &copied
	return nil
}

func (s *InMemory) GetTopic(_ context.Context, id uuid.UUID) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *topic
	return &copied, nil
}

func (s *InMemory) UpdateTopic(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[topic.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *topic
	s.topics[topic.ID] = &copied
	return nil
}

func (s *InMemory) DeleteTopic(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[id]; !ok {
		return sentinel.ErrNotFound
	}
	s.removeTopicSubtree(id)
	return nil
}

func (s *InMemory) ListTopicsByShowcase(_ context.Context, showcaseID uuid.UUID) ([]*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var topics []*models.Topic
	for _, topic := range s.topics {
		if topic.ShowcaseID == showcaseID {
			copied := *topic
			topics = append(topics, &copied)
		}
	}
	sortByCreatedAt(topics, func(t *models.Topic) int64 { return t.CreatedAt.UnixNano() })
	return topics, nil
}

func (s *InMemory) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[category.TopicID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *InMemory) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *InMemory) UpdateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

// DeleteCategory detaches the category's products rather than deleting them;
// they remain reachable through their topic.
func (s *InMemory) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.categories, id)
	for _, product := range s.products {
		if product.CategoryID != nil && *product.CategoryID == id {
			product.CategoryID = nil
		}
	}
	return nil
}

func (s *InMemory) ListCategoriesByTopic(_ context.Context, topicID uuid.UUID) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var categories []*models.Category
	for _, category := range s.categories {
		if category.TopicID == topicID {
			copied := *category
			categories = append(categories, &copied)
		}
	}
	sortByCreatedAt(categories, func(c *models.Category) int64 { return c.CreatedAt.UnixNano() })
	return categories, nil
}

func (s *InMemory) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[product.TopicID]; !ok {
		return sentinel.ErrNotFound
	}
	if product.CategoryID != nil {
		if _, ok := s.categories[*product.CategoryID]; !ok {
			return sentinel.ErrNotFound
		}
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *InMemory) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *InMemory) UpdateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return sentinel.ErrNotFound
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *InMemory) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *InMemory) ListProductsByTopic(_ context.Context, topicID uuid.UUID) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var products []*models.Product
	for _, product := range s.products {
		if product.TopicID == topicID {
			copied := *product
			products = append(products, &copied)
		}
	}
	sortByCreatedAt(products, func(p *models.Product) int64 { return p.CreatedAt.UnixNano() })
	return products, nil
}

// removeTopicSubtree deletes a topic with its categories and products.
// Callers must hold the write lock.
func (s *InMemory) removeTopicSubtree(topicID uuid.UUID) {
	delete(s.topics, topicID)
	for categoryID, category := range s.categories {
		if category.TopicID == topicID {
			delete(s.categories, categoryID)
		}
	}
	for productID, product := range s.products {
		if product.TopicID == topicID {
			delete(s.products, productID)
		}
	}
}

func sortByCreatedAt[T any](items []T, key func(T) int64) {
	sort.Slice(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}
