package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"vitrina/internal/catalog/models"
	"vitrina/internal/sentinel"
)

// PostgresStore persists the catalog tree in PostgreSQL. Parent-child cleanup
// relies on ON DELETE CASCADE in the schema.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateShowcase(ctx context.Context, showcase *models.Showcase) error {
	query := `
		INSERT INTO showcases (id, title, description, domain, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		showcase.ID, showcase.Title, showcase.Description, showcase.Domain,
		showcase.ImageURL, showcase.CreatedAt, showcase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create showcase: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetShowcase(ctx context.Context, id uuid.UUID) (*models.Showcase, error) {
	query := `
		SELECT id, title, description, domain, image_url, created_at, updated_at
		FROM showcases
		WHERE id = $1
	`
	showcase := &models.Showcase{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&showcase.ID, &showcase.Title, &showcase.Description, &showcase.Domain,
		&showcase.ImageURL, &showcase.CreatedAt, &showcase.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get showcase: %w", err)
	}
	return showcase, nil
}

func (s *PostgresStore) UpdateShowcase(ctx context.Context, showcase *models.Showcase) error {
	query := `
		UPDATE showcases
		SET title = $2, description = $3, domain = $4, image_url = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		showcase.ID, showcase.Title, showcase.Description, showcase.Domain,
		showcase.ImageURL, showcase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update showcase: %w", err)
	}
	return requireAffected(res, "update showcase")
}

func (s *PostgresStore) DeleteShowcase(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM showcases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete showcase: %w", err)
	}
	return requireAffected(res, "delete showcase")
}

func (s *PostgresStore) ListShowcases(ctx context.Context) ([]*models.Showcase, error) {
	query := `
		SELECT id, title, description, domain, image_url, created_at, updated_at
		FROM showcases
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list showcases: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var showcases []*models.Showcase
	for rows.Next() {
		showcase := &models.Showcase{}
		if err := rows.Scan(
			&showcase.ID, &showcase.Title, &showcase.Description, &showcase.Domain,
			&showcase.ImageURL, &showcase.CreatedAt, &showcase.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan showcase: %w", err)
		}
		showcases = append(showcases, showcase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showcases: %w", err)
	}
	return showcases, nil
}

func (s *PostgresStore) CreateTopic(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (id, showcase_id, title, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		topic.ID, topic.ShowcaseID, topic.Title, topic.Description,
		topic.ImageURL, topic.CreatedAt, topic.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("showcase does not exist: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	query := `
		SELECT id, showcase_id, title, description, image_url, created_at, updated_at
		FROM topics
		WHERE id = $1
	`
	topic := &models.Topic{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&topic.ID, &topic.ShowcaseID, &topic.Title, &topic.Description,
		&topic.ImageURL, &topic.CreatedAt, &topic.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return topic, nil
}

func (s *PostgresStore) UpdateTopic(ctx context.Context, topic *models.Topic) error {
	query := `
		UPDATE topics
		SET title = $2, description = $3, image_url = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		topic.ID, topic.Title, topic.Description, topic.ImageURL, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return requireAffected(res, "update topic")
}

func (s *PostgresStore) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return requireAffected(res, "delete topic")
}

func (s *PostgresStore) ListTopicsByShowcase(ctx context.Context, showcaseID uuid.UUID) ([]*models.Topic, error) {
	query := `
		SELECT id, showcase_id, title, description, image_url, created_at, updated_at
		FROM topics
		WHERE showcase_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, showcaseID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var topics []*models.Topic
	for rows.Next() {
		topic := &models.Topic{}
		if err := rows.Scan(
			&topic.ID, &topic.ShowcaseID, &topic.Title, &topic.Description,
			&topic.ImageURL, &topic.CreatedAt, &topic.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return topics, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, topic_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.TopicID, category.Title, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("topic does not exist: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, topic_id, title, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.TopicID, &category.Title, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET title = $2, updated_at = $3
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, category.ID, category.Title, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res, "update category")
}

// DeleteCategory relies on ON DELETE SET NULL so the category's products stay
// attached to their topic.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, "delete category")
}

func (s *PostgresStore) ListCategoriesByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Category, error) {
	query := `
		SELECT id, topic_id, title, created_at, updated_at
		FROM categories
		WHERE topic_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID, &category.TopicID, &category.Title,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, topic_id, category_id, title, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		product.ID, product.TopicID, product.CategoryID, product.Title,
		product.Description, product.Price, product.ImageURL,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("parent does not exist: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, topic_id, category_id, title, description, price, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	product := &models.Product{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.TopicID, &product.CategoryID, &product.Title,
		&product.Description, &product.Price, &product.ImageURL,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, title = $3, description = $4, price = $5, image_url = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		product.ID, product.CategoryID, product.Title, product.Description,
		product.Price, product.ImageURL, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res, "update product")
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res, "delete product")
}

func (s *PostgresStore) ListProductsByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Product, error) {
	query := `
		SELECT id, topic_id, category_id, title, description, price, image_url, created_at, updated_at
		FROM products
		WHERE topic_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(
			&product.ID, &product.TopicID, &product.CategoryID, &product.Title,
			&product.Description, &product.Price, &product.ImageURL,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func requireAffected(res sql.Result, op string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
