package handler

import (
	"time"

	"vitrina/internal/catalog/models"
)

// HTTP response DTOs.

type ShowcaseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Domain      string    `json:"domain,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ShowcaseDetailResponse struct {
	ShowcaseResponse
	Topics []*TopicResponse `json:"topics"`
}

type TopicResponse struct {
	ID          string    `json:"id"`
	ShowcaseID  string    `json:"showcase_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TopicDetailResponse struct {
	TopicResponse
	Categories []*CategoryResponse `json:"categories"`
	Products   []*ProductResponse  `json:"products"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	TopicID     string    `json:"topic_id"`
	CategoryID  string    `json:"category_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toShowcaseResponse(s *models.Showcase) ShowcaseResponse {
	return ShowcaseResponse{
		ID:          s.ID.String(),
		Title:       s.Title,
		Description: s.Description,
		Domain:      s.Domain,
		ImageURL:    s.ImageURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toShowcaseDetailResponse(d *models.ShowcaseDetail) *ShowcaseDetailResponse {
	topics := make([]*TopicResponse, len(d.Topics))
	for i, topic := range d.Topics {
		resp := toTopicResponse(topic)
		topics[i] = &resp
	}
	return &ShowcaseDetailResponse{
		ShowcaseResponse: toShowcaseResponse(&d.Showcase),
		Topics:           topics,
	}
}

func toTopicResponse(t *models.Topic) TopicResponse {
	return TopicResponse{
		ID:          t.ID.String(),
		ShowcaseID:  t.ShowcaseID.String(),
		Title:       t.Title,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTopicDetailResponse(d *models.TopicDetail) *TopicDetailResponse {
	categories := make([]*CategoryResponse, len(d.Categories))
	for i, category := range d.Categories {
		resp := toCategoryResponse(category)
		categories[i] = &resp
	}
	products := make([]*ProductResponse, len(d.Products))
	for i, product := range d.Products {
		resp := toProductResponse(product)
		products[i] = &resp
	}
	return &TopicDetailResponse{
		TopicResponse: toTopicResponse(&d.Topic),
		Categories:    categories,
		Products:      products,
	}
}

func toCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		TopicID:   c.TopicID.String(),
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		TopicID:     p.TopicID.String(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryID != nil {
		resp.CategoryID = p.CategoryID.String()
	}
	return resp
}
