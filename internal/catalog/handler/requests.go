package handler

import (
	"strings"

	"github.com/google/uuid"

	"vitrina/internal/catalog/service"
	dErrors "vitrina/pkg/domain-errors"
)

// HTTP request DTOs. Converted to service commands before processing.

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxURLLength         = 2048
	maxPriceLength       = 100
)

type CreateShowcaseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	ImageURL    string `json:"image_url"`
}

func (r *CreateShowcaseRequest) Normalize() {
	if r == nil {
		return
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Domain = strings.ToLower(strings.TrimSpace(r.Domain))
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

func (r *CreateShowcaseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	return checkLengths(
		field{"title", r.Title, maxTitleLength},
		field{"description", r.Description, maxDescriptionLength},
		field{"image_url", r.ImageURL, maxURLLength},
	)
}

func (r *CreateShowcaseRequest) ToCommand() *service.CreateShowcaseCommand {
	return &service.CreateShowcaseCommand{
		Title:       r.Title,
		Description: r.Description,
		Domain:      r.Domain,
		ImageURL:    r.ImageURL,
	}
}

type UpdateShowcaseRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (r *UpdateShowcaseRequest) Normalize() {
	if r == nil {
		return
	}
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.ImageURL)
	if r.Domain != nil {
		*r.Domain = strings.ToLower(strings.TrimSpace(*r.Domain))
	}
}

func (r *UpdateShowcaseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return checkLengths(
		fieldPtr("title", r.Title, maxTitleLength),
		fieldPtr("description", r.Description, maxDescriptionLength),
		fieldPtr("image_url", r.ImageURL, maxURLLength),
	)
}

func (r *UpdateShowcaseRequest) ToCommand() *service.UpdateShowcaseCommand {
	return &service.UpdateShowcaseCommand{
		Title:       r.Title,
		Description: r.Description,
		Domain:      r.Domain,
		ImageURL:    r.ImageURL,
	}
}

type CreateTopicRequest struct {
	ShowcaseID  string `json:"showcase_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r *CreateTopicRequest) Normalize() {
	if r == nil {
		return
	}
	r.ShowcaseID = strings.TrimSpace(r.ShowcaseID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

func (r *CreateTopicRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.ShowcaseID == "" {
		return dErrors.New(dErrors.CodeValidation, "showcase_id is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	return checkLengths(
		field{"title", r.Title, maxTitleLength},
		field{"description", r.Description, maxDescriptionLength},
		field{"image_url", r.ImageURL, maxURLLength},
	)
}

func (r *CreateTopicRequest) ToCommand() (*service.CreateTopicCommand, error) {
	showcaseID, err := uuid.Parse(r.ShowcaseID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid showcase id")
	}
	return &service.CreateTopicCommand{
		ShowcaseID:  showcaseID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}, nil
}

type UpdateTopicRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (r *UpdateTopicRequest) Normalize() {
	if r == nil {
		return
	}
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.ImageURL)
}

func (r *UpdateTopicRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return checkLengths(
		fieldPtr("title", r.Title, maxTitleLength),
		fieldPtr("description", r.Description, maxDescriptionLength),
		fieldPtr("image_url", r.ImageURL, maxURLLength),
	)
}

func (r *UpdateTopicRequest) ToCommand() *service.UpdateTopicCommand {
	return &service.UpdateTopicCommand{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type CreateCategoryRequest struct {
	TopicID string `json:"topic_id"`
	Title   string `json:"title"`
}

func (r *CreateCategoryRequest) Normalize() {
	if r == nil {
		return
	}
	r.TopicID = strings.TrimSpace(r.TopicID)
	r.Title = strings.TrimSpace(r.Title)
}

func (r *CreateCategoryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.TopicID == "" {
		return dErrors.New(dErrors.CodeValidation, "topic_id is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	return checkLengths(field{"title", r.Title, maxTitleLength})
}

func (r *CreateCategoryRequest) ToCommand() (*service.CreateCategoryCommand, error) {
	topicID, err := uuid.Parse(r.TopicID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid topic id")
	}
	return &service.CreateCategoryCommand{TopicID: topicID, Title: r.Title}, nil
}

type UpdateCategoryRequest struct {
	Title string `json:"title"`
}

func (r *UpdateCategoryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Title = strings.TrimSpace(r.Title)
}

func (r *UpdateCategoryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	return checkLengths(field{"title", r.Title, maxTitleLength})
}

type CreateProductRequest struct {
	TopicID     string `json:"topic_id"`
	CategoryID  string `json:"category_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

func (r *CreateProductRequest) Normalize() {
	if r == nil {
		return
	}
	r.TopicID = strings.TrimSpace(r.TopicID)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Price = strings.TrimSpace(r.Price)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

func (r *CreateProductRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.TopicID == "" {
		return dErrors.New(dErrors.CodeValidation, "topic_id is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	return checkLengths(
		field{"title", r.Title, maxTitleLength},
		field{"description", r.Description, maxDescriptionLength},
		field{"price", r.Price, maxPriceLength},
		field{"image_url", r.ImageURL, maxURLLength},
	)
}

func (r *CreateProductRequest) ToCommand() (*service.CreateProductCommand, error) {
	topicID, err := uuid.Parse(r.TopicID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid topic id")
	}

	cmd := &service.CreateProductCommand{
		TopicID:     topicID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
	if r.CategoryID != "" {
		categoryID, err := uuid.Parse(r.CategoryID)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid category id")
		}
		cmd.CategoryID = &categoryID
	}
	return cmd, nil
}

type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	// CategoryID moves the product: a uuid attaches it, an empty string
	// detaches it, absent leaves it alone.
	CategoryID *string `json:"category_id,omitempty"`
}

func (r *UpdateProductRequest) Normalize() {
	if r == nil {
		return
	}
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Price)
	trimPtr(r.ImageURL)
	trimPtr(r.CategoryID)
}

func (r *UpdateProductRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return checkLengths(
		fieldPtr("title", r.Title, maxTitleLength),
		fieldPtr("description", r.Description, maxDescriptionLength),
		fieldPtr("price", r.Price, maxPriceLength),
		fieldPtr("image_url", r.ImageURL, maxURLLength),
	)
}

func (r *UpdateProductRequest) ToCommand() (*service.UpdateProductCommand, error) {
	cmd := &service.UpdateProductCommand{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
	if r.CategoryID != nil {
		cmd.SetCategory = true
		if *r.CategoryID != "" {
			categoryID, err := uuid.Parse(*r.CategoryID)
			if err != nil {
				return nil, dErrors.New(dErrors.CodeBadRequest, "invalid category id")
			}
			cmd.CategoryID = &categoryID
		}
	}
	return cmd, nil
}

type field struct {
	name  string
	value string
	max   int
}

func fieldPtr(name string, value *string, max int) field {
	if value == nil {
		return field{name: name, max: max}
	}
	return field{name: name, value: *value, max: max}
}

func checkLengths(fields ...field) error {
	for _, f := range fields {
		if len(f.value) > f.max {
			return dErrors.New(dErrors.CodeValidation, f.name+" is too long")
		}
	}
	return nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
