// Package models holds the catalog domain objects the admin app manages.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Showcase is the top-level storefront a manager curates.
type Showcase struct {
	ID          uuid.UUID
	Title       string
	Description string
	Domain      string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Topic groups products inside a showcase.
type Topic struct {
	ID          uuid.UUID
	ShowcaseID  uuid.UUID
	Title       string
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category is an optional subdivision of a topic. Products may attach to a
// category or hang directly off the topic.
type Category struct {
	ID        uuid.UUID
	TopicID   uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a sellable item. CategoryID is nil for products attached directly
// to a topic. Price stays a string: it is display copy, not an amount this
// service computes with.
type Product struct {
	ID          uuid.UUID
	TopicID     uuid.UUID
	CategoryID  *uuid.UUID
	Title       string
	Description string
	Price       string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShowcaseDetail is the showcase read model with its topics resolved.
type ShowcaseDetail struct {
	Showcase
	Topics []*Topic
}

// TopicDetail is the topic read model with categories and products resolved.
type TopicDetail struct {
	Topic
	Categories []*Category
	Products   []*Product
}
