// Package store persists access allow-list records.
//
// Error contract: Find methods return sentinel.ErrNotFound when no record
// exists; Create returns sentinel.ErrAlreadyUsed (wrapped) when the telegram id
// is already granted.
package store

import (
	"context"

	"vitrina/internal/access/models"
)

// Store is the persistence interface for allow-list records.
type Store interface {
	Create(ctx context.Context, record *models.AccessRecord) error
	FindByTelegramID(ctx context.Context, telegramID int64) (*models.AccessRecord, error)
	Delete(ctx context.Context, telegramID int64) error
	ListAll(ctx context.Context) ([]*models.AccessRecord, error)
	Count(ctx context.Context) (int, error)
}
