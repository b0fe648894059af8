// Package models defines the access allow-list entities.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessRecord grants one Telegram identity the right to use the admin app.
// Records are created and deleted exclusively by the maintenance surface; the
// gate only ever checks existence.
type AccessRecord struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	CreatedAt  time.Time `json:"created_at"`
}
