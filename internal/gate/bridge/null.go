package bridge

import (
	"context"

	"vitrina/internal/initdata"
)

// MockTelegramID is the fixed identity substituted when no host client exists.
// The null bridge is only ever constructed for development runtimes.
const MockTelegramID int64 = 123456789

// Null is the no-op bridge for development without a Telegram client.
type Null struct {
	user initdata.Identity
}

// NewNull creates a null bridge carrying the fixed development identity.
func NewNull() *Null {
	return &Null{
		user: initdata.Identity{
			ID:        MockTelegramID,
			FirstName: "Dev",
			Username:  "developer",
		},
	}
}

// Ready is a no-op.
func (b *Null) Ready() {}

// Expand is a no-op.
func (b *Null) Expand() {}

// Alert is a no-op.
func (b *Null) Alert(context.Context, string) error { return nil }

// Confirm always confirms so development flows are exercisable unattended.
func (b *Null) Confirm(context.Context, string) (bool, error) { return true, nil }

// User returns the fixed development identity.
func (b *Null) User() (*initdata.Identity, bool) {
	user := b.user
	return &user, true
}
