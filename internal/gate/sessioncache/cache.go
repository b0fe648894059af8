// Package sessioncache holds per-session authorization verdicts so repeated
// navigations within one browsing session do not re-query the policy store.
package sessioncache

import "context"

// Entry records the verdict for one session. An entry is only trusted when its
// TelegramID equals the identity presented by the current payload; entries for
// a different identity are never honored.
type Entry struct {
	TelegramID string `json:"telegram_id"`
	Authorized bool   `json:"authorized"`
}

// Store is the injectable session-store interface. Implementations must treat
// a missing key as sentinel.ErrNotFound, not as an error condition.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	Clear(ctx context.Context, key string) error
}
