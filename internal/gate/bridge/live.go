package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"vitrina/internal/initdata"
	"vitrina/internal/sentinel"
)

// Live is the bridge variant backed by a verified launch payload. It records
// outbound events for the front end to drain and resolves confirm dialogs when
// the client posts an answer back.
type Live struct {
	data *initdata.InitData

	mu      sync.Mutex
	events  []Event
	pending map[string]chan bool
}

// NewLive creates a live bridge from a verified payload. Callers must have
// checked the payload signature; this type trusts its input.
func NewLive(data *initdata.InitData) *Live {
	return &Live{
		data:    data,
		pending: make(map[string]chan bool),
	}
}

// Ready signals readiness to the host chrome.
func (b *Live) Ready() {
	b.record(Event{Name: EventReady})
}

// Expand requests full-height layout.
func (b *Live) Expand() {
	b.record(Event{Name: EventExpand})
}

// Alert emits a popup event. It does not wait for dismissal.
func (b *Live) Alert(_ context.Context, message string) error {
	b.record(Event{ID: uuid.New().String(), Name: EventAlert, Message: message})
	return nil
}

// Confirm emits a confirm event and blocks until Answer delivers the verdict
// or the context expires. Expiry counts as "no".
func (b *Live) Confirm(ctx context.Context, message string) (bool, error) {
	id := uuid.New().String()
	ch := make(chan bool, 1)

	b.mu.Lock()
	b.pending[id] = ch
	b.events = append(b.events, Event{ID: id, Name: EventConfirm, Message: message})
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
	}()

	select {
	case answer := <-ch:
		return answer, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Answer resolves a pending confirm dialog by id.
func (b *Live) Answer(id string, confirmed bool) error {
	b.mu.Lock()
	ch, ok := b.pending[id]
	b.mu.Unlock()
	if !ok {
		return sentinel.ErrNotFound
	}
	ch <- confirmed
	return nil
}

// User returns the identity carried by the payload, if any.
func (b *Live) User() (*initdata.Identity, bool) {
	user, err := b.data.Identity()
	if err != nil {
		return nil, false
	}
	return user, true
}

// DrainEvents returns and clears the recorded events.
func (b *Live) DrainEvents() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

func (b *Live) record(event Event) {
	b.mu.Lock()
	b.events = append(b.events, event)
	b.mu.Unlock()
}
