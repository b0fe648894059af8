package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/initdata"
	"vitrina/internal/sentinel"
)

func liveBridge(t *testing.T) *Live {
	t.Helper()
	data, err := initdata.Parse("user=%7B%22id%22%3A42%2C%22first_name%22%3A%22Ann%22%7D&auth_date=1700000000&hash=abc")
	require.NoError(t, err)
	return NewLive(data)
}

func TestLiveRecordsLifecycleEvents(t *testing.T) {
	b := liveBridge(t)
	b.Ready()
	b.Expand()

	events := b.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventReady, events[0].Name)
	assert.Equal(t, EventExpand, events[1].Name)

	// Draining clears the buffer.
	assert.Empty(t, b.DrainEvents())
}

func TestLiveUser(t *testing.T) {
	b := liveBridge(t)

	user, ok := b.User()
	require.True(t, ok)
	assert.Equal(t, int64(42), user.ID)
}

func TestLiveConfirmResolvedByAnswer(t *testing.T) {
	b := liveBridge(t)

	done := make(chan struct{})
	var confirmed bool
	var err error
	go func() {
		defer close(done)
		confirmed, err = b.Confirm(context.Background(), "Delete showcase?")
	}()

	// Wait for the confirm event to be emitted, then answer it.
	var id string
	require.Eventually(t, func() bool {
		for _, event := range b.DrainEvents() {
			if event.Name == EventConfirm {
				id = event.ID
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Answer(id, true))
	<-done

	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestLiveConfirmContextExpiryMeansNo(t *testing.T) {
	b := liveBridge(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	confirmed, err := b.Confirm(ctx, "Delete showcase?")
	assert.False(t, confirmed)
	assert.Error(t, err)
}

func TestLiveAnswerUnknownDialog(t *testing.T) {
	b := liveBridge(t)
	assert.ErrorIs(t, b.Answer("nope", true), sentinel.ErrNotFound)
}

func TestNullBridge(t *testing.T) {
	b := NewNull()

	user, ok := b.User()
	require.True(t, ok)
	assert.Equal(t, MockTelegramID, user.ID)
	assert.Equal(t, "Dev", user.FirstName)

	confirmed, err := b.Confirm(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, confirmed)

	assert.NoError(t, b.Alert(context.Background(), "note"))
	assert.NotPanics(t, func() { b.Ready(); b.Expand() })
}
