package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCount(h *Hub, userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func receiveEvent(t *testing.T, client *Client) QuoteStatusEvent {
	t.Helper()

	select {
	case data := <-client.send:
		var event QuoteStatusEvent
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event delivered to session")
		return QuoteStatusEvent{}
	}
}

func TestHub_NotifyQuoteStatus_AllSessionsReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := NewClient(hub, nil, 1)
	b := NewClient(hub, nil, 1)
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool {
		return sessionCount(hub, 1) == 2
	}, time.Second, 10*time.Millisecond)

	hub.NotifyQuoteStatus(1, 7, model.QuoteStatusReviewed)

	for _, client := range []*Client{a, b} {
		event := receiveEvent(t, client)
		assert.Equal(t, "quote_status_changed", event.Type)
		assert.Equal(t, uint(7), event.QuoteID)
		assert.Equal(t, model.QuoteStatusReviewed, event.Status)
	}
}

func TestHub_NotifyQuoteStatus_OtherUsersNotNotified(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	owner := NewClient(hub, nil, 1)
	other := NewClient(hub, nil, 2)
	hub.Register(owner)
	hub.Register(other)
	require.Eventually(t, func() bool {
		return sessionCount(hub, 1) == 1 && sessionCount(hub, 2) == 1
	}, time.Second, 10*time.Millisecond)

	hub.NotifyQuoteStatus(1, 7, model.QuoteStatusQuoted)

	receiveEvent(t, owner)
	select {
	case data := <-other.send:
		t.Fatalf("unexpected event for other user: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

// A session can be unregistered twice: once when a full send buffer drops it
// and once when its ReadPump tears down. The second unregister must be a noop
// and must not take down the hub or the user's other sessions.
func TestHub_DuplicateUnregisterKeepsOtherSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := NewClient(hub, nil, 1)
	b := NewClient(hub, nil, 1)
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool {
		return sessionCount(hub, 1) == 2
	}, time.Second, 10*time.Millisecond)

	hub.Unregister(a)
	hub.Unregister(a)
	require.Eventually(t, func() bool {
		return sessionCount(hub, 1) == 1 && len(hub.unregister) == 0
	}, time.Second, 10*time.Millisecond)

	// a's channel was closed exactly once
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-a.send:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	// The run loop is still alive and the surviving session still receives
	assert.True(t, hub.IsUserOnline(1))
	hub.NotifyQuoteStatus(1, 42, model.QuoteStatusClosed)
	event := receiveEvent(t, b)
	assert.Equal(t, uint(42), event.QuoteID)
}

func TestHub_NotifyQuoteStatus_OfflineUserSkipped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	assert.False(t, hub.IsUserOnline(1))

	// Nothing enqueued for a user with no sessions
	hub.NotifyQuoteStatus(1, 7, model.QuoteStatusReviewed)
	assert.Len(t, hub.broadcast, 0)
}

func TestHub_SlowSessionDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(hub, nil, 1)
	hub.Register(client)
	require.Eventually(t, func() bool {
		return sessionCount(hub, 1) == 1
	}, time.Second, 10*time.Millisecond)

	// Nobody drains client.send, so its buffer fills and the overflowing
	// push disconnects the session instead of blocking the hub.
	for i := 0; i < cap(client.send)+1; i++ {
		hub.NotifyQuoteStatus(1, uint(i), model.QuoteStatusReviewed)
	}

	require.Eventually(t, func() bool {
		return !hub.IsUserOnline(1)
	}, time.Second, 10*time.Millisecond)
}
