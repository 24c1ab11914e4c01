package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 4)}
}

func TestBroadcastToUserTargetsOnlyThatUser(t *testing.T) {
	hub := NewHub()
	alice := newTestClient(1)
	bob := newTestClient(2)
	hub.Register(alice)
	hub.Register(bob)

	hub.BroadcastToUser(1, map[string]interface{}{"type": "balance_changed", "points": 42})

	select {
	case data := <-alice.Send:
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &payload))
		require.Equal(t, "balance_changed", payload["type"])
	default:
		t.Fatal("expected a message for alice")
	}
	require.Empty(t, bob.Send)
}

func TestBroadcastToUserReachesAllConnections(t *testing.T) {
	hub := NewHub()
	first := newTestClient(1)
	second := newTestClient(1)
	hub.Register(first)
	hub.Register(second)

	hub.BroadcastToUser(1, "ping")
	require.Len(t, first.Send, 1)
	require.Len(t, second.Send, 1)
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	slow := &Client{UserID: 1, Send: make(chan []byte)} // unbuffered, no reader
	hub.Register(slow)

	done := make(chan struct{})
	go func() {
		hub.BroadcastToUser(1, "dropped")
		close(done)
	}()
	<-done
}

func TestCloseUnregisters(t *testing.T) {
	hub := NewHub()
	c := newTestClient(7)
	hub.Register(c)
	c.Close()
	c.Close() // idempotent

	hub.BroadcastToUser(7, "gone")
	// The channel is closed and drained; nothing to assert beyond not panicking.

	hub.mu.RLock()
	_, ok := hub.byUser[7]
	hub.mu.RUnlock()
	require.False(t, ok)
}

func TestSendToClosedClientIsDropped(t *testing.T) {
	c := newTestClient(3)
	c.Close()
	c.trySend([]byte("late")) // must not panic
}

func TestBroadcastRacingCloseDoesNotPanic(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 50; i++ {
		c := newTestClient(1)
		hub.Register(c)
		done := make(chan struct{})
		go func() {
			hub.BroadcastToUser(1, "tick")
			close(done)
		}()
		c.Close()
		<-done
	}
}

func TestBroadcastAll(t *testing.T) {
	hub := NewHub()
	a := newTestClient(1)
	b := newTestClient(2)
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastAll("hello")
	require.Len(t, a.Send, 1)
	require.Len(t, b.Send, 1)
}
