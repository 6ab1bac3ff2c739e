package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacare/internal/app/routing"
)

func TestConversationWatchReportsGrowth(t *testing.T) {
	s, _, conn := newTestSession(t)
	c := NewConversation(s, testRoom)

	var mu sync.Mutex
	var growth []bool
	c.Watch(func(snap Snapshot, grew bool) {
		mu.Lock()
		growth = append(growth, grew)
		mu.Unlock()
	})

	connect(t, s, conn)
	conn.deliver(t, LiveTopic("room-1"), Message{Sender: "c1", Content: "one"})
	conn.deliver(t, HistoryQueue("room-1"), []Message{
		{Sender: "c1", Content: "one"},
		{Sender: "u1", Content: "two"},
	})
	s.Stop()

	mu.Lock()
	defer mu.Unlock()

	// connecting, connected, live append, history growth, stop.
	require.Len(t, growth, 5)
	assert.False(t, growth[0])
	assert.False(t, growth[1])
	assert.True(t, growth[2], "live append should cue a scroll")
	assert.True(t, growth[3], "longer backlog should cue a scroll")
	assert.False(t, growth[4])
}

func TestConversationIsOwn(t *testing.T) {
	s, _, conn := newTestSession(t)
	c := NewConversation(s, testRoom)
	connect(t, s, conn)

	assert.True(t, c.IsOwn(Message{Sender: "u1", Content: "mine"}))
	assert.False(t, c.IsOwn(Message{Sender: "c1", Content: "theirs"}))
}

func TestConversationRecipientLabel(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.Equal(t, "Dr. Susi", NewConversation(s, testRoom).RecipientLabel())

	anonymous := RoomRef{RoomID: "room-2", RecipientID: "c2"}
	assert.Equal(t, GenericRecipientLabel, NewConversation(s, anonymous).RecipientLabel())
}

func TestConversationBackPath(t *testing.T) {
	s, _, conn := newTestSession(t)
	c := NewConversation(s, testRoom)

	// Before any Start the identity is zero, which routes to the pacilian side.
	assert.Equal(t, routing.PacilianHome, c.BackPath())

	connect(t, s, conn)
	assert.Equal(t, routing.PacilianHome, c.BackPath())
}

func TestConversationSubmit(t *testing.T) {
	s, _, conn := newTestSession(t)
	c := NewConversation(s, testRoom)
	connect(t, s, conn)

	require.Nil(t, c.Submit("hello there"))
	require.Len(t, conn.sent(SendDestination("room-1")), 1)
}
