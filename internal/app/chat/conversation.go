/*
Package chat contains the real-time messaging session core.

This file defines the Conversation, the view-facing contract over a Session:
a read-only snapshot, an own-message test, a submit action, and the role-based
back path. It never mutates session state directly.
*/
package chat

import (
	"pandacare/internal/app/routing"
	"pandacare/internal/pkg/errs"
)

// Conversation adapts a Session for rendering. One Conversation owns one
// Session for the lifetime of the view.
type Conversation struct {
	session *Session
	room    RoomRef
}

// NewConversation wraps an existing session for the given room.
func NewConversation(session *Session, room RoomRef) *Conversation {
	return &Conversation{session: session, room: room}
}

// Watch registers fn to run after every session change. The grew flag is true
// when the message sequence got longer, which is the view's cue to scroll to
// the latest message.
func (c *Conversation) Watch(fn func(snap Snapshot, grew bool)) {
	lastLen := 0
	c.session.OnChange(func(snap Snapshot) {
		grew := len(snap.Messages) > lastLen
		lastLen = len(snap.Messages)
		fn(snap, grew)
	})
}

// Snapshot returns the current observable session state.
func (c *Conversation) Snapshot() Snapshot {
	return c.session.Snapshot()
}

// Submit sends the typed content through the session.
func (c *Conversation) Submit(content string) *errs.CustomError {
	return c.session.Send(content)
}

// IsOwn reports whether the message was sent by the session's own identity.
func (c *Conversation) IsOwn(m Message) bool {
	return m.Sender == c.session.Identity().ID
}

// RecipientLabel returns the counterpart's display name or a generic fallback.
func (c *Conversation) RecipientLabel() string {
	return c.room.Label()
}

// BackPath returns the role-appropriate dashboard to navigate back to.
// It depends only on the identity's role, never on connection state.
func (c *Conversation) BackPath() string {
	return routing.HomePath(c.session.Identity())
}
