/*
Package chat contains the real-time messaging session core: the message model,
room parameter resolution, the publish/subscribe transport abstraction, and the
session manager owning the connection lifecycle.

This file defines the message model and the destinations of the room-scoped
channels on the messaging transport.
*/
package chat

// Message is a single chat message as carried on the wire and held in the
// session's ordered sequence. Position in the sequence is defined by receipt
// order, not by the embedded timestamp.
type Message struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// OutboundMessage is the payload published on the room's send channel.
// The backend stamps the authoritative timestamp when it relays the message
// back on the live topic.
type OutboundMessage struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

// LiveTopic is the room-scoped channel delivering new messages in real time.
func LiveTopic(roomID string) string {
	return "/topic/chat/" + roomID
}

// HistoryQueue is the room-scoped channel delivering the message backlog once
// per session.
func HistoryQueue(roomID string) string {
	return "/queue/history/" + roomID
}

// SendDestination is the room-scoped channel outbound messages are published on.
func SendDestination(roomID string) string {
	return "/app/chat/" + roomID
}
