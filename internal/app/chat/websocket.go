/*
Package chat contains the real-time messaging session core.

This file implements the transport over a WebSocket connection. Frames are JSON
envelopes carrying a type, a destination, and an optional body; subscriptions
are announced to the endpoint and inbound message frames are dispatched to the
registered handler for their destination.
*/
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pandacare/internal/pkg/logx"
)

const (
	// timeout for writes to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum allowed size (in bytes) of an inbound frame.
	maxFrameSize = 8192
)

// frame is the wire envelope exchanged with the messaging endpoint.
type frame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination"`
	Body        json.RawMessage `json:"body,omitempty"`
}

const (
	frameSubscribe = "subscribe"
	frameMessage   = "message"
	frameSend      = "send"
)

// WebsocketDialer opens Conns over gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
}

// NewWebsocketDialer returns a WebsocketDialer using the default gorilla dialer.
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{Dialer: websocket.DefaultDialer}
}

// Dial connects to the messaging endpoint and starts the read loop.
func (d *WebsocketDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	wsDialer := d.Dialer
	if wsDialer == nil {
		wsDialer = websocket.DefaultDialer
	}

	conn, _, err := wsDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	c := &wsConn{
		conn:   conn,
		subs:   make(map[string]HandlerFunc),
		logger: logx.Logger().With().Str("component", "transport").Str("endpoint", endpoint).Logger(),
	}

	go c.readLoop()

	return c, nil
}

// wsConn is the websocket-backed Conn implementation.
type wsConn struct {
	conn *websocket.Conn

	// writeMu serializes frame writes; gorilla allows one concurrent writer.
	writeMu sync.Mutex

	mu       sync.RWMutex
	subs     map[string]HandlerFunc
	closeFns []func(error)
	closed   bool

	logger zerolog.Logger
}

// readLoop reads frames until the connection drops and dispatches message
// frames to the subscription handler for their destination. A frame that fails
// to parse is logged and dropped; it never terminates the loop.
func (c *wsConn) readLoop() {
	c.conn.SetReadLimit(maxFrameSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.fireClose(err)
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.logger.Warn().Err(err).Msg("Dropping inbound frame with invalid envelope")
			continue
		}

		if f.Type != frameMessage {
			c.logger.Warn().Str("frame_type", f.Type).Msg("Dropping inbound frame with unexpected type")
			continue
		}

		c.mu.RLock()
		fn := c.subs[f.Destination]
		c.mu.RUnlock()

		if fn == nil {
			c.logger.Debug().Str("destination", f.Destination).Msg("No subscription for inbound frame")
			continue
		}

		fn(f.Body)
	}
}

// fireClose invokes the registered close handlers exactly once.
// It does nothing after a deliberate Close.
func (c *wsConn) fireClose(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	fns := c.closeFns
	c.mu.Unlock()

	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		c.logger.Info().Err(err).Msg("Messaging connection dropped")
	}

	for _, fn := range fns {
		fn(err)
	}

	_ = c.conn.Close()
}

func (c *wsConn) Subscribe(destination string, fn HandlerFunc) error {
	c.mu.Lock()
	c.subs[destination] = fn
	c.mu.Unlock()

	return c.writeFrame(frame{Type: frameSubscribe, Destination: destination})
}

func (c *wsConn) Publish(destination string, body []byte) error {
	return c.writeFrame(frame{Type: frameSend, Destination: destination, Body: body})
}

func (c *wsConn) NotifyClose(fn func(err error)) {
	c.mu.Lock()
	c.closeFns = append(c.closeFns, fn)
	c.mu.Unlock()
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.conn.Close()
}

func (c *wsConn) writeFrame(f frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, data)
}
