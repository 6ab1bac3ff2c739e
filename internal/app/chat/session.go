/*
Package chat contains the real-time messaging session core.

This file defines the Session, which owns the lifecycle of one messaging
connection: connect, subscribe to the room's live topic and history channel,
send, and tear down. State transitions are guarded by a session generation
token so callbacks from a superseded start can never mutate current state.
*/
package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pandacare/internal/app/identity"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/logx"
	"pandacare/internal/pkg/metrics"
)

// State is the connection state of a messaging session.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateError
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view of a session observed by the conversation
// view: connection state, the ordered message sequence, and at most one
// current error message.
type Snapshot struct {
	State        State
	Messages     []Message
	ErrorMessage string
}

// Session manages one publish/subscribe connection scoped to a single room.
// It is owned by exactly one conversation view; all mutation is serialized
// internally, and observers only ever see Snapshots.
type Session struct {
	dialer   Dialer
	endpoint string
	store    identity.Store

	mu       sync.Mutex
	state    State
	gen      uint64
	conn     Conn
	room     RoomRef
	self     identity.Identity
	messages []Message
	errMsg   string
	onChange func(Snapshot)

	now    func() time.Time
	logger zerolog.Logger
}

// NewSession creates a Session that will dial endpoint with dialer and read
// the credential from store on each Start.
func NewSession(dialer Dialer, endpoint string, store identity.Store) *Session {
	return &Session{
		dialer:   dialer,
		endpoint: endpoint,
		store:    store,
		state:    StateDisconnected,
		now:      time.Now,
		logger:   logx.Logger().With().Str("component", "chat_session").Logger(),
	}
}

// OnChange registers the single observer notified after every state or
// sequence change. The callback runs outside the session's lock and may call
// back into the session.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Identity returns the identity the current session derived from the
// credential at Start. Zero before the first Start.
func (s *Session) Identity() identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.self
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return Snapshot{State: s.state, Messages: msgs, ErrorMessage: s.errMsg}
}

// Start validates the credential and room reference, then opens the messaging
// connection. Valid only from the disconnected state. Start returns before the
// connection is established; progress is observed through snapshots.
//
// A missing or expired credential fails with a credential error and the caller
// redirects to login; an expired credential is also cleared from the store.
// An incomplete room reference is terminal and must not be retried.
func (s *Session) Start(ctx context.Context, room RoomRef) *errs.CustomError {
	s.mu.Lock()

	if s.state != StateDisconnected {
		s.mu.Unlock()
		return errs.NewError(errs.ErrSessionActive)
	}

	token, ok := s.store.Get()
	if !ok {
		s.mu.Unlock()
		metrics.SessionFailures.WithLabelValues("credential").Inc()
		return errs.NewError(errs.ErrCredentialMissing)
	}

	if identity.IsExpired(token) {
		s.store.Clear()
		s.mu.Unlock()
		metrics.SessionFailures.WithLabelValues("credential").Inc()
		return errs.NewError(errs.ErrCredentialExpired)
	}

	if room.RoomID == "" || room.RecipientID == "" {
		s.mu.Unlock()
		return errs.NewError(errs.ErrMissingRoomParams)
	}

	self, decErr := identity.Decode(token)
	if decErr != nil {
		// Degraded identity: the view still renders, but Send will refuse.
		s.logger.Warn().Msg("Credential payload could not be decoded, continuing with sentinel identity")
	}

	s.gen++
	gen := s.gen
	s.self = self
	s.room = room
	s.state = StateConnecting
	s.errMsg = ""
	s.messages = nil

	s.mu.Unlock()
	s.notify()

	metrics.SessionsStarted.Inc()
	s.logger.Info().Str("room_id", room.RoomID).Msg("Starting messaging session")

	go func() {
		conn, err := s.dialer.Dial(ctx, s.endpoint)
		s.finishConnect(gen, conn, err)
	}()

	return nil
}

// finishConnect applies the outcome of the dial attempt, unless the session
// has been stopped or restarted since (stale generation).
func (s *Session) finishConnect(gen uint64, conn Conn, dialErr error) {
	s.mu.Lock()

	if s.gen != gen || s.state != StateConnecting {
		s.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		s.logger.Debug().Msg("Ignoring connect result for superseded session")
		return
	}

	if dialErr != nil {
		s.state = StateError
		s.errMsg = errs.NewError(errs.ErrTransportConnect).Message
		s.mu.Unlock()
		s.notify()

		metrics.SessionFailures.WithLabelValues("connect").Inc()
		s.logger.Warn().Err(dialErr).Msg("Messaging connection failed")
		return
	}

	s.conn = conn
	s.state = StateConnected
	room := s.room
	s.mu.Unlock()
	s.notify()

	conn.NotifyClose(func(err error) {
		s.transportLost(gen, err)
	})

	// Both subscriptions are scoped to the resolved room: live messages append,
	// the one-shot history frame replaces the sequence wholesale.
	if err := conn.Subscribe(LiveTopic(room.RoomID), func(body []byte) {
		s.handleLive(gen, body)
	}); err != nil {
		s.transportLost(gen, err)
		return
	}

	if err := conn.Subscribe(HistoryQueue(room.RoomID), func(body []byte) {
		s.handleHistory(gen, body)
	}); err != nil {
		s.transportLost(gen, err)
		return
	}

	s.logger.Info().Str("room_id", room.RoomID).Msg("Messaging session connected")
}

// handleLive appends one inbound live message in receipt order. Frames without
// a timestamp are stamped with the current time; malformed frames are dropped.
func (s *Session) handleLive(gen uint64, body []byte) {
	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		metrics.FramesDropped.Inc()
		s.logger.Warn().Err(err).Msg("Dropping malformed live frame")
		return
	}

	s.mu.Lock()
	if s.gen != gen || s.state != StateConnected {
		s.mu.Unlock()
		return
	}

	if msg.Timestamp == "" {
		msg.Timestamp = s.now().UTC().Format(time.RFC3339)
	}

	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	s.notify()

	metrics.FramesReceived.WithLabelValues("live").Inc()
}

// handleHistory replaces the message sequence wholesale with the delivered
// backlog. The replacement wins over any live frames that arrived first.
func (s *Session) handleHistory(gen uint64, body []byte) {
	var history []Message
	if err := json.Unmarshal(body, &history); err != nil {
		metrics.FramesDropped.Inc()
		s.logger.Warn().Err(err).Msg("Dropping malformed history frame")
		return
	}

	s.mu.Lock()
	if s.gen != gen || s.state != StateConnected {
		s.mu.Unlock()
		return
	}

	s.messages = history
	s.mu.Unlock()
	s.notify()

	metrics.FramesReceived.WithLabelValues("history").Inc()
}

// transportLost marks the session failed after a drop or subscribe failure.
// Recovery is a fresh Start initiated by the user; there is no automatic
// reconnect.
func (s *Session) transportLost(gen uint64, err error) {
	s.mu.Lock()

	if s.gen != gen || (s.state != StateConnected && s.state != StateConnecting) {
		s.mu.Unlock()
		return
	}

	s.state = StateError
	s.errMsg = errs.NewError(errs.ErrTransportClosed).Message
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	s.notify()

	if conn != nil {
		_ = conn.Close()
	}

	metrics.SessionFailures.WithLabelValues("transport").Inc()
	s.logger.Warn().Err(err).Msg("Messaging session lost its connection")
}

// Send publishes trimmed content on the room's send channel. Valid only while
// connected; empty or whitespace-only content is a no-op, not an error. The
// message is not appended locally: it appears in the sequence only when it
// round-trips back on the live topic, same as for the recipient.
func (s *Session) Send(content string) *errs.CustomError {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()

	if s.state != StateConnected || s.conn == nil {
		s.mu.Unlock()
		return errs.NewError(errs.ErrSessionNotConnected)
	}

	if s.self.IsSentinel() {
		s.mu.Unlock()
		return errs.NewError(errs.ErrCredentialMalformed)
	}

	gen := s.gen
	conn := s.conn
	out := OutboundMessage{
		Sender:    s.self.ID,
		Recipient: s.room.RecipientID,
		Content:   trimmed,
	}
	dest := SendDestination(s.room.RoomID)
	s.mu.Unlock()

	body, err := json.Marshal(out)
	if err != nil {
		return errs.NewError(errs.ErrUnknown)
	}

	if err := conn.Publish(dest, body); err != nil {
		s.transportLost(gen, err)
		return errs.NewError(errs.ErrTransportClosed)
	}

	metrics.MessagesSent.Inc()
	return nil
}

// Stop tears down the connection and invalidates all pending callbacks.
// It is idempotent, valid in every state, and must be called on every exit
// path of the owning view.
func (s *Session) Stop() {
	s.mu.Lock()

	s.gen++
	conn := s.conn
	s.conn = nil

	changed := s.state != StateDisconnected
	s.state = StateDisconnected
	s.errMsg = ""
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	if changed {
		s.notify()
		s.logger.Info().Msg("Messaging session stopped")
	}
}

// notify delivers a fresh snapshot to the observer, outside the lock.
func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}
