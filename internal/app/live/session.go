/*
Package live contains the realtime core for collaborative drawing rooms.

This file defines the Session struct, one per live WebSocket connection. It
owns the connection's read and write pumps and the buffered send queue the
engine fans out into.
*/
package live

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"inkroom/internal/pkg/logx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong before the connection is considered dead.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a client message.
	maxMessageSize = 65536

	// capacity of the per-session outbound queue.
	sendQueueSize = 256
)

// Session represents one live connection: the transport handle, the
// authenticated identity, and the set of joined rooms.
type Session struct {
	// underlying WebSocket connection.
	conn *websocket.Conn

	// authenticated user id, as carried by the connect token.
	userID string

	// same identity in the form the shape log stores.
	userUUID pgtype.UUID

	// rooms the session has joined. Guarded by the Registry's mutex.
	rooms map[RoomID]struct{}

	// buffered queue of outbound frames consumed by WritePump.
	send chan []byte

	// closed by the Registry exactly once when the session is removed.
	done chan struct{}

	// structured logger with session context.
	logger zerolog.Logger
}

// NewSession constructs a Session for an authenticated connection.
func NewSession(conn *websocket.Conn, userID string, userUUID pgtype.UUID) *Session {
	sessionLogger := logx.Logger().With().
		Str("user_id", userID).
		Logger()

	return &Session{
		conn:     conn,
		userID:   userID,
		userUUID: userUUID,
		rooms:    make(map[RoomID]struct{}),
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
		logger:   sessionLogger,
	}
}

// UserID returns the authenticated identity of the session.
func (s *Session) UserID() string {
	return s.userID
}

// ReadPump reads client messages and hands each one to the engine, which
// processes it fully (persist, then fan out) before the next read. On exit
// the session is removed from the registry and the transport closed, so no
// later broadcast can target it.
func (s *Session) ReadPump(ctx context.Context, registry *Registry, engine *Engine) {
	defer func() {
		registry.Remove(s)

		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Session connection close error")
		}

		s.logger.Info().Msg("Session disconnected.")
	}()

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		engine.Handle(ctx, s, messageBytes)
	}
}

// WritePump moves frames from the send queue to the connection and keeps the
// heartbeat going. It exits when the registry marks the session done or a
// write fails.
func (s *Session) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Session connection close error in WritePump")
		}
	}()

	for {
		select {
		case message := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Warn().Err(err).Msg("Error writing ping")
				return
			}

		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				s.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return
		}
	}
}

// enqueue queues a frame for delivery without blocking. A full queue drops
// the frame; a slow consumer must not stall fan-out for the whole room.
func (s *Session) enqueue(message []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- message:
		return true
	default:
		s.logger.Warn().Int("queue_len", len(s.send)).Msg("Session send queue full, dropping frame")
		return false
	}
}
