/*
Package live contains the realtime core for collaborative drawing rooms.

This file defines the Engine, which routes each decoded event: membership
changes go to the registry, draw events are persisted and then fanned out to
every session in the room, clear_all is fanned out as a notification only.
*/
package live

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"inkroom/internal/app/shape"
	"inkroom/internal/pkg/logx"
)

// ShapeStore is the durable append the engine requires. A failed append
// aborts the broadcast: nothing is fanned out that was not written first.
type ShapeStore interface {
	AppendShape(ctx context.Context, roomID int64, userID pgtype.UUID, message string) (int64, error)
}

// Engine routes live-channel events between sessions, the registry, and the
// shape log.
type Engine struct {
	registry *Registry
	store    ShapeStore
	logger   zerolog.Logger
}

// NewEngine returns an Engine over the given registry and store.
func NewEngine(registry *Registry, store ShapeStore) *Engine {
	return &Engine{
		registry: registry,
		store:    store,
		logger:   logx.Logger().With().Str("component", "engine").Logger(),
	}
}

// Handle processes one raw client message to completion. Malformed or
// unrecognized input is logged and dropped; it never terminates the
// connection or affects other sessions.
func (e *Engine) Handle(ctx context.Context, sess *Session, raw []byte) {
	var evt Inbound
	if err := json.Unmarshal(raw, &evt); err != nil {
		sess.logger.Warn().Err(err).Msg("Session sent invalid JSON")
		return
	}

	if evt.RoomID <= 0 {
		sess.logger.Warn().Str("event_type", string(evt.Type)).Msg("Session sent event without a valid roomId")
		return
	}

	switch evt.Type {
	case EventJoinRoom:
		e.registry.Join(sess, evt.RoomID)
		sess.logger.Info().Int64("room_id", int64(evt.RoomID)).Msg("Session joined room.")

	case EventLeaveRoom:
		e.registry.Leave(sess, evt.RoomID)
		sess.logger.Info().Int64("room_id", int64(evt.RoomID)).Msg("Session left room.")

	case EventChat:
		e.handleDraw(ctx, sess, evt)

	case EventClearAll:
		e.fanOut(Outbound{Type: EventClearAll, RoomID: evt.RoomID})
		sess.logger.Info().Int64("room_id", int64(evt.RoomID)).Msg("Clear-all notification broadcast.")

	default:
		sess.logger.Warn().Str("event_type", string(evt.Type)).Msg("Session sent unsupported event type, dropping")
	}
}

// handleDraw validates the shape payload, appends it to the room's log, and
// only on a durable write fans the event out - sender included, since
// clients reconcile by shape identity rather than suppressing self-echo.
func (e *Engine) handleDraw(ctx context.Context, sess *Session, evt Inbound) {
	if _, err := shape.Decode([]byte(evt.Message)); err != nil {
		sess.logger.Warn().Err(err).Int64("room_id", int64(evt.RoomID)).Msg("Dropping draw event with invalid shape payload")
		return
	}

	entryID, err := e.store.AppendShape(ctx, int64(evt.RoomID), sess.userUUID, evt.Message)
	if err != nil {
		e.logger.Error().Err(err).
			Int64("room_id", int64(evt.RoomID)).
			Str("user_id", sess.userID).
			Msg("Shape append failed, not broadcasting")
		return
	}

	e.fanOut(Outbound{Type: EventChat, RoomID: evt.RoomID, Message: evt.Message})

	sess.logger.Debug().
		Int64("room_id", int64(evt.RoomID)).
		Int64("entry_id", entryID).
		Msg("Shape persisted and broadcast.")
}

// fanOut delivers the event to every session currently joined to the room.
// The registry is re-read here, not cached earlier, so a session removed
// mid-operation is simply skipped.
func (e *Engine) fanOut(out Outbound) {
	messageBytes, err := json.Marshal(out)
	if err != nil {
		e.logger.Error().Err(err).Msg("Error marshaling event for broadcast")
		return
	}

	for _, target := range e.registry.SessionsInRoom(out.RoomID) {
		target.enqueue(messageBytes)
	}
}
