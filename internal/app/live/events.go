/*
Package live contains the realtime core: the session registry, the per-
connection pumps, and the broadcast engine that routes drawing events to
every session joined to a room.

This file defines the closed set of event kinds exchanged over the live
channel. Raw client JSON is decoded once, at the boundary, into an Inbound
value; anything outside the enumeration is logged and dropped.
*/
package live

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EventType tags a live-channel message.
type EventType string

const (
	// EventJoinRoom subscribes the session to a room's broadcasts.
	EventJoinRoom EventType = "join_room"

	// EventLeaveRoom removes the session from a room.
	EventLeaveRoom EventType = "leave_room"

	// EventChat carries a serialized shape to persist and fan out.
	EventChat EventType = "chat"

	// EventClearAll notifies a room that its canvas was wiped. The durable
	// deletion happens over HTTP; this event is a live notification only.
	EventClearAll EventType = "clear_all"
)

// RoomID is a room's numeric identity. Browser clients send it as a JSON
// string, so decoding accepts both forms; encoding always produces a string
// for consistency with what clients expect back.
type RoomID int64

// UnmarshalJSON accepts `"42"` and `42`.
func (id *RoomID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid roomId %q: %w", string(data), err)
	}

	*id = RoomID(parsed)
	return nil
}

// MarshalJSON renders the id as a JSON string.
func (id RoomID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(id), 10))
}

// Inbound is the decoded envelope of a client message.
type Inbound struct {
	Type    EventType `json:"type"`
	RoomID  RoomID    `json:"roomId"`
	Message string    `json:"message,omitempty"`
}

// Outbound is a message fanned out to room members. It mirrors the inbound
// chat/clear_all forms.
type Outbound struct {
	Type    EventType `json:"type"`
	RoomID  RoomID    `json:"roomId"`
	Message string    `json:"message,omitempty"`
}
