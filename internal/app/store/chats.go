package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// ChatEntry is one persisted shape: the serialized payload plus who drew it
// and where. The monotonically increasing id orders the room's log.
type ChatEntry struct {
	ID        int64
	RoomID    int64
	UserID    pgtype.UUID
	Message   string
	CreatedAt pgtype.Timestamptz
}

// AppendShape durably appends a serialized shape to the room's log and
// returns the assigned entry id.
func (s *Store) AppendShape(ctx context.Context, roomID int64, userID pgtype.UUID, message string) (int64, error) {
	const query = `
		INSERT INTO chats (room_id, user_id, message)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query, roomID, userID, message).Scan(&id)

	return id, err
}

// RecentShapes returns up to limit entries for the room, newest first.
// A room with no entries yields an empty slice, not an error.
func (s *Store) RecentShapes(ctx context.Context, roomID int64, limit int32) ([]ChatEntry, error) {
	const query = `
		SELECT id, room_id, user_id, message, created_at
		FROM chats
		WHERE room_id = $1
		ORDER BY id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []ChatEntry{}
	for rows.Next() {
		var e ChatEntry
		if err := rows.Scan(&e.ID, &e.RoomID, &e.UserID, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteRoomShapes removes every entry for the room and returns the number
// deleted. Deleting from an empty room returns 0.
func (s *Store) DeleteRoomShapes(ctx context.Context, roomID int64) (int64, error) {
	const query = `DELETE FROM chats WHERE room_id = $1`

	tag, err := s.pool.Exec(ctx, query, roomID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
