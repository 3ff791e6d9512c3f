package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Room is a persisted room row. Code is set iff the room is PRIVATE.
type Room struct {
	ID        int64
	Slug      string
	Type      string
	Code      pgtype.Text
	AdminID   pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

// RoomListItem is a room as it appears in listings: joined with its admin's
// name and the number of persisted shapes.
type RoomListItem struct {
	ID        int64
	Slug      string
	Type      string
	CreatedAt pgtype.Timestamptz
	AdminName string
	ChatCount int64
}

// InsertRoomParams holds the fields for a new room.
type InsertRoomParams struct {
	Slug    string
	Type    string
	Code    pgtype.Text
	AdminID pgtype.UUID
}

const roomColumns = `id, slug, type, code, admin_id, created_at`

// InsertRoom inserts a new room. Slug and code collisions surface as unique
// violations.
func (s *Store) InsertRoom(ctx context.Context, arg InsertRoomParams) (Room, error) {
	const query = `
		INSERT INTO rooms (slug, type, code, admin_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + roomColumns

	var room Room
	err := s.pool.QueryRow(ctx, query, arg.Slug, arg.Type, arg.Code, arg.AdminID).
		Scan(&room.ID, &room.Slug, &room.Type, &room.Code, &room.AdminID, &room.CreatedAt)

	return room, err
}

// RoomBySlug fetches a room by its unique slug.
func (s *Store) RoomBySlug(ctx context.Context, slug string) (Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE slug = $1`

	var room Room
	err := s.pool.QueryRow(ctx, query, slug).
		Scan(&room.ID, &room.Slug, &room.Type, &room.Code, &room.AdminID, &room.CreatedAt)

	return room, err
}

// RoomByCode fetches a private room by its access code.
func (s *Store) RoomByCode(ctx context.Context, code string) (Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE code = $1`

	var room Room
	err := s.pool.QueryRow(ctx, query, code).
		Scan(&room.ID, &room.Slug, &room.Type, &room.Code, &room.AdminID, &room.CreatedAt)

	return room, err
}

// RoomByID fetches a room by its numeric id.
func (s *Store) RoomByID(ctx context.Context, id int64) (Room, error) {
	const query = `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	var room Room
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&room.ID, &room.Slug, &room.Type, &room.Code, &room.AdminID, &room.CreatedAt)

	return room, err
}

const roomListQuery = `
	SELECT r.id, r.slug, r.type, r.created_at, u.name,
	       (SELECT count(*) FROM chats c WHERE c.room_id = r.id)
	FROM rooms r
	JOIN users u ON u.id = r.admin_id`

// ListRooms returns every room, newest first.
func (s *Store) ListRooms(ctx context.Context) ([]RoomListItem, error) {
	return s.listRooms(ctx, roomListQuery+` ORDER BY r.id DESC`)
}

// ListRoomsByAdmin returns the rooms created by adminID, newest first.
func (s *Store) ListRoomsByAdmin(ctx context.Context, adminID pgtype.UUID) ([]RoomListItem, error) {
	return s.listRooms(ctx, roomListQuery+` WHERE r.admin_id = $1 ORDER BY r.id DESC`, adminID)
}

// ListPublicRooms returns PUBLIC rooms, newest first. When exclude is valid,
// rooms created by that admin are left out.
func (s *Store) ListPublicRooms(ctx context.Context, exclude pgtype.UUID) ([]RoomListItem, error) {
	if exclude.Valid {
		return s.listRooms(ctx, roomListQuery+` WHERE r.type = 'PUBLIC' AND r.admin_id <> $1 ORDER BY r.id DESC`, exclude)
	}
	return s.listRooms(ctx, roomListQuery+` WHERE r.type = 'PUBLIC' ORDER BY r.id DESC`)
}

func (s *Store) listRooms(ctx context.Context, query string, args ...any) ([]RoomListItem, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []RoomListItem{}
	for rows.Next() {
		var item RoomListItem
		if err := rows.Scan(&item.ID, &item.Slug, &item.Type, &item.CreatedAt, &item.AdminName, &item.ChatCount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
