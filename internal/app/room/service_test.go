package room

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"inkroom/internal/app/store"
	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/randx"
)

// fakeStore keeps rooms in memory, keyed by slug and by access code.
type fakeStore struct {
	bySlug map[string]store.Room
	byCode map[string]store.Room
	nextID int64

	insertErr error
	lookupErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bySlug: make(map[string]store.Room),
		byCode: make(map[string]store.Room),
	}
}

func (f *fakeStore) InsertRoom(ctx context.Context, arg store.InsertRoomParams) (store.Room, error) {
	if f.insertErr != nil {
		return store.Room{}, f.insertErr
	}

	if _, exists := f.bySlug[arg.Slug]; exists {
		return store.Room{}, &pgconn.PgError{Code: "23505", ConstraintName: "rooms_slug_key"}
	}

	f.nextID++
	room := store.Room{
		ID:      f.nextID,
		Slug:    arg.Slug,
		Type:    arg.Type,
		Code:    arg.Code,
		AdminID: arg.AdminID,
	}
	f.bySlug[arg.Slug] = room
	if arg.Code.Valid {
		f.byCode[arg.Code.String] = room
	}
	return room, nil
}

func (f *fakeStore) RoomBySlug(ctx context.Context, slug string) (store.Room, error) {
	if f.lookupErr != nil {
		return store.Room{}, f.lookupErr
	}
	room, ok := f.bySlug[slug]
	if !ok {
		return store.Room{}, pgx.ErrNoRows
	}
	return room, nil
}

func (f *fakeStore) RoomByCode(ctx context.Context, code string) (store.Room, error) {
	if f.lookupErr != nil {
		return store.Room{}, f.lookupErr
	}
	room, ok := f.byCode[code]
	if !ok {
		return store.Room{}, pgx.ErrNoRows
	}
	return room, nil
}

func adminID(t *testing.T) pgtype.UUID {
	t.Helper()
	var id pgtype.UUID
	require.NoError(t, id.Scan("8f7b2d51-3c3a-4c0e-9c4f-57b1f2a6b9e0"))
	return id
}

func TestCreate_PublicRoom(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	room, customErr := svc.Create(context.Background(), adminID(t), "design-sync", TypePublic)

	req.Nil(customErr)
	req.Equal("design-sync", room.Slug)
	req.Equal(TypePublic, room.Type)
	// public rooms never carry an access code
	req.False(room.Code.Valid)
}

func TestCreate_PrivateRoomGetsAccessCode(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	room, customErr := svc.Create(context.Background(), adminID(t), "war-room", TypePrivate)

	req.Nil(customErr)
	req.True(room.Code.Valid)
	req.True(randx.IsValidAccessCode(room.Code.String))
}

func TestCreate_InvalidSlug(t *testing.T) {
	req := require.New(t)
	svc := NewService(newFakeStore())

	for _, name := range []string{"", "ab", "has space", "way-too-long-for-a-room-slug", "bad_underscore"} {
		_, customErr := svc.Create(context.Background(), adminID(t), name, TypePublic)
		req.NotNil(customErr)
		req.Equal(errs.ErrRoomNameInvalid, customErr.Code)
	}
}

func TestCreate_InvalidType(t *testing.T) {
	req := require.New(t)
	svc := NewService(newFakeStore())

	_, customErr := svc.Create(context.Background(), adminID(t), "design-sync", "SECRET")

	req.NotNil(customErr)
	req.Equal(errs.ErrRoomTypeInvalid, customErr.Code)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	_, customErr := svc.Create(context.Background(), adminID(t), "design-sync", TypePublic)
	req.Nil(customErr)

	_, customErr = svc.Create(context.Background(), adminID(t), "design-sync", TypePublic)
	req.NotNil(customErr)
	req.Equal(errs.ErrRoomSlugExists, customErr.Code)

	// the conflicting create wrote nothing
	req.Len(st.bySlug, 1)
}

func TestCreate_StorageFailure(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	st.insertErr = errors.New("connection reset")
	svc := NewService(st)

	_, customErr := svc.Create(context.Background(), adminID(t), "design-sync", TypePublic)

	req.NotNil(customErr)
	req.Equal(errs.ErrStorage, customErr.Code)
}

func TestCreate_AccessCodesAreUnique(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		room, customErr := svc.Create(context.Background(), adminID(t), "room-"+string(rune('a'+i)), TypePrivate)
		req.Nil(customErr)
		_, dup := seen[room.Code.String]
		req.False(dup, "access code %q issued twice", room.Code.String)
		seen[room.Code.String] = struct{}{}
	}
}

func TestResolveBySlug(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	created, customErr := svc.Create(context.Background(), adminID(t), "design-sync", TypePublic)
	req.Nil(customErr)

	found, customErr := svc.ResolveBySlug(context.Background(), "design-sync")
	req.Nil(customErr)
	req.Equal(created.ID, found.ID)

	_, customErr = svc.ResolveBySlug(context.Background(), "nope")
	req.NotNil(customErr)
	req.Equal(errs.ErrRoomNotFound, customErr.Code)
}

func TestResolveByCode(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	svc := NewService(st)

	created, customErr := svc.Create(context.Background(), adminID(t), "war-room", TypePrivate)
	req.Nil(customErr)

	found, customErr := svc.ResolveByCode(context.Background(), created.Code.String)
	req.Nil(customErr)
	req.Equal(created.ID, found.ID)

	_, customErr = svc.ResolveByCode(context.Background(), "ZZZZZZ")
	req.NotNil(customErr)
	req.Equal(errs.ErrCodeNotFound, customErr.Code)
}

func TestResolve_StorageFailure(t *testing.T) {
	req := require.New(t)
	st := newFakeStore()
	st.lookupErr = errors.New("connection reset")
	svc := NewService(st)

	_, customErr := svc.ResolveBySlug(context.Background(), "design-sync")
	req.NotNil(customErr)
	req.Equal(errs.ErrStorage, customErr.Code)
}
