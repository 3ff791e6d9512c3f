package live

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

// fakeShapeStore records appends and optionally fails them.
type fakeShapeStore struct {
	appends []appendCall
	err     error
	nextID  int64
}

type appendCall struct {
	roomID  int64
	message string
}

func (f *fakeShapeStore) AppendShape(ctx context.Context, roomID int64, userID pgtype.UUID, message string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.appends = append(f.appends, appendCall{roomID: roomID, message: message})
	f.nextID++
	return f.nextID, nil
}

const rectPayload = `{"type":"rect","x":1,"y":2,"width":3,"height":4}`

func drawEvent(roomID string, payload string) []byte {
	raw, _ := json.Marshal(map[string]string{
		"type":    "chat",
		"roomId":  roomID,
		"message": payload,
	})
	return raw
}

// drain reads every frame currently queued on the session.
func drain(s *Session) []Outbound {
	var frames []Outbound
	for {
		select {
		case raw := <-s.send:
			var out Outbound
			if err := json.Unmarshal(raw, &out); err != nil {
				panic(err)
			}
			frames = append(frames, out)
		default:
			return frames
		}
	}
}

func TestEngine_DrawIsPersistedAndBroadcastToAllMembersIncludingSender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	member := testSession("user-2")
	outsider := testSession("user-3")

	registry.Register(sender)
	registry.Register(member)
	registry.Register(outsider)

	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))
	engine.Handle(context.Background(), member, []byte(`{"type":"join_room","roomId":"42"}`))
	engine.Handle(context.Background(), outsider, []byte(`{"type":"join_room","roomId":"7"}`))

	engine.Handle(context.Background(), sender, drawEvent("42", rectPayload))

	// Persisted exactly once
	req.Len(store.appends, 1)
	req.Equal(int64(42), store.appends[0].roomID)
	req.Equal(rectPayload, store.appends[0].message)

	// Sender gets the echo, the other member gets the event
	for _, s := range []*Session{sender, member} {
		frames := drain(s)
		req.Len(frames, 1)
		req.Equal(EventChat, frames[0].Type)
		req.Equal(RoomID(42), frames[0].RoomID)
		req.Equal(rectPayload, frames[0].Message)
	}

	// A session in another room receives nothing
	req.Empty(drain(outsider))
}

func TestEngine_FailedPersistMeansNoBroadcast(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{err: errors.New("connection reset")}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	registry.Register(sender)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))

	engine.Handle(context.Background(), sender, drawEvent("42", rectPayload))

	req.Empty(drain(sender))
}

func TestEngine_InvalidShapeIsDroppedBeforePersist(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	registry.Register(sender)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))

	engine.Handle(context.Background(), sender, drawEvent("42", `{"type":"circle","centerX":0,"centerY":0,"radius":-5}`))
	engine.Handle(context.Background(), sender, drawEvent("42", `not json`))

	req.Empty(store.appends)
	req.Empty(drain(sender))
}

func TestEngine_ClearAllFansOutWithoutPersisting(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	member := testSession("user-2")
	registry.Register(sender)
	registry.Register(member)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))
	engine.Handle(context.Background(), member, []byte(`{"type":"join_room","roomId":"42"}`))

	engine.Handle(context.Background(), sender, []byte(`{"type":"clear_all","roomId":"42"}`))

	req.Empty(store.appends)

	for _, s := range []*Session{sender, member} {
		frames := drain(s)
		req.Len(frames, 1)
		req.Equal(EventClearAll, frames[0].Type)
		req.Equal(RoomID(42), frames[0].RoomID)
		req.Empty(frames[0].Message)
	}
}

func TestEngine_LeaveStopsDelivery(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	member := testSession("user-2")
	registry.Register(sender)
	registry.Register(member)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))
	engine.Handle(context.Background(), member, []byte(`{"type":"join_room","roomId":"42"}`))

	engine.Handle(context.Background(), member, []byte(`{"type":"leave_room","roomId":"42"}`))
	engine.Handle(context.Background(), sender, drawEvent("42", rectPayload))

	req.Len(drain(sender), 1)
	req.Empty(drain(member))
}

func TestEngine_UnknownEventTypeIsDropped(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	registry.Register(sender)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))

	engine.Handle(context.Background(), sender, []byte(`{"type":"teleport","roomId":"42"}`))

	req.Empty(store.appends)
	req.Empty(drain(sender))
}

func TestEngine_MissingRoomIDIsDropped(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	registry.Register(sender)

	engine.Handle(context.Background(), sender, []byte(`{"type":"chat","message":"x"}`))
	engine.Handle(context.Background(), sender, []byte(`{"type":"chat","roomId":"-3","message":"x"}`))

	req.Empty(store.appends)
}

func TestEngine_RemovedSessionGetsNothing(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	store := &fakeShapeStore{}
	engine := NewEngine(registry, store)

	sender := testSession("user-1")
	member := testSession("user-2")
	registry.Register(sender)
	registry.Register(member)
	engine.Handle(context.Background(), sender, []byte(`{"type":"join_room","roomId":"42"}`))
	engine.Handle(context.Background(), member, []byte(`{"type":"join_room","roomId":"42"}`))

	registry.Remove(member)
	engine.Handle(context.Background(), sender, drawEvent("42", rectPayload))

	req.Len(drain(sender), 1)
	req.Empty(drain(member))
}
