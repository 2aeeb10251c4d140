package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hansol-io/banter/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func cachedMessage(id string, offset time.Duration) types.Message {
	return types.Message{
		ID:        id,
		RoomID:    "room-1",
		SenderID:  "u1",
		Content:   "content of " + id,
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC).Add(offset),
		Sender:    types.Sender{ID: "u1", Nickname: "ada"},
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	store := openTestStore(t)

	replyID := "m1"
	liked := cachedMessage("m2", time.Minute)
	liked.LikesCount = 4
	liked.Liked = true
	liked.ReplyToID = &replyID
	liked.ReplyTo = &types.ReplyRef{
		ID:      "m1",
		Content: "content of m1",
		Sender:  types.Sender{ID: "u2", Nickname: "lin"},
	}

	if err := store.ReplaceMessages("room-1", []types.Message{
		cachedMessage("m1", 0),
		liked,
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("order wrong: %q %q", got[0].ID, got[1].ID)
	}
	if got[1].LikesCount != 4 || !got[1].Liked {
		t.Fatalf("like state lost: count=%d liked=%v", got[1].LikesCount, got[1].Liked)
	}
	if got[1].ReplyTo == nil || got[1].ReplyTo.Sender.Nickname != "lin" {
		t.Fatalf("reply snapshot lost: %+v", got[1].ReplyTo)
	}
	if !got[0].CreatedAt.Equal(cachedMessage("m1", 0).CreatedAt) {
		t.Fatalf("timestamp lost: %v", got[0].CreatedAt)
	}
}

func TestReplaceMessagesDropsStaleRows(t *testing.T) {
	store := openTestStore(t)

	if err := store.ReplaceMessages("room-1", []types.Message{
		cachedMessage("m1", 0),
		cachedMessage("m2", time.Minute),
	}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := store.ReplaceMessages("room-1", []types.Message{
		cachedMessage("m2", time.Minute),
	}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m2" {
		t.Fatalf("stale row survived: %+v", got)
	}
}

func TestMessagesIsolatedByRoom(t *testing.T) {
	store := openTestStore(t)

	other := cachedMessage("x1", 0)
	other.RoomID = "room-2"
	if err := store.ReplaceMessages("room-1", []types.Message{cachedMessage("m1", 0)}); err != nil {
		t.Fatalf("replace room-1: %v", err)
	}
	if err := store.ReplaceMessages("room-2", []types.Message{other}); err != nil {
		t.Fatalf("replace room-2: %v", err)
	}

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("rooms not isolated: %+v", got)
	}
}

func TestMessagesEmptyRoom(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Messages("never-seen")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d rows", len(got))
	}
}

func TestRoomsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if err := store.ReplaceRooms([]types.RoomListItem{
		{ID: "r1", Name: "general", CreatorNickname: "ada", UpdatedAt: base},
		{ID: "r2", Name: "random", CreatorNickname: "lin", UpdatedAt: base.Add(time.Hour)},
	}); err != nil {
		t.Fatalf("replace rooms: %v", err)
	}

	got, err := store.Rooms()
	if err != nil {
		t.Fatalf("rooms: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(got))
	}
	if got[0].ID != "r2" {
		t.Fatalf("expected most recently updated first, got %q", got[0].ID)
	}

	if err := store.ReplaceRooms([]types.RoomListItem{
		{ID: "r2", Name: "random", CreatorNickname: "lin", UpdatedAt: base.Add(time.Hour)},
	}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	got, err = store.Rooms()
	if err != nil {
		t.Fatalf("rooms: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("directory not replaced: %+v", got)
	}
}
