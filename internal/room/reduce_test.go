package room

import (
	"testing"
	"time"

	"github.com/hansol-io/banter/internal/types"
)

var testEpoch = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func testMessage(id, senderID string, offset time.Duration, likes int, liked bool) types.Message {
	return types.Message{
		ID:         id,
		RoomID:     "room-1",
		SenderID:   senderID,
		Content:    "message " + id,
		CreatedAt:  testEpoch.Add(offset),
		Sender:     types.Sender{ID: senderID, Nickname: "user-" + senderID},
		LikesCount: likes,
		Liked:      liked,
	}
}

func loadedState(messages ...types.Message) State {
	state := NewState(0)
	return Reduce(state, LoadSuccess{Messages: messages})
}

func TestLoadSuccessReplacesAndClearsError(t *testing.T) {
	state := NewState(0)
	state = Reduce(state, LoadFailure{Message: "boom"})
	if state.Err.Kind != ErrorMessageFetch {
		t.Fatalf("expected fetch error, got %s", state.Err.Kind)
	}

	msgs := []types.Message{testMessage("m1", "u1", 0, 0, false)}
	state = Reduce(state, LoadSuccess{Messages: msgs})
	if len(state.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(state.Messages))
	}
	if state.Err.Kind != ErrorNone {
		t.Fatalf("expected error cleared, got %s", state.Err.Kind)
	}
	if state.Loading.InitialLoad {
		t.Fatal("expected initial load cleared")
	}
}

func TestLoadFailurePreservesMessages(t *testing.T) {
	state := loadedState(
		testMessage("m1", "u1", 0, 0, false),
		testMessage("m2", "u2", time.Minute, 0, false),
	)

	state = Reduce(state, LoadFailure{Message: "network down"})
	if len(state.Messages) != 2 {
		t.Fatalf("failed load blanked the view: %d messages", len(state.Messages))
	}
	if state.Err.Kind != ErrorMessageFetch {
		t.Fatalf("expected message_fetch_error, got %s", state.Err.Kind)
	}
	if state.Err.Message != "network down" {
		t.Fatalf("unexpected error text %q", state.Err.Message)
	}
}

func TestSendSuccessClearsDraftAndReply(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, false))
	state = Reduce(state, SetInput{Value: "hello"})
	state = Reduce(state, StartReply{MessageID: "m1"})
	state = Reduce(state, SendStart{})
	if !state.Loading.Sending {
		t.Fatal("expected sending marker")
	}

	state = Reduce(state, SendSuccess{})
	if state.Input != "" {
		t.Fatalf("expected input cleared, got %q", state.Input)
	}
	if state.Reply.IsReplying || state.Reply.Target != nil {
		t.Fatal("expected reply mode cleared")
	}
	if state.Loading.Sending {
		t.Fatal("expected sending marker cleared")
	}
	if state.Err.Kind != ErrorNone {
		t.Fatalf("expected error cleared, got %s", state.Err.Kind)
	}
}

func TestSendFailureKeepsDraftForRetry(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, false))
	state = Reduce(state, SetInput{Value: "hello"})
	state = Reduce(state, StartReply{MessageID: "m1"})
	state = Reduce(state, SendStart{})

	state = Reduce(state, SendFailure{Message: "rejected"})
	if state.Input != "hello" {
		t.Fatalf("expected draft kept, got %q", state.Input)
	}
	if !state.Reply.IsReplying {
		t.Fatal("expected reply mode kept")
	}
	if state.Loading.Sending {
		t.Fatal("expected sending marker cleared")
	}
	if state.Err.Kind != ErrorSendMessage {
		t.Fatalf("expected send_message_error, got %s", state.Err.Kind)
	}
}

func TestDeleteStartRemovesOptimistically(t *testing.T) {
	state := loadedState(
		testMessage("m1", "u1", 0, 0, false),
		testMessage("m2", "u1", time.Minute, 0, false),
		testMessage("m3", "u2", 2*time.Minute, 0, false),
	)

	state = Reduce(state, DeleteStart{MessageID: "m2"})
	if len(state.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(state.Messages))
	}
	for _, msg := range state.Messages {
		if msg.ID == "m2" {
			t.Fatal("m2 still present after optimistic removal")
		}
	}
	if state.Loading.DeletingID != "m2" {
		t.Fatalf("expected delete marker m2, got %q", state.Loading.DeletingID)
	}
}

func TestDeleteFailureRestoresOriginalPosition(t *testing.T) {
	removed := testMessage("m2", "u1", time.Minute, 0, false)
	state := loadedState(
		testMessage("m1", "u1", 0, 0, false),
		removed,
		testMessage("m3", "u2", 2*time.Minute, 0, false),
	)

	state = Reduce(state, DeleteStart{MessageID: "m2"})
	state = Reduce(state, DeleteFailure{MessageID: "m2", Removed: removed, Index: 1})

	if len(state.Messages) != 3 {
		t.Fatalf("expected 3 messages after rollback, got %d", len(state.Messages))
	}
	if state.Messages[1].ID != "m2" {
		t.Fatalf("expected m2 restored at index 1, got %q", state.Messages[1].ID)
	}
	if state.Loading.DeletingID != "" {
		t.Fatalf("expected delete marker cleared, got %q", state.Loading.DeletingID)
	}
	if state.Err.Kind != ErrorDeleteMessage {
		t.Fatalf("expected delete_message_error, got %s", state.Err.Kind)
	}
}

func TestDeleteFailureClampsIndex(t *testing.T) {
	removed := testMessage("m9", "u1", time.Hour, 0, false)
	state := loadedState(testMessage("m1", "u1", 0, 0, false))

	state = Reduce(state, DeleteFailure{MessageID: "m9", Removed: removed, Index: 7})
	if len(state.Messages) != 2 {
		t.Fatalf("expected append on out-of-range index, got %d messages", len(state.Messages))
	}
	if state.Messages[1].ID != "m9" {
		t.Fatalf("expected m9 appended, got %q", state.Messages[1].ID)
	}
}

func TestToggleLikeOptimisticFlipAndRollback(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 5, false))

	state = Reduce(state, ToggleLikeStart{MessageID: "m1"})
	if !state.Messages[0].Liked || state.Messages[0].LikesCount != 6 {
		t.Fatalf("expected liked=true count=6, got liked=%v count=%d",
			state.Messages[0].Liked, state.Messages[0].LikesCount)
	}
	if state.Loading.TogglingLikeID != "m1" {
		t.Fatalf("expected like marker m1, got %q", state.Loading.TogglingLikeID)
	}

	state = Reduce(state, ToggleLikeFailure{MessageID: "m1"})
	if state.Messages[0].Liked || state.Messages[0].LikesCount != 5 {
		t.Fatalf("expected rollback to liked=false count=5, got liked=%v count=%d",
			state.Messages[0].Liked, state.Messages[0].LikesCount)
	}
	if state.Loading.TogglingLikeID != "" {
		t.Fatalf("expected like marker cleared, got %q", state.Loading.TogglingLikeID)
	}
	if state.Err.Kind != ErrorToggleLike {
		t.Fatalf("expected toggle_like_error, got %s", state.Err.Kind)
	}
}

func TestToggleLikeTwiceReturnsToOriginal(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 3, true))

	state = Reduce(state, ToggleLikeStart{MessageID: "m1"})
	state = Reduce(state, ToggleLikeSuccess{MessageID: "m1", Liked: false})
	state = Reduce(state, ToggleLikeStart{MessageID: "m1"})
	state = Reduce(state, ToggleLikeSuccess{MessageID: "m1", Liked: true})

	if !state.Messages[0].Liked || state.Messages[0].LikesCount != 3 {
		t.Fatalf("double toggle drifted: liked=%v count=%d",
			state.Messages[0].Liked, state.Messages[0].LikesCount)
	}
}

func TestToggleLikeCountNeverNegative(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, true))

	for i := 0; i < 5; i++ {
		state = Reduce(state, ToggleLikeStart{MessageID: "m1"})
		state = Reduce(state, ToggleLikeFailure{MessageID: "m1"})
		if state.Messages[0].LikesCount < 0 {
			t.Fatalf("negative like count after %d rounds", i+1)
		}
	}
}

func TestStartReplyTargetsLoadedMessage(t *testing.T) {
	target := testMessage("m2", "u2", time.Minute, 0, false)
	state := loadedState(testMessage("m1", "u1", 0, 0, false), target)

	state = Reduce(state, StartReply{MessageID: "m2"})
	if !state.Reply.IsReplying {
		t.Fatal("expected reply mode")
	}
	if state.Reply.Target == nil || state.Reply.Target.ID != "m2" {
		t.Fatal("expected m2 as reply target")
	}

	// The target is a snapshot: deleting the message leaves it intact.
	state = Reduce(state, DeleteStart{MessageID: "m2"})
	if state.Reply.Target == nil || state.Reply.Target.Content != target.Content {
		t.Fatal("reply snapshot lost after delete")
	}

	state = Reduce(state, CancelReply{})
	if state.Reply.IsReplying || state.Reply.Target != nil {
		t.Fatal("expected reply mode cleared")
	}
}

func TestStartReplyUnknownIDIsNoop(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, false))

	state = Reduce(state, StartReply{MessageID: "nope"})
	if state.Reply.IsReplying || state.Reply.Target != nil {
		t.Fatal("reply mode entered for unknown id")
	}
}

func TestReplyInvariantHolds(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, false))
	actions := []Action{
		StartReply{MessageID: "m1"},
		SendStart{},
		SendSuccess{},
		StartReply{MessageID: "m1"},
		CancelReply{},
		StartReply{MessageID: "missing"},
	}
	for _, action := range actions {
		state = Reduce(state, action)
		if state.Reply.IsReplying != (state.Reply.Target != nil) {
			t.Fatalf("invariant broken after %T", action)
		}
	}
}

func TestPollUpdateUnchangedKeepsState(t *testing.T) {
	state := loadedState(testMessage("a", "u1", 0, 2, false))

	// Equivalent snapshot: same id, same likes, same liked flag.
	fresh := []types.Message{testMessage("a", "u1", 0, 2, false)}
	next := Reduce(state, PollUpdate{Messages: fresh})
	if &next.Messages[0] != &state.Messages[0] {
		t.Fatal("equivalent poll replaced the collection")
	}
}

func TestPollUpdateAppliesLikeChange(t *testing.T) {
	state := loadedState(testMessage("a", "u1", 0, 2, false))

	fresh := []types.Message{testMessage("a", "u1", 0, 3, false)}
	next := Reduce(state, PollUpdate{Messages: fresh})
	if next.Messages[0].LikesCount != 3 {
		t.Fatalf("expected like change applied, got %d", next.Messages[0].LikesCount)
	}
}

func TestPrimeFromCacheNeverOverwrites(t *testing.T) {
	cached := []types.Message{testMessage("old", "u1", 0, 0, false)}

	state := NewState(0)
	state = Reduce(state, PrimeFromCache{Messages: cached})
	if len(state.Messages) != 1 || state.Messages[0].ID != "old" {
		t.Fatal("expected cache to seed empty collection")
	}
	if !state.Loading.InitialLoad {
		t.Fatal("cache prime must not clear the initial-load marker")
	}

	state = Reduce(state, LoadSuccess{Messages: []types.Message{testMessage("new", "u1", 0, 0, false)}})
	state = Reduce(state, PrimeFromCache{Messages: cached})
	if state.Messages[0].ID != "new" {
		t.Fatal("cache prime overwrote loaded messages")
	}
}

func TestErrorSlotIsOverwritten(t *testing.T) {
	state := NewState(0)
	state = Reduce(state, SendFailure{Message: "send broke"})
	state = Reduce(state, ToggleLikeStart{MessageID: "missing"})
	state = Reduce(state, ToggleLikeFailure{MessageID: "missing"})
	if state.Err.Kind != ErrorToggleLike {
		t.Fatalf("expected latest error to win, got %s", state.Err.Kind)
	}

	state = Reduce(state, ClearError{})
	if state.Err.Kind != ErrorNone {
		t.Fatalf("expected error cleared, got %s", state.Err.Kind)
	}
}

func TestAuthAndRoomInfoDoNotTouchMessages(t *testing.T) {
	state := loadedState(testMessage("m1", "u1", 0, 0, false))

	state = Reduce(state, SetAuth{Auth: types.AuthState{IsAuthenticated: true, UserID: "u1"}})
	state = Reduce(state, SetRoomInfo{Info: types.RoomInfo{ID: "room-1", Name: "general"}})
	if len(state.Messages) != 1 {
		t.Fatal("auth/room info mutated messages")
	}
	if state.RoomInfo == nil || state.RoomInfo.Name != "general" {
		t.Fatal("room info not applied")
	}
	if !state.Auth.IsAuthenticated || state.Auth.UserID != "u1" {
		t.Fatal("auth not applied")
	}
}
