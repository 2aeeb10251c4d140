package room

import (
	"time"

	"github.com/hansol-io/banter/internal/types"
)

// DefaultPollInterval is the fixed refresh cadence for a mounted room.
const DefaultPollInterval = 4 * time.Second

// ErrorKind tags the single surfaced error slot.
type ErrorKind string

const (
	ErrorNone          ErrorKind = "none"
	ErrorRoomNotFound  ErrorKind = "room_not_found"
	ErrorMessageFetch  ErrorKind = "message_fetch_error"
	ErrorSendMessage   ErrorKind = "send_message_error"
	ErrorDeleteMessage ErrorKind = "delete_message_error"
	ErrorToggleLike    ErrorKind = "toggle_like_error"
)

// ErrorState is the one user-facing error surfaced at a time. The next
// terminal action overwrites or clears it.
type ErrorState struct {
	Kind    ErrorKind
	Message string
}

// Terminal reports whether the error blocks the room view entirely.
func (e ErrorState) Terminal() bool {
	return e.Kind == ErrorRoomNotFound
}

// ReplyMode marks a message as the target of the next send. Target is a
// snapshot, not a live reference. Invariant: IsReplying == (Target != nil).
type ReplyMode struct {
	IsReplying bool
	Target     *types.Message
}

// Loading tracks in-flight operations. At most one delete and one like
// toggle may be outstanding at a time.
type Loading struct {
	InitialLoad    bool
	Sending        bool
	DeletingID     string
	TogglingLikeID string
}

// PollingState is bookkeeping for the background refresh task. The timer
// itself is owned by the session; reducers only see these markers.
type PollingState struct {
	Active     bool
	Interval   time.Duration
	Generation uint64
}

// State is the complete client-side view of one mounted room. It is only
// ever modified by Reduce.
type State struct {
	Messages []types.Message
	RoomInfo *types.RoomInfo
	Reply    ReplyMode
	Input    string
	Polling  PollingState
	Loading  Loading
	Err      ErrorState
	Auth     types.AuthState
}

// NewState returns the fresh state for a just-mounted room.
func NewState(interval time.Duration) State {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return State{
		Polling: PollingState{Interval: interval},
		Loading: Loading{InitialLoad: true},
		Err:     ErrorState{Kind: ErrorNone},
	}
}
