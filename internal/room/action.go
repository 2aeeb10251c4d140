package room

import "github.com/hansol-io/banter/internal/types"

// Action is the closed set of state transitions. Each variant carries
// exactly the payload its transition needs.
type Action interface {
	isAction()
}

// SetAuth replaces the identity projection. It never touches messages.
type SetAuth struct {
	Auth types.AuthState
}

// SetRoomInfo replaces the room header wholesale.
type SetRoomInfo struct {
	Info types.RoomInfo
}

// LoadStart marks a full message load as in flight.
type LoadStart struct{}

// LoadSuccess replaces the message collection and clears any error.
type LoadSuccess struct {
	Messages []types.Message
}

// LoadFailure keeps the previously displayed messages so a transient fetch
// failure never blanks a populated view.
type LoadFailure struct {
	Message string
}

// SendStart marks a send as in flight. No optimistic message is inserted;
// the server owns ids and timestamps.
type SendStart struct{}

// SendSuccess clears input, reply mode and the send marker. The coordinator
// follows up with a full reload for the authoritative message.
type SendSuccess struct{}

// SendFailure leaves input and reply mode intact so the user can retry.
type SendFailure struct {
	Message string
}

// DeleteStart optimistically removes the message and records its id as the
// outstanding delete marker.
type DeleteStart struct {
	MessageID string
}

// DeleteSuccess clears the marker; the removal already happened at start.
type DeleteSuccess struct{}

// DeleteFailure rolls the removal back. Removed and Index are the snapshot
// taken just before the optimistic removal so the message returns to its
// original position rather than an id-ordered guess.
type DeleteFailure struct {
	MessageID string
	Removed   types.Message
	Index     int
}

// ToggleLikeStart optimistically flips the liked flag and adjusts the count
// by one, clamped at zero.
type ToggleLikeStart struct {
	MessageID string
}

// ToggleLikeSuccess clears the marker. The optimistic value stands; the
// server's reported flag is not retrofitted into state.
type ToggleLikeSuccess struct {
	MessageID string
	Liked     bool
}

// ToggleLikeFailure inverts the flip applied at start.
type ToggleLikeFailure struct {
	MessageID string
}

// StartReply targets a message from the currently loaded collection. If the
// id is not present the action is a no-op.
type StartReply struct {
	MessageID string
}

// CancelReply clears reply mode unconditionally.
type CancelReply struct{}

// SetInput replaces the draft text.
type SetInput struct {
	Value string
}

// ClearInput empties the draft text.
type ClearInput struct{}

// StartPolling records that the refresh task for a generation is running.
type StartPolling struct {
	Generation uint64
}

// StopPolling records that no refresh task is running.
type StopPolling struct{}

// PollUpdate replaces the collection only when the change detector judges
// the fetched snapshot different from the displayed one.
type PollUpdate struct {
	Messages []types.Message
}

// PrimeFromCache seeds an empty collection from the local cache before the
// first load completes. It never overwrites loaded messages.
type PrimeFromCache struct {
	Messages []types.Message
}

// SetError overrides the error slot directly.
type SetError struct {
	Err ErrorState
}

// ClearError resets the error slot.
type ClearError struct{}

func (SetAuth) isAction()           {}
func (SetRoomInfo) isAction()       {}
func (LoadStart) isAction()         {}
func (LoadSuccess) isAction()       {}
func (LoadFailure) isAction()       {}
func (SendStart) isAction()         {}
func (SendSuccess) isAction()       {}
func (SendFailure) isAction()       {}
func (DeleteStart) isAction()       {}
func (DeleteSuccess) isAction()     {}
func (DeleteFailure) isAction()     {}
func (ToggleLikeStart) isAction()   {}
func (ToggleLikeSuccess) isAction() {}
func (ToggleLikeFailure) isAction() {}
func (StartReply) isAction()        {}
func (CancelReply) isAction()       {}
func (SetInput) isAction()          {}
func (ClearInput) isAction()        {}
func (StartPolling) isAction()      {}
func (StopPolling) isAction()       {}
func (PollUpdate) isAction()        {}
func (PrimeFromCache) isAction()    {}
func (SetError) isAction()          {}
func (ClearError) isAction()        {}
