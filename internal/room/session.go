package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hansol-io/banter/internal/types"
)

// Collaborator is the remote chat service surface the engine depends on.
// Transport, serialization and authorization live behind it.
type Collaborator interface {
	GetRoomInfo(ctx context.Context, roomID string) (types.RoomInfo, error)
	GetMessages(ctx context.Context, roomID string) ([]types.Message, error)
	SendMessage(ctx context.Context, roomID string, body types.CreateMessageBody) (types.Message, error)
	DeleteMessage(ctx context.Context, messageID string) error
	ToggleLike(ctx context.Context, messageID string) (types.ToggleLikeResult, error)
}

// Cache persists last-known snapshots so a remounted room renders before
// the first load completes. Implementations must tolerate concurrent use.
type Cache interface {
	Messages(roomID string) ([]types.Message, error)
	ReplaceMessages(roomID string, messages []types.Message) error
}

var (
	// ErrMutationInFlight is returned when a second delete or like toggle
	// is requested while one is still outstanding.
	ErrMutationInFlight = errors.New("room: mutation already in flight")

	// ErrUnknownMessage is returned when a mutation targets an id that is
	// not in the loaded collection.
	ErrUnknownMessage = errors.New("room: unknown message id")

	// ErrNotAuthenticated is returned when a send is attempted without an
	// authenticated viewer.
	ErrNotAuthenticated = errors.New("room: not authenticated")
)

// SessionOptions configure a Session.
type SessionOptions struct {
	Client       Collaborator
	Cache        Cache
	Logger       zerolog.Logger
	PollInterval time.Duration
}

// Session owns the state of one mounted room. All mutation flows through
// Reduce under a single lock, so actions apply one at a time in a single
// serialized timeline. Asynchronous completions are tagged with the room
// generation captured at issue time; a completion whose generation no
// longer matches is discarded.
type Session struct {
	client   Collaborator
	cache    Cache
	log      zerolog.Logger
	interval time.Duration
	updates  chan struct{}

	mu     sync.Mutex
	gen    uint64
	roomID string
	state  State
	view   View
	poller *poller
}

// NewSession creates an unmounted session.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Client == nil {
		return nil, errors.New("room: collaborator client is required")
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	state := NewState(interval)
	return &Session{
		client:   opts.Client,
		cache:    opts.Cache,
		log:      opts.Logger,
		interval: interval,
		updates:  make(chan struct{}, 1),
		state:    state,
		view:     Project(state),
	}, nil
}

// Updates signals after every applied state change. The channel is
// latest-wins: a pending signal is never duplicated.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// CurrentView returns the most recent projection.
func (s *Session) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// RoomID returns the id of the mounted room, or "" before the first mount.
func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// SetAuth projects the external identity into state.
func (s *Session) SetAuth(auth types.AuthState) {
	s.dispatch(SetAuth{Auth: auth})
}

// Mount initializes the session against a room: fresh state, room info
// fetch, initial load, polling. Calling it again with a different room id
// supersedes everything in flight for the previous room.
func (s *Session) Mount(ctx context.Context, roomID string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	old := s.poller
	s.poller = nil
	auth := s.state.Auth
	s.roomID = roomID
	s.state = NewState(s.interval)
	s.state.Auth = auth
	s.view = Project(s.state)
	s.mu.Unlock()
	s.notify()

	if old != nil {
		old.stop()
	}

	if s.cache != nil {
		if cached, err := s.cache.Messages(roomID); err != nil {
			s.log.Debug().Err(err).Str("room", roomID).Msg("cache read failed")
		} else if len(cached) > 0 {
			s.dispatchTagged(gen, PrimeFromCache{Messages: cached})
		}
	}

	info, err := s.client.GetRoomInfo(ctx, roomID)
	if err != nil {
		// Terminal: the view is blocked, so neither the initial load nor
		// the poller is started.
		s.dispatchTagged(gen, SetError{Err: ErrorState{Kind: ErrorRoomNotFound, Message: "room not found"}})
		return err
	}
	s.dispatchTagged(gen, SetRoomInfo{Info: info})

	s.reload(ctx, gen, roomID)
	s.startPolling(gen, roomID)
	return nil
}

// Close tears the session down. No completion belonging to the closed room
// can mutate state afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.gen++
	old := s.poller
	s.poller = nil
	s.apply(StopPolling{})
	s.mu.Unlock()
	s.notify()
	if old != nil {
		old.stop()
	}
}

// Send submits the current draft with the current reply target. A draft
// that is blank after trimming never reaches the network.
func (s *Session) Send(ctx context.Context) error {
	s.mu.Lock()
	gen, roomID := s.gen, s.roomID
	content := strings.TrimSpace(s.state.Input)
	if content == "" {
		s.mu.Unlock()
		return nil
	}
	if !s.state.Auth.IsAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.state.Loading.Sending {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	var replyTo *string
	if s.state.Reply.IsReplying && s.state.Reply.Target != nil {
		id := s.state.Reply.Target.ID
		replyTo = &id
	}
	s.apply(SendStart{})
	s.mu.Unlock()
	s.notify()

	_, err := s.client.SendMessage(ctx, roomID, types.CreateMessageBody{Content: content, ReplyToID: replyTo})
	if err != nil {
		s.dispatchTagged(gen, SendFailure{Message: err.Error()})
		return err
	}
	s.dispatchTagged(gen, SendSuccess{})
	// Reload for the server-assigned id and timestamp rather than
	// fabricating a local message.
	s.reload(ctx, gen, roomID)
	return nil
}

// Delete optimistically removes a message, then confirms with the server.
// On failure the message returns to the position it was removed from.
func (s *Session) Delete(ctx context.Context, messageID string) error {
	s.mu.Lock()
	gen, roomID := s.gen, s.roomID
	if s.state.Loading.DeletingID != "" {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	index := -1
	var removed types.Message
	for i, msg := range s.state.Messages {
		if msg.ID == messageID {
			index, removed = i, msg
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return ErrUnknownMessage
	}
	s.apply(DeleteStart{MessageID: messageID})
	s.mu.Unlock()
	s.notify()

	if err := s.client.DeleteMessage(ctx, messageID); err != nil {
		s.dispatchTagged(gen, DeleteFailure{MessageID: messageID, Removed: removed, Index: index})
		return err
	}
	s.dispatchTagged(gen, DeleteSuccess{})
	s.reload(ctx, gen, roomID)
	return nil
}

// ToggleLike optimistically flips the like state, then confirms with the
// server. On failure the flip is inverted.
func (s *Session) ToggleLike(ctx context.Context, messageID string) error {
	s.mu.Lock()
	gen := s.gen
	if s.state.Loading.TogglingLikeID != "" {
		s.mu.Unlock()
		return ErrMutationInFlight
	}
	found := false
	for _, msg := range s.state.Messages {
		if msg.ID == messageID {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrUnknownMessage
	}
	s.apply(ToggleLikeStart{MessageID: messageID})
	s.mu.Unlock()
	s.notify()

	result, err := s.client.ToggleLike(ctx, messageID)
	if err != nil {
		s.dispatchTagged(gen, ToggleLikeFailure{MessageID: messageID})
		return err
	}
	s.dispatchTagged(gen, ToggleLikeSuccess{MessageID: messageID, Liked: result.Liked})
	return nil
}

// StartReply targets a loaded message for the next send.
func (s *Session) StartReply(messageID string) {
	s.dispatch(StartReply{MessageID: messageID})
}

// CancelReply clears the reply target.
func (s *Session) CancelReply() {
	s.dispatch(CancelReply{})
}

// SetInput mirrors the draft text into state.
func (s *Session) SetInput(value string) {
	s.dispatch(SetInput{Value: value})
}

// ClearInput empties the draft text.
func (s *Session) ClearInput() {
	s.dispatch(ClearInput{})
}

// ClearError dismisses the surfaced error.
func (s *Session) ClearError() {
	s.dispatch(ClearError{})
}

// Reload refetches the message list immediately, outside the poll cadence.
func (s *Session) Reload(ctx context.Context) {
	s.mu.Lock()
	gen, roomID := s.gen, s.roomID
	s.mu.Unlock()
	if roomID == "" {
		return
	}
	s.reload(ctx, gen, roomID)
}

func (s *Session) reload(ctx context.Context, gen uint64, roomID string) {
	s.dispatchTagged(gen, LoadStart{})
	messages, err := s.client.GetMessages(ctx, roomID)
	if err != nil {
		s.dispatchTagged(gen, LoadFailure{Message: err.Error()})
		return
	}
	s.dispatchTagged(gen, LoadSuccess{Messages: messages})
	s.saveCache(roomID, messages)
}

func (s *Session) saveCache(roomID string, messages []types.Message) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ReplaceMessages(roomID, messages); err != nil {
		s.log.Debug().Err(err).Str("room", roomID).Msg("cache write failed")
	}
}

// dispatch applies an action unconditionally.
func (s *Session) dispatch(action Action) {
	s.mu.Lock()
	s.apply(action)
	s.mu.Unlock()
	s.notify()
}

// dispatchTagged applies an async completion only if its captured
// generation still matches the session's.
func (s *Session) dispatchTagged(gen uint64, action Action) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug().Uint64("generation", gen).Msg("stale completion discarded")
		return
	}
	s.apply(action)
	s.mu.Unlock()
	s.notify()
}

// apply requires s.mu to be held.
func (s *Session) apply(action Action) {
	s.state = Reduce(s.state, action)
	s.view = Project(s.state)
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
