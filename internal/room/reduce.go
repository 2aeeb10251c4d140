package room

import "github.com/hansol-io/banter/internal/types"

var noError = ErrorState{Kind: ErrorNone}

// Reduce applies one action to the state and returns the next state. It is
// pure: the input state is never modified, and every action variant is
// handled explicitly.
func Reduce(state State, action Action) State {
	switch action := action.(type) {
	case SetAuth:
		state.Auth = action.Auth
		return state

	case SetRoomInfo:
		info := action.Info
		state.RoomInfo = &info
		return state

	case LoadStart:
		state.Loading.InitialLoad = true
		return state

	case LoadSuccess:
		state.Messages = action.Messages
		state.Loading.InitialLoad = false
		state.Err = noError
		return state

	case LoadFailure:
		state.Loading.InitialLoad = false
		state.Err = ErrorState{Kind: ErrorMessageFetch, Message: action.Message}
		return state

	case SendStart:
		state.Loading.Sending = true
		return state

	case SendSuccess:
		state.Input = ""
		state.Reply = ReplyMode{}
		state.Loading.Sending = false
		state.Err = noError
		return state

	case SendFailure:
		state.Loading.Sending = false
		state.Err = ErrorState{Kind: ErrorSendMessage, Message: action.Message}
		return state

	case DeleteStart:
		state.Messages = removeMessage(state.Messages, action.MessageID)
		state.Loading.DeletingID = action.MessageID
		return state

	case DeleteSuccess:
		state.Loading.DeletingID = ""
		state.Err = noError
		return state

	case DeleteFailure:
		state.Messages = insertMessageAt(state.Messages, action.Removed, action.Index)
		state.Loading.DeletingID = ""
		state.Err = ErrorState{Kind: ErrorDeleteMessage, Message: "failed to delete message"}
		return state

	case ToggleLikeStart:
		state.Messages = flipLike(state.Messages, action.MessageID)
		state.Loading.TogglingLikeID = action.MessageID
		return state

	case ToggleLikeSuccess:
		state.Loading.TogglingLikeID = ""
		state.Err = noError
		return state

	case ToggleLikeFailure:
		state.Messages = flipLike(state.Messages, action.MessageID)
		state.Loading.TogglingLikeID = ""
		state.Err = ErrorState{Kind: ErrorToggleLike, Message: "failed to toggle like"}
		return state

	case StartReply:
		for i := range state.Messages {
			if state.Messages[i].ID == action.MessageID {
				target := state.Messages[i]
				state.Reply = ReplyMode{IsReplying: true, Target: &target}
				return state
			}
		}
		return state

	case CancelReply:
		state.Reply = ReplyMode{}
		return state

	case SetInput:
		state.Input = action.Value
		return state

	case ClearInput:
		state.Input = ""
		return state

	case StartPolling:
		state.Polling.Active = true
		state.Polling.Generation = action.Generation
		return state

	case StopPolling:
		state.Polling.Active = false
		return state

	case PollUpdate:
		if !MessagesChanged(state.Messages, action.Messages) {
			return state
		}
		state.Messages = action.Messages
		return state

	case PrimeFromCache:
		if len(state.Messages) > 0 {
			return state
		}
		state.Messages = action.Messages
		return state

	case SetError:
		state.Err = action.Err
		return state

	case ClearError:
		state.Err = noError
		return state

	default:
		panic("room: unhandled action")
	}
}

func removeMessage(messages []types.Message, id string) []types.Message {
	out := make([]types.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == id {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func insertMessageAt(messages []types.Message, msg types.Message, index int) []types.Message {
	if index < 0 {
		index = 0
	}
	if index > len(messages) {
		index = len(messages)
	}
	out := make([]types.Message, 0, len(messages)+1)
	out = append(out, messages[:index]...)
	out = append(out, msg)
	out = append(out, messages[index:]...)
	return out
}

func flipLike(messages []types.Message, id string) []types.Message {
	out := make([]types.Message, len(messages))
	copy(out, messages)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Liked {
			out[i].Liked = false
			out[i].LikesCount--
			if out[i].LikesCount < 0 {
				out[i].LikesCount = 0
			}
		} else {
			out[i].Liked = true
			out[i].LikesCount++
		}
	}
	return out
}
