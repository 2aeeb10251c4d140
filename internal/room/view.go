package room

import (
	"sort"
	"strings"

	"github.com/hansol-io/banter/internal/types"
)

// View is the read-only projection handed to rendering. It is recomputed
// from the state on every change.
type View struct {
	State

	// SortedMessages is the collection in ascending creation order. The
	// sort is stable so same-timestamp messages keep arrival order.
	SortedMessages []types.Message

	// MyMessageIDs holds the ids authored by the current viewer.
	MyMessageIDs map[string]struct{}

	// CanSend is true when the trimmed input is non-empty, the viewer is
	// authenticated and no send is in flight.
	CanSend bool

	// InputEmpty is true when the draft is blank after trimming.
	InputEmpty bool
}

// Project derives the renderable view from a state.
func Project(state State) View {
	sorted := make([]types.Message, len(state.Messages))
	copy(sorted, state.Messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	mine := make(map[string]struct{})
	if state.Auth.UserID != "" {
		for _, msg := range state.Messages {
			if msg.SenderID == state.Auth.UserID {
				mine[msg.ID] = struct{}{}
			}
		}
	}

	trimmed := strings.TrimSpace(state.Input)

	return View{
		State:          state,
		SortedMessages: sorted,
		MyMessageIDs:   mine,
		CanSend:        trimmed != "" && state.Auth.IsAuthenticated && !state.Loading.Sending,
		InputEmpty:     trimmed == "",
	}
}
