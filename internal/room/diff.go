package room

import "github.com/hansol-io/banter/internal/types"

// MessagesChanged reports whether a freshly polled snapshot differs from the
// displayed collection in a way worth applying. Two collections are
// equivalent iff they hold exactly the same message ids and, for every
// shared id, the like count and liked-by-viewer flag match. Content, sender,
// reply target and timestamp are deliberately not compared: messages cannot
// be edited, so those fields only change when the id set does.
func MessagesChanged(old, fresh []types.Message) bool {
	if len(old) != len(fresh) {
		return true
	}

	byID := make(map[string]types.Message, len(old))
	for _, msg := range old {
		byID[msg.ID] = msg
	}

	for _, msg := range fresh {
		prev, ok := byID[msg.ID]
		if !ok {
			return true
		}
		if prev.LikesCount != msg.LikesCount || prev.Liked != msg.Liked {
			return true
		}
		delete(byID, msg.ID)
	}

	return len(byID) != 0
}
