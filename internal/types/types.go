package types

import "time"

// Sender identifies a message author.
type Sender struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// ReplyRef is a denormalized snapshot of a reply target. It captures the
// target's content at send time and is never re-resolved against the live
// message set.
type ReplyRef struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Sender  Sender `json:"sender"`
}

// Message represents a room message. Server-assigned fields (ID, CreatedAt)
// are authoritative; only the two like fields ever change after creation.
type Message struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	SenderID   string    `json:"sender_id"`
	Content    string    `json:"content"`
	ReplyToID  *string   `json:"reply_to_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Sender     Sender    `json:"sender"`
	ReplyTo    *ReplyRef `json:"reply_to,omitempty"`
	LikesCount int       `json:"likes_count"`
	Liked      bool      `json:"is_liked_by_current_user"`
}

// RoomInfo describes a chat room.
type RoomInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomListItem is a room summary as returned by the room list endpoint.
type RoomListItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CreatorNickname string    `json:"creator_nickname"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Profile is the current user's profile.
type Profile struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMessageBody is the payload for sending a message.
type CreateMessageBody struct {
	Content   string  `json:"content"`
	ReplyToID *string `json:"reply_to_id,omitempty"`
}

// CreateRoomBody is the payload for creating a room.
type CreateRoomBody struct {
	Name string `json:"name"`
}

// UpdateProfileBody is the payload for changing the profile nickname.
type UpdateProfileBody struct {
	Nickname string `json:"nickname"`
}

// ToggleLikeResult reports the server's side of a like toggle.
type ToggleLikeResult struct {
	Liked bool `json:"liked"`
}

// AuthState is the identity projection supplied by the session layer.
type AuthState struct {
	IsAuthenticated bool
	UserID          string
}
