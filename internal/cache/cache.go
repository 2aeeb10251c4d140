package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hansol-io/banter/internal/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS banter_messages (
	id TEXT PRIMARY KEY,
	room_id TEXT NOT NULL,
	sender_id TEXT NOT NULL,
	sender_nickname TEXT NOT NULL,
	content TEXT NOT NULL,
	reply_to_id TEXT,
	reply_to_content TEXT,
	reply_to_sender_id TEXT,
	reply_to_nickname TEXT,
	created_at TEXT NOT NULL,
	likes_count INTEGER NOT NULL DEFAULT 0,
	liked INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_banter_messages_room
	ON banter_messages(room_id, created_at);
CREATE TABLE IF NOT EXISTS banter_rooms (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	creator_nickname TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);
`

// Store is a local snapshot cache of server state. It only ever holds the
// last successfully fetched data; the server stays authoritative.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Store{db: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceMessages swaps the cached snapshot for a room.
func (s *Store) ReplaceMessages(roomID string, messages []types.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM banter_messages WHERE room_id = ?`, roomID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, msg := range messages {
		var replyID, replyContent, replySenderID, replyNickname *string
		if msg.ReplyTo != nil {
			replyID = &msg.ReplyTo.ID
			replyContent = &msg.ReplyTo.Content
			replySenderID = &msg.ReplyTo.Sender.ID
			replyNickname = &msg.ReplyTo.Sender.Nickname
		}
		liked := 0
		if msg.Liked {
			liked = 1
		}
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO banter_messages (
				id, room_id, sender_id, sender_nickname, content,
				reply_to_id, reply_to_content, reply_to_sender_id, reply_to_nickname,
				created_at, likes_count, liked
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, msg.ID, roomID, msg.SenderID, msg.Sender.Nickname, msg.Content,
			replyID, replyContent, replySenderID, replyNickname,
			msg.CreatedAt.UTC().Format(time.RFC3339Nano), msg.LikesCount, liked)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Messages returns the cached snapshot for a room in chronological order.
func (s *Store) Messages(roomID string) ([]types.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, sender_id, sender_nickname, content,
		       reply_to_id, reply_to_content, reply_to_sender_id, reply_to_nickname,
		       created_at, likes_count, liked
		FROM banter_messages
		WHERE room_id = ?
		ORDER BY created_at ASC, id ASC
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []types.Message
	for rows.Next() {
		var msg types.Message
		var replyID, replyContent, replySenderID, replyNickname *string
		var createdAt string
		var liked int
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.Sender.Nickname, &msg.Content,
			&replyID, &replyContent, &replySenderID, &replyNickname,
			&createdAt, &msg.LikesCount, &liked); err != nil {
			return nil, err
		}
		msg.RoomID = roomID
		msg.Sender.ID = msg.SenderID
		msg.Liked = liked != 0
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			msg.CreatedAt = ts
		}
		if replyID != nil {
			msg.ReplyToID = replyID
			ref := types.ReplyRef{ID: *replyID}
			if replyContent != nil {
				ref.Content = *replyContent
			}
			if replySenderID != nil {
				ref.Sender.ID = *replySenderID
			}
			if replyNickname != nil {
				ref.Sender.Nickname = *replyNickname
			}
			msg.ReplyTo = &ref
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// ReplaceRooms swaps the cached room directory.
func (s *Store) ReplaceRooms(rooms []types.RoomListItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM banter_rooms`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, room := range rooms {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO banter_rooms (id, name, creator_nickname, updated_at)
			VALUES (?, ?, ?, ?)
		`, room.ID, room.Name, room.CreatorNickname, room.UpdatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Rooms returns the cached room directory, most recently updated first.
func (s *Store) Rooms() ([]types.RoomListItem, error) {
	rows, err := s.db.Query(`
		SELECT id, name, creator_nickname, updated_at
		FROM banter_rooms
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []types.RoomListItem
	for rows.Next() {
		var room types.RoomListItem
		var updatedAt string
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatorNickname, &updatedAt); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			room.UpdatedAt = ts
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
