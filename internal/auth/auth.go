package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const sessionFileName = "session.json"

// Session stores local-only credentials for a logged-in user. The token is
// issued elsewhere; this package only persists it.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	DeviceID  string `json:"device_id,omitempty"`
	LoggedIn  int64  `json:"logged_in_at,omitempty"`
}

func sessionPath(configDir string) string {
	return filepath.Join(configDir, sessionFileName)
}

// Load reads the stored session if present. A missing file returns nil
// without error.
func Load(configDir string) (*Session, error) {
	var session Session
	ok, err := readJSON(sessionPath(configDir), &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session atomically. A device id is generated on first
// save and survives re-logins.
func Save(configDir string, session Session) error {
	if session.DeviceID == "" {
		if existing, err := Load(configDir); err == nil && existing != nil && existing.DeviceID != "" {
			session.DeviceID = existing.DeviceID
		} else {
			session.DeviceID = uuid.New().String()
		}
	}
	return writeJSONAtomic(sessionPath(configDir), session)
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func Clear(configDir string) error {
	err := os.Remove(sessionPath(configDir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func readJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, err
	}
	return true, nil
}

func writeJSONAtomic(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
