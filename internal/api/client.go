package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hansol-io/banter/internal/types"
)

// ErrRoomNotFound is returned when the room endpoint reports a missing or
// inaccessible room.
var ErrRoomNotFound = errors.New("room not found")

// APIError represents a non-2xx response from the banter API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("banter api error: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("banter api error: %s (%d)", e.Code, e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("banter api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("banter api error (%d)", e.Status)
}

type apiErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the banter API.
type Client struct {
	baseURL    string
	token      string
	deviceID   string
	httpClient *http.Client
}

// NewClient constructs an API client.
func NewClient(baseURL, token string) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		token:   token,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

// SetDeviceID attaches a per-install identifier sent with every request.
func (c *Client) SetDeviceID(id string) {
	c.deviceID = id
}

// NormalizeBaseURL normalizes a server base URL and ensures it has a scheme.
func NormalizeBaseURL(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("server url cannot be empty")
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	if parsed.Scheme == "" {
		return "", fmt.Errorf("server url must include scheme (https://)")
	}
	value = strings.TrimRight(value, "/")
	return value, nil
}

// GetRoomInfo fetches a room's header. A 404 maps to ErrRoomNotFound.
func (c *Client) GetRoomInfo(ctx context.Context, roomID string) (types.RoomInfo, error) {
	var resp types.RoomInfo
	err := c.doJSON(ctx, http.MethodGet, "/api/rooms/"+url.PathEscape(roomID), nil, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return types.RoomInfo{}, ErrRoomNotFound
		}
		return types.RoomInfo{}, err
	}
	return resp, nil
}

// GetMessages fetches the full live message set for a room.
func (c *Client) GetMessages(ctx context.Context, roomID string) ([]types.Message, error) {
	var resp []types.Message
	if err := c.doJSON(ctx, http.MethodGet, "/api/rooms/"+url.PathEscape(roomID)+"/messages", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendMessage posts a message. The server assigns id and timestamp.
func (c *Client) SendMessage(ctx context.Context, roomID string, body types.CreateMessageBody) (types.Message, error) {
	var resp types.Message
	if err := c.doJSON(ctx, http.MethodPost, "/api/rooms/"+url.PathEscape(roomID)+"/messages", body, &resp); err != nil {
		return types.Message{}, err
	}
	return resp, nil
}

// DeleteMessage removes a message. Authorization is the server's concern.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/messages/"+url.PathEscape(messageID), nil, nil)
}

// ToggleLike flips the caller's like on a message; the server decides
// whether that means add or remove.
func (c *Client) ToggleLike(ctx context.Context, messageID string) (types.ToggleLikeResult, error) {
	var resp types.ToggleLikeResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/messages/"+url.PathEscape(messageID)+"/like", nil, &resp); err != nil {
		return types.ToggleLikeResult{}, err
	}
	return resp, nil
}

// ListRooms fetches the room directory.
func (c *Client) ListRooms(ctx context.Context) ([]types.RoomListItem, error) {
	var resp []types.RoomListItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/rooms", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateRoom creates a room owned by the current user.
func (c *Client) CreateRoom(ctx context.Context, name string) (types.RoomInfo, error) {
	var resp types.RoomInfo
	if err := c.doJSON(ctx, http.MethodPost, "/api/rooms", types.CreateRoomBody{Name: name}, &resp); err != nil {
		return types.RoomInfo{}, err
	}
	return resp, nil
}

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (types.Profile, error) {
	var resp types.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return types.Profile{}, err
	}
	return resp, nil
}

// UpdateNickname changes the current user's nickname.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) (types.Profile, error) {
	var resp types.Profile
	if err := c.doJSON(ctx, http.MethodPatch, "/api/profile", types.UpdateProfileBody{Nickname: nickname}, &resp); err != nil {
		return types.Profile{}, err
	}
	return resp, nil
}

// Logout invalidates the session token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody any, respBody any) error {
	endpoint, err := c.buildURL(path)
	if err != nil {
		return err
	}

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.deviceID != "" {
		req.Header.Set("X-Banter-Device", c.deviceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload apiErrorPayload
		if err := json.Unmarshal(respData, &payload); err == nil {
			apiErr.Code = payload.Error
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(respData))
		}
		return apiErr
	}

	if respBody == nil {
		return nil
	}
	if len(respData) == 0 {
		return nil
	}
	return json.Unmarshal(respData, respBody)
}

func (c *Client) buildURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
