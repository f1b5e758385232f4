// Package discord is a minimal delivery backend over the Discord REST API:
// just enough to post notification messages to a channel or a user's DMs.
// The interactive bot surface (commands, embeds) lives outside this service.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jaehokim/nalssibot/internal/httputil"
	"github.com/jaehokim/nalssibot/internal/notify"
)

const defaultBaseURL = "https://discord.com/api/v10"

// Client implements notify.Channel against the Discord REST API.
type Client struct {
	token   string
	baseURL string
	client  *http.Client

	mu         sync.Mutex
	dmChannels map[string]string // user id → DM channel id
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		client:     httputil.NewClient(15 * time.Second),
		dmChannels: make(map[string]string),
	}
}

// SetBaseURL overrides the API host, for tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Send posts a message. Direct targets are resolved to the owner's DM
// channel first; resolution failures surface to the caller, which drops the
// notification without retrying this tick.
func (c *Client) Send(ctx context.Context, target notify.Target, msg notify.Message) error {
	channelID := target.ID
	if target.Kind == notify.TargetDirect {
		id, err := c.dmChannel(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("resolve DM channel for %s: %w", target.ID, err)
		}
		channelID = id
	}

	payload := map[string]string{
		"content": fmt.Sprintf("**%s**\n\n%s", msg.Title, msg.Body),
	}
	if err := c.post(ctx, fmt.Sprintf("/channels/%s/messages", channelID), payload, nil); err != nil {
		return fmt.Errorf("post message to %s: %w", channelID, err)
	}
	return nil
}

// dmChannel opens (or reuses) the DM channel for a user.
func (c *Client) dmChannel(ctx context.Context, userID string) (string, error) {
	c.mu.Lock()
	id, ok := c.dmChannels[userID]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	var resp struct {
		ID string `json:"id"`
	}
	payload := map[string]string{"recipient_id": userID}
	if err := c.post(ctx, "/users/@me/channels", payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("no channel id in response")
	}

	c.mu.Lock()
	c.dmChannels[userID] = resp.ID
	c.mu.Unlock()
	return resp.ID, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
