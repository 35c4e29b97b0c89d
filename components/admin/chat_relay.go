package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	SessionID string `json:"sessionId"`
	Output    string `json:"output"`
}

// ChatRelay forwards messages to the chat webhook on behalf of a browser client,
// using the same session id and metadata the widget would send.
type ChatRelay struct {
	bridge *ChatBridge
	client *http.Client
}

// NewChatRelay builds a relay. A nil http client gets a 30s timeout.
func NewChatRelay(bridge *ChatBridge, client *http.Client) *ChatRelay {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ChatRelay{bridge: bridge, client: client}
}

// RelayError is a non-2xx webhook response.
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("admin: chat webhook error %d: %s", e.Status, e.Body)
}

// Send posts a message and returns the webhook's output.
func (r *ChatRelay) Send(ctx context.Context, scope, message string) (ChatReply, error) {
	cfg := r.bridge.Config()
	if err := cfg.Validate(); err != nil {
		return ChatReply{}, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, ErrEmptyChatMessage
	}
	meta, err := r.bridge.Metadata(ctx, scope)
	if err != nil {
		return ChatReply{}, err
	}
	payload := map[string]any{
		"action":           "sendMessage",
		cfg.ChatSessionKey: meta.SessionID,
		cfg.ChatInputKey:   message,
		"metadata":         meta,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return ChatReply{}, fmt.Errorf("admin: encode chat message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return ChatReply{}, fmt.Errorf("admin: build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return ChatReply{}, fmt.Errorf("admin: chat request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ChatReply{}, fmt.Errorf("admin: read chat response: %w", err)
	}
	r.bridge.telemetry.Record(ctx, EventChatRelay, map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	if resp.StatusCode >= 300 {
		return ChatReply{}, &RelayError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	output, err := decodeChatOutput(raw)
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{SessionID: meta.SessionID, Output: output}, nil
}

// decodeChatOutput accepts {"output": ...}, [{"output": ...}], or a plain text body.
func decodeChatOutput(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}
	switch trimmed[0] {
	case '{':
		var single struct {
			Output string `json:"output"`
		}
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return "", fmt.Errorf("admin: decode chat response: %w", err)
		}
		return single.Output, nil
	case '[':
		var many []struct {
			Output string `json:"output"`
		}
		if err := json.Unmarshal(trimmed, &many); err != nil {
			return "", fmt.Errorf("admin: decode chat response: %w", err)
		}
		if len(many) == 0 {
			return "", nil
		}
		return many[0].Output, nil
	default:
		return string(trimmed), nil
	}
}
