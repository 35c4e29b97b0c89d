package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RemoteError is a non-2xx response from the REST gateway. Error returns the
// server message unchanged so it can be shown to operators as is.
type RemoteError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Body    string `json:"-"`
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("supabase: remote error %d: %s", e.Status, e.Body)
}

func newRemoteError(status int, body []byte) *RemoteError {
	remote := &RemoteError{Status: status, Body: strings.TrimSpace(string(body))}
	var payload struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
		Hint    json.RawMessage `json:"hint"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		remote.Code = payload.Code
		remote.Message = payload.Message
		remote.Details = rawText(payload.Details)
		remote.Hint = rawText(payload.Hint)
	}
	return remote
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
