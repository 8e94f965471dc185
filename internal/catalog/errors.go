package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNotFound matches a RemoteError for a 404 response.
var ErrNotFound = errors.New("book not found")

// TransportError reports a request that never produced an HTTP response:
// connection refused, DNS failure, timeout or cancellation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a response the service rejected, or a success response
// whose payload could not be decoded (Err is set in that case).
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	if e.Err != nil {
		fmt.Fprintf(&b, "%s: invalid response (status %d): %v", e.Op, e.StatusCode, e.Err)
		return b.String()
	}
	fmt.Fprintf(&b, "%s: api returned status %d", e.Op, e.StatusCode)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is reports 404 responses as ErrNotFound.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

const maxMessageLen = 200

var messagePolicy = bluemonday.StrictPolicy()

// extractMessage pulls a human readable message out of an error body. JSON
// bodies are searched for "message", then "error", then "data.message"; any
// other body is treated as text (often an HTML error page from a proxy).
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if msg := cleanMessage(payload.Message); msg != "" {
			return msg
		}
		if msg := cleanMessage(rawErrorText(payload.Error)); msg != "" {
			return msg
		}
		return cleanMessage(payload.Data.Message)
	}

	return cleanMessage(messagePolicy.Sanitize(string(trimmed)))
}

// rawErrorText renders an "error" member that may be a string or a map of
// field names to messages.
func rawErrorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

func cleanMessage(s string) string {
	s = strings.Join(strings.Fields(html.UnescapeString(s)), " ")
	runes := []rune(s)
	if len(runes) <= maxMessageLen {
		return s
	}
	return string(runes[:maxMessageLen-3]) + "..."
}
