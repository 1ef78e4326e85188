package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is returned for every non-2xx response.
type Error struct {
	// Message is the text shown to the user.
	Message string
	Status  int
	// Body is the decoded response body: a JSON value when the body parsed,
	// otherwise the raw text.
	Body any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// newError derives the user-facing message from a failed response body.
// Precedence: a JSON "detail" field, then "message", then a plain-text body,
// then "HTTP <status>".
func newError(status int, raw []byte) *Error {
	body := decodeBody(raw)
	return &Error{
		Message: errorMessage(status, body),
		Status:  status,
		Body:    body,
	}
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return string(raw)
	}
	return decoded
}

func errorMessage(status int, body any) string {
	switch v := body.(type) {
	case map[string]any:
		for _, key := range []string{"detail", "message"} {
			if text := describe(v[key]); text != "" {
				return text
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// describe renders a detail value. Structured values, such as the list of
// field errors a 422 carries, are rendered as compact JSON.
func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

// Message converts any error into display text, using fallback when the
// error carries no text of its own.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if text := err.Error(); text != "" {
		return text
	}
	return fallback
}

func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unknown"
}
