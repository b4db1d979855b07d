package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is the normalized form of every upstream failure. Status 0 means
// the request never got a response. Message is always human-readable and safe
// to surface in a notification.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// detailBody matches the backend's error envelope: a "detail" field that is
// either a plain string or an array of field errors.
type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// normalizeError turns a non-2xx response into an *APIError, preferring the
// JSON detail over the generic status text.
func normalizeError(status int, raw []byte) *APIError {
	var body detailBody
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Detail) > 0 {
		var msg string
		if err := json.Unmarshal(body.Detail, &msg); err == nil && msg != "" {
			return &APIError{Status: status, Message: msg}
		}

		var fields []fieldError
		if err := json.Unmarshal(body.Detail, &fields); err == nil && len(fields) > 0 {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				if campo := lastLoc(f.Loc); campo != "" {
					parts = append(parts, campo+": "+f.Msg)
				} else {
					parts = append(parts, f.Msg)
				}
			}
			return &APIError{Status: status, Message: strings.Join(parts, "; ")}
		}
	}

	return &APIError{Status: status, Message: genericMessage(status)}
}

func lastLoc(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" {
			return s
		}
	}
	return ""
}

func genericMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("HTTP %d: %s", status, text)
	}
	return fmt.Sprintf("HTTP %d", status)
}
