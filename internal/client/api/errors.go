package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError represents a non-2xx HTTP response from the backend.
type HTTPError struct {
	StatusCode int
	Message    string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string][]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the package sentinels.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUnavailable:
		return e.StatusCode == http.StatusBadGateway ||
			e.StatusCode == http.StatusServiceUnavailable ||
			e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}

// FieldMessages returns the validation messages of the named fields, in the
// order given, as "field: message" strings.
func (e *HTTPError) FieldMessages(names ...string) []string {
	var out []string
	for _, n := range names {
		for _, m := range e.Fields[n] {
			out = append(out, n+": "+m)
		}
	}
	return out
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// parseErrorBody builds an HTTPError from a response body. The message is
// taken from "detail", "message" or "error", in that order; other keys whose
// values are strings or string lists are collected as field errors.
func parseErrorBody(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status}

	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) != nil {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}

	for _, key := range []string{"detail", "message", "error"} {
		var s string
		if v, ok := raw[key]; ok && json.Unmarshal(v, &s) == nil && s != "" {
			e.Message = s
			break
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var list []string
		if json.Unmarshal(raw[k], &list) == nil && len(list) > 0 {
			if e.Fields == nil {
				e.Fields = map[string][]string{}
			}
			e.Fields[k] = list
		}
	}

	if e.Message == "" {
		if msgs := e.FieldMessages(keys...); len(msgs) > 0 {
			e.Message = strings.Join(msgs, "; ")
		} else {
			e.Message = http.StatusText(status)
		}
	}
	return e
}
