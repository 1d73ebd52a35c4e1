package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
)

// genericFailure is shown when the backend gives no usable reason.
const genericFailure = "Something went wrong"

// UserError is a failure meant to be shown to the user as is. Err, when set,
// is the underlying cause.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

func newUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// userErrorFrom turns a backend failure into a UserError. 4xx answers carry
// their message through; everything else gets fallback.
func userErrorFrom(err error, fallback string) *UserError {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError && httpErr.Message != "" {
		return &UserError{Message: httpErr.Message, Err: err}
	}
	if errors.Is(err, api.ErrUnavailable) {
		return &UserError{Message: "Server is unavailable, try again later", Err: err}
	}
	return &UserError{Message: fallback, Err: err}
}

// fieldUserError joins the backend's per-field messages for fields into one
// UserError, falling back to userErrorFrom when there are none.
func fieldUserError(err error, fallback string, fields ...string) *UserError {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		if msgs := httpErr.FieldMessages(fields...); len(msgs) > 0 {
			return &UserError{Message: strings.Join(msgs, " - "), Err: err}
		}
	}
	return userErrorFrom(err, fallback)
}
