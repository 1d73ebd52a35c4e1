// Package common defines shared constants and sentinel errors used across
// client layers of CourseHub. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired   = errors.New("token expired")
	ErrNoCredentials  = errors.New("no stored credentials")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrSessionChanged = errors.New("session changed during refresh")

	// Identity provider errors.
	ErrCallbackTimeout = errors.New("identity provider callback timed out")
	ErrStateMismatch   = errors.New("identity provider state mismatch")
)
