// Package common contains shared constants and sentinel errors used across
// CourseHub client components.
package common

import "time"

// Names of the two persisted credential entries.
const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"
)

// AuthorizationHeader carries the bearer access token on outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader correlates a client request with backend logs.
const RequestIDHeader = "X-Request-ID"

const (
	// AccessTokenLifetime is how long the access credential entry is kept.
	AccessTokenLifetime = 24 * time.Hour
	// RefreshTokenLifetime is how long the refresh credential entry is kept.
	RefreshTokenLifetime = 7 * 24 * time.Hour
	// ExpiryBuffer is subtracted from the access token expiry so the client
	// refreshes slightly before the backend would reject the token.
	ExpiryBuffer = 30 * time.Second
)

// SameSiteStrict is the same-site policy recorded for credential entries.
const SameSiteStrict = "strict"
