// Package metadata stores small key/value facts of the local client, such
// as the anonymous cart identifier.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get reports a missing key with
// common.ErrorNotFound.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetIfAbsent stores value unless key already has one and returns the
	// value that ends up stored.
	SetIfAbsent(ctx context.Context, key, value string) (string, error)
	Delete(ctx context.Context, key string) error
}
