// Package credentials persists named, expiring credential entries, the
// client-side equivalent of browser cookies.
package credentials

import (
	"context"
	"time"
)

// Entry is one stored credential. Name and Path identify it; the same name
// may exist under several paths.
type Entry struct {
	Name      string
	Path      string
	Value     string
	ExpiresAt time.Time
	SameSite  string
	Secure    bool
}

// Repository stores credential entries.
//
// Get returns "" with a nil error when no unexpired entry with that name
// exists. Delete removes the name under every path.
type Repository interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, e Entry) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Entry, error)
}
