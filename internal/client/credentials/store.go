// Package credentials keeps the access/refresh pair in the local database
// with cookie semantics: per-entry lifetimes, a same-site policy and a
// secure flag.
package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	credrepo "github.com/dmitrijs2005/coursehub/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
)

const rootPath = "/"

// Store persists the credential pair.
type Store struct {
	db     *sql.DB
	secure bool
	now    func() time.Time
}

// NewStore returns a Store over db. secure is recorded on every entry and
// should be true only when the backend is reached over HTTPS.
func NewStore(db *sql.DB, secure bool) *Store {
	return &Store{db: db, secure: secure, now: time.Now}
}

// WithClock replaces the clock used for entry lifetimes and expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) repo(db dbx.DBTX) *credrepo.SQLiteRepository {
	return credrepo.NewSQLiteRepository(db).WithClock(s.now)
}

// Save replaces both entries in one transaction. The access entry lives
// for common.AccessTokenLifetime and the refresh entry for
// common.RefreshTokenLifetime.
func (s *Store) Save(ctx context.Context, pair models.TokenPair) error {
	if !pair.Complete() {
		return fmt.Errorf("save credentials: %w", common.ErrNoCredentials)
	}
	now := s.now()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		for _, name := range []string{common.AccessTokenName, common.RefreshTokenName} {
			if err := r.Delete(ctx, name); err != nil {
				return err
			}
		}
		if err := r.Set(ctx, credrepo.Entry{
			Name:      common.AccessTokenName,
			Path:      rootPath,
			Value:     pair.Access,
			ExpiresAt: now.Add(common.AccessTokenLifetime),
			SameSite:  common.SameSiteStrict,
			Secure:    s.secure,
		}); err != nil {
			return err
		}
		return r.Set(ctx, credrepo.Entry{
			Name:      common.RefreshTokenName,
			Path:      rootPath,
			Value:     pair.Refresh,
			ExpiresAt: now.Add(common.RefreshTokenLifetime),
			SameSite:  common.SameSiteStrict,
			Secure:    s.secure,
		})
	})
}

// Load returns the stored pair, or common.ErrNoCredentials when either
// entry is absent or expired.
func (s *Store) Load(ctx context.Context) (models.TokenPair, error) {
	r := s.repo(s.db)

	access, err := r.Get(ctx, common.AccessTokenName)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := r.Get(ctx, common.RefreshTokenName)
	if err != nil {
		return models.TokenPair{}, err
	}

	pair := models.TokenPair{Access: access, Refresh: refresh}
	if !pair.Complete() {
		return pair, common.ErrNoCredentials
	}
	return pair, nil
}

// RefreshToken returns the stored refresh token or "" if there is none.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.repo(s.db).Get(ctx, common.RefreshTokenName)
}

// Clear removes both entries under every path.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Delete(ctx, common.AccessTokenName); err != nil {
			return err
		}
		return r.Delete(ctx, common.RefreshTokenName)
	})
}

// Entries lists every stored entry, expired ones included.
func (s *Store) Entries(ctx context.Context) ([]credrepo.Entry, error) {
	return s.repo(s.db).List(ctx)
}
