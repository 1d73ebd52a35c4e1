package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// WithClock replaces the clock used to hide expired entries.
func (r *SQLiteRepository) WithClock(now func() time.Time) *SQLiteRepository {
	r.now = now
	return r
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM credentials
		WHERE name = ? AND expires_at > ?
		ORDER BY path DESC
		LIMIT 1
	`, name, r.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential[%s]: %w", name, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, e Entry) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (name, path, value, expires_at, same_site, secure)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, path) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			same_site = excluded.same_site,
			secure = excluded.secure
	`, e.Name, e.Path, e.Value, e.ExpiresAt.Unix(), e.SameSite, e.Secure); err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", e.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete credential[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, path, value, expires_at, same_site, secure
		FROM credentials ORDER BY name, path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			expires int64
		)
		if err := rows.Scan(&e.Name, &e.Path, &e.Value, &expires, &e.SameSite, &e.Secure); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		e.ExpiresAt = time.Unix(expires, 0)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credential rows: %w", err)
	}
	return out, nil
}
