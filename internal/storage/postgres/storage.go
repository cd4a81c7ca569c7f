// Package postgres keeps session entries in a shared database so several processes can use one session
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/storage"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage is a storage.Storage over the session_entries table.
// Every storage lives in its own namespace, usually the user profile name
type Storage struct {
	db        DBTX
	namespace string
	now       func() time.Time
}

func New(db DBTX, namespace string) *Storage {
	return &Storage{db: db, namespace: namespace, now: time.Now}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `
		SELECT value FROM session_entries
		WHERE namespace = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > $3)`

	var value string
	err := s.db.QueryRow(ctx, query, s.namespace, key, s.now().UTC()).Scan(&value)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, wrapErr("get", key, err)
	}

	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value string, opts storage.Options) error {
	const query = `
		INSERT INTO session_entries (namespace, key, value, expires_at, secure, same_site, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at,
			secure = EXCLUDED.secure,
			same_site = EXCLUDED.same_site,
			updated_at = EXCLUDED.updated_at`

	var expires *time.Time
	if !opts.Expires.IsZero() {
		e := opts.Expires.UTC()
		expires = &e
	}

	_, err := s.db.Exec(ctx, query,
		s.namespace, key, value, expires, opts.Secure, storage.SameSiteName(opts.SameSite), s.now().UTC(),
	)
	if err != nil {
		return wrapErr("set", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM session_entries WHERE namespace = $1 AND key = $2`

	if _, err := s.db.Exec(ctx, query, s.namespace, key); err != nil {
		return wrapErr("delete", key, err)
	}
	return nil
}

// Purge removes entries whose expiry has passed in every namespace
func (s *Storage) Purge(ctx context.Context) (int64, error) {
	const query = `DELETE FROM session_entries WHERE expires_at IS NOT NULL AND expires_at <= $1`

	tag, err := s.db.Exec(ctx, query, s.now().UTC())
	if err != nil {
		return 0, wrapErr("purge", "*", err)
	}
	return tag.RowsAffected(), nil
}

var _ storage.Purger = (*Storage)(nil)

func wrapErr(op string, key string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%s %q: %w", op, key, apperrors.ErrStorageNotMigrated)
	}
	return fmt.Errorf("%s %q: %w", op, key, err)
}
