package postgres

import (
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/storage"
	"github.com/nkiryanov/eventdesk/internal/testutil"
)

func TestStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests skipped in short mode")
	}

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	opts := storage.Options{Expires: time.Now().Add(time.Hour), Secure: true, SameSite: http.SameSiteLaxMode}

	t.Run("set get overwrite delete", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			s := New(tx, "ana")

			_, ok, err := s.Get(t.Context(), "token")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Set(t.Context(), "token", "first", opts))
			require.NoError(t, s.Set(t.Context(), "token", "second", opts))

			v, ok, err := s.Get(t.Context(), "token")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "second", v)

			require.NoError(t, s.Delete(t.Context(), "token"))
			_, ok, err = s.Get(t.Context(), "token")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			ana := New(tx, "ana")
			bob := New(tx, "bob")

			require.NoError(t, ana.Set(t.Context(), "token", "ana-token", opts))

			_, ok, err := bob.Get(t.Context(), "token")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	})

	t.Run("expired entries read absent and get purged", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			s := New(tx, "ana")
			past := storage.Options{Expires: time.Now().Add(-time.Minute)}

			require.NoError(t, s.Set(t.Context(), "tokenExpiration", "x", past))
			require.NoError(t, s.Set(t.Context(), "user", "{}", storage.Options{}))

			_, ok, err := s.Get(t.Context(), "tokenExpiration")
			require.NoError(t, err)
			assert.False(t, ok)

			purged, err := s.Purge(t.Context())
			require.NoError(t, err)
			assert.Equal(t, int64(1), purged)

			_, ok, err = s.Get(t.Context(), "user")
			require.NoError(t, err)
			assert.True(t, ok, "entries without expiry survive purge")
		})
	})
}

func TestStorage_NotMigrated(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests skipped in short mode")
	}

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
		_, err := tx.Exec(t.Context(), "DROP TABLE session_entries")
		require.NoError(t, err)

		_, _, err = New(tx, "ana").Get(t.Context(), "token")

		require.ErrorIs(t, err, apperrors.ErrStorageNotMigrated)
	})
}

var _ DBTX = (*pgxpool.Pool)(nil)
