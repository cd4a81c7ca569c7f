package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/session"
	"github.com/nkiryanov/eventdesk/internal/storage"
	"github.com/nkiryanov/eventdesk/internal/testutil"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const password = "correct-horse"

type cliEnv struct {
	t    *testing.T
	fake *testutil.FakeAPI
	vars map[string]string
	wd   string
}

// Start fake backend with a few users, one event and its guests.
// Every call of run shares the state dir, like separate invocations of the binary
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	fake := testutil.NewFakeAPI(t)
	fake.AddUser(t, "ana@example.com", password, "Ana", session.RoleAdministrator)
	fake.AddUser(t, "gil@example.com", password, "Gil", session.RoleManager)
	fake.AddUser(t, "sara@example.com", password, "Sara", session.RoleSuperAdministrator)

	fake.AddEvent(models.Event{ID: 7, Name: "Ana & Rui", Slug: "ana-rui", GuestsCount: 2})
	fake.AddEventType(models.EventType{ID: 1, Name: "Wedding", Slug: "wedding", Active: true})

	event7, event8 := int64(7), int64(8)
	fake.AddGuest(models.Guest{ID: 1, Name: "Maria", PeopleCount: 2, EventID: &event7})
	fake.AddGuest(models.Guest{ID: 2, Name: "Joao", PeopleCount: 1, EventID: &event7})
	fake.AddGuest(models.Guest{ID: 3, Name: "Other", PeopleCount: 4, EventID: &event8})

	return &cliEnv{
		t:    t,
		fake: fake,
		vars: map[string]string{
			"EVENTDESK_API_URL":   fake.URL(),
			"EVENTDESK_STATE_DIR": t.TempDir(),
			"EVENTDESK_LOG_LEVEL": "error",
		},
		wd: t.TempDir(),
	}
}

func (e *cliEnv) runContext(ctx context.Context, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	getenv := func(key string) string { return e.vars[key] }
	getwd := func() (string, error) { return e.wd, nil }

	err := run(ctx, args, getenv, getwd, strings.NewReader(""), &out, &errOut)
	return out.String(), errOut.String(), err
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	return e.runContext(e.t.Context(), args...)
}

func (e *cliEnv) login(email string) {
	e.t.Helper()
	_, _, err := e.run("login", "--email", email, "--password", password)
	require.NoError(e.t, err)
}

// Leaves an expired entry in the state file, as an old refresh cookie would
func (e *cliEnv) seedStaleEntry(key string) {
	e.t.Helper()
	st, err := storage.NewFile(e.statePath())
	require.NoError(e.t, err)
	require.NoError(e.t, st.Set(e.t.Context(), key, "old", storage.Options{Expires: time.Now().Add(-time.Hour)}))
}

func (e *cliEnv) statePath() string {
	return filepath.Join(e.vars["EVENTDESK_STATE_DIR"], sessionFile)
}

func (e *cliEnv) readState() string {
	data, _ := os.ReadFile(e.statePath())
	return string(data)
}

func Test_run(t *testing.T) {
	t.Run("whoami without session", func(t *testing.T) {
		e := newCLIEnv(t)

		_, errOut, err := e.run("whoami")

		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
		assert.Contains(t, errOut, "/?reason=session-expired")
	})

	t.Run("login is kept between runs", func(t *testing.T) {
		e := newCLIEnv(t)

		out, _, err := e.run("login", "--email", "ana@example.com", "--password", password)
		require.NoError(t, err)
		assert.Contains(t, out, "Logged in as Ana <ana@example.com> (Administrador)")

		out, _, err = e.run("whoami")
		require.NoError(t, err)
		assert.Contains(t, out, "Role:    Administrador")
		assert.Equal(t, 1, e.fake.Calls("/Auth/Authenticate"))
	})

	t.Run("password from stdin", func(t *testing.T) {
		e := newCLIEnv(t)
		var out bytes.Buffer

		err := run(t.Context(), []string{"login", "--email", "gil@example.com"},
			func(key string) string { return e.vars[key] },
			func() (string, error) { return e.wd, nil },
			strings.NewReader(password+"\n"), &out, io.Discard,
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Logged in as Gil")
	})

	t.Run("wrong password", func(t *testing.T) {
		e := newCLIEnv(t)

		_, _, err := e.run("login", "--email", "ana@example.com", "--password", "nope")

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, transport.StatusCode(err))
		assert.Equal(t, 0, e.fake.Calls("/Auth/Refresh"), "auth endpoints must never trigger refresh")
	})

	t.Run("invalid login input never reaches backend", func(t *testing.T) {
		e := newCLIEnv(t)

		_, _, err := e.run("login", "--email", "not-an-email", "--password", password)

		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, 0, e.fake.Calls("/Auth/Authenticate"))
	})

	t.Run("expired access token refreshed with stored cookie", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.fake.RevokeAccessTokens()

		out, _, err := e.run("events", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Ana & Rui")
		assert.Equal(t, 1, e.fake.Calls("/Auth/Refresh"))
		assert.Equal(t, 2, e.fake.Calls("/Events"), "request replayed once after refresh")

		// Refreshed credential is stored for the next run
		_, _, err = e.run("events", "list")
		require.NoError(t, err)
		assert.Equal(t, 1, e.fake.Calls("/Auth/Refresh"))
	})

	t.Run("failed refresh ends session", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.fake.RevokeAccessTokens()
		e.fake.RevokeRefreshTokens()

		_, errOut, err := e.run("events", "list")
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
		assert.Contains(t, errOut, "session-expired")

		_, _, err = e.run("whoami")
		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("gateway error ends session without refresh", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.fake.FailNext("/Events", http.StatusServiceUnavailable)

		_, _, err := e.run("events", "list")
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
		assert.Equal(t, 0, e.fake.Calls("/Auth/Refresh"))

		_, _, err = e.run("whoami")
		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.fake.FailNext("/Events", http.StatusInternalServerError)

		_, _, err := e.run("events", "list")
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, transport.StatusCode(err))

		_, _, err = e.run("whoami")
		require.NoError(t, err, "session must survive plain server errors")
	})

	t.Run("guest list of selected event", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")

		_, _, err := e.run("guests", "list")
		require.ErrorIs(t, err, apperrors.ErrNoEventSelected)

		out, _, err := e.run("events", "select", "7")
		require.NoError(t, err)
		assert.Contains(t, out, "Selected Ana & Rui (#7)")

		out, _, err = e.run("guests", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Maria")
		assert.NotContains(t, out, "Other")
		assert.Contains(t, out, "Page 1 of 1, 2 total, 3 people")

		_, _, err = e.run("guests", "arrived", "1")
		require.NoError(t, err)
		guest, _ := e.fake.Guest(1)
		assert.True(t, guest.Arrived)

		_, _, err = e.run("guests", "arrived", "1", "--cancel")
		require.NoError(t, err)
		guest, _ = e.fake.Guest(1)
		assert.False(t, guest.Arrived)

		out, _, err = e.run("guests", "confirm", "2", "--people", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "Presence confirmed for Joao (#2), 3 people")

		out, _, err = e.run("dashboard")
		require.NoError(t, err)
		assert.Contains(t, out, "Guests: 2 total, 1 confirmed, 0 declined, 1 pending (50% confirmed)")
	})

	t.Run("single event staff without event is logged out", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("gil@example.com")

		_, _, err := e.run("events", "list")
		require.ErrorIs(t, err, apperrors.ErrForbidden)

		_, _, err = e.run("guests", "list")
		require.ErrorIs(t, err, apperrors.ErrNoEventSelected)

		_, _, err = e.run("whoami")
		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("event types for any staff", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("gil@example.com")

		out, _, err := e.run("events", "types")

		require.NoError(t, err)
		assert.Contains(t, out, "wedding")
	})

	t.Run("beverage categories need super administrator", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")

		_, _, err := e.run("beverages", "categories", "create", "Wine")
		require.ErrorIs(t, err, apperrors.ErrForbidden)

		e.login("sara@example.com")

		out, _, err := e.run("beverages", "categories", "create", "Red", "wine")
		require.NoError(t, err)
		assert.Contains(t, out, "Created category Red wine")

		out, _, err = e.run("beverages", "categories", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "red-wine")

		_, _, err = e.run("beverages", "categories", "create", "   ")
		require.ErrorIs(t, err, apperrors.ErrNameRequired)
	})

	t.Run("logout", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")

		out, _, err := e.run("logout")
		require.NoError(t, err)
		assert.Contains(t, out, "Logged out")
		assert.Equal(t, 1, e.fake.Calls("/Auth/Logout"))

		_, _, err = e.run("whoami")
		require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("logout purges expired state entries", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.seedStaleEntry("stale-cookie")
		require.Contains(t, e.readState(), "stale-cookie")

		_, _, err := e.run("logout")

		require.NoError(t, err)
		assert.NotContains(t, e.readState(), "stale-cookie")
	})

	t.Run("watch sends heartbeat and serves metrics", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.seedStaleEntry("stale-cookie")

		port, err := testutil.RandomPort()
		require.NoError(t, err)
		metricsURL := fmt.Sprintf("http://127.0.0.1:%d/metrics", port)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			_, _, err := e.runContext(ctx, "watch", "--metrics-addr", fmt.Sprintf("127.0.0.1:%d", port))
			done <- err
		}()

		require.Eventually(t, func() bool {
			return e.fake.Calls("/Users/Heartbeat") >= 1
		}, 5*time.Second, 10*time.Millisecond)

		require.Eventually(t, func() bool {
			resp, err := http.Get(metricsURL) // nolint:noctx
			if err != nil {
				return false
			}
			defer resp.Body.Close() // nolint:errcheck
			body, _ := io.ReadAll(resp.Body)
			return strings.Contains(string(body), "eventdesk_http_client_requests_total")
		}, 5*time.Second, 20*time.Millisecond)

		assert.Eventually(t, func() bool {
			state := e.readState()
			return state != "" && !strings.Contains(state, "stale-cookie")
		}, 5*time.Second, 10*time.Millisecond, "watch purges expired entries")

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop")
		}
	})

	t.Run("watch stops when session ends", func(t *testing.T) {
		e := newCLIEnv(t)
		e.login("ana@example.com")
		e.fake.FailNext("/Users/Heartbeat", http.StatusBadGateway)

		_, errOut, err := e.run("watch")

		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
		assert.Contains(t, errOut, "session-expired")
	})
}
