package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/storage"
)

func TestEntryPath(t *testing.T) {
	assert.Equal(t, "/?reason=session-expired", EntryPath(ReasonSessionExpired))
	assert.Equal(t, "/", EntryPath(""))
}

func TestTerminator_Expire(t *testing.T) {
	s := newTestStore(storage.NewMemory(), &fakeAuth{}, newClock())
	require.NoError(t, s.SetCredential(t.Context(), authResponse("t1", 60, RoleManager)))

	var redirects atomic.Int32
	var reason atomic.Value
	term := NewTerminator(s, RedirectFunc(func(_ context.Context, r string) {
		redirects.Add(1)
		reason.Store(r)
	}), nil)

	t.Run("concurrent triggers collapse", func(t *testing.T) {
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				term.Expire(t.Context(), ReasonSessionExpired)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), redirects.Load())
		assert.Equal(t, ReasonSessionExpired, reason.Load())
		assert.True(t, s.Credential().IsZero())
		assert.Empty(t, term.Token())
	})

	t.Run("re-armed by next login", func(t *testing.T) {
		require.NoError(t, s.SetCredential(t.Context(), authResponse("t2", 60, RoleManager)))

		term.Expire(t.Context(), ReasonSessionExpired)

		assert.Equal(t, int32(2), redirects.Load())
	})
}

func TestTerminator_DelegatesRefresh(t *testing.T) {
	auth := &fakeAuth{refreshResp: authResponse("t2", 60, RoleManager)}
	s := newTestStore(storage.NewMemory(), auth, newClock())
	require.NoError(t, s.SetCredential(t.Context(), authResponse("t1", 60, RoleManager)))
	term := NewTerminator(s, RedirectFunc(func(context.Context, string) {}), nil)

	require.True(t, term.TryRefresh(t.Context()))
	assert.Equal(t, "t2", term.Token())
}
