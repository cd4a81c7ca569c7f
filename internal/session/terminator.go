package session

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const ReasonSessionExpired = transport.ReasonSessionExpired

// EntryPath is where a user lands after the session ends, e.g. /?reason=session-expired
func EntryPath(reason string) string {
	if reason == "" {
		return "/"
	}
	return "/?" + url.Values{"reason": {reason}}.Encode()
}

// Redirector sends the user back to the entry point
type Redirector interface {
	Redirect(ctx context.Context, reason string)
}

type RedirectFunc func(ctx context.Context, reason string)

func (f RedirectFunc) Redirect(ctx context.Context, reason string) {
	f(ctx, reason)
}

// Terminator ends the session once no matter how many triggers fire at the same time.
// It is re-armed by the next credential
type Terminator struct {
	store      *Store
	redirector Redirector
	logger     logger.Logger

	ending atomic.Bool
}

func NewTerminator(store *Store, redirector Redirector, l logger.Logger) *Terminator {
	t := &Terminator{
		store:      store,
		redirector: redirector,
		logger:     logger.OrNoOp(l),
	}

	store.Subscribe(func(cred models.Credential) {
		if !cred.IsZero() {
			t.ending.Store(false)
		}
	})
	return t
}

func (t *Terminator) Expire(ctx context.Context, reason string) {
	if !t.ending.CompareAndSwap(false, true) {
		t.logger.Debug("Session already ending", "reason", reason)
		return
	}

	t.logger.Info("Ending session", "reason", reason)
	t.store.Logout(ctx)
	t.redirector.Redirect(ctx, reason)
}

func (t *Terminator) TryRefresh(ctx context.Context) bool {
	return t.store.TryRefresh(ctx)
}

func (t *Terminator) Token() string {
	return t.store.Token()
}

var _ transport.Session = (*Terminator)(nil)
