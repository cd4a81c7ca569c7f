package session

import (
	"context"
	"sync"
	"time"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
)

const DefaultWarningLead = 5 * time.Minute

type Expirer interface {
	Expire(ctx context.Context, reason string)
}

type GuardOption func(*Guard)

func WithWarningLead(lead time.Duration) GuardOption {
	return func(g *Guard) { g.lead = lead }
}

// WithWarning sets the callback for "session is about to expire"
func WithWarning(fn func(expiresAt time.Time)) GuardOption {
	return func(g *Guard) { g.onWarning = fn }
}

func WithGuardLogger(l logger.Logger) GuardOption {
	return func(g *Guard) { g.logger = logger.OrNoOp(l) }
}

func WithGuardClock(now func() time.Time) GuardOption {
	return func(g *Guard) { g.now = now }
}

// Guard counts down to the credential expiry: a warning lead before it and a hard logout at it.
// There is at most one pending pair of timers, and timers from a replaced schedule never act
type Guard struct {
	store   *Store
	expirer Expirer

	lead      time.Duration
	onWarning func(expiresAt time.Time)
	logger    logger.Logger
	now       func() time.Time

	mu         sync.Mutex
	ctx        context.Context
	generation uint64
	warnTimer  *time.Timer
	hardTimer  *time.Timer
}

func NewGuard(store *Store, expirer Expirer, opts ...GuardOption) *Guard {
	g := &Guard{
		store:     store,
		expirer:   expirer,
		lead:      DefaultWarningLead,
		onWarning: func(time.Time) {},
		logger:    logger.NewNoOpLogger(),
		now:       time.Now,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start follows credential changes until stop is called or ctx is done
func (g *Guard) Start(ctx context.Context) (stop func()) {
	g.mu.Lock()
	g.ctx = ctx
	g.mu.Unlock()

	unsubscribe := g.store.Subscribe(g.Reschedule)
	g.Reschedule(g.store.Credential())

	var once sync.Once
	stop = func() {
		once.Do(func() {
			unsubscribe()
			g.Cancel()
		})
	}
	context.AfterFunc(ctx, stop)

	return stop
}

// Reschedule drops pending timers and arms new ones for cred. Zero credential only cancels
func (g *Guard) Reschedule(cred models.Credential) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelLocked()
	if cred.IsZero() {
		return
	}

	gen := g.generation
	remaining := cred.ExpiresAt.Sub(g.now())

	// Already past expiry: no warning, straight to logout
	if remaining <= 0 {
		g.logger.Info("Session already expired", "expires_at", cred.ExpiresAt)
		g.hardTimer = time.AfterFunc(0, func() { g.fire(gen, g.expire) })
		return
	}

	expiresAt := cred.ExpiresAt
	g.warnTimer = time.AfterFunc(max(remaining-g.lead, 0), func() {
		g.fire(gen, func() { g.warn(expiresAt) })
	})
	g.hardTimer = time.AfterFunc(remaining, func() { g.fire(gen, g.expire) })

	g.logger.Debug("Session countdown scheduled", "expires_at", expiresAt, "warning_in", max(remaining-g.lead, 0))
}

// Cancel drops pending timers
func (g *Guard) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelLocked()
}

func (g *Guard) cancelLocked() {
	g.generation++
	if g.warnTimer != nil {
		g.warnTimer.Stop()
		g.warnTimer = nil
	}
	if g.hardTimer != nil {
		g.hardTimer.Stop()
		g.hardTimer = nil
	}
}

// fire runs fn only if the schedule that created the timer is still current
func (g *Guard) fire(gen uint64, fn func()) {
	g.mu.Lock()
	current := gen == g.generation
	g.mu.Unlock()

	if current {
		fn()
	}
}

func (g *Guard) warn(expiresAt time.Time) {
	g.logger.Info("Session is about to expire", "expires_at", expiresAt)
	g.onWarning(expiresAt)
}

func (g *Guard) expire() {
	g.mu.Lock()
	ctx := g.ctx
	g.mu.Unlock()

	g.logger.Info("Session expired by countdown")
	g.expirer.Expire(context.WithoutCancel(ctx), ReasonSessionExpired)
}
