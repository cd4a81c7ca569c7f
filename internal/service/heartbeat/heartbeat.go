package heartbeat

import (
	"context"
	"time"

	"github.com/nkiryanov/eventdesk/internal/logger"
)

const DefaultInterval = time.Minute

type usersAPI interface {
	Heartbeat(ctx context.Context) error
}

// Runner reports user activity to the backend while the session is authenticated
type Runner struct {
	interval      time.Duration
	users         usersAPI
	authenticated func() bool
	logger        logger.Logger
}

func New(users usersAPI, authenticated func() bool, interval time.Duration, l logger.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Runner{
		interval:      interval,
		users:         users,
		authenticated: authenticated,
		logger:        logger.OrNoOp(l).With("component", "heartbeat"),
	}
}

// Run beats right away and then every interval until ctx is done. The returned channel is closed on exit
func (r *Runner) Run(ctx context.Context) <-chan struct{} {
	idleStopped := make(chan struct{})
	r.logger.Debug("Starting heartbeat", "interval", r.interval)

	go func() {
		defer close(idleStopped)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.beat(ctx)

		for {
			select {
			case <-ctx.Done():
				r.logger.Debug("Heartbeat stopped by context")
				return
			case <-ticker.C:
				r.beat(ctx)
			}
		}
	}()

	return idleStopped
}

func (r *Runner) beat(ctx context.Context) {
	if !r.authenticated() {
		r.logger.Debug("Heartbeat skipped: not authenticated")
		return
	}

	if err := r.users.Heartbeat(ctx); err != nil {
		r.logger.Warn("Heartbeat failed", "error", err)
	}
}
