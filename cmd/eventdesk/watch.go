package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/session"
)

func (c *cli) watchCmd() *cobra.Command {
	var (
		metricsAddr string
		lead        time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Keep the session alive: heartbeat, expiry warning and optional metrics",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.watch(cmd, metricsAddr, lead)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	cmd.Flags().DurationVar(&lead, "warning-lead", session.DefaultWarningLead, "Warn this long before the session expires")
	return cmd
}

func (c *cli) watch(cmd *cobra.Command, metricsAddr string, lead time.Duration) error {
	a := c.app
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	guard := session.NewGuard(a.session, a.terminator,
		session.WithWarningLead(lead),
		session.WithGuardLogger(a.logger),
		session.WithWarning(func(expiresAt time.Time) {
			fmt.Fprintf(out, "Session expires at %s, run any command to keep working\n", expiresAt.Local().Format(time.Kitchen))
		}),
	)
	stop := guard.Start(ctx)
	defer stop()

	beats := a.heartbeat.Run(ctx)
	housekeeping := a.housekeep(ctx, purgeInterval)

	var metricsStopped <-chan struct{}
	if metricsAddr != "" {
		metricsStopped = a.serveMetrics(ctx, metricsAddr)
	}

	fmt.Fprintf(out, "Watching session of %s until %s\n",
		a.session.User().Name, a.session.Credential().ExpiresAt.Local().Format(time.RFC1123))

	var err error
	select {
	case <-ctx.Done():
	case <-a.Expired():
		err = apperrors.ErrSessionExpired
	}

	cancel()
	<-beats
	<-housekeeping
	if metricsStopped != nil {
		<-metricsStopped
	}
	return err
}

const purgeInterval = time.Hour

// housekeep purges expired storage entries now and then every interval until ctx is done
func (a *App) housekeep(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			a.purgeExpired(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return done
}

// serveMetrics runs until ctx is done and closes gracefully. The returned channel is closed on exit
func (a *App) serveMetrics(ctx context.Context, addr string) <-chan struct{} {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stopped := make(chan struct{})

	go func() {
		<-ctx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			a.logger.Error("Metrics server shutdown timeout exceeded, forcing shutdown")
		}
	}()

	go func() {
		defer close(stopped)

		a.logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Metrics server error", "error", err)
		}
	}()

	return stopped
}
