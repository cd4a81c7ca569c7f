package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/nkiryanov/eventdesk/internal/api"
	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/db"
	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/service/catalog"
	"github.com/nkiryanov/eventdesk/internal/service/dashboard"
	"github.com/nkiryanov/eventdesk/internal/service/guestlist"
	"github.com/nkiryanov/eventdesk/internal/service/heartbeat"
	"github.com/nkiryanov/eventdesk/internal/session"
	"github.com/nkiryanov/eventdesk/internal/storage"
	pgstorage "github.com/nkiryanov/eventdesk/internal/storage/postgres"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const sessionFile = "session.json"

// App holds everything a command may need, wired once per process
type App struct {
	logger   logger.Logger
	out      io.Writer
	errOut   io.Writer
	registry *prometheus.Registry

	storage    storage.Storage
	session    *session.Store
	terminator *session.Terminator
	selection  *session.Selection
	api        *api.API

	guests     *guestlist.Service
	dashboard  *dashboard.Service
	categories *catalog.BeverageCategories
	heartbeat  *heartbeat.Runner

	expiredOnce sync.Once
	expired     chan struct{}
	closers     []func()
}

func NewApp(ctx context.Context, c *Config, out io.Writer, errOut io.Writer) (*App, error) {
	// Initialize logger
	l, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	base, err := url.Parse(c.APIURL)
	if err != nil {
		return nil, fmt.Errorf("error while parsing api url: %w", err)
	}

	a := &App{
		logger:   l,
		out:      out,
		errOut:   errOut,
		registry: prometheus.NewRegistry(),
		expired:  make(chan struct{}),
	}

	if err := a.initStorage(ctx, c, base.Host); err != nil {
		a.Close()
		return nil, err
	}

	jar, err := transport.NewPersistentJar(ctx, base, a.storage, l)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error while loading cookies: %w", err)
	}

	metrics := transport.NewMetrics(a.registry)
	limiter := transport.NewLimiter(c.RateLimit)
	common := []transport.Middleware{
		transport.RequestID(),
		transport.Logging(l),
		transport.Instrument(metrics),
		transport.RateLimit(limiter),
	}

	// Auth calls go without bearer and refresh handling: the session store depends on them
	authClient, err := transport.New(transport.Config{
		BaseURL:     c.APIURL,
		Timeout:     c.Timeout,
		Jar:         jar,
		Middlewares: common,
		Logger:      l,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.session = session.NewStore(a.storage, api.NewAuth(authClient), session.WithLogger(l))
	a.terminator = session.NewTerminator(a.session, session.RedirectFunc(a.redirect), l)
	a.selection = session.NewSelection(a.storage, l)

	client, err := transport.New(transport.Config{
		BaseURL: c.APIURL,
		Timeout: c.Timeout,
		Jar:     jar,
		Middlewares: append(common,
			transport.Bearer(a.session),
			transport.SessionRefresh(a.terminator,
				transport.WithRefreshLogger(l),
				transport.WithRefreshMetrics(metrics),
			),
		),
		Logger: l,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.api = api.New(client)

	cacheStore := a.initCache(c)
	a.guests = guestlist.New(a.api.Guests, a.selection, cacheStore, l)
	a.dashboard = dashboard.New(a.api.Statistics, a.selection, cacheStore, l)
	a.categories = catalog.NewBeverageCategories(a.api.Beverages, cacheStore, l)
	a.heartbeat = heartbeat.New(a.api.Users, a.session.Authenticated, heartbeat.DefaultInterval, l)

	return a, nil
}

// Postgres when configured, otherwise a file in the state directory
func (a *App) initStorage(ctx context.Context, c *Config, namespace string) error {
	if c.DatabaseDSN == "" {
		st, err := storage.NewFile(filepath.Join(c.StateDir, sessionFile))
		if err != nil {
			return fmt.Errorf("error while opening state dir: %w", err)
		}
		a.storage = st
		return nil
	}

	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("error while connecting to db. Err: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	a.storage = pgstorage.New(pool, namespace)
	return nil
}

func (a *App) initCache(c *Config) cache.Store {
	if c.RedisAddr == "" {
		return cache.NewMemoryStore()
	}

	rc := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	a.closers = append(a.closers, func() {
		if err := rc.Close(); err != nil {
			a.logger.Warn("Error while closing redis client", "error", err)
		}
	})
	return cache.NewRedisStore(rc, "")
}

// purgeExpired drops stale session and cookie entries when the storage supports it
func (a *App) purgeExpired(ctx context.Context) {
	p, ok := a.storage.(storage.Purger)
	if !ok {
		return
	}

	removed, err := p.Purge(ctx)
	if err != nil {
		a.logger.Warn("Failed to purge expired session entries", "error", err)
		return
	}
	if removed > 0 {
		a.logger.Debug("Purged expired session entries", "removed", removed)
	}
}

func (a *App) redirect(_ context.Context, reason string) {
	fmt.Fprintf(a.errOut, "Session ended (%s). Sign in again with `eventdesk login`. Entry: %s\n", reason, session.EntryPath(reason))
	a.expiredOnce.Do(func() { close(a.expired) })
}

// Expired is closed once the session is ended by the terminator
func (a *App) Expired() <-chan struct{} {
	return a.expired
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
