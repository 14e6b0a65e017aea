package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-supa-client/internal/backend"
	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/internal/resolver"
	"github.com/MKhiriev/go-supa-client/internal/store"
	"github.com/MKhiriev/go-supa-client/internal/workers"
)

// App owns the resolved auth handle together with the resources the live
// client needs.
type App struct {
	cfg     *config.StructuredConfig
	handle  *resolver.Handle
	store   *store.SessionStore
	workers *workers.Workers
	logger  *logger.Logger
}

// NewApp resolves the auth handle from env. The session store is opened only
// when the backend is configured; if it cannot be opened sessions are kept in
// memory.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, env config.Environment, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("client app: nil config")
	}

	app := &App{cfg: cfg, workers: workers.NewWorkers(), logger: log}

	factory := func(b resolver.Backend) (backend.AuthClient, error) {
		sessions := app.openSessions(ctx)
		return resolver.NewLiveFactory(cfg.Adapter, sessions, cfg.Workers.RefreshMargin, log)(b)
	}

	app.handle = resolver.NewClientResolver(log, resolver.WithLiveFactory(factory)).Resolve(env)

	log.Info().
		Str("func", "NewApp").
		Stringer("mode", app.handle.Mode).
		Msg("auth handle resolved")

	return app, nil
}

func (a *App) openSessions(ctx context.Context) store.SessionRepository {
	sessionStore, err := store.NewSessionStore(ctx, a.cfg.Storage.DB, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "App.openSessions").Msg("session store unavailable, keeping sessions in memory")
		return store.NewMemorySessionRepository()
	}

	a.store = sessionStore
	return sessionStore.Sessions
}

// Auth implements [Client].
func (a *App) Auth() backend.AuthClient {
	return a.handle.Auth
}

// Handle returns the resolved handle, including its mode and the variables
// the configuration came from.
func (a *App) Handle() *resolver.Handle {
	return a.handle
}

// Start implements [Client]. Live handles get a session refresh job; mock
// handles have nothing to run.
func (a *App) Start(ctx context.Context) {
	refresher, ok := a.handle.Auth.(workers.SessionRefresher)
	if !a.handle.Live() || !ok {
		return
	}

	a.workers = workers.NewWorkers(
		workers.NewSessionRefreshJob(refresher, a.cfg.Workers.RefreshInterval, a.logger),
	)
	a.workers.Start(ctx)
}

// Close implements [Client].
func (a *App) Close() error {
	a.workers.Stop()
	return a.store.Close()
}
