package resolver

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/adapter"
	"github.com/MKhiriev/go-supa-client/internal/backend"
	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/internal/store"
)

// LiveFactory builds the live auth client for a complete [Backend].
type LiveFactory func(b Backend) (backend.AuthClient, error)

// NewLiveFactory returns a [LiveFactory] that talks to the auth server over
// HTTP and keeps sessions in sessions.
func NewLiveFactory(adapterCfg config.Adapter, sessions store.SessionRepository, refreshMargin time.Duration, log *logger.Logger) LiveFactory {
	return func(b Backend) (backend.AuthClient, error) {
		authAdapter, err := adapter.NewHTTPAuthAdapter(b.URL, b.Key, adapterCfg, log)
		if err != nil {
			return nil, fmt.Errorf("create auth adapter: %w", err)
		}

		return backend.NewLiveAuthClient(authAdapter, sessions, backend.StorageKey(b.URL), refreshMargin, log), nil
	}
}

func defaultLiveFactory(log *logger.Logger) LiveFactory {
	return NewLiveFactory(
		config.Adapter{RequestTimeout: config.DefaultRequestTimeout},
		store.NewMemorySessionRepository(),
		config.DefaultRefreshMargin,
		log,
	)
}
