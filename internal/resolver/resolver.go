package resolver

import (
	"github.com/MKhiriev/go-supa-client/internal/backend"
	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ClientResolver selects the backend configuration and builds the handle.
type ClientResolver struct {
	factory LiveFactory
	logger  *logger.Logger
}

// Option customises a [ClientResolver].
type Option func(*ClientResolver)

// WithLiveFactory replaces the factory used for complete configurations.
func WithLiveFactory(factory LiveFactory) Option {
	return func(r *ClientResolver) {
		r.factory = factory
	}
}

// NewClientResolver creates a resolver. Without [WithLiveFactory] live
// clients use default adapter settings and keep sessions in memory.
func NewClientResolver(log *logger.Logger, opts ...Option) *ClientResolver {
	r := &ClientResolver{logger: log.WithComponent("resolver")}
	for _, opt := range opts {
		opt(r)
	}
	if r.factory == nil {
		r.factory = defaultLiveFactory(log)
	}

	return r
}

// Lookup picks the URL and key from env without side effects.
func Lookup(env config.Environment) Backend {
	var b Backend
	b.URL, b.URLSource = firstNonEmpty(env, URLCandidates)
	b.Key, b.KeySource = firstNonEmpty(env, KeyCandidates)

	return b
}

// Resolve returns the handle for env. It never fails: incomplete or unusable
// configuration yields a mock handle and a logged explanation.
func (r *ClientResolver) Resolve(env config.Environment) *Handle {
	b := Lookup(env)

	if !b.Complete() {
		r.warnIncomplete(b, env)
		return mockHandle(b)
	}

	if err := validation.Validate(b.URL, is.RequestURL); err != nil {
		r.logger.Warn().
			Str("url_source", b.URLSource).
			Str("reason", err.Error()).
			Msg("Supabase URL is not a valid http(s) URL, using the offline client")
		return mockHandle(b)
	}

	auth, err := r.factory(b)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Supabase client could not be created, using the offline client")
		return mockHandle(b)
	}

	r.logger.Debug().
		Str("url_source", b.URLSource).
		Str("key_source", b.KeySource).
		Msg("Supabase client configured")

	return &Handle{Auth: auth, Backend: b, Mode: ModeLive}
}

func (r *ClientResolver) warnIncomplete(b Backend, env config.Environment) {
	r.logger.Warn().
		Bool("url_found", b.URL != "").
		Bool("key_found", b.Key != "").
		Msg("Supabase environment variables not found. This might mean:")
	r.logger.Warn().Msg("1. Supabase integration is not fully configured")
	r.logger.Warn().Msgf("2. You need to set one of %v and one of %v to complete setup", URLCandidates, KeyCandidates)
	r.logger.Warn().Strs("names", env.Names()).Msg("Available environment variables")
}

func mockHandle(b Backend) *Handle {
	return &Handle{Auth: backend.NewMockAuthClient(), Backend: b, Mode: ModeMock}
}
