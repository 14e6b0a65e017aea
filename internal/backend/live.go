package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/adapter"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/internal/store"
	"github.com/MKhiriev/go-supa-client/internal/utils"
	"github.com/MKhiriev/go-supa-client/models"
)

// LiveAuthClient is the [AuthClient] backed by the auth server. It keeps the
// current session in memory, mirrors it into a [store.SessionRepository] and
// reports transitions to subscribers.
type LiveAuthClient struct {
	adapter    adapter.AuthAdapter
	sessions   store.SessionRepository
	storageKey string
	margin     time.Duration
	now        func() time.Time
	ids        *utils.UUIDGenerator
	logger     *logger.Logger

	mu      sync.Mutex
	session *models.Session
	loaded  bool
	// epoch advances on every sign-in and sign-out. Refreshes and user
	// updates computed in an older epoch are discarded.
	epoch     uint64
	listeners listeners

	// commitMu orders session changes with their repository writes.
	commitMu sync.Mutex
	// refreshMu serialises refresh grants so a refresh token is spent once.
	refreshMu sync.Mutex
}

// NewLiveAuthClient builds a live client. storageKey addresses the persisted
// session (see [StorageKey]); sessions expiring within margin are refreshed
// before they are handed out.
func NewLiveAuthClient(authAdapter adapter.AuthAdapter, sessions store.SessionRepository, storageKey string, margin time.Duration, log *logger.Logger) *LiveAuthClient {
	return &LiveAuthClient{
		adapter:    authAdapter,
		sessions:   sessions,
		storageKey: storageKey,
		margin:     margin,
		now:        time.Now,
		ids:        utils.NewUUIDGenerator(),
		logger:     log.WithComponent("live_auth"),
		listeners:  make(listeners),
	}
}

// StorageKey derives the persisted session key from the project URL:
// "https://<ref>.supabase.co" becomes "sb-<ref>-auth-token".
func StorageKey(projectURL string) string {
	ref := projectURL
	if u, err := url.Parse(strings.TrimSpace(projectURL)); err == nil && u.Hostname() != "" {
		ref = u.Hostname()
	}
	ref, _, _ = strings.Cut(ref, ".")

	return "sb-" + ref + "-auth-token"
}

// SignUp implements [AuthClient]. An auto-confirmed account is signed in
// right away.
func (c *LiveAuthClient) SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return models.AuthResponse{}, err
	}

	resp, err := c.adapter.SignUp(ctx, creds)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("sign up: %w", err)
	}

	if resp.Session != nil {
		session := *resp.Session
		c.ensureExpiry(&session)
		c.startEpoch(ctx, &session, models.AuthEventSignedIn)
		resp.Session = &session
	}

	return resp, nil
}

// SignInWithPassword implements [AuthClient].
func (c *LiveAuthClient) SignInWithPassword(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return models.AuthResponse{}, err
	}

	session, err := c.adapter.SignInWithPassword(ctx, creds)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("sign in: %w", err)
	}

	c.ensureExpiry(&session)
	c.startEpoch(ctx, &session, models.AuthEventSignedIn)

	user := session.User
	return models.AuthResponse{User: &user, Session: &session}, nil
}

// SignOut implements [AuthClient]. The server-side session is revoked first;
// if the server no longer knows the token the local session is dropped
// anyway.
func (c *LiveAuthClient) SignOut(ctx context.Context) error {
	session, epoch, err := c.loadSession(ctx)
	if err != nil {
		return err
	}

	if session != nil && session.AccessToken != "" {
		err = c.adapter.SignOut(ctx, session.AccessToken)
		if err != nil && !isSessionGone(err) {
			return fmt.Errorf("sign out: %w", err)
		}
	}

	// a sign-in that landed meanwhile owns a token we did not revoke
	c.endEpoch(ctx, epoch)
	return nil
}

// GetSession implements [AuthClient]. The stored session is loaded on first
// use and refreshed when it expires within the configured margin.
func (c *LiveAuthClient) GetSession(ctx context.Context) (*models.Session, error) {
	session, _, err := c.currentSession(ctx)
	return session, err
}

// GetUser implements [UserFetcher]. The user record of the current session
// is replaced with the server's copy.
func (c *LiveAuthClient) GetUser(ctx context.Context) (*models.User, error) {
	session, epoch, err := c.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}

	user, err := c.adapter.GetUser(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	c.commit(ctx, epoch, sameEpoch, models.AuthEventUserUpdated, func(current *models.Session) *models.Session {
		if current != nil {
			current.User = user
		}
		return current
	})

	return &user, nil
}

// OnAuthStateChange implements [AuthClient]. callback is invoked once with
// [models.AuthEventInitialSession] before OnAuthStateChange returns, and
// before any other event.
func (c *LiveAuthClient) OnAuthStateChange(callback AuthStateCallback) Subscription {
	if _, _, err := c.loadSession(context.Background()); err != nil {
		c.logger.Warn().Err(err).Str("func", "LiveAuthClient.OnAuthStateChange").Msg("initial session unavailable")
	}

	id := c.ids.Generate()
	l := newListener(callback)

	c.mu.Lock()
	initial := cloneSession(c.session)
	c.listeners[id] = l
	c.mu.Unlock()

	l.start(initial)

	return &subscription{
		id: id,
		unsubscribe: func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		},
	}
}

// RefreshIfExpiring refreshes the current session when it expires within the
// margin. It is a no-op without a refreshable session.
func (c *LiveAuthClient) RefreshIfExpiring(ctx context.Context) error {
	session, _, err := c.loadSession(ctx)
	if err != nil {
		return err
	}
	if session == nil || !session.CanRefresh() || !session.ExpiresWithin(c.now(), c.margin) {
		return nil
	}

	_, _, err = c.refresh(ctx, session)
	return err
}

// currentSession loads the session and refreshes it when it is about to
// expire. The epoch is the one the returned session belongs to.
func (c *LiveAuthClient) currentSession(ctx context.Context) (*models.Session, uint64, error) {
	session, epoch, err := c.loadSession(ctx)
	if err != nil || session == nil {
		return nil, epoch, err
	}

	if session.ExpiresWithin(c.now(), c.margin) && session.CanRefresh() {
		return c.refresh(ctx, session)
	}

	return session, epoch, nil
}

func (c *LiveAuthClient) refresh(ctx context.Context, stale *models.Session) (*models.Session, uint64, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// another caller may have refreshed while we waited
	c.mu.Lock()
	current := cloneSession(c.session)
	epoch := c.epoch
	c.mu.Unlock()
	if current == nil {
		return nil, epoch, nil
	}
	if current.RefreshToken != stale.RefreshToken && !current.ExpiresWithin(c.now(), c.margin) {
		return current, epoch, nil
	}

	session, err := c.adapter.RefreshSession(ctx, current.RefreshToken)
	if err != nil {
		if adapter.IsAuthError(err) {
			c.logger.Warn().Err(err).Str("func", "LiveAuthClient.refresh").Msg("refresh token rejected, signing out")
			c.endEpoch(ctx, epoch)
		}
		return nil, epoch, fmt.Errorf("refresh session: %w", err)
	}

	if session.User.ID == "" {
		session.User = current.User
	}
	c.ensureExpiry(&session)

	refreshed, ok := c.commit(ctx, epoch, sameEpoch, models.AuthEventTokenRefreshed, func(*models.Session) *models.Session {
		return &session
	})
	if !ok {
		c.logger.Debug().Str("func", "LiveAuthClient.refresh").Msg("session changed during refresh, discarding grant")
		return nil, epoch, nil
	}

	return refreshed, epoch, nil
}

// loadSession returns a copy of the current session and its epoch, reading
// the repository on first use.
func (c *LiveAuthClient) loadSession(ctx context.Context) (*models.Session, uint64, error) {
	c.mu.Lock()
	if c.loaded {
		defer c.mu.Unlock()
		return cloneSession(c.session), c.epoch, nil
	}
	c.mu.Unlock()

	stored, err := c.sessions.Load(ctx, c.storageKey)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
	case err != nil:
		return nil, 0, fmt.Errorf("load session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		c.loaded = true
		if err == nil {
			c.ensureExpiry(&stored)
			c.session = &stored
		}
	}

	return cloneSession(c.session), c.epoch, nil
}

// commitMode decides whether a session change still applies after the
// session may have moved on.
type commitMode int

const (
	// sameEpoch applies only while the caller's epoch is current.
	sameEpoch commitMode = iota
	// closeEpoch applies like sameEpoch and starts a new epoch.
	closeEpoch
	// openEpoch applies unconditionally and starts a new epoch.
	openEpoch
)

// startEpoch installs a freshly issued session regardless of what was there.
func (c *LiveAuthClient) startEpoch(ctx context.Context, session *models.Session, event models.AuthChangeEvent) {
	c.commit(ctx, 0, openEpoch, event, func(*models.Session) *models.Session { return cloneSession(session) })
}

// endEpoch drops the session read in epoch. It is a no-op when a sign-in or
// sign-out already moved past it.
func (c *LiveAuthClient) endEpoch(ctx context.Context, epoch uint64) {
	c.commit(ctx, epoch, closeEpoch, models.AuthEventSignedOut, func(*models.Session) *models.Session { return nil })
}

// commit applies update to the current session, mirrors the result into the
// repository and notifies subscribers. It reports false when mode rejected
// the change. A repository failure is logged: the session stays usable for
// the lifetime of the process.
func (c *LiveAuthClient) commit(ctx context.Context, epoch uint64, mode commitMode, event models.AuthChangeEvent, update func(current *models.Session) *models.Session) (*models.Session, bool) {
	c.commitMu.Lock()

	c.mu.Lock()
	if mode != openEpoch && c.epoch != epoch {
		c.mu.Unlock()
		c.commitMu.Unlock()
		return nil, false
	}
	next := update(cloneSession(c.session))
	if mode != sameEpoch {
		c.epoch++
	}
	c.session = next
	c.loaded = true
	subscribers := c.listeners.snapshot()
	c.mu.Unlock()

	c.persist(ctx, next, event)
	c.commitMu.Unlock()

	notify(subscribers, event, next)
	return cloneSession(next), true
}

func (c *LiveAuthClient) persist(ctx context.Context, session *models.Session, event models.AuthChangeEvent) {
	if session == nil {
		if err := c.sessions.Delete(ctx, c.storageKey); err != nil {
			c.logger.Err(err).Str("func", "LiveAuthClient.persist").Msg("failed to delete stored session")
		}
		return
	}

	if err := c.sessions.Save(ctx, c.storageKey, *session); err != nil {
		c.logger.Err(err).Str("func", "LiveAuthClient.persist").Str("event", string(event)).Msg("failed to persist session")
	}
}

// ensureExpiry fills ExpiresAt from ExpiresIn or the access token's exp claim.
func (c *LiveAuthClient) ensureExpiry(session *models.Session) {
	if session.ExpiresAt != 0 {
		return
	}
	if session.ExpiresIn > 0 {
		session.ExpiresAt = c.now().Unix() + session.ExpiresIn
		return
	}

	claims, err := utils.ParseAccessTokenClaims(session.AccessToken)
	if err != nil {
		c.logger.Debug().Err(err).Str("func", "LiveAuthClient.ensureExpiry").Msg("access token expiry unknown")
		return
	}
	session.ExpiresAt = claims.ExpiresAtUnix()
}

func validateCredentials(creds models.Credentials) error {
	if !creds.HasIdentifier() || creds.Password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// isSessionGone reports whether a sign-out failed only because the server
// has already forgotten the session.
func isSessionGone(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) ||
		errors.Is(err, adapter.ErrForbidden) ||
		errors.Is(err, adapter.ErrNotFound)
}
