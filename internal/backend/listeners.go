package backend

import (
	"sync"

	"github.com/MKhiriev/go-supa-client/models"
)

// listeners is the registry of auth state subscribers. It is guarded by the
// owning client's mutex.
type listeners map[string]*listener

// snapshot copies the subscribers so they can be notified without the lock.
func (l listeners) snapshot() []*listener {
	out := make([]*listener, 0, len(l))
	for _, s := range l {
		out = append(out, s)
	}
	return out
}

// notify hands every subscriber its own copy of session.
func notify(subscribers []*listener, event models.AuthChangeEvent, session *models.Session) {
	for _, s := range subscribers {
		s.deliver(event, cloneSession(session))
	}
}

func cloneSession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

type authEvent struct {
	event   models.AuthChangeEvent
	session *models.Session
}

// listener holds back events that arrive before its initial session has been
// delivered, so INITIAL_SESSION is always the first thing a callback sees.
type listener struct {
	callback AuthStateCallback

	mu      sync.Mutex
	ready   bool
	pending []authEvent
}

func newListener(callback AuthStateCallback) *listener {
	return &listener{callback: callback}
}

func (l *listener) deliver(event models.AuthChangeEvent, session *models.Session) {
	l.mu.Lock()
	if !l.ready {
		l.pending = append(l.pending, authEvent{event: event, session: session})
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.callback(event, session)
}

// start delivers the initial session, then whatever queued up meanwhile.
// The callback runs without l.mu held so it may call back into the client.
func (l *listener) start(initial *models.Session) {
	l.callback(models.AuthEventInitialSession, initial)

	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.ready = true
			l.mu.Unlock()
			return
		}
		queued := l.pending
		l.pending = nil
		l.mu.Unlock()

		for _, e := range queued {
			l.callback(e.event, e.session)
		}
	}
}

type subscription struct {
	id          string
	once        sync.Once
	unsubscribe func()
}

func (s *subscription) ID() string { return s.id }

func (s *subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}
