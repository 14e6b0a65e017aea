package store

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-supa-client/models"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemorySessionRepository returns a [SessionRepository] that keeps
// sessions in process memory. Used when no DSN is configured.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]models.Session)}
}

func (m *memorySessionRepository) Load(_ context.Context, key string) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[key]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (m *memorySessionRepository) Save(_ context.Context, key string, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = session
	return nil
}

func (m *memorySessionRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key)
	return nil
}
