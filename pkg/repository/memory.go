package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hatchway/onboard/pkg/domain/interfaces"
	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultSessionTTL bounds how long an idle form session stays alive.
// Sessions are ephemeral by design; there is no durable backend.
const DefaultSessionTTL = 30 * time.Minute

type sessionEntry struct {
	ctrl      interfaces.FormController
	expiresAt time.Time
}

// MemorySessions implements SessionRegistry with in-memory storage and
// a sliding TTL: every access pushes the expiry forward. Expired
// entries are dropped on access and by a background sweeper.
type MemorySessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[types.SessionID]*sessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemorySessions creates a new in-memory session registry and
// starts its sweeper. Call Close to stop the sweeper.
func NewMemorySessions(ttl time.Duration) *MemorySessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	m := &MemorySessions{
		ttl:      ttl,
		sessions: make(map[types.SessionID]*sessionEntry),
		stop:     make(chan struct{}),
	}

	go m.sweep()
	return m
}

var _ interfaces.SessionRegistry = (*MemorySessions)(nil)

// Create registers a form controller under a new session ID
func (m *MemorySessions) Create(ctx context.Context, ctrl interfaces.FormController) (types.SessionID, error) {
	if ctrl == nil {
		return "", goerr.New("form controller is nil")
	}

	id, err := types.NewSessionID()
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate session ID")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = &sessionEntry{
		ctrl:      ctrl,
		expiresAt: time.Now().Add(m.ttl),
	}
	return id, nil
}

// Get returns the controller for the session and refreshes its expiry.
// An unknown or expired session yields ErrSessionNotFound.
func (m *MemorySessions) Get(ctx context.Context, id types.SessionID) (interfaces.FormController, error) {
	if id == "" {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "unknown session", goerr.V("id", id))
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, goerr.Wrap(model.ErrSessionNotFound, "session expired", goerr.V("id", id))
	}

	entry.expiresAt = time.Now().Add(m.ttl)
	return entry.ctrl, nil
}

// Delete removes the session. Deleting never interrupts an in-flight
// submission; the controller just becomes unreachable.
func (m *MemorySessions) Delete(ctx context.Context, id types.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return goerr.Wrap(model.ErrSessionNotFound, "unknown session", goerr.V("id", id))
	}

	delete(m.sessions, id)
	return nil
}

// Close stops the background sweeper
func (m *MemorySessions) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

// Count returns the number of live sessions (test helper)
func (m *MemorySessions) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Clear removes all sessions (test helper)
func (m *MemorySessions) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[types.SessionID]*sessionEntry)
}

func (m *MemorySessions) sweep() {
	interval := m.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, entry := range m.sessions {
				if now.After(entry.expiresAt) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
