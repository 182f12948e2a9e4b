package conversation

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned when input arrives for a session with no dialogue.
var ErrNoSession = errors.New("no active dialogue for session")

// Manager owns the in-flight dialogues, one per chat session. It replaces the
// process-wide "current draft" a naive bot would keep, so conversations from
// different users cannot interfere.
type Manager struct {
	svc Services

	mu       sync.Mutex
	sessions map[string]*Dialogue
}

// NewManager creates a dialogue manager over the core services.
func NewManager(svc Services) *Manager {
	return &Manager{svc: svc, sessions: make(map[string]*Dialogue)}
}

// Begin starts (or restarts) the registration dialogue for a session.
func (m *Manager) Begin(ctx context.Context, sessionID, ownerID string) (Reply, error) {
	d := NewDialogue(ownerID, m.svc)
	reply, err := d.Start(ctx)
	if err != nil {
		return Reply{}, err
	}

	m.mu.Lock()
	if reply.Done {
		delete(m.sessions, sessionID)
	} else {
		m.sessions[sessionID] = d
	}
	m.mu.Unlock()
	return reply, nil
}

// Handle routes one attendee message to the session's dialogue. Finished
// dialogues are dropped.
func (m *Manager) Handle(ctx context.Context, sessionID, text string) (Reply, error) {
	m.mu.Lock()
	d, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return Reply{}, ErrNoSession
	}

	reply, err := d.Input(ctx, text)
	if err != nil {
		return Reply{}, err
	}
	if reply.Done {
		m.mu.Lock()
		delete(m.sessions, sessionID)
		m.mu.Unlock()
	}
	return reply, nil
}

// End abandons a session's dialogue, if any. No registration state is
// affected; only the unconfirmed draft is discarded.
func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}
