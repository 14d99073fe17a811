package toolserver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

// sessionQueueSize bounds how many undelivered responses a session may
// accumulate before pushes start failing.
const sessionQueueSize = 16

// Session is one live tool protocol connection. Responses to posted
// messages are queued on Out and drained by the streaming handler.
type Session struct {
	ID  string
	Out chan []byte
}

// SessionRegistry tracks live tool protocol sessions. All methods are safe
// for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   port.Logger
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(l port.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
		logger:   l,
	}
}

// Register creates a session with a fresh id and adds it to the registry.
func (r *SessionRegistry) Register() *Session {
	session := &Session{
		ID:  uuid.NewString(),
		Out: make(chan []byte, sessionQueueSize),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	total := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveToolSessions.Inc()
	r.logger.Debug("Tool session registered", "sessionId", session.ID, "totalSessions", total)
	return session
}

// Get returns the session with the given id.
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	return session, ok
}

// Push queues a payload on the session's outbound channel without blocking.
// It reports false when the session is gone or its queue is full. The send
// happens under the read lock so it cannot race the close in Remove.
func (r *SessionRegistry) Push(id string, payload []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}
	select {
	case session.Out <- payload:
		return true
	default:
		return false
	}
}

// Remove drops a session and closes its outbound channel.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	session, exists := r.sessions[id]
	if exists {
		delete(r.sessions, id)
	}
	total := len(r.sessions)
	r.mu.Unlock()

	if !exists {
		return
	}
	close(session.Out)
	metrics.ActiveToolSessions.Dec()
	r.logger.Debug("Tool session removed", "sessionId", id, "totalSessions", total)
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// CloseAll drops every session. Called during shutdown so streaming
// handlers unblock and exit.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, session := range sessions {
		close(session.Out)
		metrics.ActiveToolSessions.Dec()
	}
	if len(sessions) > 0 {
		r.logger.Info("Closed all tool sessions", "count", len(sessions))
	}
}
