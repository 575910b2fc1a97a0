package server

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionRegistry is the process-wide map of transport to session
// metadata. It owns the heartbeat and idle-eviction goroutines
// (heartbeat.go) and routes inbound frames through the input pipeline.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]*Session

	manager  *RoomManager
	pipeline *inputPipeline
	metrics  *Metrics
	clock    Clock
	logger   *zap.Logger

	pingInterval  time.Duration
	pongTimeout   time.Duration
	idleTimeout   time.Duration
	sweepInterval time.Duration
}

func NewSessionRegistry(manager *RoomManager, metrics *Metrics, clock Clock, logger *zap.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions:      make(map[SessionID]*Session),
		manager:       manager,
		pipeline:      newInputPipeline(manager, metrics),
		metrics:       metrics,
		clock:         clock,
		logger:        subsystem(logger, "session"),
		pingInterval:  2 * time.Second,
		pongTimeout:   30 * time.Second,
		idleTimeout:   10 * time.Minute,
		sweepInterval: 5 * time.Second,
	}
}

// Register creates and tracks a new Session for an already-accepted
// transport.
func (reg *SessionRegistry) Register(t Transport) *Session {
	s := newSession(newSessionID(), t, reg.clock.Now())
	reg.mu.Lock()
	reg.sessions[s.ID] = s
	reg.mu.Unlock()
	return s
}

// Unregister drops a session from the registry and, if it was bound to a
// room, asks that room to free the player on its own tick loop.
func (reg *SessionRegistry) Unregister(id SessionID) {
	reg.mu.Lock()
	s, ok := reg.sessions[id]
	delete(reg.sessions, id)
	reg.mu.Unlock()
	if !ok {
		return
	}
	if roomID := s.BoundRoomID(); roomID != "" {
		if room, ok := reg.manager.getRoom(roomID); ok {
			room.enqueue(roomCommand{kind: cmdLeave, playerID: s.BoundPlayerID()})
		}
	}
}

// Serve runs a session's blocking read loop until the transport errors or
// closes, then unregisters it.
func (reg *SessionRegistry) Serve(session *Session) {
	defer reg.Unregister(session.ID)
	for {
		raw, err := session.Transport.Receive()
		if err != nil {
			return
		}
		reg.pipeline.handle(session, raw, reg.clock.Now())
	}
}

func (reg *SessionRegistry) snapshot() []*Session {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Session, 0, len(reg.sessions))
	for _, s := range reg.sessions {
		out = append(out, s)
	}
	return out
}
