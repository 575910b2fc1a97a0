package server

import (
	"encoding/json"
	"sync"
	"time"
)

// Session is the process-wide record of one connected transport, bound to
// at most one room/player pair at a time. Its mutable
// binding and heartbeat fields are touched from three places — the
// session's own read loop, the heartbeat sweep, and the owning room's
// command loop — so they live behind Session's own mutex rather than the
// room's.
type Session struct {
	ID        SessionID
	Transport Transport
	bucket    *tokenBucket

	mu             sync.Mutex
	roomID         RoomID
	playerID       PlayerID
	lastMessageAt  time.Time
	lastPingSentAt time.Time
	lastPingID     int64
	lastPongAt     time.Time
	rttMillis      int64
}

func newSession(id SessionID, t Transport, now time.Time) *Session {
	return &Session{
		ID:            id,
		Transport:     t,
		bucket:        newTokenBucket(45, 30, now),
		lastMessageAt: now,
	}
}

func (s *Session) BoundRoomID() RoomID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Session) BoundPlayerID() PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Session) bind(roomID RoomID, playerID PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = roomID
	s.playerID = playerID
}

func (s *Session) unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = ""
	s.playerID = ""
}

func (s *Session) touchMessage(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessageAt = now
}

func (s *Session) recordPingSent(id int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPingID = id
	s.lastPingSentAt = now
}

func (s *Session) recordPong(id int64, now time.Time) (rttMillis int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.lastPingID {
		return 0, false
	}
	s.lastPongAt = now
	s.rttMillis = now.Sub(s.lastPingSentAt).Milliseconds()
	return s.rttMillis, true
}

func (s *Session) heartbeatSnapshot() (lastMessageAt, lastPingSentAt, lastPongAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessageAt, s.lastPingSentAt, s.lastPongAt
}

// Send marshals frame to JSON and enqueues it on the transport. A dropped
// send (full buffer, closed transport) is silent.
func (s *Session) Send(frame any) bool {
	b, err := json.Marshal(frame)
	if err != nil {
		return false
	}
	return s.Transport.Send(b)
}

func (s *Session) Close(code int, reason string) {
	s.Transport.CloseWithCode(code, reason)
}
