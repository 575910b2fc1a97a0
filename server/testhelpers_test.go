package server

import (
	"sync"
	"time"
)

// fakeTransport is a minimal in-memory Transport double for tests that
// don't need go.uber.org/mock's call-expectation machinery.
type fakeTransport struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
	inbox  chan []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inbox: make(chan []byte, 32)}
}

func (f *fakeTransport) Send(b []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.sent = append(f.sent, b)
	return true
}

func (f *fakeTransport) Receive() ([]byte, error) {
	b, ok := <-f.inbox
	if !ok {
		return nil, errClosedFakeTransport
	}
	return b, nil
}

func (f *fakeTransport) CloseWithCode(code int, reason string) { f.Close() }

func (f *fakeTransport) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.inbox)
	}
}

func (f *fakeTransport) sentFrames() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.sent...)
}

var errClosedFakeTransport = fakeTransportClosedError{}

type fakeTransportClosedError struct{}

func (fakeTransportClosedError) Error() string { return "fake transport closed" }

// newTestRoomIn registers a Room in m the same way createLocked does, but
// without starting its tick-loop goroutine, so tests can drive tick/drain
// calls directly and deterministically against the fixed clock.
func newTestRoomIn(m *RoomManager, cfg RoomConfig) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := newRoomID()
	seq := m.nextCreateSeq
	m.nextCreateSeq++
	r := newRoom(id, seq, cfg, m.seedSource(), m.clock, m)
	now := m.clock.Now()
	r.emptySince = &now
	m.rooms[id] = r
	return r
}

func newTestManager(now time.Time) *RoomManager {
	clock := NewFixedClock(now)
	metrics := &Metrics{}
	events := NewEventLog(64)
	logger, _ := InitLogger("")
	seed := int64(1)
	seedSource := func() int64 { seed++; return seed }
	return NewRoomManager(clock, metrics, events, logger, 50*time.Millisecond, seedSource)
}
