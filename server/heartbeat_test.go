package server

import (
	"testing"
	"time"
)

func TestStartHeartbeatPingsEverySession(t *testing.T) {
	now := time.Unix(0, 0)
	clock := NewFixedClock(now)
	m := newTestManager(now)
	m.clock = clock
	logger, _ := InitLogger("")
	reg := NewSessionRegistry(m, m.metrics, clock, logger)
	reg.pingInterval = 10 * time.Millisecond

	transport := newFakeTransport()
	reg.Register(transport)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		reg.StartHeartbeat(stop)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	close(stop)
	<-done

	if len(transport.sentFrames()) == 0 {
		t.Fatal("expected at least one ping frame sent")
	}
}

func TestStartIdleSweepEvictsSessionsPastPongTimeout(t *testing.T) {
	now := time.Unix(0, 0)
	clock := NewFixedClock(now)
	m := newTestManager(now)
	m.clock = clock
	logger, _ := InitLogger("")
	reg := NewSessionRegistry(m, m.metrics, clock, logger)
	reg.sweepInterval = 5 * time.Millisecond
	reg.pongTimeout = 1 * time.Millisecond

	transport := newFakeTransport()
	s := reg.Register(transport)
	s.recordPingSent(1, now)

	clock.Advance(2 * time.Millisecond)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		reg.StartIdleSweep(stop)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	close(stop)
	<-done

	if len(reg.snapshot()) != 0 {
		t.Fatal("expected the unresponsive session to be evicted")
	}
	if !transport.closed {
		t.Fatal("expected the evicted session's transport to be closed")
	}
}

func TestStartIdleSweepSparesFreshlyPingedSessionWellUnderTimeout(t *testing.T) {
	now := time.Unix(0, 0)
	clock := NewFixedClock(now)
	m := newTestManager(now)
	m.clock = clock
	logger, _ := InitLogger("")
	reg := NewSessionRegistry(m, m.metrics, clock, logger)
	reg.sweepInterval = 5 * time.Millisecond
	reg.pongTimeout = 30 * time.Second

	transport := newFakeTransport()
	s := reg.Register(transport)
	s.recordPingSent(1, now)

	clock.Advance(2 * time.Millisecond)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		reg.StartIdleSweep(stop)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	close(stop)
	<-done

	if len(reg.snapshot()) != 1 {
		t.Fatal("expected a freshly-pinged session well under pongTimeout to survive the sweep")
	}
	if transport.closed {
		t.Fatal("expected the healthy session's transport to remain open")
	}
}
