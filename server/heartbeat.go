package server

import "time"

// StartHeartbeat pings every open session on reg.pingInterval, stamping
// lastPingSentAt. It runs until stop is closed.
func (reg *SessionRegistry) StartHeartbeat(stop <-chan struct{}) {
	ticker := time.NewTicker(reg.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := reg.clock.Now()
			for _, s := range reg.snapshot() {
				id := now.UnixNano()
				s.recordPingSent(id, now)
				s.Send(PingFrame{Type: "ping", PingID: id})
			}
		}
	}
}

// StartIdleSweep evicts sessions that have gone quiet: no pong within
// pongTimeout of the last ping sent, or no message at all within
// idleTimeout.
func (reg *SessionRegistry) StartIdleSweep(stop <-chan struct{}) {
	ticker := time.NewTicker(reg.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := reg.clock.Now()
			for _, s := range reg.snapshot() {
				lastMessageAt, lastPingSentAt, lastPongAt := s.heartbeatSnapshot()
				noPong := !lastPingSentAt.IsZero() && lastPongAt.Before(lastPingSentAt) && now.Sub(lastPingSentAt) > reg.pongTimeout
				idle := now.Sub(lastMessageAt) > reg.idleTimeout
				if noPong || idle {
					s.Close(4002, "inactive")
					reg.Unregister(s.ID)
				}
			}
		}
	}
}
