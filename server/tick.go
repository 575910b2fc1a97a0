package server

import "time"

const ticksPerSecond = 20
const tickInterval = time.Second / ticksPerSecond

// run is the room's dedicated tick-loop goroutine. It owns every write
// to players/food/order and starts the room's independent broadcast
// loop alongside it.
func (r *Room) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	broadcastStop := make(chan struct{})
	go r.runBroadcastLoop(broadcastStop)
	defer close(broadcastStop)

	for {
		select {
		case <-r.stopCh:
			return
		case now := <-ticker.C:
			if r.tick(now) {
				return
			}
		}
	}
}

// tick runs one fixed-timestep step: drain queued commands, sweep the
// empty-room TTL, then run the simulation phases (motion, food
// interaction, collision and deaths, replenishment, minimap refresh). It
// returns true once the room has closed and the loop should exit.
func (r *Room) tick(now time.Time) bool {
	start := r.clock.Now()

	r.mu.Lock()
	r.drainCommands()
	r.applyEmptyGC(now)

	if !r.closed && len(r.players) > 0 {
		dt := 1.0 / ticksPerSecond
		for _, id := range r.order {
			r.stepMotion(r.players[id], dt)
		}
		r.stepFoodInteraction(dt)
		dead := r.stepCollision()
		r.applyDeaths(dead)
		r.stepReplenishment()
	}
	if !r.closed && now.Sub(r.minimapAt) >= minimapRefreshInterval*time.Millisecond {
		r.minimap = r.rebuildMinimap()
		r.minimapAt = now
	}
	closed := r.closed
	r.mu.Unlock()

	r.tickDurations.Add(r.clock.Now().Sub(start).Nanoseconds())
	return closed
}

// applyEmptyGC implements the Room Manager's per-tick empty-room TTL
// sweep. Caller holds r.mu (write).
func (r *Room) applyEmptyGC(now time.Time) {
	if r.closed {
		return
	}
	if len(r.players) == 0 {
		if r.emptySince == nil {
			t := now
			r.emptySince = &t
			return
		}
		if r.config.EmptyRoomTTLSeconds > 0 {
			ttl := time.Duration(r.config.EmptyRoomTTLSeconds * float64(time.Second))
			if now.Sub(*r.emptySince) >= ttl {
				r.closeLocked("timeout_empty")
				r.metrics.IncRoomsClosedTimeout()
			}
		}
		return
	}
	r.emptySince = nil
}
