package server

import (
	"math"
	"strings"
)

// drainCommands applies every queued roomCommand in arrival order. Caller
// holds r.mu (write).
func (r *Room) drainCommands() {
	for {
		select {
		case cmd := <-r.cmdChan:
			r.applyCommand(cmd)
		default:
			return
		}
	}
}

func (r *Room) applyCommand(cmd roomCommand) {
	switch cmd.kind {
	case cmdHello:
		r.applyHello(cmd.session, cmd.name)
	case cmdInput:
		r.applyInput(cmd.playerID, cmd.directionRad, cmd.boosting)
	case cmdLeave:
		r.applyLeave(cmd.playerID)
	case cmdKick:
		r.applyKick(cmd.playerID, "kicked", 4000)
	case cmdBanName:
		r.applyBanName(cmd.name)
	case cmdClose:
		r.closeLocked(cmd.closeReason)
	}
}

// applyHello creates a Player for an unbound session and binds it. Room
// selection and name validation already happened in the input pipeline;
// this only performs the room-state mutation that must be serialized to
// the tick loop.
func (r *Room) applyHello(session *Session, name string) {
	if session.BoundRoomID() != "" {
		return // already bound; hello is silently ignored
	}
	if len(r.players) >= r.config.MaxPlayers {
		session.Send(ErrorFrame{Type: "error", Kind: errKindRoomFull})
		return
	}

	id := newPlayerID()
	pos := r.spawnPosition()
	heading := r.rng.Float64()*2*math.Pi - math.Pi

	p := &Player{
		ID:      id,
		Name:    name,
		Head:    pos,
		Dir:     heading,
		Target:  heading,
		Body:    []Vec2{pos},
		Session: session,
		joinSeq: r.nextJoinSeq,
	}
	r.nextJoinSeq++
	r.players[id] = p
	r.order = append(r.order, id)
	r.emptySince = nil

	session.bind(r.ID, id)
	session.Send(JoinedFrame{Type: "joined", RoomID: string(r.ID), PlayerID: string(id)})
	r.metrics.IncPlayersJoined()
	r.events.Append(Event{At: r.clock.Now().UnixMilli(), Kind: "player_joined", RoomID: string(r.ID), Detail: string(id)})
}

// applyInput sets a player's steering intent. The token bucket and
// anti-spoof checks already ran in the input pipeline; this only applies
// the accepted intent under the room's lock.
func (r *Room) applyInput(playerID PlayerID, directionRad *float64, boosting *bool) {
	p, ok := r.players[playerID]
	if !ok {
		return
	}
	if directionRad != nil {
		p.Target = NormalizeAngle(*directionRad)
	}
	if boosting != nil {
		p.Boost = *boosting
	}
}

func (r *Room) applyLeave(playerID PlayerID) {
	p, ok := r.players[playerID]
	if !ok {
		return
	}
	r.dropDeathRemains(p)
	p.Session.unbind()
	r.removePlayerLocked(playerID)
}

func (r *Room) applyKick(playerID PlayerID, reason string, code int) {
	p, ok := r.players[playerID]
	if !ok {
		return
	}
	p.Session.Close(code, reason)
	p.Session.unbind()
	r.removePlayerLocked(playerID)
	if code == 4000 {
		r.metrics.IncPlayersKicked()
	} else {
		r.metrics.IncPlayersBanned()
	}
	r.events.Append(Event{At: r.clock.Now().UnixMilli(), Kind: reason, RoomID: string(r.ID), Detail: string(playerID)})
}

func (r *Room) applyBanName(name string) {
	lower := strings.ToLower(name)
	for _, id := range append([]PlayerID(nil), r.order...) {
		if strings.ToLower(r.players[id].Name) == lower {
			r.applyKick(id, "banned", 4001)
		}
	}
}
