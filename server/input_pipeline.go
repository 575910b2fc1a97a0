package server

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// inputPipeline parses and validates inbound frames before they become
// room mutations. Token-bucket gating and anti-spoof
// checks run here, in the session's own read-loop goroutine, so that
// per-session ordering is free (one reader, one arrival order) and only
// the actual state mutation needs to cross into a room's command channel.
type inputPipeline struct {
	manager *RoomManager
	metrics *Metrics
}

func newInputPipeline(manager *RoomManager, metrics *Metrics) *inputPipeline {
	return &inputPipeline{manager: manager, metrics: metrics}
}

// handle parses raw and dispatches it by frame type. Every frame, parsed
// or not, updates the session's lastMessageAt.
func (ip *inputPipeline) handle(session *Session, raw []byte, now time.Time) {
	session.touchMessage(now)

	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return // MALFORMED_FRAME: silent drop
	}

	switch frame.Type {
	case frameHello:
		ip.handleHello(session, frame)
	case frameInput:
		ip.handleInput(session, frame, now)
	case framePing:
		ip.handlePing(session, frame)
	case framePong:
		ip.handlePong(session, frame, now)
	default:
		// MALFORMED_FRAME: unknown tag, silent drop.
	}
}

func (ip *inputPipeline) handleHello(session *Session, frame ClientFrame) {
	if session.BoundRoomID() != "" {
		return // already bound: silently ignored
	}

	name := strings.TrimSpace(frame.Name)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	if name == "" {
		session.Send(ErrorFrame{Type: "error", Kind: errKindNameInvalid})
		return
	}
	if ip.manager.banned.Contains(name) {
		session.Send(ErrorFrame{Type: "error", Kind: errKindNameBanned})
		return
	}

	room := ip.manager.findOrCreateWithSlot()
	room.enqueue(roomCommand{kind: cmdHello, session: session, name: name})
}

func (ip *inputPipeline) handleInput(session *Session, frame ClientFrame, now time.Time) {
	boundRoom := session.BoundRoomID()
	if boundRoom == "" {
		return
	}
	if PlayerID(frame.PlayerID) != session.BoundPlayerID() {
		ip.metrics.IncInputSpoofRejected()
		return
	}
	if !session.bucket.Allow(now) {
		ip.metrics.IncInputThrottled()
		return
	}
	if frame.DirectionRad != nil && (math.IsNaN(*frame.DirectionRad) || math.IsInf(*frame.DirectionRad, 0)) {
		ip.metrics.IncInputInvalid()
		return
	}

	room, ok := ip.manager.getRoom(boundRoom)
	if !ok {
		return
	}
	room.enqueue(roomCommand{
		kind:         cmdInput,
		playerID:     session.BoundPlayerID(),
		directionRad: frame.DirectionRad,
		boosting:     frame.Boosting,
	})
	ip.metrics.IncInputsAccepted()
}

func (ip *inputPipeline) handlePing(session *Session, frame ClientFrame) {
	session.Send(PongFrame{Type: "pong", Now: ip.manager.clock.Now().UnixMilli(), PingID: frame.PingID})
}

func (ip *inputPipeline) handlePong(session *Session, frame ClientFrame, now time.Time) {
	rtt, ok := session.recordPong(frame.PingID, now)
	if !ok {
		return
	}
	session.Send(LatencyFrame{Type: "latency", RTTMillis: rtt})
}
