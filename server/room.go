package server

import (
	"encoding/json"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const commandQueueCapacity = 512

// Room is one isolated game world: configuration, players, food, and the
// derived caches the broadcast publisher reads. All
// mutation is serialized to the room's own tick-loop goroutine; the
// broadcast goroutine only reads, under mu's read lock.
type Room struct {
	ID         RoomID
	createdSeq int64

	config RoomConfig

	mu      sync.RWMutex
	players map[PlayerID]*Player
	order   []PlayerID // insertion order; canonical iteration and tie-break
	food    []*Food

	nextJoinSeq int64
	rng         *rand.Rand
	clock       Clock

	emptySince *time.Time
	closed     bool

	tickDurations *durationRing
	minimap       *MinimapDTO
	minimapAt     time.Time

	spectators map[string]*AdminSpectator

	cmdChan chan roomCommand
	stopCh  chan struct{}

	manager *RoomManager
	metrics *Metrics
	events  *EventLog
	logger  *zap.Logger

	broadcastInterval time.Duration
}

func newRoom(id RoomID, createdSeq int64, cfg RoomConfig, seed int64, clock Clock, m *RoomManager) *Room {
	return &Room{
		ID:                id,
		createdSeq:        createdSeq,
		config:            cfg,
		players:           make(map[PlayerID]*Player),
		rng:               rand.New(rand.NewSource(seed)),
		clock:             clock,
		tickDurations:     newDurationRing(200),
		spectators:        make(map[string]*AdminSpectator),
		cmdChan:           make(chan roomCommand, commandQueueCapacity),
		stopCh:            make(chan struct{}),
		manager:           m,
		metrics:           m.metrics,
		events:            m.events,
		logger:            subsystem(m.logger, "room"),
		broadcastInterval: m.broadcastInterval,
	}
}

// enqueue pushes a command onto the room's channel, dropping it (and
// counting the drop) if the channel is already full.
func (r *Room) enqueue(cmd roomCommand) {
	select {
	case r.cmdChan <- cmd:
	default:
		r.metrics.IncInputChanFullDiscarded()
	}
}

// closeLocked marks the room closed, disconnects players and spectators,
// and asks the manager to drop it from its map. Caller holds r.mu (write).
func (r *Room) closeLocked(reason string) {
	if r.closed {
		return
	}
	r.closed = true
	for _, id := range append([]PlayerID(nil), r.order...) {
		p := r.players[id]
		p.Session.Close(1000, "room closed")
		p.Session.unbind()
	}
	r.players = make(map[PlayerID]*Player)
	r.order = nil

	closedFrame, _ := json.Marshal(RoomClosedFrame{Type: "room_closed", RoomID: string(r.ID), Reason: reason})
	for _, s := range r.spectators {
		s.Transport.Send(closedFrame)
		s.Transport.Close()
	}
	r.spectators = make(map[string]*AdminSpectator)

	r.events.Append(Event{At: r.clock.Now().UnixMilli(), Kind: "room_closed", RoomID: string(r.ID), Detail: reason})
	close(r.stopCh)
	r.manager.forget(r.ID)
}

// applyDeaths finalizes every player marked dead this tick: drops body
// remains as food, delivers a dead frame, and removes the player from the
// room.
func (r *Room) applyDeaths(dead []*Player) {
	for _, p := range dead {
		r.dropDeathRemains(p)
		p.Session.Send(DeadFrame{Type: "dead", FinalScore: p.Score})
		p.Session.unbind()
		r.removePlayerLocked(p.ID)
		r.metrics.IncPlayersDied()
		r.events.Append(Event{At: r.clock.Now().UnixMilli(), Kind: "player_died", RoomID: string(r.ID), Detail: string(p.ID)})
	}
}

// dropDeathRemains scatters every 4th body point as Food.
func (r *Room) dropDeathRemains(p *Player) {
	value := math.Max(0.5, p.Score/math.Max(10, float64(len(p.Body))))
	for i := 0; i < len(p.Body); i += 4 {
		jx := (r.rng.Float64()*2 - 1) * 6
		jy := (r.rng.Float64()*2 - 1) * 6
		r.food = append(r.food, &Food{
			ID:    newFoodID(),
			Pos:   Vec2{X: p.Body[i].X + jx, Y: p.Body[i].Y + jy},
			Value: value,
		})
	}
}

// removePlayerLocked drops a player from the room's map/order. Caller
// holds r.mu (write).
func (r *Room) removePlayerLocked(id PlayerID) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
