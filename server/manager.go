package server

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// bannedNameSet is the process-wide banned-display-name set, safe under
// concurrent read.
type bannedNameSet struct {
	mu   sync.RWMutex
	set  map[string]struct{}
}

func newBannedNameSet() *bannedNameSet {
	return &bannedNameSet{set: make(map[string]struct{})}
}

func (b *bannedNameSet) Add(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set[strings.ToLower(name)] = struct{}{}
}

func (b *bannedNameSet) Contains(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.set[strings.ToLower(name)]
	return ok
}

// ErrRoomNotFound is returned by RoomManager operations targeting an
// unknown or already-closed room.
var ErrRoomNotFound = errors.New("room not found")

// RoomManager owns every Room's lifecycle: creation, slot-finding,
// default-config propagation, and manual close. It generalizes a
// single-static-room map into dynamic slot-finding under the same
// sync.RWMutex pattern.
type RoomManager struct {
	mu            sync.RWMutex
	rooms         map[RoomID]*Room
	defaultConfig RoomConfig
	nextCreateSeq int64

	banned  *bannedNameSet
	metrics *Metrics
	events  *EventLog
	clock   Clock
	logger  *zap.Logger

	broadcastInterval time.Duration
	seedSource        func() int64
}

// NewRoomManager builds a RoomManager. broadcastInterval must be in
// [50ms, 200ms] (5-20 Hz); seedSource supplies each new room's
// deterministic PRNG seed (production wiring uses a counter or
// crypto-random seed captured once at startup, never math/rand's
// global default).
func NewRoomManager(clock Clock, metrics *Metrics, events *EventLog, logger *zap.Logger, broadcastInterval time.Duration, seedSource func() int64) *RoomManager {
	return &RoomManager{
		rooms:             make(map[RoomID]*Room),
		defaultConfig:     DefaultRoomConfig(),
		banned:            newBannedNameSet(),
		metrics:           metrics,
		events:            events,
		clock:             clock,
		logger:            subsystem(logger, "manager"),
		broadcastInterval: broadcastInterval,
		seedSource:        seedSource,
	}
}

// findOrCreateWithSlot returns the first open room with a free slot,
// iterating in deterministic creation-sequence order; otherwise it creates
// a new room from the current default configuration.
func (m *RoomManager) findOrCreateWithSlot() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	ordered := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		ordered = append(ordered, r)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].createdSeq < ordered[j].createdSeq })

	for _, r := range ordered {
		r.mu.RLock()
		hasSlot := len(r.players) < r.config.MaxPlayers
		r.mu.RUnlock()
		if hasSlot {
			return r
		}
	}
	r, _ := m.createLocked(PartialRoomConfig{})
	return r
}

// create validates partialConfig against the default and starts a new
// room's tick loop.
func (m *RoomManager) create(partial PartialRoomConfig) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(partial)
}

func (m *RoomManager) createLocked(partial PartialRoomConfig) (*Room, error) {
	cfg, err := MergeConfig(m.defaultConfig, partial)
	if err != nil {
		return nil, err
	}
	id := newRoomID()
	seq := m.nextCreateSeq
	m.nextCreateSeq++

	r := newRoom(id, seq, cfg, m.seedSource(), m.clock, m)
	now := m.clock.Now()
	r.emptySince = &now
	m.rooms[id] = r
	m.metrics.IncRoomsCreated()
	m.events.Append(Event{At: now.UnixMilli(), Kind: "room_created", RoomID: string(id)})
	go r.run()
	return r, nil
}

// close closes a room manually. Idempotent: a second call reports
// ErrRoomNotFound.
func (m *RoomManager) close(id RoomID, reason string) error {
	m.mu.RLock()
	r, ok := m.rooms[id]
	m.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}
	r.enqueue(roomCommand{kind: cmdClose, closeReason: reason})
	m.metrics.IncRoomsClosedManual()
	return nil
}

// forget removes a room from the manager's map. Called by the room's own
// tick loop once it has finished closing itself.
func (m *RoomManager) forget(id RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, id)
}

// setDefault replaces the template used by subsequent create calls;
// existing rooms are not retroactively reconfigured.
func (m *RoomManager) setDefault(cfg RoomConfig) error {
	if errs := validateConfig(cfg); len(errs) > 0 {
		return &ConfigInvalidError{Fields: errs}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = cfg
	return nil
}

func (m *RoomManager) getRoom(id RoomID) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// kick closes one player's session with code 4000 reason "kicked".
func (m *RoomManager) kick(roomID RoomID, playerID PlayerID) error {
	r, ok := m.getRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.enqueue(roomCommand{kind: cmdKick, playerID: playerID})
	return nil
}

// ban adds name to the process-wide banned set and kicks every currently
// matching player across all rooms with code 4001 reason "banned".
// Idempotent.
func (m *RoomManager) ban(name string) {
	m.banned.Add(name)
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()
	for _, r := range rooms {
		r.enqueue(roomCommand{kind: cmdBanName, name: name})
	}
}
