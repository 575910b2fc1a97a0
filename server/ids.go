package server

import "github.com/google/uuid"

// RoomID identifies a Room. Opaque to callers.
type RoomID string

// PlayerID identifies a Player within a Room. Distinct namespace from SessionID.
type PlayerID string

// SessionID identifies a connected client's server-side record.
type SessionID string

// FoodID identifies a single Food item.
type FoodID string

func newRoomID() RoomID       { return RoomID(uuid.NewString()) }
func newPlayerID() PlayerID   { return PlayerID(uuid.NewString()) }
func newSessionID() SessionID { return SessionID(uuid.NewString()) }
func newFoodID() FoodID       { return FoodID(uuid.NewString()) }
