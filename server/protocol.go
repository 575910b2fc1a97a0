package server

// ClientFrame is the wire shape of every client->server message, tagged by
// Type .2: hello, input, ping, pong.
type ClientFrame struct {
	Type         string   `json:"t"`
	Name         string   `json:"name,omitempty"`
	PlayerID     string   `json:"playerId,omitempty"`
	DirectionRad *float64 `json:"directionRad,omitempty"`
	Boosting     *bool    `json:"boosting,omitempty"`
	PingID       int64    `json:"pingId,omitempty"`
}

const (
	frameHello = "hello"
	frameInput = "input"
	framePing  = "ping"
	framePong  = "pong"
)

// WelcomeFrame acknowledges a new transport before any room binding exists.
type WelcomeFrame struct {
	Type      string `json:"t"`
	SessionID string `json:"sessionId"`
}

// JoinedFrame confirms a successful hello and names the assigned room/player.
type JoinedFrame struct {
	Type     string `json:"t"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// ErrorFrame reports a rejected request by one of the errKind* strings.
type ErrorFrame struct {
	Type string `json:"t"`
	Kind string `json:"kind"`
}

// DeadFrame is sent once to a player whose worm just died.
type DeadFrame struct {
	Type       string  `json:"t"`
	FinalScore float64 `json:"finalScore"`
}

// PingFrame is sent server->client on the heartbeat cadence.
type PingFrame struct {
	Type   string `json:"t"`
	PingID int64  `json:"pingId"`
}

// PongFrame answers a client ping.
type PongFrame struct {
	Type   string `json:"t"`
	Now    int64  `json:"now"`
	PingID int64  `json:"pingId"`
}

// LatencyFrame reports a measured round-trip time back to the client.
type LatencyFrame struct {
	Type       string `json:"t"`
	RTTMillis  int64  `json:"rttMillis"`
}

// PlayerDTO is one visible worm in a state frame.
type PlayerDTO struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Score    float64    `json:"score"`
	Body     [][2]float64 `json:"body"`
	Boosting bool       `json:"boosting"`
}

// FoodDTO is one visible pellet in a state frame.
type FoodDTO struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// LeaderboardEntry is one row of the top-10 leaderboard.
type LeaderboardEntry struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

// MinimapCell is one bucketed cell of the coarse overview map.
type MinimapCell struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	SumValue float64 `json:"sumValue"`
	Count    int     `json:"count"`
}

// MinimapPlayerDTO places a worm's head on the coarse overview map.
type MinimapPlayerDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// MinimapDTO is the coarse, infrequently-rebuilt overview payload.
type MinimapDTO struct {
	Cells   []MinimapCell       `json:"cells"`
	Players []MinimapPlayerDTO  `json:"players"`
}

// StateFrame is the per-recipient, interest-managed world snapshot
// broadcast on every broadcast tick.
type StateFrame struct {
	Type        string              `json:"t"`
	ServerNow   int64               `json:"serverNow"`
	Players     []PlayerDTO         `json:"players"`
	Food        []FoodDTO           `json:"food"`
	Leaderboard []LeaderboardEntry  `json:"leaderboard"`
	Minimap     *MinimapDTO         `json:"minimap,omitempty"`
}

// RoomClosedFrame notifies admin spectators that a room tore down.
type RoomClosedFrame struct {
	Type   string `json:"t"`
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}
