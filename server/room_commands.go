package server

// cmdKind tags a roomCommand. Every mutation a room applies funnels
// through one ordered channel, serialized through the room's own
// goroutine.
type cmdKind int

const (
	cmdHello cmdKind = iota
	cmdInput
	cmdLeave
	cmdKick
	cmdBanName
	cmdClose
)

// roomCommand is one queued mutation for a Room's command loop to apply.
// Only the fields relevant to Kind are populated.
type roomCommand struct {
	kind cmdKind

	session *Session // hello, input, leave

	name         string // hello: requested display name; banName: name to purge
	playerID     PlayerID
	directionRad *float64 // input
	boosting     *bool    // input

	closeReason string // close
}
