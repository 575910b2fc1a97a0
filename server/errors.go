package server

// Error kind strings sent to clients in an ErrorFrame.
const (
	errKindRoomFull      = "ROOM_FULL"
	errKindNameInvalid   = "INVALID_NAME"
	errKindNameBanned    = "BANNED"
	errKindConfigInvalid = "CONFIG_INVALID"
	errKindNotFound      = "NOT_FOUND"
)
