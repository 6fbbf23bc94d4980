package constants

const (
	MsgPathNameRequired    = "A path needs a name"
	MsgPathTooShort        = "A path must have at least 2 points"
	MsgPathNotFound        = "Path not found"
	MsgDraftNotStarted     = "No path is being drawn"
	MsgCoordinateNotFinite = "Coordinates must be finite numbers"
)
