package event

// EventSchemaVersion is stamped on every event built by this package
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetadataKeySource    = "source"
	MetadataKeyRequestID = "request_id"
)

// MetadataSourceGame marks events raised by the game service
const MetadataSourceGame = "game"

// Error messages
const (
	LogMsgHandlerErrorFormat = "%d of the handlers for %s failed: %w"
	ErrMsgNilPayload         = "event payload is nil"
	ErrMsgEncodePayload      = "encode event payload"
	ErrMsgDecodePayload      = "decode event payload into"
)
