package session

// Log Messages
const (
	LogMsgSnapshotLoaded     = "Loaded saved game"
	LogMsgSnapshotFresh      = "No saved game found, starting fresh"
	LogMsgSnapshotSaveFailed = "Failed to save game snapshot"
	LogMsgPublishFailed      = "Failed to publish event"
	LogMsgOperationApplied   = "Applied operation"
	LogMsgOperationRejected  = "Operation rejected"
	LogMsgOperationUnchanged = "Operation left snapshot unchanged"
)

// Error Messages
const (
	ErrMsgLoadSnapshot = "failed to load game snapshot"
	ErrMsgUnchanged    = "snapshot unchanged"
)
