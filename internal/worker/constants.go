package worker

// LogMsgWorkerJobFailed is logged when a pooled job returns an error
const LogMsgWorkerJobFailed = "Worker job failed"

// Timer lifecycle
const (
	LogMsgShuttingDown     = "Shutting down worker"
	LogMsgCancelledTimer   = "Cancelled pending timer"
	LogMsgShutdownComplete = "Worker shutdown complete"
	LogMsgShutdownTimeout  = "Worker shutdown timeout"
)

// Weather and pollinator event cycle
const (
	EventWorkerName           = "event worker"
	LogMsgEventWorkerStarted  = "Garden event cycle started"
	LogMsgEventWorkerStopped  = "Garden event cycle already shut down"
	LogMsgEventScheduled      = "Garden event scheduled"
	LogMsgEventActivateFailed = "Failed to start garden event"
	LogMsgEventExpireFailed   = "Failed to end garden event"
)

// Pool sizes used by pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
