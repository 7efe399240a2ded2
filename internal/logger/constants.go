package logger

// Level names understood by Config.LogLevel
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Output formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults used before configuration is available
const (
	DefaultServiceName = "garden-sim"
	DefaultVersion     = "dev"
)

// EnvironmentDev enables source locations in log records
const EnvironmentDev = "dev"

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
