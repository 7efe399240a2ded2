package config

// Storage drivers accepted by STORAGE_DRIVER
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Example values from .env.example that must not reach a real deployment
const (
	InsecureDBPassword = "change_this_secure_password"
)

// Error Messages
const (
	ErrMsgParseEnv   = "parse env"
	ErrMsgInvalidEnv = "invalid configuration"
)
