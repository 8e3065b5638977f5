package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string

	GetMongoURI() string
	GetMongoDatabase() string

	GetAIProvider() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGCPProjectID() string
	GetGCPLocation() string
	GetGenerationTimeout() time.Duration

	GetBcryptCost() int
	GetJWTSecret() string
	GetTokenTTL() time.Duration
	GetAuthRequired() bool

	GetCORSAllowedOrigins() []string
	GetStorageBackend() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetShutdownTimeout() time.Duration
}
