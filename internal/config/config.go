package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pdf-chatbot-api/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"

	StorageLocal    = "local"
	StorageSupabase = "supabase"

	minJWTSecretLength = 32
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	UploadPath  string `env:"UPLOAD_PATH" env-default:"./uploads"`
	MaxFileSize int64  `env:"MAX_FILE_SIZE" env-default:"52428800"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string `env:"LOG_FORMAT" env-default:"json"`

	MongoURI      string `env:"MONGODB_URI" env-required:"true"`
	MongoDatabase string `env:"MONGODB_DATABASE" env-default:"pdf_chatbot"`

	AIProvider        string        `env:"AI_PROVIDER" env-default:"gemini"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	GCPProjectID      string        `env:"GCP_PROJECT_ID"`
	GCPLocation       string        `env:"GCP_LOCATION" env-default:"us-central1"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" env-default:"60s"`

	BcryptCost   int           `env:"BCRYPT_COST" env-default:"10"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	AuthRequired bool          `env:"AUTH_REQUIRED" env-default:"false"`

	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	StorageBackend     string        `env:"STORAGE_BACKEND" env-default:"local"`
	SupabaseURL        string        `env:"SUPABASE_URL"`
	SupabaseKey        string        `env:"SUPABASE_KEY"`
	SupabaseBucket     string        `env:"SUPABASE_BUCKET" env-default:"uploads"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// NewConfig reads the configuration from the environment and validates it
func NewConfig() (domain.Config, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// Keep SERVER_PORT for local/dev compatibility.
	cfg.ServerPort = getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewStoreConfig reads the configuration for tools that only talk to the
// document store. Provider and storage settings are not checked.
func NewStoreConfig() (domain.Config, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if strings.TrimSpace(cfg.MongoURI) == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	c.AIProvider = strings.ToLower(strings.TrimSpace(c.AIProvider))
	switch c.AIProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=%s", ProviderGemini)
		}
	case ProviderVertex:
		if c.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required when AI_PROVIDER=%s", ProviderVertex)
		}
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageLocal:
	case StorageSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required when STORAGE_BACKEND=%s", StorageSupabase)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}

	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (got %d)", minJWTSecretLength, len(c.JWTSecret))
	}
	return nil
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns "json" or "console"
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetMongoURI returns the MongoDB connection string
func (c *AppConfig) GetMongoURI() string {
	return c.MongoURI
}

// GetMongoDatabase returns the MongoDB database name
func (c *AppConfig) GetMongoDatabase() string {
	return c.MongoDatabase
}

// GetAIProvider returns the generative provider name
func (c *AppConfig) GetAIProvider() string {
	return c.AIProvider
}

func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

// GetGenerationTimeout bounds a single provider call
func (c *AppConfig) GetGenerationTimeout() time.Duration {
	return c.GenerationTimeout
}

func (c *AppConfig) GetBcryptCost() int {
	return c.BcryptCost
}

// GetJWTSecret returns the JWT secret key
func (c *AppConfig) GetJWTSecret() string {
	return c.JWTSecret
}

func (c *AppConfig) GetTokenTTL() time.Duration {
	return c.TokenTTL
}

// GetAuthRequired reports whether bearer tokens are mandatory on user-scoped routes
func (c *AppConfig) GetAuthRequired() bool {
	return c.AuthRequired
}

func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

func (c *AppConfig) GetStorageBackend() string {
	return c.StorageBackend
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

func (c *AppConfig) GetShutdownTimeout() time.Duration {
	return c.ShutdownTimeout
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
