package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"pdf-chatbot-api/internal/auth"
	"pdf-chatbot-api/internal/domain"
	"pdf-chatbot-api/internal/infra/supabase"
	"pdf-chatbot-api/internal/repository"
	"pdf-chatbot-api/internal/service"
	"pdf-chatbot-api/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	MongoClient  *repository.MongoClient
	FileStore    domain.FileStore
	TokenManager *auth.TokenManager

	UserRepository     domain.UserRepository
	DocumentRepository domain.DocumentRepository
	AIRepository       *repository.AIRepository

	AuthService     domain.AuthService
	DocumentService domain.DocumentService
	AIService       domain.AIService

	closers []io.Closer
}

// NewContainer reads configuration, connects to the document store and
// builds every service. Handles created here live until Close.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}
	appLogger := logger.NewLoggerWithFormat(cfg.GetLogLevel(), cfg.GetLogFormat(), os.Stdout)

	c := &Container{
		Config: cfg,
		Logger: appLogger,
	}

	// Initialize MongoDB client
	c.MongoClient = repository.NewMongoClient(cfg, appLogger)
	if err := c.MongoClient.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := c.MongoClient.EnsureIndexes(ctx); err != nil {
		_ = c.MongoClient.Close(ctx)
		return nil, err
	}

	// Initialize repositories
	c.UserRepository = repository.NewUserRepository(c.MongoClient, appLogger)
	c.DocumentRepository = repository.NewDocumentRepository(c.MongoClient, appLogger)
	c.AIRepository = repository.NewAIRepository(c.MongoClient, appLogger)

	c.FileStore, err = newFileStore(cfg, appLogger)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}

	model, err := c.newTextModel(ctx)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	generator := service.NewGenerationService(model, cfg.GetGenerationTimeout(), appLogger)

	// Initialize services
	c.TokenManager = auth.NewTokenManager(cfg.GetJWTSecret(), cfg.GetTokenTTL())
	c.AuthService = service.NewAuthService(c.UserRepository, c.TokenManager, cfg.GetBcryptCost(), appLogger)
	c.DocumentService = service.NewDocumentService(
		c.DocumentRepository,
		c.FileStore,
		service.NewPDFProcessor(appLogger),
		cfg.GetMaxFileSize(),
		appLogger,
	)
	c.AIService = service.NewAIService(generator, c.AIRepository, c.AIRepository, c.AIRepository, appLogger)

	appLogger.Info("Container initialized",
		"database", cfg.GetMongoDatabase(),
		"ai_provider", cfg.GetAIProvider(),
		"storage_backend", cfg.GetStorageBackend(),
		"auth_required", cfg.GetAuthRequired(),
	)
	return c, nil
}

func newFileStore(cfg domain.Config, log domain.Logger) (domain.FileStore, error) {
	switch strings.ToLower(cfg.GetStorageBackend()) {
	case StorageSupabase:
		store, err := supabase.NewFileStore(cfg, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StorageLocal, "":
		store, err := service.NewLocalStorage(cfg.GetUploadPath(), log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.GetStorageBackend())
	}
}

func (c *Container) newTextModel(ctx context.Context) (service.TextModel, error) {
	cfg := c.Config
	switch strings.ToLower(cfg.GetAIProvider()) {
	case ProviderVertex:
		client, err := service.NewVertexClient(ctx, cfg.GetGCPProjectID(), cfg.GetGCPLocation(), cfg.GetGeminiModel())
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client)
		return client, nil
	default:
		client, err := service.NewGeminiClient(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Close releases the model and store handles
func (c *Container) Close(ctx context.Context) error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.MongoClient != nil {
		if err := c.MongoClient.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
