package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-chatbot-api/internal/config"
	"pdf-chatbot-api/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := config.NewContainer(startCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := container.Config

	// Handlers
	authHandler := handler.NewAuthHandler(
		container.AuthService,
		container.Logger,
	)

	documentHandler := handler.NewDocumentHandler(
		container.DocumentService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)

	aiHandler := handler.NewAIHandler(
		container.AIService,
		container.Logger,
	)

	authMiddleware := handler.NewAuthMiddleware(
		container.AuthService,
		container.Logger,
	)
	userScope := authMiddleware.Optional
	if cfg.GetAuthRequired() {
		userScope = authMiddleware.Middleware
	}

	// Router
	router := handler.NewRouter(
		authHandler,
		documentHandler,
		aiHandler,
		userScope,
		container.Logger,
		cfg.GetCORSAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Server forced to shutdown", err)
	}
	if err := container.Close(ctx); err != nil {
		container.Logger.Error("Failed to release resources", err)
	}

	container.Logger.Info("Server exited")
}
