package handler

import (
	"net/http"
	"strings"

	"pdf-chatbot-api/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	serviceName    = "pdf-chatbot-api"
	welcomeMessage = "Welcome to the AI-Powered PDF Chatbot API! (Now using Gemini 2.0 Flash)"
)

// NewRouter creates a new HTTP router with all routes configured. userScope
// wraps the routes that act on behalf of a user: AuthMiddleware.Optional or,
// when authentication is mandatory, AuthMiddleware.Middleware.
func NewRouter(
	authHandler *AuthHandler,
	documentHandler *DocumentHandler,
	aiHandler *AIHandler,
	userScope func(http.Handler) http.Handler,
	logger domain.Logger,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	}).Methods(http.MethodGet)

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	}).Methods(http.MethodGet)

	// Auth routes
	handlePost(router, "/register", http.HandlerFunc(authHandler.Register))
	handlePost(router, "/login", http.HandlerFunc(authHandler.Login))

	// Document routes
	handlePost(router, "/upload_pdf", http.HandlerFunc(documentHandler.UploadPDF))
	router.HandleFunc("/static/{filename}", documentHandler.ServeStatic).Methods(http.MethodGet)

	// AI routes
	handlePost(router, "/summarize", userScope(http.HandlerFunc(aiHandler.Summarize)))
	handlePost(router, "/translate", http.HandlerFunc(aiHandler.Translate))
	handlePost(router, "/ask_question", http.HandlerFunc(aiHandler.AskQuestion))
	router.Handle("/user/{user_id}/summaries", userScope(http.HandlerFunc(aiHandler.ListUserSummaries))).Methods(http.MethodGet)

	var handler http.Handler = router
	handler = RecoveryMiddleware(logger)(handler)
	handler = LoggingMiddleware(logger)(handler)
	handler = RequestIDMiddleware(handler)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			"X-Request-Id",
		},
		ExposedHeaders: []string{
			"Link",
			"X-Request-Id",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(handler)
}

// handlePost registers a POST route under both its slash and non-slash form
func handlePost(router *mux.Router, path string, h http.Handler) {
	path = strings.TrimSuffix(path, "/")
	router.Handle(path, h).Methods(http.MethodPost)
	router.Handle(path+"/", h).Methods(http.MethodPost)
}
