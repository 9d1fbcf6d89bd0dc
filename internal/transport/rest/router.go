package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"questdeck/internal/service"
	"questdeck/internal/transport/rest/handler"
	"questdeck/internal/transport/rest/middleware"
	"questdeck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	CatalogService  *service.CatalogService
	DecisionService *service.DecisionService
	PassageService  *service.PassageService
	Generator       handler.Generator
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.CatalogService, c.WSHub)
	decisionHandler := handler.NewDecisionHandler(c.DecisionService)
	passageHandler := handler.NewPassageHandler(c.PassageService, c.DecisionService, c.Generator)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/events", wsHandler.EventsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/catalog/types", catalogHandler.ListTypes).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/catalog/requirements", catalogHandler.ListRequirements).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/catalog/reload", catalogHandler.Reload).Methods("POST", "OPTIONS")

	hostRoutes.HandleFunc("/decisions", decisionHandler.Decide).Methods("POST", "OPTIONS")

	hostRoutes.HandleFunc("/passages", passageHandler.Upsert).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/passages", passageHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/passages/{textId}", passageHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/passages/{textId}/questions", passageHandler.Generate).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/passages/{textId}/questions", passageHandler.GetQuestions).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
