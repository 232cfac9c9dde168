package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MavJames/ncaab-modeling-code/internal/service"
	"github.com/MavJames/ncaab-modeling-code/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port   string
	server *http.Server
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, features *service.FeatureService, predictions *service.PredictionService) *Server {
	handler := NewHandler(db, features, predictions)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")

	// Features
	api.HandleFunc("/features", handler.GetFeaturesByDate).Methods("GET")
	api.HandleFunc("/features/teams/{team}", handler.GetFeaturesByTeam).Methods("GET")

	// Predictions
	api.HandleFunc("/predictions", handler.GetPredictionsByDate).Methods("GET")

	// Pipeline operations
	api.HandleFunc("/pipeline/run", handler.RunPipeline).Methods("POST")
	api.HandleFunc("/pipeline/status", handler.GetPipelineStatus).Methods("GET")

	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
