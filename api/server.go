package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	models "raybot-trade-manager/database/models_pkg"
	"raybot-trade-manager/database/types"
	"raybot-trade-manager/notifications"

	"gorm.io/datatypes"
)

// SignalStore defines the signal operations the API depends on
type SignalStore interface {
	InsertSignal(signal *models.Signal) (string, error)
	GetPendingSignals() ([]models.Signal, error)
	GetRecentBySymbol(symbol string, windowDays int) ([]models.Signal, error)
}

// TradeLedger defines the trade operations the API depends on
type TradeLedger interface {
	CreateTradeFromSignal(signalID string, fillPrice float64, entryTime time.Time) (*models.Trade, error)
	CloseTrade(tradeID string, exitPrice float64, exitTime time.Time, exitReason string) (*models.Trade, error)
	GetOpenTrades() ([]types.OpenTradeView, error)
}

// ModelRegistry defines the registry operations the API depends on
type ModelRegistry interface {
	RegisterModel(name, version string, config datatypes.JSONMap) (string, error)
	GetDriftBaseline(symbol string) (*types.DriftBaseline, error)
}

// Server handles HTTP API requests from the operator dashboard and the
// upstream signal generator
type Server struct {
	signals   SignalStore
	trades    TradeLedger
	registry  ModelRegistry
	events    *notifications.Publisher
	wsHandler http.Handler

	// adminPassword is the placeholder shared-secret gate, not an auth
	// system. Single operator, single secret.
	adminPassword string
}

// NewServer creates a new API server instance
func NewServer(signals SignalStore, trades TradeLedger, registry ModelRegistry, events *notifications.Publisher, wsHandler http.Handler, adminPassword string) *Server {
	return &Server{
		signals:       signals,
		trades:        trades,
		registry:      registry,
		events:        events,
		wsHandler:     wsHandler,
		adminPassword: adminPassword,
	}
}

// Handler builds the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Signal Store Routes
	mux.HandleFunc("GET /api/signals/pending", s.handleGetPendingSignals)
	mux.HandleFunc("GET /api/signals/recent", s.handleGetRecentSignals)
	mux.HandleFunc("POST /api/signals", s.handleInsertSignal)

	// Trade Ledger Routes
	mux.HandleFunc("GET /api/trades/open", s.handleGetOpenTrades)
	mux.HandleFunc("POST /api/trades", s.handleCreateTrade)
	mux.HandleFunc("POST /api/trades/{id}/close", s.handleCloseTrade)

	// Model Registry Routes
	mux.HandleFunc("POST /api/models", s.handleRegisterModel)
	mux.HandleFunc("GET /api/models/drift-baseline", s.handleGetDriftBaseline)

	// Realtime dashboard updates
	if s.wsHandler != nil {
		mux.Handle("GET /ws", s.wsHandler)
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(s.authMiddleware(mux)))
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, s.Handler())
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Password")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// authMiddleware is the operator password gate. Health stays open for
// probes; everything else requires the shared secret in the
// X-Admin-Password header (or a password query parameter, which the
// WebSocket client uses since it cannot set headers).
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		supplied := r.Header.Get("X-Admin-Password")
		if supplied == "" {
			supplied = r.URL.Query().Get("password")
		}
		if s.adminPassword != "" && supplied != s.adminPassword {
			respondWithError(w, http.StatusUnauthorized, "admin password required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
