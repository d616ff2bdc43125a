package api

import (
	"encoding/json"
	"net/http"

	models "raybot-trade-manager/database/models_pkg"
	"raybot-trade-manager/notifications"
)

// Signal Store Handlers

// handleGetPendingSignals returns all signals awaiting execution, most
// recent first
func (s *Server) handleGetPendingSignals(w http.ResponseWriter, r *http.Request) {
	signals, err := s.signals.GetPendingSignals()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if signals == nil {
		signals = []models.Signal{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  signals,
		"count": len(signals),
	})
}

// handleGetRecentSignals returns signals for a symbol within a trailing
// window of days (drift/PSI analytics support)
func (s *Server) handleGetRecentSignals(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		respondWithError(w, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	minDays := 1
	maxDays := 365
	days := getIntParam(r, "days", 30, &minDays, &maxDays)

	signals, err := s.signals.GetRecentBySymbol(symbol, days)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if signals == nil {
		signals = []models.Signal{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":   signals,
		"count":  len(signals),
		"symbol": symbol,
		"days":   days,
	})
}

// handleInsertSignal records a generated signal from the upstream pipeline
func (s *Server) handleInsertSignal(w http.ResponseWriter, r *http.Request) {
	var signal models.Signal
	if err := json.NewDecoder(r.Body).Decode(&signal); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if signal.Symbol == "" {
		respondWithError(w, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	id, err := s.signals.InsertSignal(&signal)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.events.Publish(notifications.EventSignalReceived, signal)

	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}
