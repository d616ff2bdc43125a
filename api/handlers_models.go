package api

import (
	"encoding/json"
	"net/http"

	"gorm.io/datatypes"
)

// Model Registry Handlers

type registerModelRequest struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Config  datatypes.JSONMap `json:"config,omitempty"`
}

// handleRegisterModel registers a (name, version) model pair, returning
// the existing id when the pair is already registered
func (s *Server) handleRegisterModel(w http.ResponseWriter, r *http.Request) {
	var req registerModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" || req.Version == "" {
		respondWithError(w, http.StatusBadRequest, "name and version are required", nil)
		return
	}

	id, err := s.registry.RegisterModel(req.Name, req.Version, req.Config)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetDriftBaseline reports the drift baseline for a symbol. The
// baseline store is not populated yet, so the response is always absent.
func (s *Server) handleGetDriftBaseline(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		respondWithError(w, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	baseline, err := s.registry.GetDriftBaseline(symbol)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":    symbol,
		"available": baseline != nil,
		"data":      baseline,
	})
}
