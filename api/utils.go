package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"raybot-trade-manager/database"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError logs the error and sends a JSON error response
// Use this to avoid exposing internal errors while still logging them
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("API Error [%d]: %s - %v", code, message, err)
	} else {
		log.Printf("API Error [%d]: %s", code, message)
	}
	respondJSON(w, code, map[string]string{"error": message})
}

// respondStoreError maps the repository error taxonomy onto HTTP status
// codes and writes the response
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case database.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error(), nil)
	case database.IsConflict(err):
		respondWithError(w, http.StatusConflict, err.Error(), nil)
	case database.IsValidation(err):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case database.IsStoreUnavailable(err):
		respondWithError(w, http.StatusServiceUnavailable, "store unavailable", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", err)
	}
}

// getIntParam retrieves an integer query parameter with default value and
// optional range validation
func getIntParam(r *http.Request, key string, defaultVal int, minVal, maxVal *int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}

	if minVal != nil && val < *minVal {
		return defaultVal
	}
	if maxVal != nil && val > *maxVal {
		return defaultVal
	}

	return val
}

// parseTimeOrNow parses an RFC3339 timestamp, falling back to the current
// UTC time when the value is empty or malformed. Entry/exit times arrive
// from the dashboard as strings; a missing one means "now".
func parseTimeOrNow(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
