package api

import (
	"encoding/json"
	"net/http"

	"raybot-trade-manager/database"
	"raybot-trade-manager/database/types"
	"raybot-trade-manager/notifications"
)

// Trade Ledger Handlers

// createTradeRequest is the execution command submitted by the operator
// when converting a pending signal into an open position
type createTradeRequest struct {
	SignalID  string  `json:"signal_id"`
	FillPrice float64 `json:"fill_price"`
	EntryTime string  `json:"entry_time,omitempty"` // RFC3339, defaults to now
}

// closeTradeRequest is the close command for an open position
type closeTradeRequest struct {
	ExitPrice  float64 `json:"exit_price"`
	ExitTime   string  `json:"exit_time,omitempty"` // RFC3339, defaults to now
	ExitReason string  `json:"exit_reason,omitempty"`
}

// handleGetOpenTrades returns all open positions with symbol/direction/
// confidence projected from the originating signals
func (s *Server) handleGetOpenTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.trades.GetOpenTrades()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if trades == nil {
		trades = []types.OpenTradeView{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  trades,
		"count": len(trades),
	})
}

// handleCreateTrade opens a position from a pending signal at the
// operator's fill price
func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.SignalID == "" {
		respondWithError(w, http.StatusBadRequest, "signal_id is required", nil)
		return
	}

	trade, err := s.trades.CreateTradeFromSignal(req.SignalID, req.FillPrice, parseTimeOrNow(req.EntryTime))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.events.Publish(notifications.EventTradeOpened, trade)

	respondJSON(w, http.StatusCreated, trade)
}

// handleCloseTrade closes an open position at the operator's exit price,
// recording realized PnL
func (s *Server) handleCloseTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := r.PathValue("id")

	var req closeTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.ExitReason == "" {
		req.ExitReason = database.ExitReasonManual
	}
	if !database.ValidExitReason(req.ExitReason) {
		respondWithError(w, http.StatusBadRequest, "exit_reason must be one of MANUAL, TP, SL, TIME_EXIT", nil)
		return
	}

	trade, err := s.trades.CloseTrade(tradeID, req.ExitPrice, parseTimeOrNow(req.ExitTime), req.ExitReason)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.events.Publish(notifications.EventTradeClosed, trade)

	respondJSON(w, http.StatusOK, trade)
}
