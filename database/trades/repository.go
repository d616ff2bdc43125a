package trades

import (
	"log"
	"time"

	"raybot-trade-manager/database"
	models "raybot-trade-manager/database/models_pkg"
	"raybot-trade-manager/database/types"

	"gorm.io/gorm"
)

// Repository handles the signal -> trade -> closed-trade state machine and
// the realized PnL arithmetic
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new trades repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTradeFromSignal opens an OPEN trade against a signal and flips the
// signal to EXECUTED. Both writes run in one transaction so readers never
// observe an open trade against a still-PENDING signal.
func (r *Repository) CreateTradeFromSignal(signalID string, fillPrice float64, entryTime time.Time) (*models.Trade, error) {
	if r.db == nil {
		return nil, database.ErrStoreUnavailable()
	}

	trade := &models.Trade{
		SignalID:   signalID,
		EntryPrice: fillPrice,
		EntryTime:  entryTime,
		Status:     database.TradeStatusOpen,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trade).Error; err != nil {
			return database.WrapDBError("CreateTradeFromSignal: insert trade", err)
		}

		res := tx.Model(&models.Signal{}).
			Where("id = ?", signalID).
			Update("status", database.SignalStatusExecuted)
		if res.Error != nil {
			return database.WrapDBError("CreateTradeFromSignal: mark signal executed", res.Error)
		}
		if res.RowsAffected == 0 {
			return database.NewNotFoundError("signal", signalID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return trade, nil
}

// CloseTrade closes a trade at the given exit price, computing realized
// PnL from the originating signal's direction. The trade must exist and
// still be OPEN; a second close is rejected rather than silently
// overwriting the recorded PnL. The closing write is conditional on the
// row still being OPEN, so concurrent closes resolve to a single winner.
func (r *Repository) CloseTrade(tradeID string, exitPrice float64, exitTime time.Time, exitReason string) (*models.Trade, error) {
	if r.db == nil {
		return nil, database.ErrStoreUnavailable()
	}

	var trade models.Trade
	err := r.db.Where("id = ?", tradeID).First(&trade).Error
	if err == gorm.ErrRecordNotFound {
		return nil, database.NewNotFoundError("trade", tradeID)
	}
	if err != nil {
		return nil, database.WrapDBError("CloseTrade: fetch trade", err)
	}

	if trade.Status == database.TradeStatusClosed {
		return nil, database.NewConflictError("trade", tradeID, "already closed")
	}

	if trade.EntryPrice == 0 {
		return nil, database.NewValidationError("entry_price", "must be non-zero to compute pnl_pct", trade.EntryPrice)
	}

	direction := r.signalDirection(trade.SignalID)
	pnlUSD, pnlPct := PnL(direction, trade.EntryPrice, exitPrice)

	updates := map[string]interface{}{
		"exit_price":  exitPrice,
		"exit_time":   exitTime,
		"exit_reason": exitReason,
		"pnl_usd":     pnlUSD,
		"pnl_pct":     pnlPct,
		"status":      database.TradeStatusClosed,
	}
	res := r.db.Model(&models.Trade{}).
		Where("id = ? AND status = ?", tradeID, database.TradeStatusOpen).
		Updates(updates)
	if res.Error != nil {
		return nil, database.WrapDBError("CloseTrade: update trade", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a close race after the fetch above
		return nil, database.NewConflictError("trade", tradeID, "already closed")
	}

	trade.ExitPrice = &exitPrice
	trade.ExitTime = &exitTime
	trade.ExitReason = &exitReason
	trade.PnlUSD = &pnlUSD
	trade.PnlPct = &pnlPct
	trade.Status = database.TradeStatusClosed
	return &trade, nil
}

// signalDirection looks up the originating signal's direction for PnL
// sign. A missing or unjoinable signal falls back to LONG; the close must
// never hard-fail on a denormalized read, but the fallback is logged so it
// stays observable.
func (r *Repository) signalDirection(signalID string) string {
	var signal models.Signal
	err := r.db.Select("direction").Where("id = ?", signalID).First(&signal).Error
	if err != nil || signal.Direction == "" {
		log.Printf("⚠️  Direction lookup failed for signal %s, defaulting to LONG", signalID)
		return database.DirectionLong
	}
	return signal.Direction
}

// GetOpenTrades retrieves all OPEN trades, most recent first, each
// augmented at read time with symbol/direction/confidence projected from
// the originating signal. The join is LEFT so a missing signal leaves the
// projection blank instead of dropping the row or failing the list.
func (r *Repository) GetOpenTrades() ([]types.OpenTradeView, error) {
	if r.db == nil {
		return nil, database.ErrStoreUnavailable()
	}

	var views []types.OpenTradeView
	err := r.db.Table("ml_trades").
		Select("ml_trades.*, ml_signals.symbol AS symbol, ml_signals.direction AS direction, ml_signals.confidence AS confidence").
		Joins("LEFT JOIN ml_signals ON ml_signals.id = ml_trades.signal_id").
		Where("ml_trades.status = ?", database.TradeStatusOpen).
		Order("ml_trades.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, database.WrapDBError("GetOpenTrades", err)
	}
	return views, nil
}
