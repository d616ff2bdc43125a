package signals

import (
	"strings"
	"time"

	"raybot-trade-manager/database"
	models "raybot-trade-manager/database/models_pkg"

	"gorm.io/gorm"
)

// Repository handles database operations for trading signals
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new signals repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Normalize applies the write-time invariants to a signal in place:
// direction uppercased, status defaulted to PENDING, generation timestamp
// and soft validity deadline stamped. Numeric fields keep their zero
// defaults when the upstream generator omits them.
func Normalize(signal *models.Signal, now time.Time) {
	signal.Direction = strings.ToUpper(strings.TrimSpace(signal.Direction))
	if signal.Status == "" {
		signal.Status = database.SignalStatusPending
	}
	signal.GeneratedAt = now
	signal.ValidUntil = now.Add(database.SignalValidity)
}

// InsertSignal normalizes and persists a generated signal, returning the
// store-assigned id
func (r *Repository) InsertSignal(signal *models.Signal) (string, error) {
	if r.db == nil {
		return "", database.ErrStoreUnavailable()
	}

	Normalize(signal, time.Now().UTC())

	if err := r.db.Create(signal).Error; err != nil {
		return "", database.WrapDBError("InsertSignal", err)
	}
	return signal.ID, nil
}

// GetPendingSignals retrieves all signals awaiting execution, most recent
// first. An empty ledger is an empty slice, not an error.
func (r *Repository) GetPendingSignals() ([]models.Signal, error) {
	if r.db == nil {
		return nil, database.ErrStoreUnavailable()
	}

	var signals []models.Signal
	err := r.db.
		Where("status = ?", database.SignalStatusPending).
		Order("created_at DESC").
		Find(&signals).Error
	if err != nil {
		return nil, database.WrapDBError("GetPendingSignals", err)
	}
	return signals, nil
}

// GetRecentBySymbol retrieves signals for a symbol created within the
// trailing window, most recent first. Used by drift/PSI analytics.
func (r *Repository) GetRecentBySymbol(symbol string, windowDays int) ([]models.Signal, error) {
	if r.db == nil {
		return nil, database.ErrStoreUnavailable()
	}

	if windowDays <= 0 {
		windowDays = database.DefaultRecentWindowDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)

	var signals []models.Signal
	err := r.db.
		Where("symbol = ?", symbol).
		Where("created_at >= ?", cutoff).
		Order("created_at DESC").
		Find(&signals).Error
	if err != nil {
		return nil, database.WrapDBError("GetRecentBySymbol", err)
	}
	return signals, nil
}
