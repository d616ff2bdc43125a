package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Signal represents a trading recommendation produced by the upstream
// model pipeline. Signals land here with status PENDING and are flipped to
// EXECUTED exactly once, when an operator opens a trade from them. They are
// never deleted by this service.
//
// Key Fields:
//   - Direction: LONG or SHORT, normalized to uppercase on insert
//   - Confidence: raw model score, range unconstrained (whatever the model emits)
//   - PriceAtSignal: market price when the signal was generated
//   - StopLoss/TakeProfit: suggested exit levels, 0 when the model gives none
//   - RegimeGauge: opaque regime metric carried through for analytics
//   - Meta: free-form jsonb blob (audit trail, raw model scores)
//   - ValidUntil: soft expiry one hour after generation; consumers may honor
//     it, this service does not enforce it
type Signal struct {
	ID            string            `gorm:"type:uuid;primaryKey" json:"id"`
	ModelID       *string           `gorm:"type:uuid;index" json:"model_id,omitempty"`
	Symbol        string            `gorm:"size:20;index;not null" json:"symbol"`
	Direction     string            `gorm:"size:10;not null" json:"direction"` // LONG, SHORT
	Confidence    float64           `gorm:"type:decimal(10,4)" json:"confidence"`
	PriceAtSignal float64           `gorm:"type:decimal(20,8)" json:"price_at_signal"`
	StopLoss      float64           `gorm:"column:sl;type:decimal(20,8)" json:"sl"`
	TakeProfit    float64           `gorm:"column:tp;type:decimal(20,8)" json:"tp"`
	RegimeGauge   float64           `gorm:"type:decimal(10,4)" json:"regime_gauge"`
	Meta          datatypes.JSONMap `gorm:"type:jsonb" json:"meta,omitempty"`
	Status        string            `gorm:"size:20;index;not null" json:"status"` // PENDING, EXECUTED
	GeneratedAt   time.Time         `gorm:"not null" json:"generated_at"`
	ValidUntil    time.Time         `gorm:"not null" json:"valid_until"`
	CreatedAt     time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for Signal
func (Signal) TableName() string {
	return "ml_signals"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (s *Signal) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Trade represents a position opened from exactly one signal. A trade
// references its signal; it does not own it. Entry fields are written once
// at creation, exit fields exactly once at close. PnL fields are populated
// if and only if Status is CLOSED.
type Trade struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	SignalID   string     `gorm:"type:uuid;index;not null" json:"signal_id"`
	EntryPrice float64    `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	EntryTime  time.Time  `gorm:"not null" json:"entry_time"`
	Status     string     `gorm:"size:20;index;not null" json:"status"` // OPEN, CLOSED
	ExitPrice  *float64   `gorm:"type:decimal(20,8)" json:"exit_price,omitempty"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
	ExitReason *string    `gorm:"size:20" json:"exit_reason,omitempty"` // MANUAL, TP, SL, TIME_EXIT
	PnlUSD     *float64   `gorm:"column:pnl_usd;type:decimal(20,8)" json:"pnl_usd,omitempty"`
	PnlPct     *float64   `gorm:"column:pnl_pct;type:decimal(20,8)" json:"pnl_pct,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for Trade
func (Trade) TableName() string {
	return "ml_trades"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ModelRegistration describes a named, versioned model. (Name, Version) is
// a natural key: registering the same pair twice returns the existing row.
// Config changes after registration are out of scope, rows are never
// updated or deleted here.
type ModelRegistration struct {
	ID         string            `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string            `gorm:"size:100;not null;uniqueIndex:idx_ml_models_name_version,priority:1" json:"name"`
	Version    string            `gorm:"size:50;not null;uniqueIndex:idx_ml_models_name_version,priority:2" json:"version"`
	ConfigJSON datatypes.JSONMap `gorm:"column:config_json;type:jsonb" json:"config_json,omitempty"`
	IsActive   bool              `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ModelRegistration
func (ModelRegistration) TableName() string {
	return "ml_models"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (m *ModelRegistration) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
