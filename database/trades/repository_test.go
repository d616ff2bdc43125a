package trades

import (
	"math"
	"testing"
	"time"

	"raybot-trade-manager/database"
	models "raybot-trade-manager/database/models_pkg"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Signal{}, &models.Trade{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedSignal(t *testing.T, db *gorm.DB, direction string) *models.Signal {
	t.Helper()
	now := time.Now().UTC()
	signal := &models.Signal{
		Symbol:      "BTCUSDT",
		Direction:   direction,
		Confidence:  0.8,
		Status:      database.SignalStatusPending,
		GeneratedAt: now,
		ValidUntil:  now.Add(database.SignalValidity),
	}
	if err := db.Create(signal).Error; err != nil {
		t.Fatalf("failed to seed signal: %v", err)
	}
	return signal
}

func TestCreateTradeFromSignalFlipsStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionLong)

	trade, err := repo.CreateTradeFromSignal(signal.ID, 50050, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateTradeFromSignal failed: %v", err)
	}
	if trade.Status != database.TradeStatusOpen {
		t.Errorf("expected trade status %s, got %s", database.TradeStatusOpen, trade.Status)
	}
	if trade.SignalID != signal.ID {
		t.Errorf("expected signal id %s, got %s", signal.ID, trade.SignalID)
	}

	var stored models.Signal
	if err := db.Where("id = ?", signal.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload signal: %v", err)
	}
	if stored.Status != database.SignalStatusExecuted {
		t.Errorf("expected signal status %s, got %s", database.SignalStatusExecuted, stored.Status)
	}
}

func TestCreateTradeFromSignalMissingSignalRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.CreateTradeFromSignal("missing-signal", 100, time.Now().UTC())
	if !database.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Trade{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count trades: %v", err)
	}
	if count != 0 {
		t.Errorf("expected trade insert rolled back, found %d rows", count)
	}
}

func TestCloseTradeComputesPnl(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionLong)

	trade, err := repo.CreateTradeFromSignal(signal.ID, 50050, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateTradeFromSignal failed: %v", err)
	}

	closed, err := repo.CloseTrade(trade.ID, 51050, time.Now().UTC(), database.ExitReasonTP)
	if err != nil {
		t.Fatalf("CloseTrade failed: %v", err)
	}
	if closed.Status != database.TradeStatusClosed {
		t.Errorf("expected status %s, got %s", database.TradeStatusClosed, closed.Status)
	}
	if closed.PnlUSD == nil || math.Abs(*closed.PnlUSD-1000) > 1e-9 {
		t.Errorf("expected pnl_usd 1000, got %v", closed.PnlUSD)
	}
	wantPct := 1000.0 / 50050.0
	if closed.PnlPct == nil || math.Abs(*closed.PnlPct-wantPct) > 1e-9 {
		t.Errorf("expected pnl_pct %v, got %v", wantPct, closed.PnlPct)
	}
	if closed.ExitReason == nil || *closed.ExitReason != database.ExitReasonTP {
		t.Errorf("expected exit reason %s, got %v", database.ExitReasonTP, closed.ExitReason)
	}
}

func TestCloseTradeShortDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionShort)

	trade, err := repo.CreateTradeFromSignal(signal.ID, 100, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateTradeFromSignal failed: %v", err)
	}

	closed, err := repo.CloseTrade(trade.ID, 90, time.Now().UTC(), database.ExitReasonManual)
	if err != nil {
		t.Fatalf("CloseTrade failed: %v", err)
	}
	if closed.PnlUSD == nil || math.Abs(*closed.PnlUSD-10) > 1e-9 {
		t.Errorf("expected pnl_usd 10, got %v", closed.PnlUSD)
	}
	if closed.PnlPct == nil || math.Abs(*closed.PnlPct-0.1) > 1e-9 {
		t.Errorf("expected pnl_pct 0.1, got %v", closed.PnlPct)
	}
}

func TestCloseTradeTwiceConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionLong)

	trade, err := repo.CreateTradeFromSignal(signal.ID, 100, time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateTradeFromSignal failed: %v", err)
	}
	first, err := repo.CloseTrade(trade.ID, 110, time.Now().UTC(), database.ExitReasonManual)
	if err != nil {
		t.Fatalf("first close failed: %v", err)
	}

	_, err = repo.CloseTrade(trade.ID, 200, time.Now().UTC(), database.ExitReasonManual)
	if !database.IsConflict(err) {
		t.Fatalf("expected ConflictError on second close, got %v", err)
	}

	// Recorded PnL survives the rejected second close
	var stored models.Trade
	if err := db.Where("id = ?", trade.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload trade: %v", err)
	}
	if stored.PnlUSD == nil || *stored.PnlUSD != *first.PnlUSD {
		t.Errorf("expected pnl_usd %v preserved, got %v", first.PnlUSD, stored.PnlUSD)
	}
}

func TestCloseTradeZeroEntryPrice(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionLong)

	trade := &models.Trade{
		SignalID:   signal.ID,
		EntryPrice: 0,
		EntryTime:  time.Now().UTC(),
		Status:     database.TradeStatusOpen,
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to seed trade: %v", err)
	}

	_, err := repo.CloseTrade(trade.ID, 100, time.Now().UTC(), database.ExitReasonManual)
	if !database.IsValidation(err) {
		t.Fatalf("expected ValidationError for zero entry price, got %v", err)
	}
}

func TestCloseTradeMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.CloseTrade("missing-trade", 100, time.Now().UTC(), database.ExitReasonManual)
	if !database.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetOpenTradesProjectsSignalFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	signal := seedSignal(t, db, database.DirectionShort)

	if _, err := repo.CreateTradeFromSignal(signal.ID, 100, time.Now().UTC()); err != nil {
		t.Fatalf("CreateTradeFromSignal failed: %v", err)
	}

	views, err := repo.GetOpenTrades()
	if err != nil {
		t.Fatalf("GetOpenTrades failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 open trade, got %d", len(views))
	}
	if views[0].Symbol != signal.Symbol {
		t.Errorf("expected symbol %s, got %s", signal.Symbol, views[0].Symbol)
	}
	if views[0].Direction != database.DirectionShort {
		t.Errorf("expected direction %s, got %s", database.DirectionShort, views[0].Direction)
	}
}

func TestRepositoryNilConnection(t *testing.T) {
	repo := NewRepository(nil)

	if _, err := repo.CreateTradeFromSignal("sig", 100, time.Now().UTC()); !database.IsStoreUnavailable(err) {
		t.Errorf("expected StoreUnavailableError from create, got %v", err)
	}
	if _, err := repo.CloseTrade("trade", 100, time.Now().UTC(), database.ExitReasonManual); !database.IsStoreUnavailable(err) {
		t.Errorf("expected StoreUnavailableError from close, got %v", err)
	}
	if _, err := repo.GetOpenTrades(); !database.IsStoreUnavailable(err) {
		t.Errorf("expected StoreUnavailableError from list, got %v", err)
	}
}
