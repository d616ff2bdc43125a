package database

import (
	"fmt"
	"log"

	models "raybot-trade-manager/database/models_pkg"
)

// Repository bundles the three domain repositories behind one construction
// point so the application wires a single object. The sub-repositories are
// created in the subpackages (signals, trades, registry) by app wiring;
// this type owns schema initialization only.
type Repository struct {
	db *Database
}

// NewRepository creates the schema-owning repository
func NewRepository(db *Database) *Repository {
	return &Repository{db: db}
}

// InitSchema performs auto-migration for the three tables backing the
// trade manager. Signals are written by the upstream generator, trades by
// the operator surface, model registrations by pipeline bootstrap. The
// drift-baseline table is deliberately absent: nothing consumes it yet and
// its read path is a documented stub.
func (r *Repository) InitSchema() error {
	if r.db == nil || r.db.DB() == nil {
		log.Println("⚠️  Skipping schema initialization: store unavailable")
		return ErrStoreUnavailable()
	}

	log.Println("🔄 Starting database schema initialization...")

	err := r.db.DB().AutoMigrate(
		&models.Signal{},
		&models.Trade{},
		&models.ModelRegistration{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Composite index backing the open-trades join projection
	r.db.DB().Exec(`
		CREATE INDEX IF NOT EXISTS idx_ml_trades_status_created
		ON ml_trades (status, created_at DESC)
	`)

	// Pending-signal listing is the hottest read on the dashboard
	r.db.DB().Exec(`
		CREATE INDEX IF NOT EXISTS idx_ml_signals_status_created
		ON ml_signals (status, created_at DESC)
	`)

	log.Println("✅ Database schema initialized")
	return nil
}
