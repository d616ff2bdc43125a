// Package database provides store access for the manual trade manager.
//
// This package includes:
//   - Connection management using GORM and PostgreSQL
//   - A connectivity preflight probe over database/sql (lib/pq)
//   - The typed error taxonomy shared by all repositories
//
// Key Concepts:
//   - One long-lived *Database is constructed at process start and injected
//     into the repositories; it holds no per-call mutable state and is safe
//     for concurrent use (gorm.DB is documented as goroutine-safe)
//   - When the store cannot be reached at startup the service keeps running
//     and every operation degrades to a StoreUnavailableError instead of
//     crashing the process
//
// Data Models:
//
//	All persisted models (Signal, Trade, ModelRegistration) are defined in
//	the models_pkg package to avoid circular import dependencies.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "raybot-trade-manager/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance. It serves as the central connection point for all
// repository operations.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance, or nil when the
// service is running degraded without a store connection.
func (d *Database) DB() *gorm.DB {
	if d == nil {
		return nil
	}
	return d.db
}

// Connect establishes the database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, &StoreUnavailableError{Err: err}
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// Type Aliases
// ============================================================================

// Persisted models re-exported so callers can stay on the database package.

type Signal = models.Signal
type Trade = models.Trade
type ModelRegistration = models.ModelRegistration
