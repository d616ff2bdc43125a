package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PreflightConfig holds the connection parameters for the startup probe
type PreflightConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Preflight verifies the store is reachable before GORM takes over. It
// opens a plain database/sql connection, tunes the pool the way the main
// connection will be tuned, and pings. A failure here does not stop the
// service; the caller logs it and runs degraded.
func Preflight(cfg PreflightConfig) error {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return &StoreUnavailableError{Err: err}
	}
	defer conn.Close()

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return &StoreUnavailableError{Err: err}
	}
	return nil
}
