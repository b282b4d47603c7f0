package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"otherproteins-be/internal/config"

	_ "github.com/lib/pq"
)

// Connection acquisition is the single place where transient storage
// contention is retried. Business logic above never re-runs a
// half-completed mutation; it only ever sees a connected pool or a hard
// error after the attempts are exhausted.
const (
	maxConnectAttempts = 5
	baseRetryDelay     = 200 * time.Millisecond
)

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}

// retryDelay returns the exponential backoff delay for the given attempt,
// starting at baseRetryDelay and doubling each time.
func retryDelay(attempt int) time.Duration {
	return baseRetryDelay << attempt
}

// NewDatabase opens and pings a Postgres connection, retrying the whole
// acquisition with bounded exponential backoff before giving up.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	var lastErr error

	for attempt := 0; attempt < maxConnectAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay(attempt - 1))
		}

		db, err := sql.Open(driverName, buildDSN(cfg))
		if err != nil {
			// Driver-level failure, retrying cannot help.
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}

		if err := db.Ping(); err != nil {
			db.Close()
			lastErr = err
			continue
		}

		return db, nil
	}

	return nil, fmt.Errorf("failed to ping DB after %d attempts: %w", maxConnectAttempts, lastErr)
}

// InitDB wires NewDatabase into main, exiting on failure.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	log.Println("Database connection established")
	return db
}
