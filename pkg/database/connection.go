package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"

	_ "github.com/lib/pq"
)

// Connection pool configuration constants
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultConnMaxIdleTime = 30 * time.Second
)

// Config holds database connection settings. DSN is the full PostgreSQL
// connection string and has no default: the application refuses to start
// without one rather than silently connecting somewhere unintended.
type Config struct {
	DSN string

	// Connection pool settings (optional)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns a database configuration with default pool settings
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
		ConnMaxIdleTime: DefaultConnMaxIdleTime,
	}
}

type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnection opens a pooled PostgreSQL connection from config
func NewConnection(config Config, log *logger.Logger) (*DB, error) {
	if config.DSN == "" {
		log.Error("Database connection string is not configured")
		return nil, fmt.Errorf("database connection string is empty: set DATABASE_URL")
	}

	log.Info("Establishing database connection")

	db, err := sql.Open("postgres", config.DSN)
	if err != nil {
		log.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	maxOpenConns := config.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = DefaultMaxOpenConns
	}

	maxIdleConns := config.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = DefaultMaxIdleConns
	}

	connMaxLifetime := config.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = DefaultConnMaxLifetime
	}

	connMaxIdleTime := config.ConnMaxIdleTime
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = DefaultConnMaxIdleTime
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	log.Debug("Database connection pool configured",
		"max_open_conns", maxOpenConns,
		"max_idle_conns", maxIdleConns,
		"conn_max_lifetime", connMaxLifetime,
		"conn_max_idle_time", connMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		log.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	log.Info("Database connection established successfully")
	return &DB{DB: db, logger: log}, nil
}

// NewWithDB wraps an existing sql.DB handle. Used by tests that supply
// a mock driver.
func NewWithDB(sqlDB *sql.DB, log *logger.Logger) *DB {
	return &DB{DB: sqlDB, logger: log}
}

// Close closes the database connection
func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

// Ping tests the database connection
func (db *DB) Ping() error {
	return db.DB.Ping()
}

// HealthCheck returns the database health status
func (db *DB) HealthCheck() error {
	db.logger.Debug("Performing database health check")

	if err := db.Ping(); err != nil {
		db.logger.Error("Database health check failed", "error", err)
		return fmt.Errorf("database ping failed: %v", err)
	}

	var result int
	err := db.QueryRow("SELECT 1").Scan(&result)
	if err != nil {
		db.logger.Error("Database query test failed", "error", err)
		return fmt.Errorf("database query test failed: %v", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected query result: got %d, expected 1", result)
	}

	db.logger.Debug("Database health check passed")
	return nil
}

// ExecuteInTransaction executes fn within a transaction, committing once
// at the end. Any error or panic from fn rolls back every statement
// issued so far, so a partial batch never becomes visible.
func (db *DB) ExecuteInTransaction(fn func(*sql.Tx) error) error {
	db.logger.Debug("Starting database transaction")

	tx, err := db.Begin()
	if err != nil {
		db.logger.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			db.logger.Error("Transaction panic, rolling back", "panic", p)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("Failed to rollback transaction", "error", rbErr)
		}
		db.logger.Warn("Transaction failed, rolling back", "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		db.logger.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	db.logger.Debug("Transaction committed successfully")
	return nil
}
