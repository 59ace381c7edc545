package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig holds connection pool settings for the SQLite registry database.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RegistryDB wraps the SQLite connection holding the lock hospital registry
// tables (documents, stations, station_reports, women_admission, troops,
// hospital_operations, hospital_notes).
type RegistryDB struct {
	conn *sql.DB
	path string
}

// NewRegistryDB opens the registry database with default pool settings.
func NewRegistryDB(dbPath string) (*RegistryDB, error) {
	return NewRegistryDBWithConfig(dbPath, DBConfig{})
}

// NewRegistryDBWithConfig opens the registry database and applies schema
// migrations. The returned handle is safe for concurrent use.
func NewRegistryDBWithConfig(dbPath string, config DBConfig) (*RegistryDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must stay at
	// one connection that never expires or the schema vanishes mid-test.
	if isInMemory(dbPath) {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		applyPoolConfig(conn, config)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping registry database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// WAL lets concurrent readers proceed while a standardization pass writes.
	if !isInMemory(dbPath) {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			slog.Warn("Failed to enable WAL mode", "error", err)
		}
	}

	db := &RegistryDB{conn: conn, path: dbPath}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize registry schema: %w", err)
	}

	return db, nil
}

// applyPoolConfig caps the connection pool. SQLite handles large connection
// counts poorly, so unset values fall back to conservative defaults.
func applyPoolConfig(conn *sql.DB, config DBConfig) {
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}
}

// isInMemory reports whether the path refers to an in-memory SQLite database.
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// GetDB exposes the underlying *sql.DB for callers that manage transactions.
func (db *RegistryDB) GetDB() *sql.DB {
	return db.conn
}

// Path returns the database file path this handle was opened with.
func (db *RegistryDB) Path() string {
	return db.path
}

// Query passes through to the underlying connection.
func (db *RegistryDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow passes through to the underlying connection.
func (db *RegistryDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Exec passes through to the underlying connection.
func (db *RegistryDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Close closes the underlying connection.
func (db *RegistryDB) Close() error {
	return db.conn.Close()
}
