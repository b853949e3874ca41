package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datallboy/ytweb/internal/infra/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// PersistentStore keeps the download history in sqlite or postgres.
type PersistentStore struct {
	db     *sql.DB
	driver string
}

// Open builds the store selected by cfg.Driver. It returns (nil, nil) when
// history is disabled.
func Open(cfg config.StoreConfig) (*PersistentStore, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	case config.StoreDriverPostgres:
		return NewPostgres(cfg.PostgresDSN)
	case config.StoreDriverNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func NewSQLite(dbPath string) (*PersistentStore, error) {
	dbDir := filepath.Dir(dbPath)

	// Ensure the database directory exists
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	return newStore(db, config.StoreDriverSQLite)
}

func NewPostgres(dsn string) (*PersistentStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	return newStore(db, config.StoreDriverPostgres)
}

func newStore(db *sql.DB, driver string) (*PersistentStore, error) {
	// Ping makes sure the database is actually reachable and the DSN is valid
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	store := &PersistentStore{db: db, driver: driver}

	if err := store.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}

	return store, nil
}

func (s *PersistentStore) Close() error {
	return s.db.Close()
}
