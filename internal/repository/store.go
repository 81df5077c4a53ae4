package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// Common errors returned by the repositories.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Store owns the sqlite handle shared by the repositories. Components take
// it (or a transaction started from it) explicitly, never through a global.
type Store struct {
	db *sql.DB
}

const defaultBusyTimeoutMS = 3000

// Open opens (and creates if needed) the sqlite database at path with the
// default lock wait.
func Open(path string) (*Store, error) {
	return OpenWithBusyTimeout(path, defaultBusyTimeoutMS)
}

// OpenWithBusyTimeout opens the database with an explicit lock wait.
// busy_timeout bounds how long a writer waits for the lock before the
// driver reports SQLITE_BUSY; _txlock=immediate makes write transactions
// take the lock at BEGIN instead of at first write.
func OpenWithBusyTimeout(path string, busyTimeoutMS int) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path, busyTimeoutMS)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// DB exposes the underlying handle for components that start their own
// transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}
