// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codr1/Rosterboard/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	Queries *Queries
}

// New opens a SQLite database for the given data source name, applies the
// embedded migrations and binds the activity queries to the connection.
func New(dataSourceName string) (*DB, error) {
	sqlDB, err := open(dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &DB{
		DB:      sqlDB,
		Queries: NewQueries(sqlDB),
	}, nil
}

// NewFromConfig creates the database directory when needed and opens the
// configured activity log.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}
	return New(cfg.Database.Filename)
}

func open(dataSourceName string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite3", ensureBusyTimeoutDSN(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite serialises writers; one connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)
	return sqlDB, nil
}

// ensureBusyTimeoutDSN adds `_busy_timeout=5000` to the DSN unless one is set.
func ensureBusyTimeoutDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_busy_timeout=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_busy_timeout=5000"
	}
	return dataSourceName + "?_busy_timeout=5000"
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// runMigrations applies every pending embedded migration. "No change" is not an error.
func runMigrations(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// Migrate runs a migration command ("up", "down" or "version") against the
// database at dataSourceName without opening the query layer.
func Migrate(ctx context.Context, dataSourceName, command string) (string, error) {
	sqlDB, err := open(dataSourceName)
	if err != nil {
		return "", err
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return "", fmt.Errorf("error connecting to database: %w", err)
	}

	m, err := newMigrate(sqlDB)
	if err != nil {
		return "", err
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return "", fmt.Errorf("migration up failed: %w", err)
		}
		return "migrations applied", nil
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return "", fmt.Errorf("migration down failed: %w", err)
		}
		return "migrations reverted", nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return "Version: none", nil
		}
		if err != nil {
			return "", fmt.Errorf("get version failed: %w", err)
		}
		return fmt.Sprintf("Version: %d, Dirty: %v", version, dirty), nil
	default:
		return "", fmt.Errorf("unknown command: %s", command)
	}
}
