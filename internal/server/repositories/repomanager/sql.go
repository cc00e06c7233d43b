// Package repomanager provides a concrete RepositoryManager for the
// supported SQL engines, wiring together repository constructors and
// database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/dbx"
	"github.com/dmitrijs2005/gophmessenger/internal/server/migrations"
	"github.com/dmitrijs2005/gophmessenger/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophmessenger/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook for its driver's dialect.
type SQLRepositoryManager struct {
	driver string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Messages returns a messages.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// migrationSource returns the goose dialect and embedded directory for driver.
func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case dbx.DriverPgx, dbx.DriverPostgres:
		return "postgres", migrations.PostgresDir, nil
	case dbx.DriverSQLite:
		return "sqlite3", migrations.SQLiteDir, nil
	}
	return "", "", fmt.Errorf("%w: no migrations for driver %q", common.ErrorConfiguration, driver)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	dialect, dir, err := migrationSource(m.driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for the named
// database/sql driver.
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	if _, _, err := migrationSource(driver); err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{driver: driver}, nil
}
