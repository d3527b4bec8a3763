// Package repomanager provides a concrete RepositoryManager for the supported
// SQL backends, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/migrations"
	"github.com/Tao1925/poc-web/internal/server/repositories/answers"
	"github.com/Tao1925/poc-web/internal/server/repositories/chapters"
	"github.com/Tao1925/poc-web/internal/server/repositories/questions"
	"github.com/Tao1925/poc-web/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook for its dialect.
type SQLRepositoryManager struct {
	dialect string
	dir     string
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Chapters returns a chapters.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Chapters(db dbx.DBTX) chapters.Repository {
	return chapters.NewSQLRepository(db)
}

// Questions returns a questions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Questions(db dbx.DBTX) questions.Repository {
	return questions.NewSQLRepository(db)
}

// Answers returns an answers.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Answers(db dbx.DBTX) answers.Repository {
	return answers.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dir); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for the given
// database/sql driver name (dbx.DriverPostgres or dbx.DriverSQLite).
func NewSQLRepositoryManager(driver string) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return &SQLRepositoryManager{dialect: "pgx", dir: "postgres"}, nil
	case dbx.DriverSQLite:
		return &SQLRepositoryManager{dialect: "sqlite3", dir: "sqlite"}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
