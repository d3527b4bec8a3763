package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewSQLRepositoryManager_Dialects(t *testing.T) {
	m, err := NewSQLRepositoryManager(dbx.DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, &SQLRepositoryManager{dialect: "pgx", dir: "postgres"}, m)

	m, err = NewSQLRepositoryManager(dbx.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, &SQLRepositoryManager{dialect: "sqlite3", dir: "sqlite"}, m)

	_, err = NewSQLRepositoryManager("oracle")
	require.ErrorContains(t, err, `unsupported database driver "oracle"`)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &SQLRepositoryManager{}

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if c := m.Chapters(db); c == nil {
		t.Fatal("Chapters() nil")
	}
	if q := m.Questions(db); q == nil {
		t.Fatal("Questions() nil")
	}
	if a := m.Answers(db); a == nil {
		t.Fatal("Answers() nil")
	}
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m, err := NewSQLRepositoryManager(dbx.DriverPostgres)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background(), db))
	assert.Equal(t, "postgres", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &SQLRepositoryManager{dialect: "sqlite3", dir: "sqlite"}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRunMigrations_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "quiz.db"))
	require.NoError(t, err)
	defer db.Close()

	m, err := NewSQLRepositoryManager(dbx.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))
	// Re-running is a no-op.
	require.NoError(t, m.RunMigrations(ctx, db))

	u, err := m.Users(db).Create(ctx, &models.User{Username: "alice"})
	require.NoError(t, err)
	c, err := m.Chapters(db).Create(ctx, &models.Chapter{Title: "Basics", SortOrder: sql.NullInt64{Int64: 1, Valid: true}})
	require.NoError(t, err)
	q, err := m.Questions(db).Create(ctx, &models.Question{Title: "Q1", ChapterID: c.ID})
	require.NoError(t, err)

	a, err := m.Answers(db).Upsert(ctx, &models.Answer{Content: "first", QuestionID: q.ID, UserID: u.ID})
	require.NoError(t, err)
	again, err := m.Answers(db).Upsert(ctx, &models.Answer{Content: "second", QuestionID: q.ID, UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, again.ID)

	got, err := m.Answers(db).FindByQuestionTitleAndUser(ctx, "Q1", u.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)

	// Answers pin both their question and their user.
	_, err = m.Users(db).DeleteByIDs(ctx, []int64{u.ID})
	require.Error(t, err)

	n, err := m.Answers(db).DeleteByChapterIDs(ctx, []int64{c.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = m.Users(db).DeleteByIDs(ctx, []int64{u.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
