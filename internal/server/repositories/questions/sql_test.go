package questions

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "title", "description", "question_number", "total_score", "sort_order", "chapter_id"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewSQLRepository(db), mock, db
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols).
		AddRow(int64(1), "Question A", "desc", "1.1", 5.0, int64(1), int64(10)).
		AddRow(int64(2), "Question B", nil, nil, 0.0, nil, int64(10))
	mock.ExpectQuery(`(?s)^SELECT\s+q\.id,.*FROM\s+questions\s+q\s+ORDER\s+BY\s+q\.id\s*$`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, &models.Question{
		ID:             1,
		Title:          "Question A",
		Description:    sql.NullString{String: "desc", Valid: true},
		QuestionNumber: sql.NullString{String: "1.1", Valid: true},
		TotalScore:     5,
		SortOrder:      sql.NullInt64{Int64: 1, Valid: true},
		ChapterID:      10,
	}, got[0])
	assert.False(t, got[1].SortOrder.Valid)
}

func TestListByChapter_FiltersAndOrders(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+q\.chapter_id\s*=\s*\$1\s+ORDER\s+BY\s+q\.sort_order,\s*q\.id\s*$`
	mock.ExpectQuery(q).WithArgs(int64(10)).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.ListByChapter(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdered_JoinsChapters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)JOIN\s+chapters\s+c\s+ON\s+c\.id\s*=\s*q\.chapter_id\s+ORDER\s+BY\s+c\.sort_order,\s*q\.sort_order,\s*q\.id`
	mock.ExpectQuery(q).WillReturnError(errors.New("boom"))

	_, err := repo.ListOrdered(context.Background())
	require.ErrorContains(t, err, "db error: boom")
}

func TestGetByTitle(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+q\.title\s*=\s*\$1\s+ORDER\s+BY\s+q\.id\s+LIMIT\s+1`
	mock.ExpectQuery(q).WithArgs("Question A").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(3), "Question A", "", "1.2", 1.5, int64(2), int64(1)))
	mock.ExpectQuery(q).WithArgs("Missing").WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.GetByTitle(context.Background(), "Question A")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "1.2", got.QuestionNumber.String)

	_, err = repo.GetByTitle(context.Background(), "Missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+questions\s*\(title,\s*description,\s*question_number,\s*total_score,\s*sort_order,\s*chapter_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id\s*$`
	mock.ExpectQuery(q).
		WithArgs("Question C", "d", "1.1", 2.5, int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	got, err := repo.Create(context.Background(), &models.Question{
		Title:          "Question C",
		Description:    sql.NullString{String: "d", Valid: true},
		QuestionNumber: sql.NullString{String: "1.1", Valid: true},
		TotalScore:     2.5,
		SortOrder:      sql.NullInt64{Int64: 1, Valid: true},
		ChapterID:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+questions\s+SET\s+title\s*=\s*\$1,.*chapter_id\s*=\s*\$6\s+WHERE\s+id\s*=\s*\$7\s*$`
	mock.ExpectExec(q).
		WithArgs("Question A", "d", "1.2", 0.0, int64(2), int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Question{
		ID:             3,
		Title:          "Question A",
		Description:    sql.NullString{String: "d", Valid: true},
		QuestionNumber: sql.NullString{String: "1.2", Valid: true},
		SortOrder:      sql.NullInt64{Int64: 2, Valid: true},
		ChapterID:      7,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM questions WHERE id IN \(\$1, \$2\)$`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteByChapterIDs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM questions WHERE chapter_id IN \(\$1\)$`).
		WithArgs(int64(4)).
		WillReturnError(errors.New("locked"))

	_, err := repo.DeleteByChapterIDs(context.Background(), []int64{4})
	require.ErrorContains(t, err, "db error: locked")
}
