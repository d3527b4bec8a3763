// Package answers persists user answers. An answer is owned by both its
// question and its user, so it is always removed before either of them.
package answers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/models"
)

const columns = `a.id, a.content, a.created_at, a.updated_at, a.question_id, a.user_id`

// SQLRepository works on both PostgreSQL and SQLite.
type SQLRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func scan(row interface{ Scan(...any) error }) (*models.Answer, error) {
	a := &models.Answer{}
	if err := row.Scan(&a.ID, &a.Content, &a.CreatedAt, &a.UpdatedAt, &a.QuestionID, &a.UserID); err != nil {
		return nil, err
	}
	return a, nil
}

// Upsert stores the answer for (QuestionID, UserID), replacing the content
// of an existing one. CreatedAt survives the update.
func (r *SQLRepository) Upsert(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	query :=
		`INSERT INTO answers (content, created_at, updated_at, question_id, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (question_id, user_id)
		 DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
		 RETURNING id, created_at
		 `

	now := r.now()
	answer.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, answer.Content, now, now, answer.QuestionID, answer.UserID).
		Scan(&answer.ID, &answer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return answer, nil
}

func (r *SQLRepository) FindByQuestionAndUser(ctx context.Context, questionID, userID int64) (*models.Answer, error) {
	query := `SELECT ` + columns + ` FROM answers a
		 WHERE a.question_id = $1 AND a.user_id = $2
		 `

	a, err := scan(r.db.QueryRowContext(ctx, query, questionID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

// FindByQuestionTitleAndUser resolves the question by title first. When
// several questions share the title the oldest one wins.
func (r *SQLRepository) FindByQuestionTitleAndUser(ctx context.Context, title string, userID int64) (*models.Answer, error) {
	query := `SELECT ` + columns + ` FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE q.title = $1 AND a.user_id = $2
		 ORDER BY q.id
		 LIMIT 1
		 `

	a, err := scan(r.db.QueryRowContext(ctx, query, title, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Answer, error) {
	query := `SELECT ` + columns + ` FROM answers a
		 WHERE a.user_id = $1
		 ORDER BY a.id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Answer
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) DeleteByQuestionIDs(ctx context.Context, ids []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db, `DELETE FROM answers WHERE question_id IN (%s)`, ids)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) DeleteByUserIDs(ctx context.Context, ids []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db, `DELETE FROM answers WHERE user_id IN (%s)`, ids)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// DeleteByChapterIDs removes every answer attached to a question of the
// given chapters.
func (r *SQLRepository) DeleteByChapterIDs(ctx context.Context, ids []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db,
		`DELETE FROM answers WHERE question_id IN (SELECT id FROM questions WHERE chapter_id IN (%s))`, ids)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
