// Package questions persists quiz questions.
package questions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tao1925/poc-web/internal/common"
	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/models"
)

const columns = `q.id, q.title, q.description, q.question_number, q.total_score, q.sort_order, q.chapter_id`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Question, error) {
	return r.query(ctx,
		`SELECT `+columns+` FROM questions q
		 ORDER BY q.id
		 `)
}

func (r *SQLRepository) ListByChapter(ctx context.Context, chapterID int64) ([]*models.Question, error) {
	return r.query(ctx,
		`SELECT `+columns+` FROM questions q
		 WHERE q.chapter_id = $1
		 ORDER BY q.sort_order, q.id
		 `, chapterID)
}

// ListOrdered returns all questions ordered by chapter position, then by
// position inside the chapter.
func (r *SQLRepository) ListOrdered(ctx context.Context) ([]*models.Question, error) {
	return r.query(ctx,
		`SELECT `+columns+` FROM questions q
		 JOIN chapters c ON c.id = q.chapter_id
		 ORDER BY c.sort_order, q.sort_order, q.id
		 `)
}

// GetByTitle returns the oldest question with the given title.
func (r *SQLRepository) GetByTitle(ctx context.Context, title string) (*models.Question, error) {
	list, err := r.query(ctx,
		`SELECT `+columns+` FROM questions q
		 WHERE q.title = $1
		 ORDER BY q.id
		 LIMIT 1
		 `, title)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return list[0], nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Question
	for rows.Next() {
		q, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func scan(rows *sql.Rows) (*models.Question, error) {
	q := &models.Question{}
	err := rows.Scan(&q.ID, &q.Title, &q.Description, &q.QuestionNumber, &q.TotalScore, &q.SortOrder, &q.ChapterID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *SQLRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	query :=
		`INSERT INTO questions (title, description, question_number, total_score, sort_order, chapter_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		question.Title, question.Description, question.QuestionNumber,
		question.TotalScore, question.SortOrder, question.ChapterID).Scan(&question.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return question, nil
}

func (r *SQLRepository) Update(ctx context.Context, question *models.Question) error {
	query :=
		`UPDATE questions
		 SET title = $1, description = $2, question_number = $3, total_score = $4, sort_order = $5, chapter_id = $6
		 WHERE id = $7
		 `

	_, err := r.db.ExecContext(ctx, query,
		question.Title, question.Description, question.QuestionNumber,
		question.TotalScore, question.SortOrder, question.ChapterID, question.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// DeleteByIDs removes the given questions. Their answers must already be gone.
func (r *SQLRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db, `DELETE FROM questions WHERE id IN (%s)`, ids)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// DeleteByChapterIDs removes every question still owned by the given chapters.
func (r *SQLRepository) DeleteByChapterIDs(ctx context.Context, chapterIDs []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db, `DELETE FROM questions WHERE chapter_id IN (%s)`, chapterIDs)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
