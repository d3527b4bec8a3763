// Package chapters persists quiz chapters.
package chapters

import (
	"context"
	"fmt"

	"github.com/Tao1925/poc-web/internal/dbx"
	"github.com/Tao1925/poc-web/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// List returns every chapter in insertion order, including chapters whose
// sort order is NULL.
func (r *SQLRepository) List(ctx context.Context) ([]*models.Chapter, error) {
	return r.query(ctx,
		`SELECT id, title, description, sort_order FROM chapters
		 ORDER BY id
		 `)
}

// ListOrdered returns chapters by position, NULL positions last.
func (r *SQLRepository) ListOrdered(ctx context.Context) ([]*models.Chapter, error) {
	return r.query(ctx,
		`SELECT id, title, description, sort_order FROM chapters
		 ORDER BY CASE WHEN sort_order IS NULL THEN 1 ELSE 0 END, sort_order, id
		 `)
}

func (r *SQLRepository) query(ctx context.Context, query string) ([]*models.Chapter, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Chapter
	for rows.Next() {
		c := &models.Chapter{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, chapter *models.Chapter) (*models.Chapter, error) {
	query :=
		`INSERT INTO chapters (title, description, sort_order)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		chapter.Title, chapter.Description, chapter.SortOrder).Scan(&chapter.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return chapter, nil
}

func (r *SQLRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	query :=
		`UPDATE chapters SET title = $1, description = $2, sort_order = $3
		 WHERE id = $4
		 `

	_, err := r.db.ExecContext(ctx, query,
		chapter.Title, chapter.Description, chapter.SortOrder, chapter.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// DeleteByIDs removes the given chapters. Their questions must already be gone.
func (r *SQLRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	n, err := dbx.ExecIn(ctx, r.db, `DELETE FROM chapters WHERE id IN (%s)`, ids)
	if err != nil {
		return n, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
