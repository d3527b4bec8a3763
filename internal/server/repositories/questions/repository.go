package questions

import (
	"context"

	"github.com/Tao1925/poc-web/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Question, error)
	ListByChapter(ctx context.Context, chapterID int64) ([]*models.Question, error)
	ListOrdered(ctx context.Context) ([]*models.Question, error)
	GetByTitle(ctx context.Context, title string) (*models.Question, error)
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByChapterIDs(ctx context.Context, chapterIDs []int64) (int64, error)
}
