package answers

import (
	"context"

	"github.com/Tao1925/poc-web/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, answer *models.Answer) (*models.Answer, error)
	FindByQuestionAndUser(ctx context.Context, questionID, userID int64) (*models.Answer, error)
	FindByQuestionTitleAndUser(ctx context.Context, title string, userID int64) (*models.Answer, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Answer, error)
	DeleteByQuestionIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByUserIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByChapterIDs(ctx context.Context, ids []int64) (int64, error)
}
