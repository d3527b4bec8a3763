package chapters

import (
	"context"

	"github.com/Tao1925/poc-web/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Chapter, error)
	ListOrdered(ctx context.Context) ([]*models.Chapter, error)
	Create(ctx context.Context, chapter *models.Chapter) (*models.Chapter, error)
	Update(ctx context.Context, chapter *models.Chapter) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}
