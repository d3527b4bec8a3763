package users

import (
	"context"

	"github.com/Tao1925/poc-web/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}
