package todos

import (
	"context"

	"todoapi/internal/server/models"
)

type Repository interface {
	ListOpen(ctx context.Context) ([]models.Todo, error)
	ListComplete(ctx context.Context) ([]models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
