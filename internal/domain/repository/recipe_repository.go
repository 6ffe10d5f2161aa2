package repository

import (
	"context"

	"github.com/recipehub/recipehub/internal/domain/entity"
)

// RecipeRepository defines the interface for recipe-related database operations.
// List returns recipes ordered newest-first by creation timestamp.
type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.RecipeWithOwner, error)
	List(ctx context.Context) ([]entity.RecipeWithOwner, error)
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id string) error
}
