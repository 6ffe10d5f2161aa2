package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/recipehub/recipehub/internal/domain/entity"
	"github.com/recipehub/recipehub/internal/domain/repository"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recipes (title, cuisine, ingredients, instructions, image_url, created_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
		RETURNING id, created_at
	`, rec.Title, rec.Cuisine, rec.Ingredients, rec.Instructions, rec.ImageURL, rec.CreatedBy)

	return row.Scan(&rec.ID, &rec.CreatedAt)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*entity.RecipeWithOwner, error) {
	rec := &entity.RecipeWithOwner{}

	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.title, r.cuisine, r.ingredients, r.instructions, r.image_url,
		       COALESCE(r.created_by::text, ''), r.created_at, COALESCE(u.email, '')
		FROM recipes r
		LEFT JOIN users u ON u.id = r.created_by
		WHERE r.id = $1
	`, id)

	if err := scanRecipe(row, rec); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]entity.RecipeWithOwner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.title, r.cuisine, r.ingredients, r.instructions, r.image_url,
		       COALESCE(r.created_by::text, ''), r.created_at, COALESCE(u.email, '')
		FROM recipes r
		LEFT JOIN users u ON u.id = r.created_by
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.RecipeWithOwner, 0)
	for rows.Next() {
		var rec entity.RecipeWithOwner
		if err := scanRecipe(rows, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update replaces the mutable recipe fields wholesale. created_by and
// created_at are never touched.
func (r *RecipeRepository) Update(ctx context.Context, rec *entity.Recipe) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recipes
		SET title = $1, cuisine = $2, ingredients = $3, instructions = $4, image_url = $5
		WHERE id = $6
	`, rec.Title, rec.Cuisine, rec.Ingredients, rec.Instructions, rec.ImageURL, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanRecipe(row pgx.Row, rec *entity.RecipeWithOwner) error {
	return row.Scan(&rec.ID, &rec.Title, &rec.Cuisine, &rec.Ingredients, &rec.Instructions,
		&rec.ImageURL, &rec.CreatedBy, &rec.CreatedAt, &rec.OwnerEmail)
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
