package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeFilter carries the list query. OwnerID is mandatory and always enforced.
type RecipeFilter struct {
	OwnerID string
	Search  string // optional: case-insensitive match on title or cuisine type
}

// RecipeFields is the mutable part of a recipe. The owner is not among them.
type RecipeFields struct {
	Title        string
	Ingredients  []string
	Instructions string
	CuisineType  string
	CookingTime  int
}

// RecipeRepository defines persistence operations for recipes. Every lookup
// and mutation matches on both id and owner; a recipe owned by someone else
// yields domain.ErrRecipeNotFound exactly like a missing one.
type RecipeRepository interface {
	List(ctx context.Context, filter RecipeFilter) ([]*domain.Recipe, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	Update(ctx context.Context, id, ownerID string, fields RecipeFields) (*domain.Recipe, error)
	Delete(ctx context.Context, id, ownerID string) error
}
