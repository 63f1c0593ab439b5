package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeInput is the DTO passed from the transport layer to RecipeService.
type RecipeInput struct {
	Title        string
	Ingredients  []string
	Instructions string
	CuisineType  string
	CookingTime  int
}

// RecipeService defines the owner-scoped recipe use cases. ownerID is the
// identity resolved by the auth middleware and is never taken from the body.
type RecipeService interface {
	ListRecipes(ctx context.Context, ownerID, search string) ([]*domain.Recipe, error)
	GetRecipe(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	CreateRecipe(ctx context.Context, ownerID string, input RecipeInput) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, ownerID, id string, input RecipeInput) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID, id string) error
}
