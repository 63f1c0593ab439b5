package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeService implements the owner-scoped recipe use cases.
type RecipeService struct {
	repo   ports.RecipeRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewRecipeService(repo ports.RecipeRepository, logger zerolog.Logger) *RecipeService {
	return &RecipeService{repo: repo, logger: logger, now: time.Now}
}

func (s *RecipeService) ListRecipes(ctx context.Context, ownerID, search string) ([]*domain.Recipe, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	recipes, err := s.repo.List(ctx, ports.RecipeFilter{
		OwnerID: ownerID,
		Search:  strings.TrimSpace(search),
	})
	if err != nil {
		return nil, s.fail("list", fmt.Errorf("list recipes: %w", err))
	}
	metrics.RecipeOperationsTotal.WithLabelValues("list", "success").Inc()
	return recipes, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	recipe, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail("get", err)
	}
	metrics.RecipeOperationsTotal.WithLabelValues("get", "success").Inc()
	return recipe, nil
}

// CreateRecipe stores a new recipe owned by ownerID.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID string, input ports.RecipeInput) (*domain.Recipe, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := s.now().UTC()
	recipe := &domain.Recipe{
		Title:        strings.TrimSpace(input.Title),
		Ingredients:  cloneIngredients(input.Ingredients),
		Instructions: strings.TrimSpace(input.Instructions),
		CuisineType:  strings.TrimSpace(input.CuisineType),
		CookingTime:  input.CookingTime,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create recipe")
		return nil, s.fail("create", fmt.Errorf("create recipe: %w", err))
	}

	metrics.RecipeOperationsTotal.WithLabelValues("create", "success").Inc()
	s.logger.Info().Str("recipe_id", created.ID).Str("owner_id", ownerID).Msg("recipe created")
	return created, nil
}

// UpdateRecipe replaces the mutable fields of a recipe owned by ownerID.
// Concurrent updates resolve as last write wins.
func (s *RecipeService) UpdateRecipe(ctx context.Context, ownerID, id string, input ports.RecipeInput) (*domain.Recipe, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	updated, err := s.repo.Update(ctx, id, ownerID, ports.RecipeFields{
		Title:        strings.TrimSpace(input.Title),
		Ingredients:  cloneIngredients(input.Ingredients),
		Instructions: strings.TrimSpace(input.Instructions),
		CuisineType:  strings.TrimSpace(input.CuisineType),
		CookingTime:  input.CookingTime,
	})
	if err != nil {
		return nil, s.fail("update", err)
	}

	metrics.RecipeOperationsTotal.WithLabelValues("update", "success").Inc()
	s.logger.Info().Str("recipe_id", id).Str("owner_id", ownerID).Msg("recipe updated")
	return updated, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthenticated
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return s.fail("delete", err)
	}

	metrics.RecipeOperationsTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info().Str("recipe_id", id).Str("owner_id", ownerID).Msg("recipe deleted")
	return nil
}

func (s *RecipeService) fail(op string, err error) error {
	result := "error"
	if errors.Is(err, domain.ErrRecipeNotFound) {
		result = "not_found"
	}
	metrics.RecipeOperationsTotal.WithLabelValues(op, result).Inc()
	return err
}

// cloneIngredients keeps the caller's slice out of the stored document.
func cloneIngredients(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
