package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeHandler serves the owner-scoped recipe endpoints. Every route is
// mounted behind the Auth middleware.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// List returns the caller's recipes, newest first.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on title or cuisine type"
// @Success      200     {array}   recipeResponse
// @Failure      401     {object}  errorResponse
// @Router       /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	recipes, err := h.service.ListRecipes(c.Request().Context(), userID, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponses(recipes))
}

// Get returns one of the caller's recipes.
//
// @Summary      Get recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.GetRecipe(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Create stores a recipe owned by the caller.
//
// @Summary      Create recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recipeRequest  true  "Recipe"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.service.CreateRecipe(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Update replaces one of the caller's recipes.
//
// @Summary      Update recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Recipe id"
// @Param        body  body      recipeRequest  true  "Recipe"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	recipe, err := h.service.UpdateRecipe(c.Request().Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Delete removes one of the caller's recipes.
//
// @Summary      Delete recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteRecipe(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Recipe deleted"})
}
