package client

import (
	"context"
	"net/url"
)

// ListRecipes returns the caller's recipes. search, when set, filters on
// title or cuisine type.
func (c *Client) ListRecipes(ctx context.Context, search string) ([]Recipe, error) {
	path := "/recipes"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}

	recipes := []Recipe{}
	if err := c.get(ctx, path, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID.
func (c *Client) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	if err := c.get(ctx, "/recipes/"+url.PathEscape(id), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRecipe stores a new recipe owned by the logged-in user.
func (c *Client) CreateRecipe(ctx context.Context, in RecipeInput) (*Recipe, error) {
	var r Recipe
	if err := c.post(ctx, "/recipes", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRecipe replaces a recipe's fields.
func (c *Client) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (*Recipe, error) {
	var r Recipe
	if err := c.put(ctx, "/recipes/"+url.PathEscape(id), in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	var resp messageResponse
	return c.delete(ctx, "/recipes/"+url.PathEscape(id), &resp)
}
