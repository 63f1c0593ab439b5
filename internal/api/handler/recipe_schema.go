package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// ingredientList accepts a JSON array of strings, a single string, or a
// string holding a JSON-encoded array (what multipart clients send).
type ingredientList []string

func (l *ingredientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.New("ingredients must be a list of strings")
	}
	single = strings.TrimSpace(single)
	if strings.HasPrefix(single, "[") {
		if err := json.Unmarshal([]byte(single), &items); err == nil {
			*l = items
			return nil
		}
	}
	if single == "" {
		*l = ingredientList{}
		return nil
	}
	*l = ingredientList{single}
	return nil
}

// minutes accepts a JSON number or a numeric string.
type minutes int

func (m *minutes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.New("cookingTime must be a number")
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*m = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("cookingTime must be a number")
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return errors.New("cookingTime must be a whole number of minutes")
	}
	*m = minutes(f)
	return nil
}

// recipeRequest is the create/update body. It has no owner field: ownership
// always comes from the authenticated identity.
type recipeRequest struct {
	Title        string         `json:"title"        validate:"required,max=200"`
	Ingredients  ingredientList `json:"ingredients"  validate:"required,min=1,dive,required"`
	Instructions string         `json:"instructions" validate:"required"`
	CuisineType  string         `json:"cuisineType"  validate:"max=100"`
	CookingTime  minutes        `json:"cookingTime"  validate:"gte=0"`
}

// normalize trims the text fields so blank values fail the required checks.
func (r *recipeRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Instructions = strings.TrimSpace(r.Instructions)
	r.CuisineType = strings.TrimSpace(r.CuisineType)
	for i, ing := range r.Ingredients {
		r.Ingredients[i] = strings.TrimSpace(ing)
	}
}

func (r recipeRequest) toInput() ports.RecipeInput {
	return ports.RecipeInput{
		Title:        r.Title,
		Ingredients:  []string(r.Ingredients),
		Instructions: r.Instructions,
		CuisineType:  r.CuisineType,
		CookingTime:  int(r.CookingTime),
	}
}

type recipeResponse struct {
	ID string `json:"id"`
	// MongoID repeats ID under the document key browser clients read.
	MongoID      string    `json:"_id"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	CuisineType  string    `json:"cuisineType"`
	CookingTime  int       `json:"cookingTime"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return recipeResponse{
		ID:           r.ID,
		MongoID:      r.ID,
		Title:        r.Title,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		CuisineType:  r.CuisineType,
		CookingTime:  r.CookingTime,
		Author:       r.OwnerID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeResponses(rs []*domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecipeResponse(r))
	}
	return out
}
