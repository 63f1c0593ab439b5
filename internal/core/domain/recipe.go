package domain

import "time"

// Recipe is a document owned by exactly one user. OwnerID is assigned at
// creation from the authenticated identity and never reassigned.
type Recipe struct {
	ID           string
	Title        string
	Ingredients  []string
	Instructions string
	CuisineType  string
	CookingTime  int // minutes
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
