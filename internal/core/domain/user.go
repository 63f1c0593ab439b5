package domain

import (
	"strings"
	"time"
)

// User models a registered account. Email is always stored normalized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Lookups and writes must both go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
