package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// AuthEventRepository stores the auth audit trail.
type AuthEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
