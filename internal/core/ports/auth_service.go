package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// LoginThrottle tracks failed login attempts per normalized email.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditSink accepts auth events for asynchronous persistence. Record must not block.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
