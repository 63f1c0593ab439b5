package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

const DefaultHashCost = 12

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.TokenIssuer
	throttle  ports.LoginThrottle
	audit     ports.AuditSink
	log       zerolog.Logger
	hashCost  int
	dummyHash []byte
	now       func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithHashCost sets the bcrypt work factor. Values outside bcrypt's range fall
// back to DefaultHashCost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

// WithThrottle enables failed-login throttling.
func WithThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditSink enables the auth audit trail.
func WithAuditSink(a ports.AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = a }
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger, opts ...AuthOption) (*AuthService, error) {
	s := &AuthService{
		repo:     repo,
		tokens:   tokens,
		log:      log,
		hashCost: DefaultHashCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Compared against when the email is unknown so both failure paths pay
	// the same bcrypt cost.
	dummy, err := bcrypt.GenerateFromPassword([]byte("recipebox-timing-equaliser"), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "is required"
	}
	if email == "" {
		fields["email"] = "is required"
	}
	switch {
	case password == "":
		fields["password"] = "is required"
	case len(password) > maxPasswordBytes:
		fields["password"] = "must be at most 72 bytes"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.record(domain.AuthEventRegistered, email, created.ID)
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login returns domain.ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		fields := map[string]string{}
		if email == "" {
			fields["email"] = "is required"
		}
		if password == "" {
			fields["password"] = "is required"
		}
		return "", nil, domain.NewValidationError(fields)
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "blocked").Inc()
			s.record(domain.AuthEventLoginBlocked, email, "")
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.failure(ctx, email, "")
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.failure(ctx, email, user.ID)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	s.record(domain.AuthEventLoginSuccess, email, user.ID)

	return token, user, nil
}

func (s *AuthService) failure(ctx context.Context, email, userID string) {
	metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.record(domain.AuthEventLoginFailure, email, userID)
}

func (s *AuthService) record(typ domain.AuthEventType, email, userID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Type:       typ,
		Email:      email,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
	})
}
