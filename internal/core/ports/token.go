package ports

// TokenIssuer signs bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
// It returns domain.ErrInvalidToken or domain.ErrExpiredToken on failure.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
