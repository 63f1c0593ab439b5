package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Auth verifies the bearer token and attaches the user id to the request
// context. Every rejection produces the same 401 body; the reason is only
// logged.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, reason := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if reason != "" {
				return reject(c, log, reason, nil)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				reason = "invalid"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired"
				}
				return reject(c, log, reason, err)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			req := c.Request()
			c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. A
// non-empty reason means the header is unusable.
func bearerToken(header string) (token, reason string) {
	if header == "" {
		return "", "missing"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "malformed"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "malformed"
	}
	return token, ""
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.TokenVerificationsTotal.WithLabelValues(reason).Inc()
	log.Debug().
		Err(err).
		Str("reason", reason).
		Str("path", c.Path()).
		Msg("request not authorized")
	return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
}
