package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec.Code, resp, rec.Body.String()
}

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid email or password"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "user already exists"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "not authorized"},
		{"invalid token", fmt.Errorf("%w: bad sig", domain.ErrInvalidToken), http.StatusUnauthorized, "not authorized"},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized, "not authorized"},
		{"recipe not found", domain.ErrRecipeNotFound, http.StatusNotFound, "recipe not found"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many requests"},
		{"rate limited", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "too many requests"},
		{"bind failure", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp, _ := renderError(t, tc.err)
			if code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, code)
			}
			if resp.Message != tc.msg {
				t.Errorf("expected %q, got %q", tc.msg, resp.Message)
			}
		})
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	err := domain.NewValidationError(map[string]string{"title": "is required"})

	code, resp, _ := renderError(t, err)

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Message != "validation failed" || resp.Details["title"] != "is required" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	code, resp, raw := renderError(t, fmt.Errorf("list recipes: %w", errors.New("mongo: connection refused")))

	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if strings.Contains(raw, "mongo") {
		t.Fatalf("internal detail leaked: %s", raw)
	}
}
