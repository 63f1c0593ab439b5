package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/recipe-api/pkg/client"
)

const testToken = "tok-ana"

// fakeAPI is a minimal in-memory recipe API.
type fakeAPI struct {
	mu      sync.Mutex
	recipes map[string]client.Recipe
	nextID  int
	expired bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{recipes: map[string]client.Recipe{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "taken@example.com" {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "user already exists"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"user": client.User{ID: "u1", Name: body["name"], Email: body["email"]},
		})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": testToken,
			"user":  client.User{ID: "u1", Name: "Ana", Email: body["email"]},
		})
	})
	mux.HandleFunc("GET /api/auth/verify", f.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
	}))
	mux.HandleFunc("GET /api/recipes", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		search := strings.ToLower(r.URL.Query().Get("search"))
		out := []client.Recipe{}
		for _, rec := range f.recipes {
			if search == "" || strings.Contains(strings.ToLower(rec.Title), search) {
				out = append(out, rec)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))
	mux.HandleFunc("GET /api/recipes/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		rec, ok := f.recipes[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "recipe not found"})
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}))
	mux.HandleFunc("POST /api/recipes", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in client.RecipeInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if len(in.Ingredients) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "validation failed",
				"details": map[string]string{"ingredients": "is required"},
			})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		rec := fromInput("r"+string(rune('0'+f.nextID)), in)
		f.recipes[rec.ID] = rec
		writeJSON(w, http.StatusCreated, rec)
	}))
	mux.HandleFunc("PUT /api/recipes/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var in client.RecipeInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if _, ok := f.recipes[id]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "recipe not found"})
			return
		}
		rec := fromInput(id, in)
		f.recipes[id] = rec
		writeJSON(w, http.StatusOK, rec)
	}))
	mux.HandleFunc("DELETE /api/recipes/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if _, ok := f.recipes[id]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "recipe not found"})
			return
		}
		delete(f.recipes, id)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted"})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		expired := f.expired
		f.mu.Unlock()
		if expired || r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "not authorized"})
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) seed(rec client.Recipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes[rec.ID] = rec
}

func fromInput(id string, in client.RecipeInput) client.Recipe {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return client.Recipe{
		ID:           id,
		Title:        in.Title,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		CuisineType:  in.CuisineType,
		CookingTime:  in.CookingTime,
		Author:       "u1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes recipectl against srv with its token file in dir.
func run(t *testing.T, srv *httptest.Server, tokenFile, stdin string, args ...string) result {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "recipectl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("api-url: "+srv.URL+"/api\n"), 0o600))

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append([]string{"--config", cfg, "--token-file", tokenFile}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func loggedIn(t *testing.T) string {
	t.Helper()
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte(testToken), 0o600))
	return tokenFile
}

func TestRegister(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	res := run(t, srv, tokenFile, "", "register", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Account created for ana@example.com")
	assert.NoFileExists(t, tokenFile, "registering does not log in")
}

func TestRegister_Conflict(t *testing.T) {
	_, srv := newFakeAPI(t)

	res := run(t, srv, filepath.Join(t.TempDir(), "token"), "", "register", "--name", "Ana", "--email", "taken@example.com", "--password", "secret1")

	var apiErr *client.APIError
	require.ErrorAs(t, res.err, &apiErr)
	assert.True(t, apiErr.IsConflict())
}

func TestLogin_PromptsAndStoresToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	res := run(t, srv, tokenFile, "secret1\n", "login", "--email", "ana@example.com")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Logged in as Ana <ana@example.com>")
	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, testToken, string(data))
}

func TestLogin_BadCredentials(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	res := run(t, srv, tokenFile, "", "login", "--email", "ana@example.com", "--password", "wrong")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid email or password")
	assert.NoFileExists(t, tokenFile)
}

func TestLogout_RemovesToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := loggedIn(t)

	res := run(t, srv, tokenFile, "", "logout")

	require.NoError(t, res.err)
	assert.NoFileExists(t, tokenFile)
}

func TestVerify(t *testing.T) {
	_, srv := newFakeAPI(t)

	res := run(t, srv, loggedIn(t), "", "verify", "--json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"valid":true}`, res.stdout)

	res = run(t, srv, filepath.Join(t.TempDir(), "token"), "", "verify")
	require.ErrorIs(t, res.err, client.ErrNotLoggedIn)
}

func TestUnauthorized_ClearsTokenAndWarns(t *testing.T) {
	f, srv := newFakeAPI(t)
	tokenFile := loggedIn(t)
	f.mu.Lock()
	f.expired = true
	f.mu.Unlock()

	res := run(t, srv, tokenFile, "", "recipes", "list")

	require.ErrorIs(t, res.err, client.ErrUnauthorized)
	assert.Contains(t, res.stderr, "recipectl login")
	assert.NoFileExists(t, tokenFile)
}

func TestRecipesCreateAndList(t *testing.T) {
	_, srv := newFakeAPI(t)
	tokenFile := loggedIn(t)

	res := run(t, srv, tokenFile, "", "recipes", "create",
		"--title", "Tomato Soup",
		"--ingredient", "tomatoes",
		"--ingredient", "salt, to taste",
		"--instructions", "Simmer.",
		"--cuisine", "Italian",
		"--time", "25",
		"--json",
	)
	require.NoError(t, res.err)

	var created client.Recipe
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &created))
	assert.Equal(t, []string{"tomatoes", "salt, to taste"}, created.Ingredients)
	assert.Equal(t, 25, created.CookingTime)

	res = run(t, srv, tokenFile, "", "recipes", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "TITLE")
	assert.Contains(t, res.stdout, "Tomato Soup")
	assert.Contains(t, res.stdout, "Italian")

	res = run(t, srv, tokenFile, "", "recipes", "list", "--search", "pie")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No recipes found")
}

func TestRecipesCreate_ValidationDetails(t *testing.T) {
	_, srv := newFakeAPI(t)

	res := run(t, srv, loggedIn(t), "", "recipes", "create", "--title", "Empty", "--instructions", "Nothing.")

	var apiErr *client.APIError
	require.ErrorAs(t, res.err, &apiErr)
	assert.True(t, apiErr.IsValidationError())
	assert.Equal(t, "is required", apiErr.Details["ingredients"])
}

func TestRecipesGet(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.seed(fromInput("r1", client.RecipeInput{
		Title:        "Pancakes",
		Ingredients:  []string{"flour", "milk"},
		Instructions: "Mix.\nFry.",
		CookingTime:  15,
	}))
	tokenFile := loggedIn(t)

	res := run(t, srv, tokenFile, "", "recipes", "get", "r1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Pancakes")
	assert.Contains(t, res.stdout, "  - flour")
	assert.Contains(t, res.stdout, "  Fry.")

	res = run(t, srv, tokenFile, "", "recipes", "get", "missing")
	var apiErr *client.APIError
	require.ErrorAs(t, res.err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestRecipesUpdate_KeepsUnsetFields(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.seed(fromInput("r1", client.RecipeInput{
		Title:        "Pancakes",
		Ingredients:  []string{"flour", "milk"},
		Instructions: "Mix.",
		CuisineType:  "American",
		CookingTime:  15,
	}))

	res := run(t, srv, loggedIn(t), "", "recipes", "update", "r1", "--title", "Fluffy Pancakes", "--json")
	require.NoError(t, res.err)

	var updated client.Recipe
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &updated))
	assert.Equal(t, "Fluffy Pancakes", updated.Title)
	assert.Equal(t, []string{"flour", "milk"}, updated.Ingredients)
	assert.Equal(t, "American", updated.CuisineType)
	assert.Equal(t, 15, updated.CookingTime)
}

func TestRecipesDelete(t *testing.T) {
	f, srv := newFakeAPI(t)
	f.seed(fromInput("r1", client.RecipeInput{Title: "Pancakes", Ingredients: []string{"flour"}}))
	tokenFile := loggedIn(t)

	res := run(t, srv, tokenFile, "n\n", "recipes", "delete", "r1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Aborted")
	assert.Len(t, f.recipes, 1)

	res = run(t, srv, tokenFile, "y\n", "recipes", "delete", "r1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Recipe deleted: r1")
	assert.Empty(t, f.recipes)

	res = run(t, srv, tokenFile, "", "recipes", "delete", "r1", "--force")
	var apiErr *client.APIError
	require.ErrorAs(t, res.err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestPromptPassword_PipedInput(t *testing.T) {
	var prompt bytes.Buffer
	pw, err := promptPassword(strings.NewReader("hunter22\r\nignored\n"), &prompt, "Password: ")

	require.NoError(t, err)
	assert.Equal(t, "hunter22", pw)
	assert.Empty(t, prompt.String(), "no prompt for piped input")
}

func TestPromptPassword_Terminal(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origTerm, origRead })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret!"), nil }

	var prompt bytes.Buffer
	pw, err := promptPassword(os.Stdin, &prompt, "Password: ")

	require.NoError(t, err)
	assert.Equal(t, "s3cret!", pw)
	assert.Contains(t, prompt.String(), "Password: ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Len(t, []rune(truncate(strings.Repeat("a", 50), 10)), 10)
}
