package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"menagerie/internal/config"
	"menagerie/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database, one per test so
// tests stay isolated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestApp wires a server around a fresh test database and mounts all
// routes on a fresh Fiber app. No redis: rate limits fail open and tag
// reads skip the cache.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret-key", AppEnv: "test"}
	srv := NewServerWithDB(cfg, setupTestDB(t), nil)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

type testUser struct {
	Username string
	Email    string
	Token    string
}

// registerUser signs up a user through the API and returns its token.
func registerUser(t *testing.T, app *fiber.App, username string) testUser {
	t.Helper()

	email := username + "@example.com"
	resp := doJSON(t, app, "POST", "/api/users", "", map[string]any{
		"user": map[string]string{
			"username": username,
			"email":    email,
			"password": "password123",
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		User struct {
			Token string `json:"token"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.User.Token)

	return testUser{Username: username, Email: email, Token: body.User.Token}
}

// createAnimal creates an animal through the API and returns its slug.
func createAnimal(t *testing.T, app *fiber.App, token, title string, tags ...string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/animals", token, map[string]any{
		"animal": map[string]any{
			"title":   title,
			"body":    "A fine specimen.",
			"tagList": tags,
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Animal struct {
			Slug string `json:"slug"`
		} `json:"animal"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Animal.Slug)
	return body.Animal.Slug
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
