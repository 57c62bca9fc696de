package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"facturation-backend/database"
	"facturation-backend/middlewares"
	"facturation-backend/models"
	"facturation-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the full route table against a fresh single-file
// database under the test's temp dir.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("DB_FILE", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("JWT_SECRET_KEY", "controllers-test-secret")
	database.Connect()
	database.AutoMigrate()

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	routes.Register(app)
	return app
}

func createUser(t *testing.T, username, role, password string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Role: role, FullName: "Test " + username}
	user.SetPassword(password)
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}
