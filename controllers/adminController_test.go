package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellerCredentialsDisclosedExactlyOnce(t *testing.T) {
	app := newTestApp(t)
	createUser(t, "boss", "admin", "adminpw")
	adminToken := login(t, app, "boss", "adminpw")

	resp := doJSON(t, app, fiber.MethodPost, "/api/admin/rotate-seller", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rotated struct {
		Username string `json:"username"`
	}
	decodeJSON(t, resp, &rotated)
	require.NotEmpty(t, rotated.Username)

	resp = doJSON(t, app, fiber.MethodGet, "/api/admin/seller-credentials", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cred struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	decodeJSON(t, resp, &cred)
	assert.Equal(t, rotated.Username, cred.Username)
	require.NotEmpty(t, cred.Password)

	// the disclosed password is the account's live password
	login(t, app, cred.Username, cred.Password)

	// one-time: a second read finds nothing
	resp = doJSON(t, app, fiber.MethodGet, "/api/admin/seller-credentials", adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSellerCredentialsEmptyStore(t *testing.T) {
	app := newTestApp(t)
	createUser(t, "boss", "admin", "adminpw")
	adminToken := login(t, app, "boss", "adminpw")

	resp := doJSON(t, app, fiber.MethodGet, "/api/admin/seller-credentials", adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminEndpointsForbiddenForSeller(t *testing.T) {
	app := newTestApp(t)
	createUser(t, "alice", "seller", "s3cret")
	token := login(t, app, "alice", "s3cret")

	resp := doJSON(t, app, fiber.MethodGet, "/api/admin/seller-credentials", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/admin/rotate-seller", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
