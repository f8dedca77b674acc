package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register",
		`{"email":"cook@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeJSON(t, w)["token"])

	w = doRequest(engine, http.MethodPost, "/api/v1/auth/login",
		`{"email":"cook@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeJSON(t, w)["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine, _, _ := setupTestRouter(t)
	registerTestUser(t, engine, "cook@example.com")

	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register",
		`{"email":"cook@example.com","password":"password123"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/auth/register",
		`{"email":"cook@example.com","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _, _ := setupTestRouter(t)
	registerTestUser(t, engine, "cook@example.com")

	w := doRequest(engine, http.MethodPost, "/api/v1/auth/login",
		`{"email":"cook@example.com","password":"wrongpassword"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/users/me/favorites", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(engine, http.MethodGet, "/api/v1/users/me/favorites", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
