package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orderfront/internal/models"
	"orderfront/internal/server/middleware"
	"orderfront/pkg/lib/logger/slogdiscard"
)

const secret = "test-secret"

func protected(t *testing.T, roles ...models.Role) (http.HandlerFunc, *string) {
	t.Helper()
	var seenUser string
	next := func(w http.ResponseWriter, r *http.Request) {
		seenUser = middleware.UserId(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	auth := middleware.Auth(slogdiscard.NewDiscardLogger(), secret, roles...)
	return auth(next), &seenUser
}

func TestAuth_MissingHeader(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	ww := httptest.NewRecorder()
	handler(ww, req)

	assert.Equal(t, http.StatusUnauthorized, ww.Result().StatusCode)
}

func TestAuth_GarbageToken(t *testing.T) {
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	ww := httptest.NewRecorder()
	handler(ww, req)

	assert.Equal(t, http.StatusUnauthorized, ww.Result().StatusCode)
}

func TestAuth_ValidTokenPassesUserThrough(t *testing.T) {
	handler, seenUser := protected(t)

	token, err := middleware.IssueToken(secret, models.User{Id: "u1", Role: models.RoleCustomer}, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ww := httptest.NewRecorder()
	handler(ww, req)

	assert.Equal(t, http.StatusOK, ww.Result().StatusCode)
	assert.Equal(t, "u1", *seenUser)
}

func TestAuth_ExpiredToken(t *testing.T) {
	handler, _ := protected(t)

	token, err := middleware.IssueToken(secret, models.User{Id: "u1", Role: models.RoleCustomer}, -time.Minute)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ww := httptest.NewRecorder()
	handler(ww, req)

	assert.Equal(t, http.StatusUnauthorized, ww.Result().StatusCode)
}

func TestAuth_RoleEnforcement(t *testing.T) {
	handler, _ := protected(t, models.RoleManager, models.RoleAdmin)

	token, err := middleware.IssueToken(secret, models.User{Id: "u1", Role: models.RoleCustomer}, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ww := httptest.NewRecorder()
	handler(ww, req)

	assert.Equal(t, http.StatusForbidden, ww.Result().StatusCode)
}
