package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"orderfront/internal/models"
	"orderfront/internal/session"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestEmptyStoreHasNoSession(t *testing.T) {
	store := session.New()

	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = store.User()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSetAndRead(t *testing.T) {
	store := session.New()
	user := models.User{Id: "u1", Email: "a@b.c", Role: models.RoleCustomer}

	store.Set(signedToken(t, time.Now().Add(time.Hour)), user)

	token, err := store.Token()
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := store.User()
	assert.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestExpiredTokenReadsAsNoSession(t *testing.T) {
	store := session.New()
	store.Set(signedToken(t, time.Now().Add(-time.Minute)), models.User{Id: "u1"})

	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestOpaqueTokenIsAccepted(t *testing.T) {
	store := session.New()
	store.Set("not-a-jwt", models.User{Id: "u1"})

	token, err := store.Token()
	assert.NoError(t, err)
	assert.Equal(t, "not-a-jwt", token)
}

func TestClear(t *testing.T) {
	store := session.New()
	store.Set(signedToken(t, time.Now().Add(time.Hour)), models.User{Id: "u1"})
	store.Clear()

	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)
}
