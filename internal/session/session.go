package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"orderfront/internal/models"
)

var ErrNoSession = errors.New("no session")

// Store is the single owner of the bearer token and the signed-in user.
// Screens and services read it through Token/User, nothing touches
// ambient state.
type Store struct {
	mu    sync.RWMutex
	token string
	user  models.User
	now   func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Set(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Token returns the bearer token, or ErrNoSession when none is held or
// the held token is already expired. The expiry check is an unverified
// claims read; signature verification stays server-side.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNoSession
	}
	if expired(s.token, s.now()) {
		return "", ErrNoSession
	}
	return s.token, nil
}

func (s *Store) User() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return models.User{}, ErrNoSession
	}
	return s.user, nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = models.User{}
}

func expired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// opaque tokens carry no local expiry, let the server decide
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
