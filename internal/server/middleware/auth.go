package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

type ctxKey string

const (
	userIdKey ctxKey = "userId"
	roleKey   ctxKey = "role"
)

func UserId(ctx context.Context) string {
	id, _ := ctx.Value(userIdKey).(string)
	return id
}

func Role(ctx context.Context) models.Role {
	role, _ := ctx.Value(roleKey).(models.Role)
	return role
}

func IssueToken(secret string, user models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Id,
		"role": string(user.Role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Auth checks the bearer token and, when roles are given, enforces one
// of them.
func Auth(log *slog.Logger, secret string, roles ...models.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(h, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("Rejected token", sl.Err(fmt.Errorf("invalid token")))
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid claims", http.StatusUnauthorized)
				return
			}

			userId, _ := claims["sub"].(string)
			roleStr, _ := claims["role"].(string)
			role := models.Role(roleStr)

			if len(roles) > 0 {
				allowed := false
				for _, want := range roles {
					if role == want {
						allowed = true
						break
					}
				}
				if !allowed {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), userIdKey, userId)
			ctx = context.WithValue(ctx, roleKey, role)
			next(w, r.WithContext(ctx))
		}
	}
}
