package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/models"
	"orderfront/internal/server/middleware"
	"orderfront/pkg/lib/logger/sl"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.Login"
	log := h.log.With("op", op)

	var req loginRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	user, err := h.storage.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			log.Warn("Unknown email")
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.fail(w, r, log, err, "Failed to log in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Wrong password")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user, h.tokenTTL)
	if err != nil {
		log.Error("Failed to sign token", sl.Err(err))
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	h.respond(w, log, http.StatusOK, loginResponse{Token: token, User: user})
}
