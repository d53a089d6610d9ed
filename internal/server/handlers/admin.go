package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

type menuItemInput struct {
	CategoryId string `json:"category_id"`
	Name       string `json:"name" validate:"required"`
	Price      int64  `json:"price" validate:"gte=0"`
	Image      string `json:"image"`
	Available  bool   `json:"available"`
}

type categoryInput struct {
	Name string `json:"name" validate:"required"`
}

type posterInput struct {
	Title string `json:"title"`
	Image string `json:"image" validate:"required"`
}

type userInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role" validate:"required,oneof=customer manager admin"`
	Password string      `json:"password"`
}

// POST /admin/menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.CreateMenuItem"
	log := h.log.With("op", op)

	var req menuItemInput
	if !h.decode(w, r, log, &req) {
		return
	}

	item, err := h.storage.CreateMenuItem(r.Context(), models.MenuItem{
		Id:         uuid.NewString(),
		CategoryId: req.CategoryId,
		Name:       req.Name,
		Price:      req.Price,
		Image:      req.Image,
		Available:  req.Available,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to create menu item")
		return
	}

	h.respond(w, log, http.StatusCreated, item)
}

// PUT /admin/menu/{menuId}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request, menuId string) {
	const op = "server.handlers.UpdateMenuItem"
	log := h.log.With("op", op)

	var req menuItemInput
	if !h.decode(w, r, log, &req) {
		return
	}

	item, err := h.storage.UpdateMenuItem(r.Context(), models.MenuItem{
		Id:         menuId,
		CategoryId: req.CategoryId,
		Name:       req.Name,
		Price:      req.Price,
		Image:      req.Image,
		Available:  req.Available,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to update menu item")
		return
	}

	h.respond(w, log, http.StatusOK, item)
}

// DELETE /admin/menu/{menuId}
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request, menuId string) {
	const op = "server.handlers.DeleteMenuItem"
	log := h.log.With("op", op)

	if err := h.storage.DeleteMenuItem(r.Context(), menuId); err != nil {
		h.fail(w, r, log, err, "Failed to delete menu item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /admin/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.CreateCategory"
	log := h.log.With("op", op)

	var req categoryInput
	if !h.decode(w, r, log, &req) {
		return
	}

	cat, err := h.storage.CreateCategory(r.Context(), models.Category{
		Id:   uuid.NewString(),
		Name: req.Name,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to create category")
		return
	}

	h.respond(w, log, http.StatusCreated, cat)
}

// PUT /admin/categories/{categoryId}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request, categoryId string) {
	const op = "server.handlers.UpdateCategory"
	log := h.log.With("op", op)

	var req categoryInput
	if !h.decode(w, r, log, &req) {
		return
	}

	cat, err := h.storage.UpdateCategory(r.Context(), models.Category{
		Id:   categoryId,
		Name: req.Name,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to update category")
		return
	}

	h.respond(w, log, http.StatusOK, cat)
}

// DELETE /admin/categories/{categoryId}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request, categoryId string) {
	const op = "server.handlers.DeleteCategory"
	log := h.log.With("op", op)

	if err := h.storage.DeleteCategory(r.Context(), categoryId); err != nil {
		h.fail(w, r, log, err, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /admin/posters
func (h *Handler) CreatePoster(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.CreatePoster"
	log := h.log.With("op", op)

	var req posterInput
	if !h.decode(w, r, log, &req) {
		return
	}

	poster, err := h.storage.CreatePoster(r.Context(), models.Poster{
		Id:    uuid.NewString(),
		Title: req.Title,
		Image: req.Image,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to create poster")
		return
	}

	h.respond(w, log, http.StatusCreated, poster)
}

// DELETE /admin/posters/{posterId}
func (h *Handler) DeletePoster(w http.ResponseWriter, r *http.Request, posterId string) {
	const op = "server.handlers.DeletePoster"
	log := h.log.With("op", op)

	if err := h.storage.DeletePoster(r.Context(), posterId); err != nil {
		h.fail(w, r, log, err, "Failed to delete poster")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ListUsers"
	log := h.log.With("op", op)

	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, log, err, "Failed to list users")
		return
	}

	h.respond(w, log, http.StatusOK, users)
}

// POST /admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.CreateUser"
	log := h.log.With("op", op)

	var req userInput
	if !h.decode(w, r, log, &req) {
		return
	}
	if req.Password == "" {
		http.Error(w, "password is required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", sl.Err(err))
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	user, err := h.storage.CreateUser(r.Context(), models.User{
		Id:       uuid.NewString(),
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Password: string(hash),
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to create user")
		return
	}

	h.respond(w, log, http.StatusCreated, user)
}

// PUT /admin/users/{userId}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, userId string) {
	const op = "server.handlers.UpdateUser"
	log := h.log.With("op", op)

	var req userInput
	if !h.decode(w, r, log, &req) {
		return
	}

	user, err := h.storage.UpdateUser(r.Context(), models.User{
		Id:    userId,
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	})
	if err != nil {
		h.fail(w, r, log, err, "Failed to update user")
		return
	}

	h.respond(w, log, http.StatusOK, user)
}

// DELETE /admin/users/{userId}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request, userId string) {
	const op = "server.handlers.DeleteUser"
	log := h.log.With("op", op)

	if err := h.storage.DeleteUser(r.Context(), userId); err != nil {
		h.fail(w, r, log, err, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
