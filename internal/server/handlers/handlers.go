package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/events"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

const StatusClientClosedRequest = 499

type Storage interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userId string) error

	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, menuId string) (models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, menuId string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, cat models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, categoryId string) error

	ListPosters(ctx context.Context) ([]models.Poster, error)
	CreatePoster(ctx context.Context, poster models.Poster) (models.Poster, error)
	DeletePoster(ctx context.Context, posterId string) error

	ListCart(ctx context.Context, userId string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, userId, menuId string, quantity int, note string) (models.CartItem, error)
	UpdateCartItem(ctx context.Context, userId, itemId string, quantity *int, note *string) (models.CartItem, error)
	RemoveCartItem(ctx context.Context, userId, itemId string) error
	ClearCart(ctx context.Context, userId string) error

	CreateOrder(ctx context.Context, userId string, items []models.OrderItem, note string, totalPrice int64) (models.Order, error)
	CreatePayment(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, models.Order, error)
}

type Handler struct {
	log       *slog.Logger
	storage   Storage
	validate  *validator.Validate
	jwtSecret string
	tokenTTL  time.Duration
	publisher *events.Publisher
}

func New(log *slog.Logger, storage Storage, jwtSecret string, tokenTTL time.Duration, publisher *events.Publisher) *Handler {
	return &Handler{
		log:       log,
		storage:   storage,
		validate:  validator.New(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		publisher: publisher,
	}
}

func (h *Handler) respond(w http.ResponseWriter, log *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", sl.Err(err))
	}
}

// fail translates storage and context errors into status codes.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, context.Canceled):
		log.Warn("Context canceled", sl.Err(err))
		http.Error(w, "Context canceled", StatusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(err))
		http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
	case errors.Is(err, databaseerrors.ErrNotFound):
		log.Warn("Not found", sl.Err(err))
		http.NotFound(w, r)
	case errors.Is(err, databaseerrors.ErrAlreadyExists):
		log.Warn("Conflict", sl.Err(err))
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		log.Error(msg, sl.Err(err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return false
	}
	return true
}
