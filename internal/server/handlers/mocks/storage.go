package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderfront/internal/models"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *Storage) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *Storage) DeleteUser(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}

func (m *Storage) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MenuItem), args.Error(1)
}
func (m *Storage) GetMenuItem(ctx context.Context, menuId string) (models.MenuItem, error) {
	args := m.Called(ctx, menuId)
	return args.Get(0).(models.MenuItem), args.Error(1)
}
func (m *Storage) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.MenuItem), args.Error(1)
}
func (m *Storage) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.MenuItem), args.Error(1)
}
func (m *Storage) DeleteMenuItem(ctx context.Context, menuId string) error {
	args := m.Called(ctx, menuId)
	return args.Error(0)
}

func (m *Storage) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}
func (m *Storage) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.Category), args.Error(1)
}
func (m *Storage) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(models.Category), args.Error(1)
}
func (m *Storage) DeleteCategory(ctx context.Context, categoryId string) error {
	args := m.Called(ctx, categoryId)
	return args.Error(0)
}

func (m *Storage) ListPosters(ctx context.Context) ([]models.Poster, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Poster), args.Error(1)
}
func (m *Storage) CreatePoster(ctx context.Context, poster models.Poster) (models.Poster, error) {
	args := m.Called(ctx, poster)
	return args.Get(0).(models.Poster), args.Error(1)
}
func (m *Storage) DeletePoster(ctx context.Context, posterId string) error {
	args := m.Called(ctx, posterId)
	return args.Error(0)
}

func (m *Storage) ListCart(ctx context.Context, userId string) ([]models.CartItem, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.CartItem), args.Error(1)
}
func (m *Storage) AddCartItem(ctx context.Context, userId, menuId string, quantity int, note string) (models.CartItem, error) {
	args := m.Called(ctx, userId, menuId, quantity, note)
	return args.Get(0).(models.CartItem), args.Error(1)
}
func (m *Storage) UpdateCartItem(ctx context.Context, userId, itemId string, quantity *int, note *string) (models.CartItem, error) {
	args := m.Called(ctx, userId, itemId, quantity, note)
	return args.Get(0).(models.CartItem), args.Error(1)
}
func (m *Storage) RemoveCartItem(ctx context.Context, userId, itemId string) error {
	args := m.Called(ctx, userId, itemId)
	return args.Error(0)
}
func (m *Storage) ClearCart(ctx context.Context, userId string) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}

func (m *Storage) CreateOrder(ctx context.Context, userId string, items []models.OrderItem, note string, totalPrice int64) (models.Order, error) {
	args := m.Called(ctx, userId, items, note, totalPrice)
	return args.Get(0).(models.Order), args.Error(1)
}
func (m *Storage) CreatePayment(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, models.Order, error) {
	args := m.Called(ctx, orderId, method)
	return args.Get(0).(models.Payment), args.Get(1).(models.Order), args.Error(2)
}
