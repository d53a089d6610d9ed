package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
)

type Backend struct {
	mock.Mock
}

func (m *Backend) ListCart(ctx context.Context) ([]models.CartItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CartItem), args.Error(1)
}
func (m *Backend) AddCartItem(ctx context.Context, req rest.AddCartItemRequest) (models.CartItem, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CartItem), args.Error(1)
}
func (m *Backend) UpdateCartItem(ctx context.Context, itemId string, req rest.UpdateCartItemRequest) (models.CartItem, error) {
	args := m.Called(ctx, itemId, req)
	return args.Get(0).(models.CartItem), args.Error(1)
}
func (m *Backend) RemoveCartItem(ctx context.Context, itemId string) error {
	args := m.Called(ctx, itemId)
	return args.Error(0)
}
func (m *Backend) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
