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

func (m *Backend) CreateOrder(ctx context.Context, req rest.CreateOrderRequest) (models.Order, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Order), args.Error(1)
}
func (m *Backend) PayOrder(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, error) {
	args := m.Called(ctx, orderId, method)
	return args.Get(0).(models.Payment), args.Error(1)
}

type Cart struct {
	mock.Mock
}

func (m *Cart) Items() []models.CartItem {
	args := m.Called()
	return args.Get(0).([]models.CartItem)
}
func (m *Cart) Total() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
func (m *Cart) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type Session struct {
	mock.Mock
}

func (m *Session) Token() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
