package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

func (s *Storage) CreateOrder(ctx context.Context, userId string, items []models.OrderItem, note string, totalPrice int64) (models.Order, error) {
	const op = "database.psql.CreateOrder"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	order := models.Order{
		Id:         uuid.NewString(),
		UserId:     userId,
		Items:      items,
		Note:       note,
		TotalPrice: totalPrice,
		Status:     models.OrderAwaitingPayment,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, note, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, order.Id, order.UserId, order.Note, order.TotalPrice, order.Status, order.CreatedAt); err != nil {
		log.Error("Failed to insert order", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_id, quantity, note, price)
			VALUES ($1, $2, $3, $4, $5);
		`, order.Id, it.MenuId, it.Quantity, it.Note, it.Price); err != nil {
			log.Error("Failed to insert order item", sl.Err(err))
			return models.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

// CreatePayment settles an awaiting order: the payment row and the
// order status flip commit together.
func (s *Storage) CreatePayment(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, models.Order, error) {
	const op = "database.psql.CreatePayment"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var order models.Order
	if err = tx.QueryRowxContext(ctx, `
		SELECT id, user_id, note, total_price, status, created_at FROM orders
		WHERE id=$1
		FOR UPDATE;
	`, orderId).Scan(&order.Id, &order.UserId, &order.Note, &order.TotalPrice, &order.Status, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Order doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}
		log.Error("Error checking order existence", sl.Err(err))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if order.Status != models.OrderAwaitingPayment {
		log.Warn("Order is already settled", sl.Err(databaseerrors.ErrAlreadyExists))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrAlreadyExists)
	}

	payment := models.Payment{
		Id:      uuid.NewString(),
		OrderId: order.Id,
		Method:  method,
		Status:  models.OrderPaid,
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, method, status)
		VALUES ($1, $2, $3, $4);
	`, payment.Id, payment.OrderId, payment.Method, payment.Status); err != nil {
		log.Error("Failed to insert payment", sl.Err(err))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET status=$2
		WHERE id=$1;
	`, order.Id, models.OrderPaid); err != nil {
		log.Error("Failed to update order status", sl.Err(err))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.Payment{}, models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order.Status = models.OrderPaid
	return payment, order, nil
}
