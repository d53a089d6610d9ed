package checkoutservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
	serviceerrors "orderfront/internal/service"
	"orderfront/pkg/lib/logger/sl"
)

var ErrPaymentFailed = errors.New("payment failed")

// PaymentError reports a payment that failed after the order was
// already created. The backend exposes no cancel-order call, so the
// order is stranded server-side in awaiting_payment; the id is carried
// so the caller can at least name it.
type PaymentError struct {
	OrderId string
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment for order %s failed: %v", e.OrderId, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

func (e *PaymentError) Is(target error) bool { return target == ErrPaymentFailed }

type Cart interface {
	Items() []models.CartItem
	Total() int64
	Clear(ctx context.Context) error
}

type Session interface {
	Token() (string, error)
}

type OrderBackend interface {
	CreateOrder(ctx context.Context, req rest.CreateOrderRequest) (models.Order, error)
	PayOrder(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, error)
}

type Result struct {
	Order   models.Order
	Payment models.Payment
}

// Orchestrator turns the current cart into a paid order: guards, order
// submission, payment, cart clear, strictly in that sequence. Each
// step's success is the precondition for the next.
type Orchestrator struct {
	log     *slog.Logger
	cart    Cart
	session Session
	backend OrderBackend
}

func New(log *slog.Logger, cart Cart, session Session, backend OrderBackend) *Orchestrator {
	return &Orchestrator{
		log:     log,
		cart:    cart,
		session: session,
		backend: backend,
	}
}

func (o *Orchestrator) Submit(ctx context.Context, method models.PaymentMethod, note string) (Result, error) {
	const op = "service.checkout.Submit"
	log := o.log.With("op", op)

	items := o.cart.Items()
	if len(items) == 0 {
		log.Warn("Checkout attempted with empty cart")
		return Result{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrEmptyCart)
	}

	if _, err := o.session.Token(); err != nil {
		log.Warn("Checkout attempted without session", sl.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrNotAuthenticated)
	}

	if !method.Valid() {
		log.Warn("Unknown payment method", "method", string(method))
		return Result{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrInvalidPaymentMethod)
	}

	order, err := o.backend.CreateOrder(ctx, buildOrderRequest(items, note))
	if err != nil {
		log.Error("Failed to create order", sl.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrOrderNotCreated)
	}
	// a success status without a usable id is still a failure
	if order.Id == "" {
		log.Error("Order response carried no id", sl.Err(serviceerrors.ErrMalformedResponse))
		return Result{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrOrderNotCreated)
	}

	payment, err := o.backend.PayOrder(ctx, order.Id, method)
	if err != nil {
		// the order now exists with no payment and there is no
		// compensating call; the cart is left intact so the user can
		// retry, which will create a second order
		log.Error("Payment failed for created order", "order_id", order.Id, sl.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, &PaymentError{OrderId: order.Id, Err: err})
	}

	if err := o.cart.Clear(ctx); err != nil {
		// the order is paid either way, a stale cart is the lesser harm
		log.Warn("Failed to clear cart after payment", "order_id", order.Id, sl.Err(err))
	}

	log.Info("Checkout complete", "order_id", order.Id, "payment_status", payment.Status)
	return Result{Order: order, Payment: payment}, nil
}

// buildOrderRequest snapshots the cart lines and computes the total as
// the sum of price times quantity.
func buildOrderRequest(items []models.CartItem, note string) rest.CreateOrderRequest {
	orderItems := make([]models.OrderItem, 0, len(items))
	var total int64
	for _, it := range items {
		orderItems = append(orderItems, models.OrderItem{
			MenuId:   it.MenuId,
			Quantity: it.Quantity,
			Note:     it.Note,
			Price:    it.Menu.Price,
		})
		total += it.LineTotal()
	}
	return rest.CreateOrderRequest{
		Items:      orderItems,
		Note:       note,
		TotalPrice: total,
	}
}
