package handlers

import (
	"net/http"

	"orderfront/internal/models"
	"orderfront/internal/server/middleware"
	"orderfront/pkg/lib/logger/sl"
)

type createOrderRequest struct {
	Items      []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Note       string             `json:"note"`
	TotalPrice int64              `json:"total_price" validate:"gte=0"`
}

type payRequest struct {
	Method models.PaymentMethod `json:"method" validate:"required,oneof=cash card bank_transfer"`
}

// POST /orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.CreateOrder"
	log := h.log.With("op", op)

	var req createOrderRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	order, err := h.storage.CreateOrder(r.Context(), middleware.UserId(r.Context()), req.Items, req.Note, req.TotalPrice)
	if err != nil {
		h.fail(w, r, log, err, "Failed to create order")
		return
	}

	h.respond(w, log, http.StatusCreated, order)
}

// POST /payments/{orderId}/pay
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request, orderId string) {
	const op = "server.handlers.Pay"
	log := h.log.With("op", op)

	var req payRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	payment, order, err := h.storage.CreatePayment(r.Context(), orderId, req.Method)
	if err != nil {
		h.fail(w, r, log, err, "Failed to record payment")
		return
	}

	if err := h.publisher.PublishOrderPaid(order, payment); err != nil {
		// the payment is committed, the kitchen event is best effort
		log.Warn("Failed to publish paid order", sl.Err(err))
	}

	h.respond(w, log, http.StatusCreated, payment)
}
