package handlers

import (
	"net/http"

	"orderfront/internal/server/middleware"
)

type addCartItemRequest struct {
	MenuId   string `json:"menu_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Note     string `json:"note"`
}

type updateCartItemRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gte=1"`
	Note     *string `json:"note"`
}

// GET /cart
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ListCart"
	log := h.log.With("op", op)

	items, err := h.storage.ListCart(r.Context(), middleware.UserId(r.Context()))
	if err != nil {
		h.fail(w, r, log, err, "Failed to list cart")
		return
	}

	h.respond(w, log, http.StatusOK, items)
}

// POST /cart
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.AddCartItem"
	log := h.log.With("op", op)

	var req addCartItemRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	item, err := h.storage.AddCartItem(r.Context(), middleware.UserId(r.Context()), req.MenuId, req.Quantity, req.Note)
	if err != nil {
		h.fail(w, r, log, err, "Failed to add item to cart")
		return
	}

	h.respond(w, log, http.StatusCreated, item)
}

// PUT /cart/{itemId}
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request, itemId string) {
	const op = "server.handlers.UpdateCartItem"
	log := h.log.With("op", op)

	var req updateCartItemRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	item, err := h.storage.UpdateCartItem(r.Context(), middleware.UserId(r.Context()), itemId, req.Quantity, req.Note)
	if err != nil {
		h.fail(w, r, log, err, "Failed to update cart item")
		return
	}

	h.respond(w, log, http.StatusOK, item)
}

// DELETE /cart/{itemId}
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request, itemId string) {
	const op = "server.handlers.RemoveCartItem"
	log := h.log.With("op", op)

	if err := h.storage.RemoveCartItem(r.Context(), middleware.UserId(r.Context()), itemId); err != nil {
		h.fail(w, r, log, err, "Failed to remove cart item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ClearCart"
	log := h.log.With("op", op)

	if err := h.storage.ClearCart(r.Context(), middleware.UserId(r.Context())); err != nil {
		h.fail(w, r, log, err, "Failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
