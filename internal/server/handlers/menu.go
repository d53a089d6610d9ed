package handlers

import "net/http"

// GET /menu
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ListMenu"
	log := h.log.With("op", op)

	items, err := h.storage.ListMenu(r.Context())
	if err != nil {
		h.fail(w, r, log, err, "Failed to list menu")
		return
	}

	h.respond(w, log, http.StatusOK, items)
}

// GET /menu/{menuId}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request, menuId string) {
	const op = "server.handlers.GetMenuItem"
	log := h.log.With("op", op)

	item, err := h.storage.GetMenuItem(r.Context(), menuId)
	if err != nil {
		h.fail(w, r, log, err, "Failed to get menu item")
		return
	}

	h.respond(w, log, http.StatusOK, item)
}

// GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ListCategories"
	log := h.log.With("op", op)

	cats, err := h.storage.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, log, err, "Failed to list categories")
		return
	}

	h.respond(w, log, http.StatusOK, cats)
}

// GET /posters
func (h *Handler) ListPosters(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlers.ListPosters"
	log := h.log.With("op", op)

	posters, err := h.storage.ListPosters(r.Context())
	if err != nil {
		h.fail(w, r, log, err, "Failed to list posters")
		return
	}

	h.respond(w, log, http.StatusOK, posters)
}
