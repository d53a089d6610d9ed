package server

import (
	"log/slog"
	"net/http"
	"strings"

	"orderfront/internal/models"
	"orderfront/internal/server/handlers"
	"orderfront/internal/server/middleware"
)

type Routes struct {
	log       *slog.Logger
	handler   *handlers.Handler
	jwtSecret string
}

func NewRoutes(log *slog.Logger, handler *handlers.Handler, jwtSecret string) *Routes {
	return &Routes{
		log:       log,
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

func (rt *Routes) Register(mux *http.ServeMux) {
	auth := middleware.Auth(rt.log, rt.jwtSecret)
	staff := middleware.Auth(rt.log, rt.jwtSecret, models.RoleManager, models.RoleAdmin)

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		rt.handler.Login(w, r)
	})

	mux.HandleFunc("/cart", auth(rt.cartRoot))
	mux.HandleFunc("/cart/", auth(rt.cartItem))
	mux.HandleFunc("/orders", auth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		rt.handler.CreateOrder(w, r)
	}))
	mux.HandleFunc("/payments/", auth(rt.payments))

	mux.HandleFunc("/menu", onlyGet(rt.handler.ListMenu))
	mux.HandleFunc("/menu/", rt.menuItem)
	mux.HandleFunc("/categories", onlyGet(rt.handler.ListCategories))
	mux.HandleFunc("/posters", onlyGet(rt.handler.ListPosters))

	mux.HandleFunc("/admin/", staff(rt.admin))
}

func (rt *Routes) cartRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.handler.ListCart(w, r)
	case http.MethodPost:
		rt.handler.AddCartItem(w, r)
	case http.MethodDelete:
		rt.handler.ClearCart(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Routes) cartItem(w http.ResponseWriter, r *http.Request) {
	parts := split(r.URL.Path)

	switch {
	case len(parts) == 2 && r.Method == http.MethodPut:
		// PUT /cart/{itemId}
		rt.handler.UpdateCartItem(w, r, parts[1])
	case len(parts) == 2 && r.Method == http.MethodDelete:
		// DELETE /cart/{itemId}
		rt.handler.RemoveCartItem(w, r, parts[1])
	default:
		http.NotFound(w, r)
	}
}

func (rt *Routes) payments(w http.ResponseWriter, r *http.Request) {
	parts := split(r.URL.Path)

	// POST /payments/{orderId}/pay
	if len(parts) == 3 && parts[2] == "pay" && r.Method == http.MethodPost {
		rt.handler.Pay(w, r, parts[1])
		return
	}

	http.NotFound(w, r)
}

func (rt *Routes) menuItem(w http.ResponseWriter, r *http.Request) {
	parts := split(r.URL.Path)

	// GET /menu/{menuId}
	if len(parts) == 2 && r.Method == http.MethodGet {
		rt.handler.GetMenuItem(w, r, parts[1])
		return
	}

	http.NotFound(w, r)
}

func (rt *Routes) admin(w http.ResponseWriter, r *http.Request) {
	parts := split(r.URL.Path)
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	resource := parts[1]
	id := ""
	if len(parts) == 3 {
		id = parts[2]
	} else if len(parts) > 3 {
		http.NotFound(w, r)
		return
	}

	// user management is admin-only, the rest is open to managers too
	if resource == "users" && middleware.Role(r.Context()) != models.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	switch {
	case resource == "menu" && id == "" && r.Method == http.MethodPost:
		rt.handler.CreateMenuItem(w, r)
	case resource == "menu" && id != "" && r.Method == http.MethodPut:
		rt.handler.UpdateMenuItem(w, r, id)
	case resource == "menu" && id != "" && r.Method == http.MethodDelete:
		rt.handler.DeleteMenuItem(w, r, id)
	case resource == "categories" && id == "" && r.Method == http.MethodPost:
		rt.handler.CreateCategory(w, r)
	case resource == "categories" && id != "" && r.Method == http.MethodPut:
		rt.handler.UpdateCategory(w, r, id)
	case resource == "categories" && id != "" && r.Method == http.MethodDelete:
		rt.handler.DeleteCategory(w, r, id)
	case resource == "posters" && id == "" && r.Method == http.MethodPost:
		rt.handler.CreatePoster(w, r)
	case resource == "posters" && id != "" && r.Method == http.MethodDelete:
		rt.handler.DeletePoster(w, r, id)
	case resource == "users" && id == "" && r.Method == http.MethodGet:
		rt.handler.ListUsers(w, r)
	case resource == "users" && id == "" && r.Method == http.MethodPost:
		rt.handler.CreateUser(w, r)
	case resource == "users" && id != "" && r.Method == http.MethodPut:
		rt.handler.UpdateUser(w, r, id)
	case resource == "users" && id != "" && r.Method == http.MethodDelete:
		rt.handler.DeleteUser(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func onlyGet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		next(w, r)
	}
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
