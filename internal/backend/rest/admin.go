package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	backenderrors "orderfront/internal/backend"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

// Back-office CRUD, all bearer-authenticated; the server enforces roles.

type MenuItemInput struct {
	CategoryId string `json:"category_id"`
	Name       string `json:"name" validate:"required"`
	Price      int64  `json:"price" validate:"gte=0"`
	Image      string `json:"image"`
	Available  bool   `json:"available"`
}

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type PosterInput struct {
	Title string `json:"title"`
	Image string `json:"image" validate:"required"`
}

type UserInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role" validate:"required,oneof=customer manager admin"`
	Password string      `json:"password,omitempty"`
}

func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	const op = "backend.rest.CreateMenuItem"

	if err := c.validate.Struct(in); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var item models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/admin/menu", in, &item, true); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(item); err != nil {
		c.log.With("op", op).Warn("Invalid menu item in response", sl.Err(err))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, menuId string, in MenuItemInput) (models.MenuItem, error) {
	const op = "backend.rest.UpdateMenuItem"

	var item models.MenuItem
	path := "/admin/menu/" + url.PathEscape(menuId)
	if err := c.do(ctx, http.MethodPut, path, in, &item, true); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, menuId string) error {
	const op = "backend.rest.DeleteMenuItem"

	path := "/admin/menu/" + url.PathEscape(menuId)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	const op = "backend.rest.CreateCategory"

	if err := c.validate.Struct(in); err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var cat models.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories", in, &cat, true); err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, categoryId string, in CategoryInput) (models.Category, error) {
	const op = "backend.rest.UpdateCategory"

	var cat models.Category
	path := "/admin/categories/" + url.PathEscape(categoryId)
	if err := c.do(ctx, http.MethodPut, path, in, &cat, true); err != nil {
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryId string) error {
	const op = "backend.rest.DeleteCategory"

	path := "/admin/categories/" + url.PathEscape(categoryId)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) CreatePoster(ctx context.Context, in PosterInput) (models.Poster, error) {
	const op = "backend.rest.CreatePoster"

	if err := c.validate.Struct(in); err != nil {
		return models.Poster{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var poster models.Poster
	if err := c.do(ctx, http.MethodPost, "/admin/posters", in, &poster, true); err != nil {
		return models.Poster{}, fmt.Errorf("%s: %w", op, err)
	}
	return poster, nil
}

func (c *Client) DeletePoster(ctx context.Context, posterId string) error {
	const op = "backend.rest.DeletePoster"

	path := "/admin/posters/" + url.PathEscape(posterId)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "backend.rest.ListUsers"

	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (models.User, error) {
	const op = "backend.rest.CreateUser"

	if err := c.validate.Struct(in); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/admin/users", in, &user, true); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, userId string, in UserInput) (models.User, error) {
	const op = "backend.rest.UpdateUser"

	var user models.User
	path := "/admin/users/" + url.PathEscape(userId)
	if err := c.do(ctx, http.MethodPut, path, in, &user, true); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userId string) error {
	const op = "backend.rest.DeleteUser"

	path := "/admin/users/" + url.PathEscape(userId)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
