package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

func (s *Storage) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	const op = "database.psql.ListMenu"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items := make([]models.MenuItem, 0, 10)
	if err := s.db.SelectContext(ctx, &items, `
		SELECT id, COALESCE(category_id, '') AS category_id, name, price, image, available FROM menu_items
		ORDER BY name;
	`); err != nil {
		log.Error("Error listing menu", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *Storage) GetMenuItem(ctx context.Context, menuId string) (models.MenuItem, error) {
	const op = "database.psql.GetMenuItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var item models.MenuItem
	err := s.db.GetContext(ctx, &item, `
		SELECT id, COALESCE(category_id, '') AS category_id, name, price, image, available FROM menu_items
		WHERE id=$1;
	`, menuId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Menu item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.MenuItem{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}
		log.Error("Error fetching menu item", sl.Err(err))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *Storage) CreateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	const op = "database.psql.CreateMenuItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, category_id, name, price, image, available)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, item.Id, nullable(item.CategoryId), item.Name, item.Price, item.Image, item.Available); err != nil {
		log.Error("Error creating menu item", sl.Err(err))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

func (s *Storage) UpdateMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	const op = "database.psql.UpdateMenuItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE menu_items SET category_id=$2, name=$3, price=$4, image=$5, available=$6
		WHERE id=$1;
	`, item.Id, nullable(item.CategoryId), item.Name, item.Price, item.Image, item.Available)
	if err != nil {
		log.Error("Error updating menu item", sl.Err(err))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Menu item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return item, nil
}

func (s *Storage) DeleteMenuItem(ctx context.Context, menuId string) error {
	const op = "database.psql.DeleteMenuItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM menu_items
		WHERE id=$1;
	`, menuId)
	if err != nil {
		log.Error("Error deleting menu item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Menu item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "database.psql.ListCategories"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	cats := make([]models.Category, 0, 10)
	if err := s.db.SelectContext(ctx, &cats, `
		SELECT id, name FROM categories
		ORDER BY name;
	`); err != nil {
		log.Error("Error listing categories", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cats, nil
}

func (s *Storage) CreateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	const op = "database.psql.CreateCategory"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Category{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name)
		VALUES ($1, $2);
	`, cat.Id, cat.Name); err != nil {
		log.Error("Error creating category", sl.Err(err))
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	return cat, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, cat models.Category) (models.Category, error) {
	const op = "database.psql.UpdateCategory"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Category{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name=$2
		WHERE id=$1;
	`, cat.Id, cat.Name)
	if err != nil {
		log.Error("Error updating category", sl.Err(err))
		return models.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Category doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return models.Category{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return cat, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, categoryId string) error {
	const op = "database.psql.DeleteCategory"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM categories
		WHERE id=$1;
	`, categoryId)
	if err != nil {
		log.Error("Error deleting category", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Category doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

func (s *Storage) ListPosters(ctx context.Context) ([]models.Poster, error) {
	const op = "database.psql.ListPosters"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	posters := make([]models.Poster, 0, 10)
	if err := s.db.SelectContext(ctx, &posters, `
		SELECT id, title, image FROM posters
		ORDER BY title;
	`); err != nil {
		log.Error("Error listing posters", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return posters, nil
}

func (s *Storage) CreatePoster(ctx context.Context, poster models.Poster) (models.Poster, error) {
	const op = "database.psql.CreatePoster"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.Poster{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO posters (id, title, image)
		VALUES ($1, $2, $3);
	`, poster.Id, poster.Title, poster.Image); err != nil {
		log.Error("Error creating poster", sl.Err(err))
		return models.Poster{}, fmt.Errorf("%s: %w", op, err)
	}

	return poster, nil
}

func (s *Storage) DeletePoster(ctx context.Context, posterId string) error {
	const op = "database.psql.DeletePoster"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM posters
		WHERE id=$1;
	`, posterId)
	if err != nil {
		log.Error("Error deleting poster", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Poster doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

// nullable maps an empty foreign key to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
