package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	databaseerrors "orderfront/internal/database"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

func (s *Storage) ListCart(ctx context.Context, userId string) ([]models.CartItem, error) {
	const op = "database.psql.ListCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT ci.id, ci.menu_id, ci.quantity, ci.note,
		       m.id, m.category_id, m.name, m.price, m.image, m.available
		FROM cart_items AS ci
		JOIN menu_items AS m
		ON ci.menu_id = m.id
		WHERE ci.user_id=$1
		ORDER BY ci.added_at;
	`, userId)
	if err != nil {
		log.Error("Failed to query cart items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.CartItem, 0, 10)
	for rows.Next() {
		var (
			item       models.CartItem
			categoryId sql.NullString
		)
		if err := rows.Scan(
			&item.Id, &item.MenuId, &item.Quantity, &item.Note,
			&item.Menu.Id, &categoryId, &item.Menu.Name, &item.Menu.Price,
			&item.Menu.Image, &item.Menu.Available,
		); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			continue
		}
		item.Menu.CategoryId = categoryId.String
		items = append(items, item)
	}

	return items, nil
}

func (s *Storage) AddCartItem(ctx context.Context, userId, menuId string, quantity int, note string) (models.CartItem, error) {
	const op = "database.psql.AddCartItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var menu models.MenuItem
	var categoryId sql.NullString
	if err = tx.QueryRowxContext(ctx, `
		SELECT id, category_id, name, price, image, available FROM menu_items
		WHERE id=$1;
	`, menuId).Scan(&menu.Id, &categoryId, &menu.Name, &menu.Price, &menu.Image, &menu.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Menu item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.CartItem{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}
		log.Error("Error checking menu item existence", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	menu.CategoryId = categoryId.String

	itemId := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cart_items (id, user_id, menu_id, quantity, note)
		VALUES ($1, $2, $3, $4, $5);
	`, itemId, userId, menuId, quantity, note); err != nil {
		log.Error("Failed to insert cart item", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CartItem{
		Id:       itemId,
		MenuId:   menuId,
		Quantity: quantity,
		Note:     note,
		Menu:     menu,
	}, nil
}

// UpdateCartItem is partial: a nil quantity or note leaves the column
// as it was.
func (s *Storage) UpdateCartItem(ctx context.Context, userId, itemId string, quantity *int, note *string) (models.CartItem, error) {
	const op = "database.psql.UpdateCartItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = COALESCE($3, quantity),
		    note     = COALESCE($4, note)
		WHERE id=$1 AND user_id=$2;
	`, itemId, userId, quantity, note)
	if err != nil {
		log.Error("Failed to update cart item", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Cart item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	var (
		item       models.CartItem
		categoryId sql.NullString
	)
	if err := s.db.QueryRowxContext(ctx, `
		SELECT ci.id, ci.menu_id, ci.quantity, ci.note,
		       m.id, m.category_id, m.name, m.price, m.image, m.available
		FROM cart_items AS ci
		JOIN menu_items AS m
		ON ci.menu_id = m.id
		WHERE ci.id=$1;
	`, itemId).Scan(
		&item.Id, &item.MenuId, &item.Quantity, &item.Note,
		&item.Menu.Id, &categoryId, &item.Menu.Name, &item.Menu.Price,
		&item.Menu.Image, &item.Menu.Available,
	); err != nil {
		log.Error("Failed to read back cart item", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	item.Menu.CategoryId = categoryId.String

	return item, nil
}

func (s *Storage) RemoveCartItem(ctx context.Context, userId, itemId string) error {
	const op = "database.psql.RemoveCartItem"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id=$1 AND user_id=$2;
	`, itemId, userId)
	if err != nil {
		log.Error("Failed to delete cart item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("Cart item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

// ClearCart deletes every line for the user. Clearing an empty cart is
// not an error.
func (s *Storage) ClearCart(ctx context.Context, userId string) error {
	const op = "database.psql.ClearCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id=$1;
	`, userId); err != nil {
		log.Error("Failed to clear cart", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
