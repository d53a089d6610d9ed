package cartservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	backenderrors "orderfront/internal/backend"
	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
	serviceerrors "orderfront/internal/service"
	"orderfront/pkg/lib/logger/sl"
)

type CartBackend interface {
	ListCart(ctx context.Context) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, req rest.AddCartItemRequest) (models.CartItem, error)
	UpdateCartItem(ctx context.Context, itemId string, req rest.UpdateCartItemRequest) (models.CartItem, error)
	RemoveCartItem(ctx context.Context, itemId string) error
	ClearCart(ctx context.Context) error
}

// Manager mirrors the server-side cart in memory. Outside an in-flight
// request the local list equals the last confirmed server state; a
// pending optimistic change shows either the optimistic value or the
// reverted one, never a mix.
type Manager struct {
	log     *slog.Logger
	backend CartBackend

	mu    sync.Mutex
	items []models.CartItem
}

func New(log *slog.Logger, backend CartBackend) *Manager {
	return &Manager{
		log:     log,
		backend: backend,
	}
}

func (m *Manager) Load(ctx context.Context) error {
	const op = "service.cart.Load"
	log := m.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	items, err := m.backend.ListCart(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(log, err, "Failed to load cart"))
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()

	return nil
}

func (m *Manager) Add(ctx context.Context, menuId string, quantity int, note string) (models.CartItem, error) {
	const op = "service.cart.Add"
	log := m.log.With("op", op)

	if quantity < 1 {
		log.Warn("Rejected non-positive quantity on add", "quantity", quantity)
		return models.CartItem{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrInvalidQuantity)
	}

	if err := checkContext(ctx, log); err != nil {
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := m.backend.AddCartItem(ctx, rest.AddCartItemRequest{
		MenuId:   menuId,
		Quantity: quantity,
		Note:     note,
	})
	if err != nil {
		return models.CartItem{}, fmt.Errorf("%s: %w", op, translate(log, err, "Failed to add item to cart"))
	}

	m.mu.Lock()
	m.items = append(m.items, item)
	m.mu.Unlock()

	return item, nil
}

// SetQuantity applies the new quantity locally first, then reconciles
// with the server representation or reverts on failure. Quantity 0 is
// a delete, negative quantities never reach the network.
func (m *Manager) SetQuantity(ctx context.Context, itemId string, quantity int) error {
	const op = "service.cart.SetQuantity"
	log := m.log.With("op", op)

	if quantity < 0 {
		log.Warn("Rejected negative quantity", "quantity", quantity)
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrInvalidQuantity)
	}
	if quantity == 0 {
		return m.Remove(ctx, itemId)
	}

	if err := checkContext(ctx, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := m.applyOptimistic(itemId,
		func(item *models.CartItem) {
			item.Quantity = quantity
		},
		func() (models.CartItem, error) {
			return m.backend.UpdateCartItem(ctx, itemId, rest.UpdateCartItemRequest{
				Quantity: &quantity,
			})
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(log, err, "Failed to update quantity"))
	}

	return nil
}

func (m *Manager) Remove(ctx context.Context, itemId string) error {
	const op = "service.cart.Remove"
	log := m.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.backend.RemoveCartItem(ctx, itemId); err != nil {
		return fmt.Errorf("%s: %w", op, translate(log, err, "Failed to remove item from cart"))
	}

	m.mu.Lock()
	for i, it := range m.items {
		if it.Id == itemId {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	return nil
}

// Clear empties the server cart and then the local list. Clearing an
// already-empty cart is a no-op server-side, so the call stays
// idempotent.
func (m *Manager) Clear(ctx context.Context) error {
	const op = "service.cart.Clear"
	log := m.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.backend.ClearCart(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, translate(log, err, "Failed to clear cart"))
	}

	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()

	return nil
}

// ApplyNoteToAll fans out one update per line item, then reloads the
// whole list from the server. The reload is the correctness anchor: a
// partial failure must not leave the local list silently wrong, so the
// per-item results are not trusted as state.
func (m *Manager) ApplyNoteToAll(ctx context.Context, note string) error {
	const op = "service.cart.ApplyNoteToAll"
	log := m.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.mu.Lock()
	ids := make([]string, 0, len(m.items))
	for _, it := range m.items {
		ids = append(ids, it.Id)
	}
	m.mu.Unlock()

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(itemId string) {
			defer wg.Done()
			_, err := m.backend.UpdateCartItem(ctx, itemId, rest.UpdateCartItemRequest{
				Note: &note,
			})
			if err != nil {
				emu.Lock()
				errs = append(errs, err)
				emu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if err := m.Load(ctx); err != nil {
		log.Error("Failed to reload cart after note fan-out", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Warn("Some note updates failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, translate(log, err, "Failed to apply note to all items"))
	}

	return nil
}

// Items returns a copy of the current line items.
func (m *Manager) Items() []models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.CartItem, len(m.items))
	copy(items, m.items)
	return items
}

func (m *Manager) Total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, it := range m.items {
		total += it.LineTotal()
	}
	return total
}

// Count feeds the header badge from the same state the cart screen
// renders, so the two can never disagree.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// applyOptimistic mutates the local item, awaits the remote call, and
// replaces the item with the server representation on success or the
// saved value on failure.
func (m *Manager) applyOptimistic(itemId string, apply func(*models.CartItem), call func() (models.CartItem, error)) error {
	m.mu.Lock()
	idx := -1
	for i, it := range m.items {
		if it.Id == itemId {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return serviceerrors.ErrNotFound
	}
	prev := m.items[idx]
	apply(&m.items[idx])
	m.mu.Unlock()

	confirmed, err := call()

	m.mu.Lock()
	defer m.mu.Unlock()
	// the item may have been removed while the call was in flight
	idx = -1
	for i, it := range m.items {
		if it.Id == itemId {
			idx = i
			break
		}
	}
	if idx == -1 {
		return err
	}
	if err != nil {
		m.items[idx] = prev
		return err
	}
	m.items[idx] = confirmed
	return nil
}

func checkContext(ctx context.Context, log *slog.Logger) error {
	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.Canceled) {
			log.Warn("context canceled", sl.Err(err))
			return serviceerrors.ErrContextCanceled
		} else if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("deadline exceeded", sl.Err(err))
			return serviceerrors.ErrDeadlineExceeded
		}
		log.Error("unexpected context error", sl.Err(err))
		return err
	default:
	}
	return nil
}

// translate maps boundary errors onto the service taxonomy: missing or
// expired session is terminal for the screen, everything else stays a
// recoverable request failure.
func translate(log *slog.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, context.Canceled):
		log.Warn("context canceled", sl.Err(serviceerrors.ErrContextCanceled))
		return serviceerrors.ErrContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
		return serviceerrors.ErrDeadlineExceeded
	case errors.Is(err, backenderrors.ErrUnauthorized):
		log.Warn("not authenticated", sl.Err(serviceerrors.ErrNotAuthenticated))
		return serviceerrors.ErrNotAuthenticated
	case errors.Is(err, backenderrors.ErrNotFound):
		log.Warn("not found", sl.Err(serviceerrors.ErrNotFound))
		return serviceerrors.ErrNotFound
	case errors.Is(err, backenderrors.ErrMalformedResponse):
		log.Warn("malformed response", sl.Err(serviceerrors.ErrMalformedResponse))
		return serviceerrors.ErrMalformedResponse
	default:
		log.Error(msg, sl.Err(err))
		return err
	}
}
