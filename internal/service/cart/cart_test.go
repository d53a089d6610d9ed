package cartservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	backenderrors "orderfront/internal/backend"
	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
	serviceerrors "orderfront/internal/service"
	cartservice "orderfront/internal/service/cart"
	"orderfront/internal/service/cart/mocks"
	"orderfront/pkg/lib/logger/slogdiscard"
)

func newTestManager(backend *mocks.Backend) *cartservice.Manager {
	logger := slogdiscard.NewDiscardLogger()
	return cartservice.New(logger, backend)
}

func seedItems() []models.CartItem {
	return []models.CartItem{
		{
			Id:       "ci1",
			MenuId:   "m1",
			Quantity: 2,
			Menu:     models.MenuItem{Id: "m1", Name: "Pho", Price: 50000},
		},
	}
}

func loadManager(t *testing.T, backend *mocks.Backend, items []models.CartItem) *cartservice.Manager {
	t.Helper()
	mgr := newTestManager(backend)
	backend.On("ListCart", mock.Anything).Return(items, nil).Once()
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("failed to seed manager: %v", err)
	}
	return mgr
}

func TestLoad_NoSessionIsTerminal(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := newTestManager(backend)

	backend.On("ListCart", mock.Anything).Return([]models.CartItem(nil), backenderrors.ErrUnauthorized)

	err := mgr.Load(context.Background())
	assert.ErrorIs(t, err, serviceerrors.ErrNotAuthenticated)

	backend.AssertExpectations(t)
}

func TestTotal(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	assert.Equal(t, int64(100000), mgr.Total())
	assert.Equal(t, 1, mgr.Count())
}

func TestAdd_AppendsServerItem(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	added := models.CartItem{
		Id:       "ci2",
		MenuId:   "m2",
		Quantity: 1,
		Note:     "to go",
		Menu:     models.MenuItem{Id: "m2", Name: "Banh mi", Price: 30000},
	}
	backend.On("AddCartItem", mock.Anything, mock.MatchedBy(func(req rest.AddCartItemRequest) bool {
		return req.MenuId == "m2" && req.Quantity == 1 && req.Note == "to go"
	})).Return(added, nil).Once()

	item, err := mgr.Add(context.Background(), "m2", 1, "to go")
	assert.NoError(t, err)
	assert.Equal(t, "ci2", item.Id)
	assert.Equal(t, 2, mgr.Count())
	assert.Equal(t, int64(130000), mgr.Total())

	backend.AssertExpectations(t)
}

func TestAdd_NonPositiveQuantityNeverHitsTheNetwork(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	for _, qty := range []int{0, -3} {
		_, err := mgr.Add(context.Background(), "m2", qty, "")
		assert.ErrorIs(t, err, serviceerrors.ErrInvalidQuantity)
	}
	assert.Equal(t, 1, mgr.Count())

	backend.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything)
	backend.AssertExpectations(t)
}

func TestSetQuantity_SuccessShowsServerValue(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	confirmed := seedItems()[0]
	confirmed.Quantity = 5
	backend.On("UpdateCartItem", mock.Anything, "ci1", mock.MatchedBy(func(req rest.UpdateCartItemRequest) bool {
		return req.Quantity != nil && *req.Quantity == 5 && req.Note == nil
	})).Return(confirmed, nil).Once()

	err := mgr.SetQuantity(context.Background(), "ci1", 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, mgr.Items()[0].Quantity)
	assert.Equal(t, int64(250000), mgr.Total())

	backend.AssertExpectations(t)
}

func TestSetQuantity_FailureRevertsToPreviousValue(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	backend.On("UpdateCartItem", mock.Anything, "ci1", mock.Anything).
		Return(models.CartItem{}, errors.New("boom")).Once()

	err := mgr.SetQuantity(context.Background(), "ci1", 7)
	assert.Error(t, err)
	assert.Equal(t, 2, mgr.Items()[0].Quantity)
	assert.Equal(t, int64(100000), mgr.Total())

	backend.AssertExpectations(t)
}

func TestSetQuantity_ZeroDeletesTheItem(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	backend.On("RemoveCartItem", mock.Anything, "ci1").Return(nil).Once()

	err := mgr.SetQuantity(context.Background(), "ci1", 0)
	assert.NoError(t, err)
	assert.Empty(t, mgr.Items())
	assert.Equal(t, int64(0), mgr.Total())

	backend.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything)
	backend.AssertExpectations(t)
}

func TestSetQuantity_NegativeNeverHitsTheNetwork(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	err := mgr.SetQuantity(context.Background(), "ci1", -1)
	assert.ErrorIs(t, err, serviceerrors.ErrInvalidQuantity)
	assert.Equal(t, 2, mgr.Items()[0].Quantity)

	backend.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "RemoveCartItem", mock.Anything, mock.Anything)
	backend.AssertExpectations(t)
}

func TestSetQuantity_UnknownItem(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	err := mgr.SetQuantity(context.Background(), "nope", 3)
	assert.ErrorIs(t, err, serviceerrors.ErrNotFound)

	backend.AssertExpectations(t)
}

func TestRemove_FailureKeepsItem(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	backend.On("RemoveCartItem", mock.Anything, "ci1").Return(errors.New("boom")).Once()

	err := mgr.Remove(context.Background(), "ci1")
	assert.Error(t, err)
	assert.Len(t, mgr.Items(), 1)

	backend.AssertExpectations(t)
}

func TestClear_TwiceIsIdempotent(t *testing.T) {
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, seedItems())

	backend.On("ClearCart", mock.Anything).Return(nil).Twice()

	assert.NoError(t, mgr.Clear(context.Background()))
	assert.Equal(t, 0, mgr.Count())

	// second clear on an already-empty cart
	assert.NoError(t, mgr.Clear(context.Background()))
	assert.Equal(t, 0, mgr.Count())

	backend.AssertExpectations(t)
}

func TestApplyNoteToAll_UpdatesEveryItemAndReloads(t *testing.T) {
	items := []models.CartItem{
		{Id: "ci1", MenuId: "m1", Quantity: 1, Menu: models.MenuItem{Id: "m1", Name: "Pho", Price: 50000}},
		{Id: "ci2", MenuId: "m2", Quantity: 2, Menu: models.MenuItem{Id: "m2", Name: "Banh mi", Price: 30000}},
	}
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, items)

	noted := make([]models.CartItem, len(items))
	copy(noted, items)
	noted[0].Note = "extra chili"
	noted[1].Note = "extra chili"

	backend.On("UpdateCartItem", mock.Anything, mock.Anything, mock.MatchedBy(func(req rest.UpdateCartItemRequest) bool {
		return req.Note != nil && *req.Note == "extra chili" && req.Quantity == nil
	})).Return(models.CartItem{Id: "x", MenuId: "m", Quantity: 1}, nil).Times(2)
	backend.On("ListCart", mock.Anything).Return(noted, nil).Once()

	err := mgr.ApplyNoteToAll(context.Background(), "extra chili")
	assert.NoError(t, err)

	for _, it := range mgr.Items() {
		assert.Equal(t, "extra chili", it.Note)
	}

	backend.AssertExpectations(t)
}

func TestApplyNoteToAll_PartialFailureStillReloads(t *testing.T) {
	items := []models.CartItem{
		{Id: "ci1", MenuId: "m1", Quantity: 1, Menu: models.MenuItem{Id: "m1", Price: 50000}},
		{Id: "ci2", MenuId: "m2", Quantity: 2, Menu: models.MenuItem{Id: "m2", Price: 30000}},
	}
	backend := new(mocks.Backend)
	mgr := loadManager(t, backend, items)

	// one line takes the note, the other fails
	serverTruth := make([]models.CartItem, len(items))
	copy(serverTruth, items)
	serverTruth[0].Note = "to go"

	backend.On("UpdateCartItem", mock.Anything, "ci1", mock.Anything).
		Return(serverTruth[0], nil).Once()
	backend.On("UpdateCartItem", mock.Anything, "ci2", mock.Anything).
		Return(models.CartItem{}, errors.New("boom")).Once()
	backend.On("ListCart", mock.Anything).Return(serverTruth, nil).Once()

	err := mgr.ApplyNoteToAll(context.Background(), "to go")
	assert.Error(t, err)

	// local state matches the reload, not the optimistic attempts
	got := mgr.Items()
	assert.Equal(t, "to go", got[0].Note)
	assert.Equal(t, "", got[1].Note)

	backend.AssertExpectations(t)
}

func TestContextCanceled(t *testing.T) {
	t.Run("Load context canceled before call", func(t *testing.T) {
		backend := new(mocks.Backend)
		mgr := newTestManager(backend)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := mgr.Load(ctx)
		assert.ErrorIs(t, err, serviceerrors.ErrContextCanceled)

		backend.AssertExpectations(t)
	})

	t.Run("SetQuantity context canceled before call", func(t *testing.T) {
		backend := new(mocks.Backend)
		mgr := loadManager(t, backend, seedItems())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := mgr.SetQuantity(ctx, "ci1", 3)
		assert.ErrorIs(t, err, serviceerrors.ErrContextCanceled)

		backend.AssertExpectations(t)
	})

	t.Run("Clear deadline exceeded", func(t *testing.T) {
		backend := new(mocks.Backend)
		mgr := loadManager(t, backend, seedItems())

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
		defer cancel()
		time.Sleep(time.Millisecond * 15)

		err := mgr.Clear(ctx)
		assert.ErrorIs(t, err, serviceerrors.ErrDeadlineExceeded)

		backend.AssertExpectations(t)
	})
}
