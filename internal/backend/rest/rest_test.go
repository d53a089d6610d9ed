package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	backenderrors "orderfront/internal/backend"
	"orderfront/internal/backend/rest"
	"orderfront/internal/models"
	"orderfront/internal/session"
	"orderfront/pkg/lib/logger/slogdiscard"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, error) {
	if s.token == "" {
		return "", session.ErrNoSession
	}
	return s.token, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*rest.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := rest.New(slogdiscard.NewDiscardLogger(), srv.URL, 5*time.Second, staticTokens{token: token})
	return client, srv
}

func TestMissingTokenNeverHitsTheNetwork(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, "")

	_, err := client.ListCart(context.Background())
	assert.ErrorIs(t, err, backenderrors.ErrUnauthorized)
	assert.Equal(t, int32(0), hits.Load())
}

func TestBearerHeaderIsAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[]")
	}, "tok-123")

	_, err := client.ListCart(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"401 is unauthorized", http.StatusUnauthorized, backenderrors.ErrUnauthorized},
		{"404 is not found", http.StatusNotFound, backenderrors.ErrNotFound},
		{"400 is bad request", http.StatusBadRequest, backenderrors.ErrBadRequest},
		{"500 is unexpected", http.StatusInternalServerError, backenderrors.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, "tok")

			err := client.RemoveCartItem(context.Background(), "ci1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateOrder_MissingIdIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": null, "items": [{"menu_id":"m1","quantity":2}], "total_price": 100000}`)
	}, "tok")

	_, err := client.CreateOrder(context.Background(), rest.CreateOrderRequest{
		Items:      []models.OrderItem{{MenuId: "m1", Quantity: 2}},
		TotalPrice: 100000,
	})
	assert.ErrorIs(t, err, backenderrors.ErrMalformedResponse)
}

func TestCreateOrder_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req rest.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, int64(100000), req.TotalPrice)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{
			Id:         "o1",
			Items:      req.Items,
			TotalPrice: req.TotalPrice,
			Status:     models.OrderAwaitingPayment,
		})
	}, "tok")

	order, err := client.CreateOrder(context.Background(), rest.CreateOrderRequest{
		Items:      []models.OrderItem{{MenuId: "m1", Quantity: 2, Price: 50000}},
		TotalPrice: 100000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "o1", order.Id)
}

func TestUpdateCartItem_PartialBodyOmitsUnsetFields(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.CartItem{
			Id: "ci1", MenuId: "m1", Quantity: 2, Note: "to go",
			Menu: models.MenuItem{Id: "m1", Name: "Pho", Price: 50000},
		})
	}, "tok")

	note := "to go"
	_, err := client.UpdateCartItem(context.Background(), "ci1", rest.UpdateCartItemRequest{Note: &note})
	assert.NoError(t, err)

	assert.Equal(t, "to go", body["note"])
	_, hasQuantity := body["quantity"]
	assert.False(t, hasQuantity, "unset quantity must not appear in a partial update")
}

func TestAddCartItem_InvalidQuantityRejectedLocally(t *testing.T) {
	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, "tok")

	_, err := client.AddCartItem(context.Background(), rest.AddCartItemRequest{MenuId: "m1", Quantity: 0})
	assert.ErrorIs(t, err, backenderrors.ErrBadRequest)
	assert.Equal(t, int32(0), hits.Load())
}
