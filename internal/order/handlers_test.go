package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
)

type fakeStore struct {
	orders  map[uuid.UUID]Order
	created *Order
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (Order, error) {
	ord, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (s *fakeStore) Create(_ context.Context, ord *Order) error {
	s.created = ord
	return nil
}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
}

func (e *fakeEnqueuer) EnqueueReprice(_ context.Context, orderID uuid.UUID) error {
	e.enqueued = append(e.enqueued, orderID)
	return nil
}

func newTestHandler(store *fakeStore, queue Enqueuer) *Handler {
	return &Handler{
		Repo:     store,
		Svc:      newService(),
		Queue:    queue,
		Validate: validator.New(),
	}
}

func TestCreateOrder(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store, nil)

	body := `{
		"number": "ORD-1001",
		"currencyCode": "USD",
		"items": [
			{"productId": "` + uuid.New().String() + `", "title": "Widget", "quantity": "3", "unitPrice": "9.99"},
			{"productId": "` + uuid.New().String() + `", "title": "Gadget", "quantity": "1", "unitPrice": "3.03"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, store.created)
	require.Equal(t, "33", store.created.TotalPrice.Number())
	require.Equal(t, "draft", store.created.State)

	var resp struct {
		Data orderViewModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "ORD-1001", resp.Data.Number)
	require.Len(t, resp.Data.Items, 2)
	require.Equal(t, "29.97", resp.Data.Items[0].TotalPrice.Number())
}

func TestCreateOrderValidation(t *testing.T) {
	h := newTestHandler(&fakeStore{}, nil)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"no items", `{"number":"N","currencyCode":"USD","items":[]}`, http.StatusUnprocessableEntity},
		{"unknown currency", `{"number":"N","currencyCode":"ZZZ","items":[{"productId":"` + uuid.New().String() + `","title":"x","quantity":"1","unitPrice":"1.00"}]}`, http.StatusBadRequest},
		{"zero quantity", `{"number":"N","currencyCode":"USD","items":[{"productId":"` + uuid.New().String() + `","title":"x","quantity":"0","unitPrice":"1.00"}]}`, http.StatusBadRequest},
		{"bad unit price", `{"number":"N","currencyCode":"USD","items":[{"productId":"` + uuid.New().String() + `","title":"x","quantity":"1","unitPrice":"abc"}]}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.Create(rr, req)
			require.Equal(t, tc.code, rr.Code)
		})
	}
}

func routedRequest(method, path string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, "/api/v1/orders/{orderId}", h)
	r.MethodFunc(method, "/api/v1/orders/{orderId}/recalculate", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestGetOrder(t *testing.T) {
	orderID := uuid.New()
	store := &fakeStore{orders: map[uuid.UUID]Order{
		orderID: {
			ID:           orderID,
			Number:       "ORD-1",
			State:        "draft",
			CurrencyCode: "USD",
			TotalPrice:   money.MustNew("10.00", "USD"),
			Adjustments: []adjustment.Adjustment{
				mustAdjustment(t, adjustment.Definition{Type: "promotion", Label: "Sale", Amount: money.MustNew("-1.00", "USD")}),
			},
		},
	}}
	h := newTestHandler(store, nil)

	rr := routedRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), h.Get)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data orderViewModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "ORD-1", resp.Data.Number)
	require.Len(t, resp.Data.Adjustments, 1)
	require.Equal(t, "promotion", resp.Data.Adjustments[0].Type)

	rr = routedRequest(http.MethodGet, "/api/v1/orders/"+uuid.New().String(), h.Get)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = routedRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", h.Get)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecalculateSchedulesReprice(t *testing.T) {
	orderID := uuid.New()
	store := &fakeStore{orders: map[uuid.UUID]Order{
		orderID: {ID: orderID, CurrencyCode: "USD"},
	}}
	queue := &fakeEnqueuer{}
	h := newTestHandler(store, queue)

	rr := routedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/recalculate", h.Recalculate)
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.Equal(t, []uuid.UUID{orderID}, queue.enqueued)

	rr = routedRequest(http.MethodPost, "/api/v1/orders/"+uuid.New().String()+"/recalculate", h.Recalculate)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Len(t, queue.enqueued, 1)
}
