package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pricing/internal/catalog"
	"github.com/noah-isme/backend-pricing/internal/money"
)

func newTestHandler(t *testing.T, products *fixtureProducts) *Handler {
	t.Helper()
	return &Handler{
		Svc:      newTestService(t, products),
		Validate: validator.New(),
	}
}

func postCalculate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/calculate", strings.NewReader(body))
	req = req.WithContext(context.Background())
	rr := httptest.NewRecorder()
	h.Calculate(rr, req)
	return rr
}

func TestCalculateHandlerOK(t *testing.T) {
	id := uuid.New()
	products := &fixtureProducts{products: map[uuid.UUID]catalog.Product{
		id: {ID: id, SKU: "SKU-1", Title: "Widget", Price: money.MustNew("9.99", "USD")},
	}}
	h := newTestHandler(t, products)

	rr := postCalculate(t, h, `{"productId":"`+id.String()+`","quantity":"3"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data CalculateOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "29.97", resp.Data.BasePrice.Number())
	require.Equal(t, "USD", resp.Data.BasePrice.CurrencyCode())
}

func TestCalculateHandlerRejectsBadPayloads(t *testing.T) {
	h := newTestHandler(t, &fixtureProducts{})

	cases := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing fields", `{}`, http.StatusUnprocessableEntity},
		{"bad uuid", `{"productId":"nope","quantity":"1"}`, http.StatusUnprocessableEntity},
		{"zero quantity", `{"productId":"` + uuid.New().String() + `","quantity":"0"}`, http.StatusBadRequest},
		{"negative quantity", `{"productId":"` + uuid.New().String() + `","quantity":"-2"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postCalculate(t, h, tc.body)
			require.Equal(t, tc.code, rr.Code)
		})
	}
}

func TestCalculateHandlerUnknownProduct(t *testing.T) {
	h := newTestHandler(t, &fixtureProducts{})
	rr := postCalculate(t, h, `{"productId":"`+uuid.New().String()+`","quantity":"1"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "NOT_FOUND", resp.Error.Code)
}
