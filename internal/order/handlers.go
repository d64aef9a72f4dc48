package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/common"
	"github.com/noah-isme/backend-pricing/internal/money"
)

// Enqueuer schedules background repricing for an order.
type Enqueuer interface {
	EnqueueReprice(ctx context.Context, orderID uuid.UUID) error
}

// Store is the persistence surface the handler needs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	Create(ctx context.Context, ord *Order) error
}

// Handler wires order endpoints to HTTP.
type Handler struct {
	Repo     Store
	Svc      Service
	Queue    Enqueuer
	Validate *validator.Validate
}

type createItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Title     string `json:"title" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
	UnitPrice string `json:"unitPrice" validate:"required"`
}

type createOrderRequest struct {
	Number       string              `json:"number" validate:"required"`
	CurrencyCode string              `json:"currencyCode" validate:"required,len=3"`
	Items        []createItemRequest `json:"items" validate:"min=1,dive"`
}

// Create handles POST /api/v1/orders: build the order, calculate its totals
// and persist it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid order payload", nil)
			return
		}
	}
	ord, err := h.buildOrder(payload)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	if err := h.Svc.RecalculateTotals(&ord); err != nil {
		common.JSONError(w, http.StatusUnprocessableEntity, "CALCULATION", "unable to calculate order totals", nil)
		return
	}
	if err := h.Repo.Create(r.Context(), &ord); err != nil {
		common.RenderError(w, err, "unable to persist order")
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": orderView(ord)})
}

// Get handles GET /api/v1/orders/{orderId}: the order with its breakdown.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	ord, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load order", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": orderView(ord)})
}

// Recalculate handles POST /api/v1/orders/{orderId}/recalculate: schedule a
// background reprice and return 202.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if h.Queue == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "reprice queue not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	if _, err := h.Repo.Get(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load order", nil)
		return
	}
	if err := h.Queue.EnqueueReprice(r.Context(), id); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to schedule reprice", nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"orderId": id.String(), "status": "scheduled"}})
}

func (h *Handler) buildOrder(payload createOrderRequest) (Order, error) {
	currency := strings.ToUpper(strings.TrimSpace(payload.CurrencyCode))
	if !money.KnownCurrency(currency) {
		return Order{}, errors.New("unknown currency code")
	}
	ord := Order{
		ID:           uuid.New(),
		Number:       strings.TrimSpace(payload.Number),
		State:        "draft",
		CurrencyCode: currency,
	}
	for _, item := range payload.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return Order{}, errors.New("invalid product id")
		}
		quantity, err := decimal.NewFromString(strings.TrimSpace(item.Quantity))
		if err != nil || !quantity.IsPositive() {
			return Order{}, errors.New("quantity must be a positive decimal string")
		}
		unitPrice, err := money.New(strings.TrimSpace(item.UnitPrice), currency)
		if err != nil {
			return Order{}, errors.New("invalid unit price")
		}
		ord.Items = append(ord.Items, Item{
			ID:        uuid.New(),
			OrderID:   ord.ID,
			ProductID: productID,
			Title:     item.Title,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}
	return ord, nil
}

type itemViewModel struct {
	ID          uuid.UUID               `json:"id"`
	ProductID   uuid.UUID               `json:"productId"`
	Title       string                  `json:"title"`
	Quantity    string                  `json:"quantity"`
	UnitPrice   money.Price             `json:"unitPrice"`
	TotalPrice  money.Price             `json:"totalPrice"`
	Adjustments []adjustment.FieldValue `json:"adjustments"`
}

type orderViewModel struct {
	ID           uuid.UUID               `json:"id"`
	Number       string                  `json:"number"`
	State        string                  `json:"state"`
	CurrencyCode string                  `json:"currencyCode"`
	TotalPrice   money.Price             `json:"totalPrice"`
	Adjustments  []adjustment.FieldValue `json:"adjustments"`
	Items        []itemViewModel         `json:"items"`
}

func orderView(ord Order) orderViewModel {
	view := orderViewModel{
		ID:           ord.ID,
		Number:       ord.Number,
		State:        ord.State,
		CurrencyCode: ord.CurrencyCode,
		TotalPrice:   ord.TotalPrice,
		Adjustments:  fieldValues(ord.Adjustments),
	}
	for _, it := range ord.Items {
		view.Items = append(view.Items, itemViewModel{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Title:       it.Title,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Adjustments: fieldValues(it.Adjustments),
		})
	}
	return view
}

func fieldValues(adjustments []adjustment.Adjustment) []adjustment.FieldValue {
	values := make([]adjustment.FieldValue, 0, len(adjustments))
	for _, a := range adjustments {
		values = append(values, a.FieldValue())
	}
	return values
}
