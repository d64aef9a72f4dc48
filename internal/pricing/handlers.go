package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/common"
	"github.com/noah-isme/backend-pricing/internal/pricecalc"
)

// Handler wires price calculation to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type calculateRequest struct {
	ProductID       string   `json:"productId" validate:"required,uuid4"`
	Quantity        string   `json:"quantity" validate:"required"`
	AdjustmentTypes []string `json:"adjustmentTypes" validate:"dive,required"`
	TaxZone         string   `json:"taxZone"`
}

// Calculate handles POST /api/v1/prices/calculate.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing service not configured", nil)
		return
	}
	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid calculation request", validationDetails(err))
			return
		}
	}
	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	quantity, err := decimal.NewFromString(strings.TrimSpace(payload.Quantity))
	if err != nil || !quantity.IsPositive() {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "quantity must be a positive decimal string", nil)
		return
	}

	out, err := h.Svc.Calculate(r.Context(), CalculateInput{
		ProductID:       productID,
		Quantity:        quantity,
		AdjustmentTypes: payload.AdjustmentTypes,
		TaxZone:         strings.TrimSpace(payload.TaxZone),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	case errors.Is(err, pricecalc.ErrNoPrice):
		common.JSONError(w, http.StatusUnprocessableEntity, "NO_PRICE", "no price could be resolved for the product", nil)
	default:
		common.RenderError(w, err, "unable to calculate price")
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
