package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var resp struct {
		Error ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

func TestRenderErrorAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	appErr := NewAppError("CONFLICT", "order number already used", http.StatusConflict, errors.New("unique violation"))
	RenderError(rr, fmt.Errorf("create order: %w", appErr), "unable to persist order")

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Code != "CONFLICT" || body.Message != "order number already used" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRenderErrorFallback(t *testing.T) {
	rr := httptest.NewRecorder()
	RenderError(rr, errors.New("boom"), "unable to persist order")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Code != "INTERNAL" || body.Message != "unable to persist order" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestIsAppError(t *testing.T) {
	appErr := NewAppError("X", "x", http.StatusBadRequest, nil)
	if !IsAppError(fmt.Errorf("wrap: %w", appErr)) {
		t.Fatalf("wrapped AppError not recognised")
	}
	if IsAppError(errors.New("plain")) {
		t.Fatalf("plain error misclassified")
	}
}
