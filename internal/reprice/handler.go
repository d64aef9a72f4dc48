package reprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-pricing/internal/obs"
	"github.com/noah-isme/backend-pricing/internal/order"
	"github.com/noah-isme/backend-pricing/internal/promotion"
)

// Store is the order persistence surface the handler needs.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (order.Order, error)
	UpdateTotals(ctx context.Context, ord *order.Order) error
}

// Promotions lists promotions that may apply to orders.
type Promotions interface {
	ListActive(ctx context.Context, now time.Time) ([]promotion.Promotion, error)
}

// Locker serialises repricing per order across workers.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Handler processes order:reprice tasks: reload the order, distribute active
// order-level promotions, recalculate totals and persist.
type Handler struct {
	Orders      Store
	Svc         order.Service
	Promotions  Promotions
	Distributor promotion.Distributor
	Lock        Locker
	LockTTL     time.Duration
	Logger      zerolog.Logger
	Now         func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ProcessTask implements asynq.Handler.
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload Payload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never become processable; skip retries.
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return fmt.Errorf("parse order id: %v: %w", err, asynq.SkipRetry)
	}

	work := func(ctx context.Context) error {
		return h.reprice(ctx, orderID)
	}
	if h.Lock != nil {
		err = h.Lock.WithLock(ctx, "reprice:"+orderID.String(), h.LockTTL, work)
	} else {
		err = work(ctx)
	}

	result := "ok"
	if err != nil {
		result = "error"
		if errors.Is(err, order.ErrNotFound) {
			// The order vanished between enqueue and processing.
			result = "gone"
			err = fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}
	if obs.OrderRepriceTotal != nil {
		obs.OrderRepriceTotal.WithLabelValues(result).Inc()
	}
	if err != nil {
		h.Logger.Error().Err(err).Str("order_id", orderID.String()).Msg("reprice order")
		return err
	}
	h.Logger.Info().Str("order_id", orderID.String()).Msg("order repriced")
	return nil
}

func (h *Handler) reprice(ctx context.Context, orderID uuid.UUID) error {
	ord, err := h.Orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if h.Promotions != nil {
		promotions, err := h.Promotions.ListActive(ctx, h.now())
		if err != nil {
			return err
		}
		for _, promo := range promotions {
			if !promo.OrderLevel || promo.Amount == nil {
				continue
			}
			if promo.Amount.CurrencyCode() != ord.CurrencyCode {
				continue
			}
			if err := h.Distributor.Apply(&ord, promo); err != nil {
				return err
			}
		}
	}
	if err := h.Svc.RecalculateTotals(&ord); err != nil {
		return err
	}
	return h.Orders.UpdateTotals(ctx, &ord)
}
