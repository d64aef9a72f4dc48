// Package reprice recalculates order totals in the background. Repricing is
// queued whenever stored adjustments may be stale, e.g. after a promotion
// changes or an explicit recalculate request.
package reprice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskOrderReprice is the asynq task type for order repricing.
const TaskOrderReprice = "order:reprice"

// Payload is the task payload.
type Payload struct {
	OrderID string `json:"orderId"`
}

// NewTask builds the asynq task for an order.
func NewTask(orderID uuid.UUID) (*asynq.Task, error) {
	raw, err := json.Marshal(Payload{OrderID: orderID.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderReprice, raw), nil
}

// Enqueuer publishes reprice tasks. Uniqueness collapses duplicate requests
// for the same order inside the dedup window.
type Enqueuer struct {
	Client   *asynq.Client
	Queue    string
	MaxRetry int
	DedupTTL time.Duration
}

// EnqueueReprice implements order.Enqueuer.
func (e Enqueuer) EnqueueReprice(ctx context.Context, orderID uuid.UUID) error {
	if e.Client == nil {
		return errors.New("reprice: asynq client not configured")
	}
	task, err := NewTask(orderID)
	if err != nil {
		return err
	}
	queue := e.Queue
	if queue == "" {
		queue = "default"
	}
	maxRetry := e.MaxRetry
	if maxRetry <= 0 {
		maxRetry = 5
	}
	dedup := e.DedupTTL
	if dedup <= 0 {
		dedup = time.Minute
	}
	_, err = e.Client.EnqueueContext(ctx, task,
		asynq.Queue(queue),
		asynq.MaxRetry(maxRetry),
		asynq.Unique(dedup),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}
