package promotion

import (
	"errors"
	"fmt"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/order"
	"github.com/noah-isme/backend-pricing/internal/pricesplit"
)

// ErrNotDistributable is returned when a promotion cannot be spread across
// order items (not order-level, or missing a fixed amount).
var ErrNotDistributable = errors.New("promotion: not distributable")

// Distributor spreads an order-level fixed promotion across the order's
// items proportionally to their subtotals. The splitter guarantees the item
// shares sum to the promotion amount exactly.
type Distributor struct {
	Splitter pricesplit.Splitter
	Types    *adjustment.Registry
}

// Apply attaches one locked negative promotion adjustment per item. Orders
// without items are left untouched. Items that already carry an adjustment
// from this promotion are skipped so repeated repricing stays idempotent.
func (d Distributor) Apply(ord *order.Order, promo Promotion) error {
	if !promo.OrderLevel || promo.Amount == nil {
		return ErrNotDistributable
	}
	if len(ord.Items) == 0 {
		return nil
	}
	sourceID := promo.ID.String()

	lines := make([]pricesplit.Line, 0, len(ord.Items))
	for i := range ord.Items {
		if hasSource(ord.Items[i].Adjustments, sourceID) {
			return nil
		}
		lines = append(lines, pricesplit.Line{
			Key:    ord.Items[i].ID.String(),
			Amount: ord.Items[i].Subtotal(),
		})
	}

	shares, err := d.Splitter.Split(lines, *promo.Amount, promo.Percentage)
	if err != nil {
		return fmt.Errorf("split promotion %s: %w", promo.ID, err)
	}
	for i := range ord.Items {
		share, ok := shares[ord.Items[i].ID.String()]
		if !ok || share.IsZero() {
			continue
		}
		a, err := adjustment.New(adjustment.Definition{
			Type:     "promotion",
			Label:    promo.Label,
			Amount:   share.Negate(),
			SourceID: sourceID,
			Locked:   true,
		}, d.Types)
		if err != nil {
			return err
		}
		ord.Items[i].Adjustments = append(ord.Items[i].Adjustments, a)
	}
	return nil
}

func hasSource(adjustments []adjustment.Adjustment, sourceID string) bool {
	for _, a := range adjustments {
		if a.SourceID() == sourceID {
			return true
		}
	}
	return false
}
