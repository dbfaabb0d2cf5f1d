// Package aggregate recomputes the derived totals of the pipeline
// from scratch on every sync pass. Wholesale recomputation keeps the
// numbers correct no matter how the sheets were edited by hand between
// passes.
package aggregate

import "github.com/botivate-in/protrackgo/internal/models"

// Recompute rewrites the derived fields of orders and cards in place
// from the actual entries. Orders sum their entries by order serial
// directly, not through the cards, so an entry whose card reference is
// wrong still counts toward its order.
func Recompute(orders []models.ProductionOrder, cards []models.JobCard, entries []models.ActualEntry) {
	madeByCard := make(map[string]float64)
	madeByOrder := make(map[string]float64)
	for _, e := range entries {
		if e.JobCardSerial != "" {
			madeByCard[e.JobCardSerial] += e.QtyProduced
		}
		if e.OrderSerial != "" {
			madeByOrder[e.OrderSerial] += e.QtyProduced
		}
	}

	plannedByOrder := make(map[string]float64)
	for i := range cards {
		c := &cards[i]
		c.ActualMade = madeByCard[c.Serial]
		c.PendingQty = clamp(c.PlannedQty - c.ActualMade)
		c.Status = statusFor(c.ActualMade, c.PendingQty)
		if c.MarkedComplete {
			c.Status = models.StatusCompleted
		}
		if c.OrderSerial != "" {
			plannedByOrder[c.OrderSerial] += c.PlannedQty
		}
	}

	for i := range orders {
		o := &orders[i]
		o.TotalPlanned = plannedByOrder[o.Serial]
		o.TotalMade = madeByOrder[o.Serial]
		o.PendingQty = clamp(o.TargetQty - o.TotalMade)
		o.Status = statusFor(o.TotalMade, o.PendingQty)
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func statusFor(made, pending float64) models.ProductionStatus {
	switch {
	case pending <= 0:
		return models.StatusCompleted
	case made > 0:
		return models.StatusInProgress
	default:
		return models.StatusPending
	}
}
