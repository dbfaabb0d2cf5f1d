// Package pipeline encodes the stage rules of the production flow:
// Demand -> Job Card -> Actual Entry -> Approval -> Crushing. The
// sheet rows are the source of truth; these predicates only read the
// decoded marker fields and never mutate anything.
//
// A record whose plan marker for a stage is empty is invisible to that
// stage entirely: it appears in neither the pending nor the history
// bucket until the external store stamps the marker.
package pipeline

import (
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
)

// TimestampLayout is the DD/MM/YY HH:MM:SS format every timestamp
// column in the workbook uses.
const TimestampLayout = "02/01/06 15:04:05"

// Stamp formats a time the way the sheets expect.
func Stamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// MachineHours derives running hours from the meter readings. The
// sheet occasionally carries a start reading taken after the end
// reading; the difference clamps to zero rather than going negative.
func MachineHours(startReading, endReading float64) float64 {
	h := endReading - startReading
	if h < 0 {
		return 0
	}
	return h
}

// OrderAwaitingJobCard reports whether an order sits in the planning
// queue: plan marker stamped, actual marker not yet.
func OrderAwaitingJobCard(o models.ProductionOrder) bool {
	return o.PlannedMarker != "" && o.ActualMarker == ""
}

// OrderPlanDone reports whether an order has cleared the planning
// stage (both markers stamped).
func OrderPlanDone(o models.ProductionOrder) bool {
	return o.PlannedMarker != "" && o.ActualMarker != ""
}

// JobCardPendingEntry reports whether a card sits in the entry queue:
// still PENDING, plan marker stamped by the external store, and not
// closed by the supervisor's Complete sentinel. A card whose plan
// marker is empty is invisible to the entry stage entirely.
func JobCardPendingEntry(c models.JobCard) bool {
	return c.Status == models.StatusPending && c.PlannedMarker != "" && !c.MarkedComplete
}

// JobCardOpen reports whether a card can still accept actual entries.
// A card closes either by the Complete marker or by its made quantity
// reaching plan.
func JobCardOpen(c models.JobCard) bool {
	if c.MarkedComplete {
		return false
	}
	return c.ActualMade < c.PlannedQty
}

// EntryAwaitingApproval reports whether an entry sits in the approval
// queue: stage 1 planned but not yet approved.
func EntryAwaitingApproval(e models.ActualEntry) bool {
	return e.Stage1PlannedAt != "" && e.Stage1ApprovedAt == ""
}

// EntryApprovalDone reports whether an entry has cleared approval
// (both stage 1 markers stamped).
func EntryApprovalDone(e models.ActualEntry) bool {
	return e.Stage1PlannedAt != "" && e.Stage1ApprovedAt != ""
}

// EntryAwaitingCrushing reports whether an entry sits in the crushing
// queue: stage 2 planned but not yet closed. Logging a crushing entry
// against it stamps the close marker.
func EntryAwaitingCrushing(e models.ActualEntry) bool {
	return e.Stage2PlannedAt != "" && e.Stage2ApprovedAt == ""
}

// EntryCrushed reports whether an entry reached its terminal state.
func EntryCrushed(e models.ActualEntry) bool {
	return e.Stage2PlannedAt != "" && e.Stage2ApprovedAt != ""
}
