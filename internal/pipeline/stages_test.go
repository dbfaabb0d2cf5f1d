package pipeline

import (
	"testing"
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
)

func TestStampLayout(t *testing.T) {
	ts := time.Date(2026, 8, 5, 9, 30, 0, 0, time.UTC)
	if got := Stamp(ts); got != "05/08/26 09:30:00" {
		t.Errorf("Stamp = %q, want 05/08/26 09:30:00", got)
	}
}

func TestMachineHours(t *testing.T) {
	if got := MachineHours(1200, 1260); got != 60 {
		t.Errorf("MachineHours = %v, want 60", got)
	}
	if got := MachineHours(1260, 1200); got != 0 {
		t.Errorf("reversed readings = %v, want clamp to 0", got)
	}
}

func TestOrderPlanningBuckets(t *testing.T) {
	var o models.ProductionOrder
	if OrderAwaitingJobCard(o) || OrderPlanDone(o) {
		t.Error("order with no plan marker is invisible to the planning stage")
	}

	o.PlannedMarker = "01/08/26 10:00:00"
	if !OrderAwaitingJobCard(o) {
		t.Error("planned order should sit in the planning queue")
	}
	if OrderPlanDone(o) {
		t.Error("planned order is not yet done")
	}

	o.ActualMarker = "02/08/26 10:00:00"
	if OrderAwaitingJobCard(o) {
		t.Error("order with both markers leaves the queue")
	}
	if !OrderPlanDone(o) {
		t.Error("order with both markers is history")
	}
}

func TestJobCardPendingEntry(t *testing.T) {
	card := models.JobCard{
		Status:         models.StatusPending,
		ProductionDate: "03/08/2026",
		PlannedMarker:  "02/08/26 11:00:00",
	}
	if !JobCardPendingEntry(card) {
		t.Error("planned PENDING card should await entries")
	}

	card.MarkedComplete = true
	if JobCardPendingEntry(card) {
		t.Error("Complete sentinel removes the card from the queue")
	}

	card.MarkedComplete = false
	card.PlannedMarker = ""
	if JobCardPendingEntry(card) {
		t.Error("card without a plan marker is invisible to the entry stage")
	}

	card.PlannedMarker = "02/08/26 11:00:00"
	card.Status = models.StatusInProgress
	if JobCardPendingEntry(card) {
		t.Error("non-PENDING card leaves the queue")
	}
}

func TestJobCardOpen(t *testing.T) {
	card := models.JobCard{PlannedQty: 100, ActualMade: 60}
	if !JobCardOpen(card) {
		t.Error("card below plan should be open")
	}
	card.ActualMade = 100
	if JobCardOpen(card) {
		t.Error("card at plan should be closed")
	}
	card.ActualMade = 10
	card.MarkedComplete = true
	if JobCardOpen(card) {
		t.Error("Complete marker closes the card even below plan")
	}
}

func TestApprovalBucketsGateOnPlanMarker(t *testing.T) {
	e := models.ActualEntry{Serial: "SA-010"}
	if EntryAwaitingApproval(e) || EntryApprovalDone(e) {
		t.Error("entry with no stage 1 plan marker is invisible to approval")
	}

	e.Stage1PlannedAt = "05/08/26 10:00:00"
	if !EntryAwaitingApproval(e) {
		t.Error("planned entry should sit in the approval queue")
	}

	e.Stage1ApprovedAt = "05/08/26 11:00:00"
	if EntryAwaitingApproval(e) {
		t.Error("approved entry leaves the queue")
	}
	if !EntryApprovalDone(e) {
		t.Error("approved entry belongs to history")
	}
}

func TestCrushingBucketsGateOnPlanMarker(t *testing.T) {
	e := models.ActualEntry{
		Serial:           "SA-010",
		Stage1PlannedAt:  "05/08/26 10:00:00",
		Stage1ApprovedAt: "05/08/26 11:00:00",
	}
	if EntryAwaitingCrushing(e) || EntryCrushed(e) {
		t.Error("entry without a stage 2 plan marker is invisible to crushing")
	}

	e.Stage2PlannedAt = "05/08/26 11:30:00"
	if !EntryAwaitingCrushing(e) {
		t.Error("stage 2 planned entry should sit in the crushing queue")
	}

	e.Stage2ApprovedAt = "05/08/26 12:00:00"
	if EntryAwaitingCrushing(e) {
		t.Error("crushed entry leaves the queue")
	}
	if !EntryCrushed(e) {
		t.Error("crushed entry is terminal")
	}
}
