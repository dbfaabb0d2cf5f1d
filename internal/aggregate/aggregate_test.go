package aggregate

import (
	"testing"

	"github.com/botivate-in/protrackgo/internal/models"
)

func fixture() ([]models.ProductionOrder, []models.JobCard, []models.ActualEntry) {
	orders := []models.ProductionOrder{
		{Serial: "SF-101", TargetQty: 500},
		{Serial: "SF-102", TargetQty: 50},
	}
	cards := []models.JobCard{
		{Serial: "SJC-400", OrderSerial: "SF-101", PlannedQty: 300},
		{Serial: "SJC-401", OrderSerial: "SF-101", PlannedQty: 200},
		{Serial: "SJC-402", OrderSerial: "SF-102", PlannedQty: 50},
	}
	entries := []models.ActualEntry{
		{Serial: "SA-001", JobCardSerial: "SJC-400", OrderSerial: "SF-101", QtyProduced: 120},
		{Serial: "SA-002", JobCardSerial: "SJC-400", OrderSerial: "SF-101", QtyProduced: 180},
		{Serial: "SA-003", JobCardSerial: "SJC-402", OrderSerial: "SF-102", QtyProduced: 60},
	}
	return orders, cards, entries
}

func TestRecomputeTotals(t *testing.T) {
	orders, cards, entries := fixture()
	Recompute(orders, cards, entries)

	if cards[0].ActualMade != 300 || cards[0].PendingQty != 0 {
		t.Errorf("SJC-400 = %v made / %v pending, want 300/0", cards[0].ActualMade, cards[0].PendingQty)
	}
	if cards[0].Status != models.StatusCompleted {
		t.Errorf("SJC-400 status = %q, want COMPLETED", cards[0].Status)
	}
	if cards[1].ActualMade != 0 || cards[1].Status != models.StatusPending {
		t.Errorf("SJC-401 = %v made, status %q", cards[1].ActualMade, cards[1].Status)
	}

	o := orders[0]
	if o.TotalPlanned != 500 {
		t.Errorf("SF-101 TotalPlanned = %v, want 500", o.TotalPlanned)
	}
	if o.TotalMade != 300 || o.PendingQty != 200 {
		t.Errorf("SF-101 = %v made / %v pending, want 300/200", o.TotalMade, o.PendingQty)
	}
	if o.Status != models.StatusInProgress {
		t.Errorf("SF-101 status = %q, want IN PROGRESS", o.Status)
	}
}

func TestRecomputeOverproductionClamps(t *testing.T) {
	orders, cards, entries := fixture()
	// crew ran past the order target
	entries = append(entries, models.ActualEntry{
		Serial: "SA-004", JobCardSerial: "SJC-402", OrderSerial: "SF-102", QtyProduced: 40,
	})
	Recompute(orders, cards, entries)

	o := orders[1]
	if o.TotalMade != 100 {
		t.Errorf("SF-102 TotalMade = %v, want 100", o.TotalMade)
	}
	if o.PendingQty != 0 {
		t.Errorf("SF-102 PendingQty = %v, want clamp to 0", o.PendingQty)
	}
	if o.Status != models.StatusCompleted {
		t.Errorf("SF-102 status = %q, want COMPLETED", o.Status)
	}
}

func TestRecomputeCountsEntriesWithBadCardRef(t *testing.T) {
	orders, cards, entries := fixture()
	entries = append(entries, models.ActualEntry{
		Serial: "SA-005", JobCardSerial: "SJC-999", OrderSerial: "SF-101", QtyProduced: 50,
	})
	Recompute(orders, cards, entries)

	if orders[0].TotalMade != 350 {
		t.Errorf("SF-101 TotalMade = %v, want 350 including orphan entry", orders[0].TotalMade)
	}
	for _, c := range cards {
		if c.Serial != "SJC-999" && c.ActualMade == 350 {
			t.Error("orphan entry must not land on any real card")
		}
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	orders, cards, entries := fixture()
	Recompute(orders, cards, entries)
	first := make([]models.ProductionOrder, len(orders))
	copy(first, orders)

	Recompute(orders, cards, entries)
	for i := range orders {
		if orders[i] != first[i] {
			t.Errorf("order %s changed on second pass: %+v vs %+v", orders[i].Serial, orders[i], first[i])
		}
	}
}

func TestRecomputeMarkedCompleteWins(t *testing.T) {
	orders, cards, entries := fixture()
	cards[1].MarkedComplete = true
	Recompute(orders, cards, entries)
	if cards[1].Status != models.StatusCompleted {
		t.Errorf("manually closed card status = %q, want COMPLETED", cards[1].Status)
	}
}
