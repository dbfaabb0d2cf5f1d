package handlers

import (
	"net/http"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
)

// DashboardSummary is the landing-page rollup
type DashboardSummary struct {
	Orders struct {
		Total      int64   `json:"total"`
		Pending    int64   `json:"pending"`
		InProgress int64   `json:"inProgress"`
		Completed  int64   `json:"completed"`
		TargetQty  float64 `json:"targetQty"`
		MadeQty    float64 `json:"madeQty"`
	} `json:"orders"`
	JobCards struct {
		Total int64 `json:"total"`
		Open  int   `json:"open"`
	} `json:"jobCards"`
	Entries struct {
		Total            int64 `json:"total"`
		AwaitingApproval int   `json:"awaitingApproval"`
		AwaitingCrushing int   `json:"awaitingCrushing"`
	} `json:"entries"`
	Crushing struct {
		Total int64 `json:"total"`
	} `json:"crushing"`
}

// getDashboard aggregates queue depths and totals across the pipeline
func (r *Router) getDashboard(w http.ResponseWriter, req *http.Request) {
	var summary DashboardSummary

	var orders []models.ProductionOrder
	if err := r.db.Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	summary.Orders.Total = int64(len(orders))
	for _, o := range orders {
		switch o.Status {
		case models.StatusCompleted:
			summary.Orders.Completed++
		case models.StatusInProgress:
			summary.Orders.InProgress++
		default:
			summary.Orders.Pending++
		}
		summary.Orders.TargetQty += o.TargetQty
		summary.Orders.MadeQty += o.TotalMade
	}

	var cards []models.JobCard
	if err := r.db.Find(&cards).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load job cards")
		return
	}
	summary.JobCards.Total = int64(len(cards))
	for _, c := range cards {
		if pipeline.JobCardOpen(c) {
			summary.JobCards.Open++
		}
	}

	var entries []models.ActualEntry
	if err := r.db.Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	summary.Entries.Total = int64(len(entries))
	for _, e := range entries {
		if pipeline.EntryAwaitingApproval(e) {
			summary.Entries.AwaitingApproval++
		}
		if pipeline.EntryAwaitingCrushing(e) {
			summary.Entries.AwaitingCrushing++
		}
	}

	if err := r.db.Model(&models.CrushingEntry{}).Count(&summary.Crushing.Total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count crushing entries")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
