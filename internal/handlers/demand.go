package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	sheetcodec "github.com/botivate-in/protrackgo/internal/sheets"
	"github.com/botivate-in/protrackgo/internal/utils"
)

// CreateOrderRequest is the demand form payload
type CreateOrderRequest struct {
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	Notes     string  `json:"notes"`
	Timestamp string  `json:"timestamp"`
}

// listOrders returns every cached production order
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	var orders []models.ProductionOrder
	if err := r.db.Order("serial").Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// listPendingOrders returns the planner's queue: orders that still
// need job cards
func (r *Router) listPendingOrders(w http.ResponseWriter, req *http.Request) {
	var orders []models.ProductionOrder
	if err := r.db.Order("serial").Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	pending := make([]models.ProductionOrder, 0, len(orders))
	for _, o := range orders {
		if pipeline.OrderAwaitingJobCard(o) {
			pending = append(pending, o)
		}
	}
	respondJSON(w, http.StatusOK, pending)
}

// getOrder returns one order by serial
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	serial := pathVar(req, "serial")

	// path already lowercased by the router, serials are stored upper
	var order models.ProductionOrder
	if err := r.db.Where("UPPER(serial) = UPPER(?)", serial).First(&order).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// createOrder records a new demand. The serial is computed from the
// live sheet at submit time so two clients racing each other converge
// on the sheet's view rather than a stale cache.
func (r *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	var body CreateOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if body.Qty <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	client := r.sync.Client()

	// serial generation never blocks entry creation: if the sheet is
	// unreadable the generator degrades to its seed value
	var serialSource []string
	if rows, err := client.FetchRows(req.Context(), sheetcodec.SheetProduction); err == nil {
		serialSource = columnValues(rows, 1)
	}
	serial := utils.NextDemandSerial(serialSource)

	order := models.ProductionOrder{
		Timestamp:  pipeline.Stamp(time.Now()),
		Serial:     serial,
		Name:       body.Name,
		TargetQty:  body.Qty,
		Notes:      body.Notes,
		PendingQty: body.Qty,
		Status:     models.StatusPending,
	}
	if body.Timestamp != "" {
		order.Timestamp = body.Timestamp
	}

	rowIndex, err := client.InsertRow(req.Context(), sheetcodec.SheetProduction, sheetcodec.EncodeDemandRow(order))
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to write demand to the sheet")
		return
	}
	order.RowIndex = rowIndex
	order.LastSyncedAt = time.Now()

	if err := r.db.Create(&order).Error; err != nil {
		// sheet write landed; the next sync pass will cache it
		respondJSON(w, http.StatusCreated, order)
		return
	}

	go r.sync.RefreshSheet(context.Background(), sheetcodec.SheetProduction)

	respondJSON(w, http.StatusCreated, order)
}

// columnValues collects one column across all rows.
func columnValues(rows [][]string, col int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}
