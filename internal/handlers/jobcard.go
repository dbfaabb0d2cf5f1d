package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	"github.com/botivate-in/protrackgo/internal/services/printer"
	sheetcodec "github.com/botivate-in/protrackgo/internal/sheets"
	"github.com/botivate-in/protrackgo/internal/utils"
)

// CreateJobCardRequest is the planning form payload
type CreateJobCardRequest struct {
	OrderSerial    string  `json:"sfSrNo"`
	Supervisor     string  `json:"supervisorName"`
	ProductName    string  `json:"productName"`
	Qty            float64 `json:"qty"`
	ProductionDate string  `json:"dateOfProduction"`
}

// PrintLabelsRequest selects cards for a label sheet
type PrintLabelsRequest struct {
	Serials []string            `json:"serials"`
	Layout  printer.LabelConfig `json:"layout"`
}

// listJobCards returns every cached job card
func (r *Router) listJobCards(w http.ResponseWriter, req *http.Request) {
	var cards []models.JobCard
	query := r.db.Order("serial")
	if order := req.URL.Query().Get("order"); order != "" {
		query = query.Where("order_serial = ?", order)
	}
	if err := query.Find(&cards).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load job cards")
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// listOpenJobCards returns cards that can still take actual entries
func (r *Router) listOpenJobCards(w http.ResponseWriter, req *http.Request) {
	var cards []models.JobCard
	if err := r.db.Order("serial").Find(&cards).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load job cards")
		return
	}

	open := make([]models.JobCard, 0, len(cards))
	for _, c := range cards {
		if pipeline.JobCardOpen(c) {
			open = append(open, c)
		}
	}
	respondJSON(w, http.StatusOK, open)
}

// listPendingJobCards returns the entry queue: planned cards still
// PENDING and not closed by the Complete sentinel
func (r *Router) listPendingJobCards(w http.ResponseWriter, req *http.Request) {
	var cards []models.JobCard
	if err := r.db.Order("serial").Find(&cards).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load job cards")
		return
	}

	pending := make([]models.JobCard, 0, len(cards))
	for _, c := range cards {
		if pipeline.JobCardPendingEntry(c) {
			pending = append(pending, c)
		}
	}
	respondJSON(w, http.StatusOK, pending)
}

// createJobCard plans a slice of an order onto a supervisor. The card
// may plan more than the order's remaining quantity; the sheet has
// always allowed over-planning and the totals clamp instead.
func (r *Router) createJobCard(w http.ResponseWriter, req *http.Request) {
	var body CreateJobCardRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.OrderSerial == "" {
		respondError(w, http.StatusBadRequest, "Order serial is required")
		return
	}
	if body.Supervisor == "" {
		respondError(w, http.StatusBadRequest, "Supervisor is required")
		return
	}
	if body.Qty <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	var order models.ProductionOrder
	if err := r.db.Where("serial = ?", body.OrderSerial).First(&order).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.IsCompleted() {
		respondError(w, http.StatusConflict, "Order is already completed")
		return
	}

	productName := body.ProductName
	if productName == "" {
		productName = order.Name
	}

	client := r.sync.Client()

	var serialSource []string
	if rows, err := client.FetchRows(req.Context(), sheetcodec.SheetJobCard); err == nil {
		serialSource = columnValues(rows, 1)
	}
	serial := utils.NextJobCardSerial(serialSource)

	card := models.JobCard{
		Timestamp:      pipeline.Stamp(time.Now()),
		Serial:         serial,
		OrderSerial:    body.OrderSerial,
		Supervisor:     body.Supervisor,
		ProductName:    productName,
		PlannedQty:     body.Qty,
		ProductionDate: body.ProductionDate,
		PendingQty:     body.Qty,
		Status:         models.StatusPending,
	}

	rowIndex, err := client.InsertRow(req.Context(), sheetcodec.SheetJobCard, sheetcodec.EncodeJobCardRow(card))
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to write job card to the sheet")
		return
	}
	card.RowIndex = rowIndex
	card.LastSyncedAt = time.Now()

	if err := r.db.Create(&card).Error; err != nil {
		respondJSON(w, http.StatusCreated, card)
		return
	}

	go r.sync.RefreshSheet(context.Background(), sheetcodec.SheetJobCard)

	respondJSON(w, http.StatusCreated, card)
}

// printJobCardLabels renders a QR label sheet for the selected cards
func (r *Router) printJobCardLabels(w http.ResponseWriter, req *http.Request) {
	var body PrintLabelsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(body.Serials) == 0 {
		respondError(w, http.StatusBadRequest, "No job cards selected")
		return
	}

	var cards []models.JobCard
	if err := r.db.Where("serial IN ?", body.Serials).Order("serial").Find(&cards).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load job cards")
		return
	}
	if len(cards) == 0 {
		respondError(w, http.StatusNotFound, "No matching job cards")
		return
	}

	layout := body.Layout
	if layout.Cols == 0 && layout.Rows == 0 {
		layout = printer.DefaultLabelConfig()
	}

	pdfBytes, err := printer.GenerateJobCardLabels(cards, layout)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"jobcard_labels.pdf\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
