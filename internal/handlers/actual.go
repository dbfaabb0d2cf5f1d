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

// CreateEntryRequest is the production entry form payload. Field names
// match the sheet form the crews already know.
type CreateEntryRequest struct {
	JobCardSerial  string               `json:"sjcSrNo"`
	Supervisor     string               `json:"supervisorName"`
	ProductionDate string               `json:"dateOfProduction"`
	ProductName    string               `json:"productName"`
	QtyProduced    float64              `json:"qtyProduced"`
	RawMaterials   []models.RawMaterial `json:"rawMaterials"`
	HasEndProduct  bool                 `json:"isAnyEndProduct"`
	EndProductName string               `json:"endProductName"`
	EndProductQty  float64              `json:"endProductQty"`
	Narration      string               `json:"narration"`
	StartReading   float64              `json:"startReading"`
	EndReading     float64              `json:"endReading"`
	MachineRunning bool                 `json:"machineRunning"`
	StartPhotoURL  string               `json:"startPhotoUrl"`
	EndPhotoURL    string               `json:"endPhotoUrl"`
}

// listEntries returns cached actual entries, optionally filtered by
// job card or order
func (r *Router) listEntries(w http.ResponseWriter, req *http.Request) {
	var entries []models.ActualEntry
	query := r.db.Order("serial")
	if card := req.URL.Query().Get("jobcard"); card != "" {
		query = query.Where("job_card_serial = ?", card)
	}
	if order := req.URL.Query().Get("order"); order != "" {
		query = query.Where("order_serial = ?", order)
	}
	if err := query.Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// listPendingApprovals returns the approval queue: entries whose
// stage 1 plan marker is stamped and approval is not
func (r *Router) listPendingApprovals(w http.ResponseWriter, req *http.Request) {
	var entries []models.ActualEntry
	if err := r.db.Order("serial").Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	pending := make([]models.ActualEntry, 0, len(entries))
	for _, e := range entries {
		if pipeline.EntryAwaitingApproval(e) {
			pending = append(pending, e)
		}
	}
	respondJSON(w, http.StatusOK, pending)
}

// listApprovalHistory returns entries that cleared approval (both
// stage 1 markers stamped)
func (r *Router) listApprovalHistory(w http.ResponseWriter, req *http.Request) {
	var entries []models.ActualEntry
	if err := r.db.Order("serial").Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	history := make([]models.ActualEntry, 0, len(entries))
	for _, e := range entries {
		if pipeline.EntryApprovalDone(e) {
			history = append(history, e)
		}
	}
	respondJSON(w, http.StatusOK, history)
}

// createEntry records actual production against a job card
func (r *Router) createEntry(w http.ResponseWriter, req *http.Request) {
	var body CreateEntryRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.JobCardSerial == "" {
		respondError(w, http.StatusBadRequest, "Job card serial is required")
		return
	}
	if body.QtyProduced <= 0 {
		respondError(w, http.StatusBadRequest, "Produced quantity must be positive")
		return
	}
	if body.Narration == "" {
		body.Narration = models.NarrationNormal
	}

	var card models.JobCard
	if err := r.db.Where("serial = ?", body.JobCardSerial).First(&card).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job card not found")
		return
	}
	if !pipeline.JobCardOpen(card) {
		respondError(w, http.StatusConflict, "Job card is closed")
		return
	}

	client := r.sync.Client()

	var serialSource []string
	if rows, err := client.FetchRows(req.Context(), sheetcodec.SheetActual); err == nil {
		serialSource = columnValues(rows, 16)
	}
	serial := utils.NextActualSerial(serialSource)

	entry := models.ActualEntry{
		Timestamp:      pipeline.Stamp(time.Now()),
		Serial:         serial,
		JobCardSerial:  card.Serial,
		OrderSerial:    card.OrderSerial,
		Supervisor:     body.Supervisor,
		ProductionDate: body.ProductionDate,
		ProductName:    body.ProductName,
		QtyProduced:    body.QtyProduced,
		HasEndProduct:  body.HasEndProduct,
		EndProductName: body.EndProductName,
		EndProductQty:  body.EndProductQty,
		Narration:      body.Narration,
		StartReading:   body.StartReading,
		EndReading:     body.EndReading,
		MachineHours:   pipeline.MachineHours(body.StartReading, body.EndReading),
		MachineRunning: body.MachineRunning,
		StartPhotoURL:  body.StartPhotoURL,
		EndPhotoURL:    body.EndPhotoURL,
	}
	if entry.Supervisor == "" {
		entry.Supervisor = card.Supervisor
	}
	if entry.ProductName == "" {
		entry.ProductName = card.ProductName
	}
	entry.SetMaterials(body.RawMaterials)

	rowIndex, err := client.InsertRow(req.Context(), sheetcodec.SheetActual, sheetcodec.EncodeActualRow(entry))
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to write entry to the sheet")
		return
	}
	entry.RowIndex = rowIndex
	entry.LastSyncedAt = time.Now()

	if err := r.db.Create(&entry).Error; err != nil {
		respondJSON(w, http.StatusCreated, entry)
		return
	}

	go r.sync.RefreshSheet(context.Background(), sheetcodec.SheetActual)

	respondJSON(w, http.StatusCreated, entry)
}
