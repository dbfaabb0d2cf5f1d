package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	sheetcodec "github.com/botivate-in/protrackgo/internal/sheets"
)

// CreateCrushingRequest is the crushing form payload
type CreateCrushingRequest struct {
	SourceSerial  string                `json:"semiActualSNo"`
	EntryDate     string                `json:"date"`
	ProductName   string                `json:"crushingProductName"`
	InputQty      float64               `json:"qtyCrushed"`
	FinishedGoods []models.FinishedGood `json:"finishedGoods"`
	StartPhotoURL string                `json:"startPhotoUrl"`
	EndPhotoURL   string                `json:"endPhotoUrl"`
	Remarks       string                `json:"remarks"`
	StartReading  float64               `json:"startReading"`
	EndReading    float64               `json:"endReading"`
}

// listCrushing returns the crushing ledger
func (r *Router) listCrushing(w http.ResponseWriter, req *http.Request) {
	var entries []models.CrushingEntry
	if err := r.db.Order("row_index").Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load crushing entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// listPendingCrushing returns production entries waiting to be crushed
func (r *Router) listPendingCrushing(w http.ResponseWriter, req *http.Request) {
	var entries []models.ActualEntry
	if err := r.db.Order("serial").Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	pending := make([]models.ActualEntry, 0, len(entries))
	for _, e := range entries {
		if pipeline.EntryAwaitingCrushing(e) {
			pending = append(pending, e)
		}
	}
	respondJSON(w, http.StatusOK, pending)
}

// createCrushing logs a crushing operation against an approved entry.
// This is two gateway writes: the ledger row, then the close marker on
// the source entry's row. The gateway offers no transaction across
// them, so a failure between the calls leaves the ledger row in place
// and the source entry still pending; the error is surfaced and the
// operator re-stamps via a retry rather than the row being rolled back.
func (r *Router) createCrushing(w http.ResponseWriter, req *http.Request) {
	var body CreateCrushingRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.SourceSerial == "" {
		respondError(w, http.StatusBadRequest, "Source entry serial is required")
		return
	}
	if body.InputQty <= 0 {
		respondError(w, http.StatusBadRequest, "Crushed quantity must be positive")
		return
	}

	var source models.ActualEntry
	if err := r.db.Where("serial = ?", body.SourceSerial).First(&source).Error; err != nil {
		respondError(w, http.StatusNotFound, "Source entry not found")
		return
	}
	if !pipeline.EntryAwaitingCrushing(source) {
		respondError(w, http.StatusConflict, "Source entry is not awaiting crushing")
		return
	}
	if source.RowIndex <= 0 {
		respondError(w, http.StatusConflict, "Source entry has not been synced from the sheet yet")
		return
	}

	now := time.Now()
	crushing := models.CrushingEntry{
		Timestamp:      pipeline.Stamp(now),
		EntryDate:      body.EntryDate,
		ProductionDate: source.ProductionDate,
		ProductName:    body.ProductName,
		InputQty:       body.InputQty,
		StartPhotoURL:  body.StartPhotoURL,
		EndPhotoURL:    body.EndPhotoURL,
		Remarks:        body.Remarks,
		MachineHours:   pipeline.MachineHours(body.StartReading, body.EndReading),
		SourceSerial:   source.Serial,
	}
	if crushing.EntryDate == "" {
		crushing.EntryDate = now.Format("02/01/2006")
	}
	if crushing.ProductName == "" {
		crushing.ProductName = source.ProductName
	}
	crushing.SetOutputs(body.FinishedGoods)

	client := r.sync.Client()

	rowIndex, err := client.InsertRow(req.Context(), sheetcodec.SheetCrushing, sheetcodec.EncodeCrushingRow(crushing))
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to write crushing entry to the sheet")
		return
	}
	crushing.RowIndex = rowIndex
	crushing.LastSyncedAt = time.Now()

	if err := r.db.Create(&crushing).Error; err != nil {
		// keep going: the sheet row exists, only the local cache missed
		crushing.ID = 0
	}

	// second write: close the source entry
	col := source.Stage2ApprovedCol
	if col <= 0 {
		col = sheetcodec.FallbackActual2Col
	}
	stamp := pipeline.Stamp(now)
	if err := client.UpdateCell(req.Context(), sheetcodec.SheetActual, source.RowIndex, col+1, stamp); err != nil {
		// ledger row landed but the close marker did not; the entry
		// stays in the pending bucket for a retry
		respondJSON(w, http.StatusAccepted, map[string]interface{}{
			"crushing": crushing,
			"warning":  "Crushing recorded but the source entry could not be closed; approve the close again",
		})
		return
	}

	source.Stage2ApprovedAt = stamp
	r.db.Save(&source)

	go func() {
		ctx := context.Background()
		r.sync.RefreshSheet(ctx, sheetcodec.SheetCrushing)
		r.sync.RefreshSheet(ctx, sheetcodec.SheetActual)
	}()

	respondJSON(w, http.StatusCreated, crushing)
}
