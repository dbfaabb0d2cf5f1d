package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	sheetcodec "github.com/botivate-in/protrackgo/internal/sheets"
)

// approveEntry stamps the stage 1 approval timestamp into the entry's
// row on the Semi Actual sheet. The stage 2 close marker is stamped by
// the crushing submission, never here.
func (r *Router) approveEntry(w http.ResponseWriter, req *http.Request) {
	serial := pathVar(req, "serial")

	// path already lowercased by the router, serials are stored upper
	var entry models.ActualEntry
	if err := r.db.Where("UPPER(serial) = UPPER(?)", serial).First(&entry).Error; err != nil {
		respondError(w, http.StatusNotFound, "Entry not found")
		return
	}
	if entry.RowIndex <= 0 {
		respondError(w, http.StatusConflict, "Entry has not been synced from the sheet yet")
		return
	}
	if !pipeline.EntryAwaitingApproval(entry) {
		respondError(w, http.StatusConflict, "Entry is not awaiting approval")
		return
	}

	col := entry.Stage1ApprovedCol
	if col <= 0 {
		col = sheetcodec.FallbackActual1Col
	}

	stamp := pipeline.Stamp(time.Now())

	// cached column index is 0-based, updateCell addresses 1-based
	if err := r.sync.Client().UpdateCell(req.Context(), sheetcodec.SheetActual, entry.RowIndex, col+1, stamp); err != nil {
		respondError(w, http.StatusBadGateway, "Failed to stamp approval on the sheet")
		return
	}

	entry.Stage1ApprovedAt = stamp
	r.db.Save(&entry)

	go r.sync.RefreshSheet(context.Background(), sheetcodec.SheetActual)

	respondJSON(w, http.StatusOK, entry)
}
