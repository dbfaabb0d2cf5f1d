// Package printer renders printable QR label sheets for job cards.
// Crews stick a label on the paper card that travels with each batch;
// scanning it opens the card in the tracker.
package printer

import (
	"bytes"
	"fmt"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// LabelConfig holds the grid layout for PDF generation
type LabelConfig struct {
	Cols       int     `json:"cols"`
	Rows       int     `json:"rows"`
	MarginTop  float64 `json:"marginTop"`
	MarginLeft float64 `json:"marginLeft"`
	GapX       float64 `json:"gapX"`
	GapY       float64 `json:"gapY"`
}

// DefaultLabelConfig fits a 3x7 Avery-style sheet.
func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		Cols:       3,
		Rows:       7,
		MarginTop:  10,
		MarginLeft: 7,
		GapX:       3,
		GapY:       3,
	}
}

// GenerateJobCardLabels creates an A4 PDF with one QR label per job
// card. The QR payload is the bare card serial; the app resolves it.
func GenerateJobCardLabels(cards []models.JobCard, cfg LabelConfig) ([]byte, error) {
	if cfg.Cols <= 0 {
		cfg.Cols = 3
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 7
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i, card := range cards {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(card.Serial, qrcode.Low, 256)
		if err != nil {
			return nil, err
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		reader := bytes.NewReader(qrPng)
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, reader)

		// QR centered, shifted up to leave room for two text lines
		qrSize := labelH * 0.6
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}
		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 3

		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		pdf.SetXY(x, y+labelH-9)
		pdf.SetFontSize(8)
		pdf.CellFormat(labelW, 4, card.Serial, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+labelH-5)
		pdf.SetFontSize(6)
		detail := fmt.Sprintf("%s x %g", card.ProductName, card.PlannedQty)
		pdf.CellFormat(labelW, 3, detail, "", 0, "C", false, 0, "")

		pdf.SetXY(x, y+1)
		pdf.SetFontSize(6)
		pdf.CellFormat(labelW, 3, card.Supervisor, "", 0, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
