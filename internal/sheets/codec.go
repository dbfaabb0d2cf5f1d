package sheets

import (
	"strconv"
	"strings"

	"github.com/botivate-in/protrackgo/internal/models"
)

// Sheet names as they exist in the workbook. "Crusing Items Name" is
// misspelled upstream; the gateway only knows the tab by that exact
// string, so it stays.
const (
	SheetProduction    = "Semi Production"
	SheetJobCard       = "Semi Job Card"
	SheetActual        = "Semi Actual"
	SheetCrushing      = "Crushing_actual"
	SheetMaster        = "Master"
	SheetUsers         = "USER"
	SheetCrushingItems = "Crusing Items Name"
)

// Stage marker tokens stamped in the approval columns' header row.
var StageMarkers = []string{"planned1", "actual1", "planned2", "actual2"}

// Fallback positions for the Semi Actual sheet when no marker row is
// found within the scanned header block.
const (
	MarkerScanRows = 10

	FallbackPlanned1Col = 28
	FallbackActual1Col  = 29
	FallbackPlanned2Col = 30
	FallbackActual2Col  = 31
	FallbackActualStart = 4
)

// Fixed header block sizes. These sheets keep form titles and column
// labels in their first rows; data never starts above these offsets,
// and a column-label row like "SF-Sr No." would otherwise pass the
// sentinel list.
const (
	ProductionDataStart = 6
	JobCardDataStart    = 4
)

// Header and garbage rows repeat fragments of the form titles in the
// identifier column. A row whose identifier cell contains one of these
// substrings is not a record. The check is substring containment on
// the identifier cell only; a product name elsewhere in the row is
// free to contain these words.
var sentinels = []string{
	"Semi Job Card",
	"Semi Finished Entry",
	"Devshree",
	"Actual",
	"Form",
}

func isSentinel(id string) bool {
	for _, s := range sentinels {
		if strings.Contains(id, s) {
			return true
		}
	}
	return false
}

// cell is a bounds-safe accessor: short rows read as empty strings.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// num parses a sheet cell as a float. Empty cells, thousands
// separators and plain garbage all come back as 0 so one bad cell
// never sinks a sync pass.
func num(row []string, idx int) float64 {
	v := cell(row, idx)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// DecodeProductionRows maps Semi Production rows to orders. RowIndex
// is the 1-based sheet row, so updateCell calls can address the source
// row directly.
func DecodeProductionRows(rows [][]string) []models.ProductionOrder {
	orders := make([]models.ProductionOrder, 0, len(rows))
	for i := ProductionDataStart; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		serial := cell(row, 1)
		if serial == "" || isSentinel(serial) {
			continue
		}
		orders = append(orders, models.ProductionOrder{
			Timestamp:     cell(row, 0),
			Serial:        serial,
			Name:          cell(row, 2),
			TargetQty:     num(row, 3),
			Notes:         cell(row, 4),
			TotalPlanned:  num(row, 5),
			TotalMade:     num(row, 6),
			PendingQty:    num(row, 7),
			Status:        models.ProductionStatus(cell(row, 8)),
			PlannedMarker: cell(row, 9),
			ActualMarker:  cell(row, 10),
			RowIndex:      i + 1,
		})
	}
	return orders
}

// DecodeJobCardRows maps Semi Job Card rows. Columns past the 7-column
// insert payload are maintained by the external store: 7 actual-made
// (a supervisor closes a card by typing "Complete" into this cell),
// 8 pending, 9 status, 10 the stage plan marker.
func DecodeJobCardRows(rows [][]string) []models.JobCard {
	cards := make([]models.JobCard, 0, len(rows))
	for i := JobCardDataStart; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		serial := cell(row, 1)
		if serial == "" || isSentinel(serial) {
			continue
		}
		cards = append(cards, models.JobCard{
			Timestamp:      cell(row, 0),
			Serial:         serial,
			OrderSerial:    cell(row, 2),
			Supervisor:     cell(row, 3),
			ProductName:    cell(row, 4),
			PlannedQty:     num(row, 5),
			ProductionDate: cell(row, 6),
			ActualMade:     num(row, 7),
			MarkedComplete: strings.EqualFold(cell(row, 7), "complete"),
			PendingQty:     num(row, 8),
			Status:         models.ProductionStatus(cell(row, 9)),
			PlannedMarker:  cell(row, 10),
			RowIndex:       i + 1,
		})
	}
	return cards
}

// DecodeActualRows maps Semi Actual rows using a resolved schema for
// the four stage columns. Raw material slots are packed into the JSON
// payload; empty slots are dropped.
func DecodeActualRows(rows [][]string, schema Schema) []models.ActualEntry {
	planned1 := schema.Col("planned1", FallbackPlanned1Col)
	actual1 := schema.Col("actual1", FallbackActual1Col)
	planned2 := schema.Col("planned2", FallbackPlanned2Col)
	actual2 := schema.Col("actual2", FallbackActual2Col)

	entries := make([]models.ActualEntry, 0, len(rows))
	for i := schema.DataStart; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		serial := cell(row, 16)
		if serial == "" || isSentinel(serial) {
			continue
		}
		e := models.ActualEntry{
			Timestamp:         cell(row, 0),
			JobCardSerial:     cell(row, 1),
			Supervisor:        cell(row, 2),
			ProductionDate:    cell(row, 3),
			ProductName:       cell(row, 4),
			QtyProduced:       num(row, 5),
			HasEndProduct:     strings.EqualFold(cell(row, 12), "yes"),
			EndProductName:    cell(row, 13),
			EndProductQty:     num(row, 14),
			Narration:         cell(row, 15),
			Serial:            serial,
			StartReading:      num(row, 17),
			StartPhotoURL:     cell(row, 18),
			EndReading:        num(row, 19),
			EndPhotoURL:       cell(row, 20),
			MachineHours:      num(row, 21),
			MachineRunning:    strings.EqualFold(cell(row, 26), "yes"),
			OrderSerial:       cell(row, 27),
			Stage1PlannedAt:   cell(row, planned1),
			Stage1ApprovedAt:  cell(row, actual1),
			Stage2PlannedAt:   cell(row, planned2),
			Stage2ApprovedAt:  cell(row, actual2),
			RowIndex:          i + 1,
			Stage1ApprovedCol: actual1,
			Stage2ApprovedCol: actual2,
		}
		if e.MachineHours < 0 {
			e.MachineHours = 0
		}
		var mats []models.RawMaterial
		for _, pair := range [][2]int{{6, 7}, {8, 9}, {10, 11}, {22, 23}, {24, 25}} {
			name := cell(row, pair[0])
			if name == "" {
				continue
			}
			mats = append(mats, models.RawMaterial{Name: name, Qty: num(row, pair[1])})
		}
		e.SetMaterials(mats)
		entries = append(entries, e)
	}
	return entries
}

// DecodeCrushingRows maps Crushing_actual rows. The sheet carries no
// back-reference to the source Semi Actual row, so SourceSerial stays
// zero here and is filled locally at submit time.
func DecodeCrushingRows(rows [][]string) []models.CrushingEntry {
	entries := make([]models.CrushingEntry, 0, len(rows))
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		name := cell(row, 3)
		if (name == "" && cell(row, 1) == "") || isSentinel(name) {
			continue
		}
		e := models.CrushingEntry{
			Timestamp:      cell(row, 0),
			EntryDate:      cell(row, 1),
			ProductionDate: cell(row, 2),
			ProductName:    cell(row, 3),
			InputQty:       num(row, 4),
			StartPhotoURL:  cell(row, 13),
			EndPhotoURL:    cell(row, 14),
			Remarks:        cell(row, 15),
			MachineHours:   num(row, 16),
			RowIndex:       i + 1,
		}
		var goods []models.FinishedGood
		for _, pair := range [][2]int{{5, 6}, {7, 8}, {9, 10}, {11, 12}} {
			name := cell(row, pair[0])
			if name == "" {
				continue
			}
			goods = append(goods, models.FinishedGood{Name: name, Qty: num(row, pair[1])})
		}
		e.SetOutputs(goods)
		entries = append(entries, e)
	}
	return entries
}

// DecodeUserRows maps USER sheet rows to sheet-mirrored accounts.
func DecodeUserRows(rows [][]string) []models.SheetUser {
	users := make([]models.SheetUser, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isEmptyRow(row) {
			continue
		}
		username := cell(row, 0)
		if username == "" || strings.EqualFold(username, "username") {
			continue
		}
		users = append(users, models.SheetUser{
			Username:   username,
			Password:   cell(row, 1),
			Name:       cell(row, 2),
			PageAccess: cell(row, 3),
		})
	}
	return users
}

// DecodeMasterColumn extracts one dropdown list from the Master sheet
// by header name. The header match is case-insensitive; when the
// header does not exist the returned list is nil and the caller falls
// back to its built-in defaults.
func DecodeMasterColumn(rows [][]string, header string) []string {
	col := -1
	start := 0
	for i := 0; i < len(rows) && i < MarkerScanRows; i++ {
		for j, c := range rows[i] {
			if strings.EqualFold(strings.TrimSpace(c), header) {
				col = j
				start = i + 1
				break
			}
		}
		if col >= 0 {
			break
		}
	}
	if col < 0 {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for i := start; i < len(rows); i++ {
		v := cell(rows[i], col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// CrushingItemMarker labels the item column on the Crusing Items Name
// sheet.
const CrushingItemMarker = "crushing product name"

// DecodeCrushingItems returns the item list from the marker-labelled
// column. Without a marker the list reads from the first column below
// row 0.
func DecodeCrushingItems(rows [][]string) []string {
	schema := Resolve(rows, []string{CrushingItemMarker}, MarkerScanRows, 1)
	col := schema.Col(CrushingItemMarker, 0)

	var out []string
	seen := make(map[string]bool)
	for i := schema.DataStart; i < len(rows); i++ {
		v := cell(rows[i], col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// EncodeDemandRow builds the 11-column Semi Production insert payload.
// Derived totals start at zero and pending mirrors the target until
// the first sync recomputes them.
func EncodeDemandRow(o models.ProductionOrder) []string {
	return []string{
		o.Timestamp,
		o.Serial,
		o.Name,
		formatNum(o.TargetQty),
		o.Notes,
		"0",
		"0",
		formatNum(o.TargetQty),
		string(models.StatusPending),
		"",
		"",
	}
}

// EncodeJobCardRow builds the 7-column Semi Job Card insert payload.
func EncodeJobCardRow(c models.JobCard) []string {
	return []string{
		c.Timestamp,
		c.Serial,
		c.OrderSerial,
		c.Supervisor,
		c.ProductName,
		formatNum(c.PlannedQty),
		c.ProductionDate,
	}
}

// EncodeActualRow builds the 28-column Semi Actual insert payload. The
// stage columns beyond index 27 are stamped by the gateway script, not
// by us.
func EncodeActualRow(e models.ActualEntry) []string {
	row := make([]string, 28)
	row[0] = e.Timestamp
	row[1] = e.JobCardSerial
	row[2] = e.Supervisor
	row[3] = e.ProductionDate
	row[4] = e.ProductName
	row[5] = formatNum(e.QtyProduced)
	mats := e.Materials()
	slots := [][2]int{{6, 7}, {8, 9}, {10, 11}, {22, 23}, {24, 25}}
	for i, m := range mats {
		if i >= len(slots) {
			break
		}
		row[slots[i][0]] = m.Name
		row[slots[i][1]] = formatNum(m.Qty)
	}
	row[12] = yesNo(e.HasEndProduct)
	row[13] = e.EndProductName
	row[14] = formatNum(e.EndProductQty)
	row[15] = e.Narration
	row[16] = e.Serial
	row[17] = formatNum(e.StartReading)
	row[18] = e.StartPhotoURL
	row[19] = formatNum(e.EndReading)
	row[20] = e.EndPhotoURL
	row[21] = formatNum(e.MachineHours)
	row[26] = yesNo(e.MachineRunning)
	row[27] = e.OrderSerial
	return row
}

// EncodeCrushingRow builds the 17-column Crushing_actual insert
// payload.
func EncodeCrushingRow(e models.CrushingEntry) []string {
	row := make([]string, 17)
	row[0] = e.Timestamp
	row[1] = e.EntryDate
	row[2] = e.ProductionDate
	row[3] = e.ProductName
	row[4] = formatNum(e.InputQty)
	goods := e.Outputs()
	slots := [][2]int{{5, 6}, {7, 8}, {9, 10}, {11, 12}}
	for i, g := range goods {
		if i >= len(slots) {
			break
		}
		row[slots[i][0]] = g.Name
		row[slots[i][1]] = formatNum(g.Qty)
	}
	row[13] = e.StartPhotoURL
	row[14] = e.EndPhotoURL
	row[15] = e.Remarks
	row[16] = formatNum(e.MachineHours)
	return row
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
