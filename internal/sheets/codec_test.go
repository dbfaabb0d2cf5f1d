package sheets

import (
	"testing"

	"github.com/botivate-in/protrackgo/internal/models"
)

func productionHeaderBlock() [][]string {
	return [][]string{
		{"Devshree Cement - Semi Production"},
		{},
		// a column-label row passes the sentinel list; only the fixed
		// data offset keeps it out of the decoded set
		{"Timestamp", "SF-Sr No.", "Name of Semi Finished", "Qty", "Notes"},
		{},
		{},
		{},
	}
}

func TestDecodeProductionRowsSkipsHeadersAndSentinels(t *testing.T) {
	rows := append(productionHeaderBlock(),
		[]string{"Timestamp", "Semi Job Card", "Name"},
		[]string{"", "", ""},
		[]string{"01/08/26 10:00:00", "SF-101", "20mm Aggregate", "500", "rush", "0", "120", "380", "IN PROGRESS", "p", "a"},
		// the sentinel check covers the serial cell only, not the name
		[]string{"01/08/26 10:05:00", "SF-103", "Actual Stone Mix", "50"},
		[]string{"01/08/26 10:06:00", "Devshree Header Repeat", "x"},
	)
	orders := DecodeProductionRows(rows)
	if len(orders) != 2 {
		t.Fatalf("decoded %d orders, want 2", len(orders))
	}
	for _, o := range orders {
		if o.Serial == "SF-Sr No." {
			t.Fatal("column-label row decoded as an order")
		}
	}
	if orders[1].Serial != "SF-103" {
		t.Errorf("second order = %q, want SF-103 (sentinel word in name must not reject the row)", orders[1].Serial)
	}
	o := orders[0]
	if o.Serial != "SF-101" {
		t.Errorf("Serial = %q", o.Serial)
	}
	if o.TargetQty != 500 {
		t.Errorf("TargetQty = %v, want 500", o.TargetQty)
	}
	if o.TotalMade != 120 || o.PendingQty != 380 {
		t.Errorf("totals = %v/%v, want 120/380", o.TotalMade, o.PendingQty)
	}
	if o.Status != models.StatusInProgress {
		t.Errorf("Status = %q", o.Status)
	}
	if o.RowIndex != 9 {
		t.Errorf("RowIndex = %d, want 9 (1-based sheet row)", o.RowIndex)
	}
}

func TestDecodeProductionRowsMalformedNumbers(t *testing.T) {
	rows := append(productionHeaderBlock(),
		[]string{"01/08/26 10:00:00", "SF-102", "Dust", "abc", "", "", "not a number", "1,250"},
	)
	orders := DecodeProductionRows(rows)
	if len(orders) != 1 {
		t.Fatalf("decoded %d orders, want 1", len(orders))
	}
	if orders[0].TargetQty != 0 {
		t.Errorf("TargetQty = %v, want 0 for garbage cell", orders[0].TargetQty)
	}
	if orders[0].TotalMade != 0 {
		t.Errorf("TotalMade = %v, want 0 for garbage cell", orders[0].TotalMade)
	}
	if orders[0].PendingQty != 1250 {
		t.Errorf("PendingQty = %v, want 1250 with comma stripped", orders[0].PendingQty)
	}
}

func jobCardHeaderBlock() [][]string {
	return [][]string{
		{"Devshree Cement"},
		{"Semi Job Card"},
		{},
		{"Timestamp", "SJC-Sr No.", "SF-Sr No.", "Supervisor", "Product", "Qty", "Date"},
	}
}

func TestDecodeJobCardRowsStoreColumns(t *testing.T) {
	rows := append(jobCardHeaderBlock(),
		// 7 actual-made (Complete closes the card), 8 pending, 9 status, 10 plan marker
		[]string{"01/08/26", "SJC-400", "SF-101", "Rahul Kumar", "20mm Aggregate", "100", "02/08/2026", "Complete", "0", "PENDING", "02/08/26 11:00:00"},
		[]string{"01/08/26", "SJC-401", "SF-101", "Amit Singh", "20mm Aggregate", "100", "02/08/2026", "60", "40", "IN PROGRESS", "02/08/26 11:00:00"},
		[]string{"01/08/26", "SJC-402", "SF-101", "Sunil Verma", "20mm Aggregate", "100", "02/08/2026", "", "", "PENDING", ""},
	)
	cards := DecodeJobCardRows(rows)
	if len(cards) != 3 {
		t.Fatalf("decoded %d cards, want 3", len(cards))
	}
	if !cards[0].MarkedComplete {
		t.Error("SJC-400 should be marked complete by the col-7 sentinel")
	}
	if cards[0].PlannedMarker != "02/08/26 11:00:00" {
		t.Errorf("SJC-400 PlannedMarker = %q, want col 10", cards[0].PlannedMarker)
	}
	if cards[1].MarkedComplete {
		t.Error("SJC-401 should not be marked complete")
	}
	if cards[1].ActualMade != 60 || cards[1].PendingQty != 40 {
		t.Errorf("SJC-401 made/pending = %v/%v, want 60/40", cards[1].ActualMade, cards[1].PendingQty)
	}
	if cards[1].Status != models.StatusInProgress {
		t.Errorf("SJC-401 status = %q", cards[1].Status)
	}
	if cards[2].PlannedMarker != "" {
		t.Errorf("SJC-402 PlannedMarker = %q, want empty", cards[2].PlannedMarker)
	}
	if cards[0].RowIndex != 5 {
		t.Errorf("RowIndex = %d, want 5 (1-based, below the 4-row header block)", cards[0].RowIndex)
	}
}

func TestDecodeJobCardRowsSkipsHeaderBlock(t *testing.T) {
	rows := jobCardHeaderBlock()
	rows[1] = []string{"x", "SJC-999", "above the data offset"}
	cards := DecodeJobCardRows(rows)
	if len(cards) != 0 {
		t.Errorf("decoded %d cards from the header block, want 0", len(cards))
	}
}

func actualFixtureRow() []string {
	row := make([]string, 32)
	row[0] = "05/08/26 09:30:00"
	row[1] = "SJC-400"
	row[2] = "Rahul Kumar"
	row[3] = "05/08/2026"
	row[4] = "20mm Aggregate"
	row[5] = "60"
	row[6] = "Raw Stone"
	row[7] = "80"
	row[8] = "Fuel"
	row[9] = "12.5"
	row[12] = "Yes"
	row[13] = "Dust"
	row[14] = "5"
	row[15] = models.NarrationNormal
	row[16] = "SA-007"
	row[17] = "1200"
	row[19] = "1260"
	row[21] = "6"
	row[26] = "Yes"
	row[27] = "SF-101"
	row[28] = "05/08/26 10:00:00"
	return row
}

func TestDecodeActualRowsWithResolvedSchema(t *testing.T) {
	rows := [][]string{
		{"Semi Finished Entry Form"},
		{"", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "", "planned1", "actual1", "planned2", "actual2"},
		actualFixtureRow(),
	}
	schema := Resolve(rows, StageMarkers, MarkerScanRows, FallbackActualStart)
	entries := DecodeActualRows(rows, schema)
	if len(entries) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Serial != "SA-007" {
		t.Errorf("Serial = %q", e.Serial)
	}
	if e.OrderSerial != "SF-101" || e.JobCardSerial != "SJC-400" {
		t.Errorf("refs = %q/%q", e.OrderSerial, e.JobCardSerial)
	}
	if e.Stage1PlannedAt != "05/08/26 10:00:00" {
		t.Errorf("Stage1PlannedAt = %q", e.Stage1PlannedAt)
	}
	if e.Stage1ApprovedAt != "" {
		t.Errorf("Stage1ApprovedAt = %q, want empty", e.Stage1ApprovedAt)
	}
	if e.Stage1ApprovedCol != 29 || e.Stage2ApprovedCol != 31 {
		t.Errorf("approved cols = %d/%d, want 29/31", e.Stage1ApprovedCol, e.Stage2ApprovedCol)
	}
	if e.RowIndex != 3 {
		t.Errorf("RowIndex = %d, want 3", e.RowIndex)
	}
	mats := e.Materials()
	if len(mats) != 2 {
		t.Fatalf("materials = %d, want 2", len(mats))
	}
	if mats[1].Name != "Fuel" || mats[1].Qty != 12.5 {
		t.Errorf("material[1] = %+v", mats[1])
	}
	if !e.HasEndProduct || e.EndProductName != "Dust" || e.EndProductQty != 5 {
		t.Errorf("end product = %v %q %v", e.HasEndProduct, e.EndProductName, e.EndProductQty)
	}
}

func TestDecodeActualRowsNegativeMachineHoursClamped(t *testing.T) {
	row := actualFixtureRow()
	row[21] = "-3"
	schema := Schema{DataStart: 0, Columns: map[string]int{}}
	entries := DecodeActualRows([][]string{row}, schema)
	if len(entries) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(entries))
	}
	if entries[0].MachineHours != 0 {
		t.Errorf("MachineHours = %v, want 0 after clamp", entries[0].MachineHours)
	}
}

func TestEncodeDemandRowShape(t *testing.T) {
	row := EncodeDemandRow(models.ProductionOrder{
		Timestamp: "01/08/26 10:00:00",
		Serial:    "SF-105",
		Name:      "10mm Aggregate",
		TargetQty: 250,
		Notes:     "priority",
	})
	if len(row) != 11 {
		t.Fatalf("row has %d columns, want 11", len(row))
	}
	if row[1] != "SF-105" || row[3] != "250" {
		t.Errorf("serial/qty = %q/%q", row[1], row[3])
	}
	if row[7] != "250" {
		t.Errorf("pending = %q, want target mirrored", row[7])
	}
	if row[8] != string(models.StatusPending) {
		t.Errorf("status = %q", row[8])
	}
	if row[9] != "" || row[10] != "" {
		t.Error("marker columns must start empty")
	}
}

func TestEncodeJobCardRowShape(t *testing.T) {
	row := EncodeJobCardRow(models.JobCard{
		Timestamp:      "01/08/26 11:00:00",
		Serial:         "SJC-402",
		OrderSerial:    "SF-105",
		Supervisor:     "Sunil Verma",
		ProductName:    "10mm Aggregate",
		PlannedQty:     120,
		ProductionDate: "03/08/2026",
	})
	if len(row) != 7 {
		t.Fatalf("row has %d columns, want 7", len(row))
	}
	if row[2] != "SF-105" || row[5] != "120" {
		t.Errorf("orderSerial/qty = %q/%q", row[2], row[5])
	}
}

func TestEncodeActualRowRoundTripsThroughDecode(t *testing.T) {
	e := models.ActualEntry{
		Timestamp:      "05/08/26 09:30:00",
		JobCardSerial:  "SJC-402",
		OrderSerial:    "SF-105",
		Supervisor:     "Sunil Verma",
		ProductionDate: "05/08/2026",
		ProductName:    "10mm Aggregate",
		QtyProduced:    75,
		Narration:      models.NarrationBreakdown,
		Serial:         "SA-010",
		StartReading:   100,
		EndReading:     180,
		MachineHours:   8,
		MachineRunning: true,
	}
	e.SetMaterials([]models.RawMaterial{
		{Name: "Raw Stone", Qty: 90},
		{Name: "Fuel", Qty: 10},
		{Name: "Lubricants", Qty: 1},
		{Name: "Coolant", Qty: 2},
		{Name: "Misc", Qty: 0.5},
	})
	row := EncodeActualRow(e)
	if len(row) != 28 {
		t.Fatalf("row has %d columns, want 28", len(row))
	}
	if row[16] != "SA-010" || row[27] != "SF-105" {
		t.Errorf("serials at 16/27 = %q/%q", row[16], row[27])
	}
	// slots 4 and 5 live past the end-product block
	if row[22] != "Coolant" || row[24] != "Misc" {
		t.Errorf("overflow material slots = %q/%q", row[22], row[24])
	}

	schema := Schema{DataStart: 0, Columns: map[string]int{}}
	back := DecodeActualRows([][]string{row}, schema)
	if len(back) != 1 {
		t.Fatalf("decode round trip gave %d entries", len(back))
	}
	if got := back[0].Materials(); len(got) != 5 || got[4].Qty != 0.5 {
		t.Errorf("round-tripped materials = %+v", got)
	}
	if back[0].QtyProduced != 75 || !back[0].MachineRunning {
		t.Errorf("round trip lost fields: %+v", back[0])
	}
}

func TestEncodeCrushingRowShape(t *testing.T) {
	e := models.CrushingEntry{
		Timestamp:      "10/08/26 14:00:00",
		EntryDate:      "10/08/2026",
		ProductionDate: "05/08/2026",
		ProductName:    "10mm Aggregate",
		InputQty:       75,
		Remarks:        "single pass",
		MachineHours:   3,
		SourceSerial:   "SA-010",
	}
	e.SetOutputs([]models.FinishedGood{
		{Name: "6mm Chips", Qty: 40},
		{Name: "Dust", Qty: 30},
	})
	row := EncodeCrushingRow(e)
	if len(row) != 17 {
		t.Fatalf("row has %d columns, want 17", len(row))
	}
	if row[5] != "6mm Chips" || row[8] != "30" {
		t.Errorf("finished good slots = %q/%q", row[5], row[8])
	}
	for _, c := range row {
		if c == "SA-010" {
			t.Error("source serial must not leak into the sheet row")
		}
	}
}

func TestDecodeMasterColumnFallsBackToNil(t *testing.T) {
	rows := [][]string{
		{"Product Name", "Supervisor Name"},
		{"20mm Aggregate", "Rahul Kumar"},
		{"10mm Aggregate", "Rahul Kumar"},
		{"", "Amit Singh"},
	}
	products := DecodeMasterColumn(rows, "product name")
	if len(products) != 2 {
		t.Fatalf("products = %v", products)
	}
	supers := DecodeMasterColumn(rows, "Supervisor Name")
	if len(supers) != 2 || supers[1] != "Amit Singh" {
		t.Errorf("supervisors = %v, want deduped pair", supers)
	}
	if got := DecodeMasterColumn(rows, "Raw Material"); got != nil {
		t.Errorf("missing header should return nil, got %v", got)
	}
}

func TestDecodeCrushingItemsFollowsMarkerColumn(t *testing.T) {
	rows := [][]string{
		{"", "", "Crushing Product Name"},
		{"x", "", "6mm Chips"},
		{"y", "", "Dust"},
		{"z", "", "6mm Chips"},
	}
	items := DecodeCrushingItems(rows)
	if len(items) != 2 || items[0] != "6mm Chips" || items[1] != "Dust" {
		t.Errorf("items = %v, want deduped marker column", items)
	}

	// no marker: first column below the header row
	plain := DecodeCrushingItems([][]string{
		{"Items"},
		{"20mm"},
		{"10mm"},
	})
	if len(plain) != 2 || plain[0] != "20mm" {
		t.Errorf("fallback items = %v", plain)
	}
}

func TestDecodeUserRowsSkipsHeader(t *testing.T) {
	rows := [][]string{
		{"Username", "Password", "Name", "Page Access"},
		{"rahul", "secret", "Rahul Kumar", "demand,jobcard"},
		{"", "", "", ""},
	}
	users := DecodeUserRows(rows)
	if len(users) != 1 {
		t.Fatalf("decoded %d users, want 1", len(users))
	}
	u := users[0]
	if u.Username != "rahul" || u.PageAccess != "demand,jobcard" {
		t.Errorf("user = %+v", u)
	}
	if !u.HasPageAccess("Demand") {
		t.Error("page access match should be case-insensitive")
	}
	if u.HasPageAccess("approval") {
		t.Error("unlisted page should be denied")
	}
}
