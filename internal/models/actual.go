package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Narration values accepted on an actual entry
const (
	NarrationNormal      = "Normal"
	NarrationBreakdown   = "Breakdown"
	NarrationMaintenance = "Maintenance"
	NarrationTesting     = "Testing"
)

// RawMaterial is one consumed-material slot on an actual entry (up to 5)
type RawMaterial struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

// ActualEntry mirrors one data row of the 'Semi Actual' sheet: a logged
// record of real production against a job card, including raw-material
// consumption and machine readings. Entries form an append-only ledger;
// after creation only the stage marker cells change.
//
// Stage1* markers gate the Entry->Approval step (sheet columns
// planned1/actual1), Stage2* markers gate Approval->Crushing
// (planned2/actual2). Marker columns are discovered per fetch by the
// schema resolver, so their 1-based indexes are cached here for the
// follow-up cell updates.
type ActualEntry struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	Timestamp      string  `json:"timestamp"`
	Serial         string  `gorm:"uniqueIndex;not null" json:"sNo"`
	JobCardSerial  string  `gorm:"index" json:"sjcSrNo"`
	OrderSerial    string  `gorm:"index" json:"sfSrNo"`
	Supervisor     string  `json:"supervisorName"`
	ProductionDate string  `json:"dateOfProduction"`
	ProductName    string  `json:"productName"`
	QtyProduced    float64 `json:"qtyProduced"`

	// Up to 5 consumed-material slots, stored as JSON
	RawMaterials datatypes.JSON `json:"rawMaterials"`

	HasEndProduct  bool    `json:"isAnyEndProduct"`
	EndProductName string  `json:"endProductName"`
	EndProductQty  float64 `json:"endProductQty"`

	Narration string `json:"narration"`

	StartReading float64 `json:"startingReading"`
	EndReading   float64 `json:"endingReading"`
	// EndReading - StartReading, clamped to >= 0 at entry creation
	MachineHours   float64 `json:"machineRunningHour"`
	MachineRunning bool    `json:"machineRunning"`

	StartPhotoURL string `json:"startingReadingPhoto"`
	EndPhotoURL   string `json:"endingReadingPhoto"`

	Stage1PlannedAt  string `json:"planned1,omitempty"`
	Stage1ApprovedAt string `json:"actual1,omitempty"`
	Stage2PlannedAt  string `json:"planned2,omitempty"`
	Stage2ApprovedAt string `json:"actual2,omitempty"`

	RowIndex          int `json:"-"`
	Stage1ApprovedCol int `json:"-"`
	Stage2ApprovedCol int `json:"-"`

	LastSyncedAt time.Time `json:"-"`
}

func (ActualEntry) TableName() string { return "actual_entries" }

// Materials decodes the raw-material slots; a malformed payload decodes
// as empty rather than erroring, matching the codec's tolerance.
func (e *ActualEntry) Materials() []RawMaterial {
	var out []RawMaterial
	if len(e.RawMaterials) == 0 {
		return out
	}
	_ = json.Unmarshal(e.RawMaterials, &out)
	return out
}

// SetMaterials stores the raw-material slots as JSON
func (e *ActualEntry) SetMaterials(mats []RawMaterial) {
	b, err := json.Marshal(mats)
	if err != nil {
		b = []byte("[]")
	}
	e.RawMaterials = datatypes.JSON(b)
}
