package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// FinishedGood is one output slot of a crushing run (up to 4)
type FinishedGood struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
}

// CrushingEntry mirrors one data row of the 'Crushing_actual' sheet: a
// secondary processing step converting a completed ActualEntry's output
// into finished goods. The sheet row itself carries no back-reference;
// SourceSerial is captured locally at submission time so the link to
// the source entry survives in the cache.
type CrushingEntry struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	Timestamp      string  `json:"timestamp"`
	EntryDate      string  `json:"date"`
	ProductionDate string  `json:"dateOfProduction"`
	ProductName    string  `json:"crushingProductName"`
	InputQty       float64 `json:"qtyCrushed"`

	// Up to 4 finished-good output slots, stored as JSON
	FinishedGoods datatypes.JSON `json:"finishedGoods"`

	StartPhotoURL string  `json:"startPhoto"`
	EndPhotoURL   string  `json:"endPhoto"`
	Remarks       string  `json:"remarks"`
	MachineHours  float64 `json:"machineRunningHour"`

	SourceSerial string `gorm:"index" json:"semiActualSNo"`

	RowIndex     int       `gorm:"uniqueIndex" json:"-"`
	LastSyncedAt time.Time `json:"-"`
}

func (CrushingEntry) TableName() string { return "crushing_entries" }

// Outputs decodes the finished-good slots, tolerant of bad payloads
func (c *CrushingEntry) Outputs() []FinishedGood {
	var out []FinishedGood
	if len(c.FinishedGoods) == 0 {
		return out
	}
	_ = json.Unmarshal(c.FinishedGoods, &out)
	return out
}

// SetOutputs stores the finished-good slots as JSON
func (c *CrushingEntry) SetOutputs(goods []FinishedGood) {
	b, err := json.Marshal(goods)
	if err != nil {
		b = []byte("[]")
	}
	c.FinishedGoods = datatypes.JSON(b)
}
