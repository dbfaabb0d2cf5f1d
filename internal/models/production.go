package models

import "time"

// ProductionStatus mirrors the Status column of the Semi Production sheet
type ProductionStatus string

const (
	StatusPending    ProductionStatus = "PENDING"
	StatusInProgress ProductionStatus = "IN PROGRESS"
	StatusCompleted  ProductionStatus = "COMPLETED"
)

// ProductionOrder mirrors one data row of the 'Semi Production' sheet
// (a demand for a target quantity of a semi-finished good).
//
// TotalPlanned/TotalMade/PendingQty/Status are derived fields. The sheet
// carries cached copies of them, but the aggregation engine recomputes
// them from job cards and actual entries after every sync, so the sheet
// values never win over the recomputation.
type ProductionOrder struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	Timestamp string  `json:"timestamp"`
	Serial    string  `gorm:"uniqueIndex;not null" json:"sfSrNo"`
	Name      string  `json:"name"`
	TargetQty float64 `json:"qty"`
	Notes     string  `json:"notes"`

	// Derived (recomputed, never hand-edited)
	TotalPlanned float64          `json:"totalPlanned"`
	TotalMade    float64          `json:"totalMade"`
	PendingQty   float64          `json:"pending"`
	Status       ProductionStatus `gorm:"default:PENDING;index" json:"status"`

	// Stage markers maintained by the external store (columns J/K)
	PlannedMarker string `json:"planned,omitempty"`
	ActualMarker  string `json:"actual,omitempty"`

	// 1-based sheet row, for single-cell updates
	RowIndex int `json:"-"`

	LastSyncedAt time.Time `json:"-"`
}

func (ProductionOrder) TableName() string { return "production_orders" }

// IsCompleted reports whether nothing remains to produce
func (o *ProductionOrder) IsCompleted() bool {
	return o.Status == StatusCompleted
}
