package models

import "time"

// JobCard mirrors one data row of the 'Semi Job Card' sheet: a
// supervisor-assigned plan to produce part of a ProductionOrder's
// quantity on a given date. Core fields are immutable after creation;
// ActualMade is derived and the markers come from the external store.
type JobCard struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	Timestamp   string  `json:"timestamp"`
	Serial      string  `gorm:"uniqueIndex;not null" json:"sjcSrNo"`
	OrderSerial string  `gorm:"index" json:"sfSrNo"`
	Supervisor  string  `json:"supervisorName"`
	ProductName string  `json:"productName"`
	PlannedQty  float64 `json:"qty"`
	// Production date as entered on the card (free-form sheet date)
	ProductionDate string `json:"dateOfProduction"`

	// Derived: sum of QtyProduced over actual entries referencing this card
	ActualMade float64 `json:"actualMade"`
	PendingQty float64 `json:"pending"`

	Status        ProductionStatus `gorm:"default:PENDING" json:"status"`
	PlannedMarker string           `json:"planned,omitempty"`
	// The sheet writes the literal text "Complete" into the actual-made
	// cell when a card is closed out manually; that sentinel removes the
	// card from the entry queue.
	MarkedComplete bool `json:"markedComplete"`

	RowIndex     int       `json:"-"`
	LastSyncedAt time.Time `json:"-"`
}

func (JobCard) TableName() string { return "job_cards" }
