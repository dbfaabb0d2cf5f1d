package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionState is one entry of the key-value persistence port that
// replaces the browser's localStorage (current user, active tab,
// cached collections). Keys are scoped per user.
type SessionState struct {
	ID       uint           `gorm:"primaryKey" json:"-"`
	Username string         `gorm:"uniqueIndex:idx_session_user_key" json:"username"`
	Key      string         `gorm:"uniqueIndex:idx_session_user_key;not null" json:"key"`
	Value    datatypes.JSON `json:"value"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (SessionState) TableName() string { return "session_states" }
