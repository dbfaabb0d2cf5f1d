// Package state persists per-user UI state (draft forms, filter
// selections) so a supervisor can switch devices mid-shift without
// losing work.
package state

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/botivate-in/protrackgo/internal/database"
	"github.com/botivate-in/protrackgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a user has no saved value for a key.
var ErrNotFound = errors.New("state: key not found")

// Store is a small keyed JSON store scoped by username.
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Save upserts the value for (username, key). The value must be valid
// JSON; it is stored as-is.
func (s *Store) Save(username, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return errors.New("state: value is not valid JSON")
	}
	rec := models.SessionState{
		Username:  username,
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// Load returns the stored value for (username, key).
func (s *Store) Load(username, key string) (json.RawMessage, error) {
	var rec models.SessionState
	err := s.db.Where("username = ? AND key = ?", username, key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(rec.Value), nil
}

// Clear removes the stored value for (username, key). Clearing a key
// that was never set is not an error.
func (s *Store) Clear(username, key string) error {
	return s.db.Where("username = ? AND key = ?", username, key).
		Delete(&models.SessionState{}).Error
}
