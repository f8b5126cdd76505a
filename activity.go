package ridewitus

import (
	"time"

	"github.com/google/uuid"
)

// An Activity is one logged instance of movement.
//
// Distance is always stored in the canonical unit for Type;
// see package units for the policy.
//
// An Activity belongs to exactly one Account.
// Its ID is unique within that Account.
type Activity struct {
	AccountID       uuid.UUID    `gorm:"type:uuid;primaryKey" json:"-"`
	ID              string       `gorm:"primaryKey" json:"id"`
	Date            time.Time    `json:"date"`
	Type            ActivityType `json:"type"`
	Distance        float64      `json:"distance"`
	Duration        float64      `json:"duration"`
	MaintenanceCost *float64     `json:"maintenanceCost,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"-"`
	UpdatedAt       time.Time    `json:"-"`
}

// Cost returns MaintenanceCost, treating an absent value as 0.
func (a Activity) Cost() float64 {
	if a.MaintenanceCost == nil {
		return 0
	}

	return *a.MaintenanceCost
}

// Note returns Notes, treating an absent value as "".
func (a Activity) Note() string {
	if a.Notes == nil {
		return ""
	}

	return *a.Notes
}
