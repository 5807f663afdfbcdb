package models

import "time"

// TimeSlot mirrors the canonical schedule so the admin can see it in the
// database; availability is computed from the domain schedule, not this table.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// Serialized weekday numbers (0=Sunday .. 6=Saturday).
	DaysOfWeek DayList `gorm:"type:text" json:"days_of_week"`
	Active     bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
