package models

import (
	"time"
)

// Volunteer is a personal scheduled commitment. It is strictly private
// to its owner; there is no cross-user visibility, admin listing aside.
type Volunteer struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	VolunteerUserID *string   `gorm:"type:varchar(64);index" json:"volunteer_user_id"`
	Task            string    `gorm:"type:varchar(100);not null" json:"task"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	IsCompleted     bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	VolunteerUser *User `gorm:"foreignKey:VolunteerUserID;constraint:OnDelete:SET NULL" json:"volunteer_user,omitempty"`
}
