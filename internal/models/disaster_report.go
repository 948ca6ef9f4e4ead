package models

import (
	"time"
)

// DisasterReport is an incident filed by a user. ReportedByUserID is
// stamped from the caller at creation and never changes afterwards; it
// only goes null if the reporting account is deleted.
type DisasterReport struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	ReportedByUserID *string   `gorm:"type:varchar(64);index" json:"reported_by_user_id"`
	Location         string    `gorm:"type:varchar(100);not null" json:"location"`
	DisasterType     string    `gorm:"type:varchar(100);not null" json:"disaster_type"`
	Description      string    `gorm:"type:varchar(1000);not null" json:"description"`
	DateReported     time.Time `json:"date_reported"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	ReportedByUser *User `gorm:"foreignKey:ReportedByUserID;constraint:OnDelete:SET NULL" json:"reported_by_user,omitempty"`
}
