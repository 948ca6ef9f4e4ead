package models

import (
	"time"
)

// TaskAssignment records one volunteer's membership on a task.
type TaskAssignment struct {
	TaskID          uint64    `gorm:"primarykey" json:"task_id"`
	VolunteerUserID string    `gorm:"type:varchar(64);primarykey" json:"volunteer_user_id"`
	CreatedAt       time.Time `json:"created_at"`

	Task      VolunteerTask `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Volunteer User          `gorm:"foreignKey:VolunteerUserID" json:"volunteer,omitempty"`
}
