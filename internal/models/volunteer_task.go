package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusAssigned   TaskStatus = "Assigned"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

// ParseTaskStatus rejects any value outside the closed status set.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusOpen, TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Joinable reports whether volunteers may still join a task in this
// status. Capacity is gated separately by the volunteer count; the
// status label is a display derivative.
func (s TaskStatus) Joinable() bool {
	return s == TaskStatusOpen || s == TaskStatusAssigned
}

// Task priorities
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// VolunteerTask is a postable piece of work an organization needs
// filled. AssignedVolunteerID tracks the most recent joiner while any
// volunteer is attached; the task_assignments rows are authoritative
// for membership.
type VolunteerTask struct {
	ID                    uint64     `gorm:"primarykey" json:"id"`
	Title                 string     `gorm:"type:varchar(120);not null" json:"title"`
	Description           string     `gorm:"type:varchar(1000)" json:"description"`
	StartAt               *time.Time `json:"start_at"`
	EndAt                 *time.Time `json:"end_at"`
	Status                TaskStatus `gorm:"type:varchar(40);not null;default:'Open'" json:"status"`
	AssignedVolunteerID   *string    `gorm:"type:varchar(64);index" json:"assigned_volunteer_id"`
	Notes                 string     `gorm:"type:varchar(500)" json:"notes"`
	Location              string     `gorm:"type:varchar(200)" json:"location"`
	Priority              string     `gorm:"type:varchar(50);default:'Medium'" json:"priority"`
	Category              string     `gorm:"type:varchar(100)" json:"category"`
	MaxVolunteers         int        `gorm:"not null;default:1" json:"max_volunteers"`
	CurrentVolunteerCount int        `gorm:"not null;default:0" json:"current_volunteer_count"`
	RequiredSkills        string     `gorm:"type:varchar(200)" json:"required_skills"`
	CreatedByUserID       *string    `gorm:"type:varchar(64)" json:"created_by_user_id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	AssignedVolunteer *User            `gorm:"foreignKey:AssignedVolunteerID;constraint:OnDelete:SET NULL" json:"assigned_volunteer,omitempty"`
	CreatedByUser     *User            `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"created_by_user,omitempty"`
	Assignments       []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
