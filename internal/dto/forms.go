package dto

import (
	"time"
)

// ReportForm is the create/edit payload for disaster reports. Owner
// fields are deliberately absent: ownership comes from the session,
// never from client input.
type ReportForm struct {
	Location     string     `json:"location" form:"location" binding:"required,max=100"`
	DisasterType string     `json:"disaster_type" form:"disaster_type" binding:"required,max=100"`
	Description  string     `json:"description" form:"description" binding:"required,max=1000"`
	DateReported *time.Time `json:"date_reported" form:"date_reported" time_format:"2006-01-02T15:04:05Z07:00"`
}

// DonationForm is the create/edit payload for donations.
type DonationForm struct {
	ResourceType string     `json:"resource_type" form:"resource_type" binding:"required,max=200"`
	Quantity     int        `json:"quantity" form:"quantity" binding:"required,min=1,max=10000"`
	Note         string     `json:"note" form:"note" binding:"max=1000"`
	DateDonated  *time.Time `json:"date_donated" form:"date_donated" time_format:"2006-01-02T15:04:05Z07:00"`
}

// DistributeForm is the admin status-transition payload.
type DistributeForm struct {
	Status            string `json:"status" form:"status" binding:"required,max=50"`
	Location          string `json:"location" form:"location" binding:"max=200"`
	DistributionNotes string `json:"distribution_notes" form:"distribution_notes" binding:"max=1000"`
}

// VolunteerForm is the create/edit payload for personal commitments.
type VolunteerForm struct {
	Task          string     `json:"task" form:"task" binding:"required,max=100"`
	ScheduledDate *time.Time `json:"scheduled_date" form:"scheduled_date" time_format:"2006-01-02T15:04:05Z07:00"`
	IsCompleted   bool       `json:"is_completed" form:"is_completed"`
}

// TaskForm is the create/edit payload for volunteer tasks.
type TaskForm struct {
	Title          string     `json:"title" form:"title" binding:"required,max=120"`
	Description    string     `json:"description" form:"description" binding:"max=1000"`
	StartAt        *time.Time `json:"start_at" form:"start_at" time_format:"2006-01-02T15:04:05Z07:00"`
	EndAt          *time.Time `json:"end_at" form:"end_at" time_format:"2006-01-02T15:04:05Z07:00"`
	Status         string     `json:"status" form:"status" binding:"max=40"`
	Notes          string     `json:"notes" form:"notes" binding:"max=500"`
	Location       string     `json:"location" form:"location" binding:"max=200"`
	Priority       string     `json:"priority" form:"priority" binding:"max=50"`
	Category       string     `json:"category" form:"category" binding:"max=100"`
	MaxVolunteers  int        `json:"max_volunteers" form:"max_volunteers" binding:"omitempty,min=1,max=100"`
	RequiredSkills string     `json:"required_skills" form:"required_skills" binding:"max=200"`
}

// MessageForm is the payload for sending a message. A missing
// recipient broadcasts to all users.
type MessageForm struct {
	RecipientUserID *string `json:"recipient_user_id" form:"recipient_user_id"`
	Subject         string  `json:"subject" form:"subject" binding:"required,max=200"`
	Message         string  `json:"message" form:"message" binding:"required,max=2000"`
	RelatedTaskID   *uint64 `json:"related_task_id" form:"related_task_id"`
	MessageType     string  `json:"message_type" form:"message_type" binding:"max=50"`
}

// ReplyForm is the payload for replying to a message.
type ReplyForm struct {
	Message string `json:"message" form:"message" binding:"required,max=2000"`
}
