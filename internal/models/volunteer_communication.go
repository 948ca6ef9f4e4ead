package models

import (
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeGeneral      MessageType = "General"
	MessageTypeTaskUpdate   MessageType = "Task Update"
	MessageTypeEmergency    MessageType = "Emergency"
	MessageTypeAnnouncement MessageType = "Announcement"
)

// ParseMessageType rejects any value outside the closed type set.
func ParseMessageType(s string) (MessageType, error) {
	switch MessageType(s) {
	case MessageTypeGeneral, MessageTypeTaskUpdate, MessageTypeEmergency, MessageTypeAnnouncement:
		return MessageType(s), nil
	}
	return "", fmt.Errorf("unknown message type %q", s)
}

// VolunteerCommunication is a message between users. A nil recipient
// means a broadcast visible to every authenticated user.
type VolunteerCommunication struct {
	ID              uint64      `gorm:"primarykey" json:"id"`
	SenderUserID    *string     `gorm:"type:varchar(64);index" json:"sender_user_id"`
	RecipientUserID *string     `gorm:"type:varchar(64);index" json:"recipient_user_id"`
	Subject         string      `gorm:"type:varchar(200);not null" json:"subject"`
	Message         string      `gorm:"type:varchar(2000);not null" json:"message"`
	SentAt          time.Time   `json:"sent_at"`
	IsRead          bool        `gorm:"not null;default:false" json:"is_read"`
	ReadAt          *time.Time  `json:"read_at"`
	RelatedTaskID   *uint64     `json:"related_task_id"`
	MessageType     MessageType `gorm:"type:varchar(50);not null;default:'General'" json:"message_type"`
	CreatedAt       time.Time   `json:"created_at"`

	SenderUser    *User          `gorm:"foreignKey:SenderUserID;constraint:OnDelete:SET NULL" json:"sender_user,omitempty"`
	RecipientUser *User          `gorm:"foreignKey:RecipientUserID;constraint:OnDelete:SET NULL" json:"recipient_user,omitempty"`
	RelatedTask   *VolunteerTask `gorm:"foreignKey:RelatedTaskID" json:"related_task,omitempty"`
}
