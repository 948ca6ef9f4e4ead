package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

var (
	ErrMessageNotFound       = errors.New("message not found")
	ErrMessageFieldsRequired = errors.New("subject and message are required")
	ErrInvalidMessageType    = errors.New("invalid message type")
)

// CommunicationService handles volunteer messaging. Visibility follows
// the participant rule: sender, recipient, or everyone for broadcasts.
type CommunicationService struct {
	commRepo repository.CommunicationRepository
}

// NewCommunicationService creates a new CommunicationService
func NewCommunicationService(commRepo repository.CommunicationRepository) *CommunicationService {
	return &CommunicationService{commRepo: commRepo}
}

// MessageInput carries a new message.
type MessageInput struct {
	RecipientUserID *string
	Subject         string
	Message         string
	RelatedTaskID   *uint64
	MessageType     string
}

func (in MessageInput) validate() (models.MessageType, error) {
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" {
		return "", ErrMessageFieldsRequired
	}
	if in.MessageType == "" {
		return models.MessageTypeGeneral, nil
	}
	messageType, err := models.ParseMessageType(in.MessageType)
	if err != nil {
		return "", ErrInvalidMessageType
	}
	return messageType, nil
}

// List returns the messages the caller participates in.
func (s *CommunicationService) List(caller policy.Caller, params utils.PaginationParams) ([]models.VolunteerCommunication, int64, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, 0, err
	}
	return s.commRepo.List(policy.ParticipantScope(caller), params)
}

// Get returns a message after the participant check, marking it read
// the first time the recipient opens it.
func (s *CommunicationService) Get(caller policy.Caller, id uint64) (*models.VolunteerCommunication, error) {
	message, err := s.commRepo.FindByID(id, "SenderUser", "RecipientUser", "RelatedTask")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if err := policy.CanReadMessage(caller, message.SenderUserID, message.RecipientUserID); err != nil {
		return nil, err
	}

	if message.RecipientUserID != nil && *message.RecipientUserID == caller.UserID && !message.IsRead {
		flipped, err := s.commRepo.MarkRead(id, caller.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark message read: %w", err)
		}
		if flipped {
			now := time.Now()
			message.IsRead = true
			message.ReadAt = &now
		}
	}

	return message, nil
}

// Send creates a message from the caller. A nil recipient broadcasts.
func (s *CommunicationService) Send(caller policy.Caller, input MessageInput) (*models.VolunteerCommunication, error) {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return nil, err
	}

	messageType, err := input.validate()
	if err != nil {
		return nil, err
	}

	message := &models.VolunteerCommunication{
		SenderUserID:    policy.StampOwner(caller),
		RecipientUserID: input.RecipientUserID,
		Subject:         input.Subject,
		Message:         input.Message,
		SentAt:          time.Now(),
		RelatedTaskID:   input.RelatedTaskID,
		MessageType:     messageType,
	}

	if err := s.commRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// Reply sends a response to an existing message the caller
// participates in, addressed back to the original sender.
func (s *CommunicationService) Reply(caller policy.Caller, originalID uint64, body string) (*models.VolunteerCommunication, error) {
	original, err := s.commRepo.FindByID(originalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if err := policy.CanReadMessage(caller, original.SenderUserID, original.RecipientUserID); err != nil {
		return nil, err
	}

	subject := original.Subject
	if !strings.HasPrefix(subject, "Re: ") {
		subject = "Re: " + subject
	}

	return s.Send(caller, MessageInput{
		RecipientUserID: original.SenderUserID,
		Subject:         subject,
		Message:         body,
		RelatedTaskID:   original.RelatedTaskID,
		MessageType:     string(original.MessageType),
	})
}

// Delete removes a message; only its sender may do so.
func (s *CommunicationService) Delete(caller policy.Caller, id uint64) error {
	message, err := s.commRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpDelete, message.SenderUserID); err != nil {
		return err
	}

	if err := s.commRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
