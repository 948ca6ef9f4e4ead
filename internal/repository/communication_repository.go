package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// GormCommunicationRepository is a GORM implementation of CommunicationRepository
type GormCommunicationRepository struct {
	db *gorm.DB
}

// NewCommunicationRepository creates a new CommunicationRepository
func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &GormCommunicationRepository{db: db}
}

func (r *GormCommunicationRepository) Create(message *models.VolunteerCommunication) error {
	return r.db.Create(message).Error
}

func (r *GormCommunicationRepository) FindByID(id uint64, preload ...string) (*models.VolunteerCommunication, error) {
	var message models.VolunteerCommunication
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *GormCommunicationRepository) List(scope ListScope, params utils.PaginationParams) ([]models.VolunteerCommunication, int64, error) {
	query := r.db.Model(&models.VolunteerCommunication{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.VolunteerCommunication
	err := query.
		Preload("SenderUser").
		Preload("RecipientUser").
		Preload("RelatedTask").
		Order("sent_at DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead is guarded on is_read so the false→true flip happens exactly
// once even when the recipient opens the message twice concurrently.
func (r *GormCommunicationRepository) MarkRead(id uint64, recipientUserID string) (bool, error) {
	res := r.db.Model(&models.VolunteerCommunication{}).
		Where("id = ? AND recipient_user_id = ? AND is_read = ?", id, recipientUserID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormCommunicationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.VolunteerCommunication{}, id).Error
}
