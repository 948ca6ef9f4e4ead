package repository

import (
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// GormVolunteerRepository is a GORM implementation of VolunteerRepository
type GormVolunteerRepository struct {
	db *gorm.DB
}

// NewVolunteerRepository creates a new VolunteerRepository
func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &GormVolunteerRepository{db: db}
}

func (r *GormVolunteerRepository) Create(volunteer *models.Volunteer) error {
	return r.db.Create(volunteer).Error
}

func (r *GormVolunteerRepository) FindByID(id uint64) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.First(&volunteer, id).Error; err != nil {
		return nil, err
	}
	return &volunteer, nil
}

func (r *GormVolunteerRepository) List(scope ListScope, params utils.PaginationParams) ([]models.Volunteer, int64, error) {
	query := r.db.Model(&models.Volunteer{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var volunteers []models.Volunteer
	err := query.
		Order("scheduled_date ASC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&volunteers).Error
	if err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

func (r *GormVolunteerRepository) Update(volunteer *models.Volunteer) error {
	return r.db.Save(volunteer).Error
}

func (r *GormVolunteerRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Volunteer{}, id).Error
}

func (r *GormVolunteerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Volunteer{}).Count(&count).Error
	return count, err
}
