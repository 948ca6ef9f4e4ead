package repository

import (
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// GormDonationRepository is a GORM implementation of DonationRepository
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &GormDonationRepository{db: db}
}

func (r *GormDonationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

func (r *GormDonationRepository) FindByID(id uint64, preload ...string) (*models.Donation, error) {
	var donation models.Donation
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&donation, id).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *GormDonationRepository) List(scope ListScope, params utils.PaginationParams) ([]models.Donation, int64, error) {
	query := r.db.Model(&models.Donation{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []models.Donation
	err := query.
		Preload("DonorUser").
		Preload("DistributedByUser").
		Order("date_donated DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

func (r *GormDonationRepository) Update(donation *models.Donation) error {
	return r.db.Save(donation).Error
}

func (r *GormDonationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Donation{}, id).Error
}

// UpdateStatusFrom is the optimistic write behind every status
// transition: the previous status acts as the concurrency token, and
// the distribution stamps ride in the same UPDATE.
func (r *GormDonationRepository) UpdateStatusFrom(id uint64, from models.DonationStatus, updates map[string]interface{}) error {
	res := r.db.Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

func (r *GormDonationRepository) Inventory() ([]InventoryItem, error) {
	var items []InventoryItem
	err := r.db.Model(&models.Donation{}).
		Select(
			"resource_type, "+
				"SUM(quantity) AS total_quantity, "+
				"SUM(CASE WHEN status = ? THEN quantity ELSE 0 END) AS pending_quantity, "+
				"SUM(CASE WHEN status = ? THEN quantity ELSE 0 END) AS approved_quantity, "+
				"SUM(CASE WHEN status = ? THEN quantity ELSE 0 END) AS distributed_quantity",
			models.DonationStatusPending,
			models.DonationStatusApproved,
			models.DonationStatusDistributed,
		).
		Where("status <> ?", models.DonationStatusCancelled).
		Group("resource_type").
		Order("resource_type").
		Scan(&items).Error
	return items, err
}

func (r *GormDonationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Donation{}).Count(&count).Error
	return count, err
}

func (r *GormDonationRepository) Recent(limit int) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.
		Preload("DonorUser").
		Order("date_donated DESC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}
