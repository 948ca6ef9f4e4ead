package repository

import (
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(report *models.DisasterReport) error {
	return r.db.Create(report).Error
}

func (r *GormReportRepository) FindByID(id uint64, preload ...string) (*models.DisasterReport, error) {
	var report models.DisasterReport
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormReportRepository) List(scope ListScope, params utils.PaginationParams) ([]models.DisasterReport, int64, error) {
	query := r.db.Model(&models.DisasterReport{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.DisasterReport
	err := query.
		Preload("ReportedByUser").
		Order("date_reported DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *GormReportRepository) Update(report *models.DisasterReport) error {
	return r.db.Save(report).Error
}

func (r *GormReportRepository) Delete(id uint64) error {
	return r.db.Delete(&models.DisasterReport{}, id).Error
}

func (r *GormReportRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.DisasterReport{}).Count(&count).Error
	return count, err
}

func (r *GormReportRepository) Recent(limit int) ([]models.DisasterReport, error) {
	var reports []models.DisasterReport
	err := r.db.
		Preload("ReportedByUser").
		Order("date_reported DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}
