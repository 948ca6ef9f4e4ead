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
	ErrReportNotFound       = errors.New("disaster report not found")
	ErrReportFieldsRequired = errors.New("location, disaster type and description are required")
)

// ReportService handles disaster report business logic.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ReportInput carries the caller-editable report fields.
type ReportInput struct {
	Location     string
	DisasterType string
	Description  string
	DateReported *time.Time
}

func (in ReportInput) validate() error {
	if strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.DisasterType) == "" ||
		strings.TrimSpace(in.Description) == "" {
		return ErrReportFieldsRequired
	}
	return nil
}

// List returns reports visible to the caller: everything for admins,
// the caller's own reports otherwise.
func (s *ReportService) List(caller policy.Caller, params utils.PaginationParams) ([]models.DisasterReport, int64, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, 0, err
	}
	return s.reportRepo.List(policy.Scope(caller, "reported_by_user_id"), params)
}

// Get returns a single report after the ownership check.
func (s *ReportService) Get(caller policy.Caller, id uint64) (*models.DisasterReport, error) {
	report, err := s.reportRepo.FindByID(id, "ReportedByUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpView, report.ReportedByUserID); err != nil {
		return nil, err
	}

	return report, nil
}

// Create files a report owned by the caller. Any client-supplied owner
// is ignored.
func (s *ReportService) Create(caller policy.Caller, input ReportInput) (*models.DisasterReport, error) {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	dateReported := time.Now()
	if input.DateReported != nil {
		dateReported = *input.DateReported
	}

	report := &models.DisasterReport{
		ReportedByUserID: policy.StampOwner(caller),
		Location:         input.Location,
		DisasterType:     input.DisasterType,
		Description:      input.Description,
		DateReported:     dateReported,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// Update edits a report's fields. The owner reference never changes.
func (s *ReportService) Update(caller policy.Caller, id uint64, input ReportInput) (*models.DisasterReport, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpEdit, report.ReportedByUserID); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	report.Location = input.Location
	report.DisasterType = input.DisasterType
	report.Description = input.Description
	if input.DateReported != nil {
		report.DateReported = *input.DateReported
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return report, nil
}

// Delete removes a report after the ownership check.
func (s *ReportService) Delete(caller policy.Caller, id uint64) error {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to find report: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpDelete, report.ReportedByUserID); err != nil {
		return err
	}

	if err := s.reportRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}
