package services

import (
	"fmt"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
)

// DashboardStats is the admin overview: entity totals plus recent
// activity per collection.
type DashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalDonations       int64 `json:"total_donations"`
	TotalDisasterReports int64 `json:"total_disaster_reports"`
	TotalVolunteerTasks  int64 `json:"total_volunteer_tasks"`
	TotalVolunteers      int64 `json:"total_volunteers"`

	RecentDonations []models.Donation       `json:"recent_donations"`
	RecentReports   []models.DisasterReport `json:"recent_reports"`
	RecentTasks     []models.VolunteerTask  `json:"recent_tasks"`
}

// DashboardService aggregates admin statistics.
type DashboardService struct {
	userRepo      repository.UserRepository
	donationRepo  repository.DonationRepository
	reportRepo    repository.ReportRepository
	taskRepo      repository.TaskRepository
	volunteerRepo repository.VolunteerRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repository.UserRepository,
	donationRepo repository.DonationRepository,
	reportRepo repository.ReportRepository,
	taskRepo repository.TaskRepository,
	volunteerRepo repository.VolunteerRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:      userRepo,
		donationRepo:  donationRepo,
		reportRepo:    reportRepo,
		taskRepo:      taskRepo,
		volunteerRepo: volunteerRepo,
	}
}

// Stats returns the admin dashboard aggregate.
func (s *DashboardService) Stats(caller policy.Caller) (*DashboardStats, error) {
	if err := policy.Authorize(caller, policy.OpAdmin, nil); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalDonations, err = s.donationRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}
	if stats.TotalDisasterReports, err = s.reportRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	if stats.TotalVolunteerTasks, err = s.taskRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	if stats.TotalVolunteers, err = s.volunteerRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count volunteers: %w", err)
	}

	if stats.RecentDonations, err = s.donationRepo.Recent(constants.DashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent donations: %w", err)
	}
	if stats.RecentReports, err = s.reportRepo.Recent(constants.DashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent reports: %w", err)
	}
	if stats.RecentTasks, err = s.taskRepo.Recent(constants.DashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent tasks: %w", err)
	}

	return stats, nil
}
