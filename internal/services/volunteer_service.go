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
	ErrVolunteerNotFound    = errors.New("volunteer commitment not found")
	ErrVolunteerTaskMissing = errors.New("task description is required")
)

// VolunteerService handles personal volunteer commitments. These are
// strictly private: the scope filter applies even to viewing.
type VolunteerService struct {
	volunteerRepo repository.VolunteerRepository
}

// NewVolunteerService creates a new VolunteerService
func NewVolunteerService(volunteerRepo repository.VolunteerRepository) *VolunteerService {
	return &VolunteerService{volunteerRepo: volunteerRepo}
}

// VolunteerInput carries the owner-editable commitment fields.
type VolunteerInput struct {
	Task          string
	ScheduledDate *time.Time
	IsCompleted   bool
}

// List returns the caller's commitments.
func (s *VolunteerService) List(caller policy.Caller, params utils.PaginationParams) ([]models.Volunteer, int64, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, 0, err
	}
	return s.volunteerRepo.List(policy.Scope(caller, "volunteer_user_id"), params)
}

// Get returns a single commitment after the ownership check.
func (s *VolunteerService) Get(caller policy.Caller, id uint64) (*models.Volunteer, error) {
	volunteer, err := s.findOwned(caller, id, policy.OpView)
	if err != nil {
		return nil, err
	}
	return volunteer, nil
}

// Create records a commitment owned by the caller.
func (s *VolunteerService) Create(caller policy.Caller, input VolunteerInput) (*models.Volunteer, error) {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Task) == "" {
		return nil, ErrVolunteerTaskMissing
	}

	scheduled := time.Now()
	if input.ScheduledDate != nil {
		scheduled = *input.ScheduledDate
	}

	volunteer := &models.Volunteer{
		VolunteerUserID: policy.StampOwner(caller),
		Task:            input.Task,
		ScheduledDate:   scheduled,
		IsCompleted:     input.IsCompleted,
	}

	if err := s.volunteerRepo.Create(volunteer); err != nil {
		return nil, fmt.Errorf("failed to create volunteer commitment: %w", err)
	}

	return volunteer, nil
}

// Update edits a commitment after the ownership check.
func (s *VolunteerService) Update(caller policy.Caller, id uint64, input VolunteerInput) (*models.Volunteer, error) {
	volunteer, err := s.findOwned(caller, id, policy.OpEdit)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Task) == "" {
		return nil, ErrVolunteerTaskMissing
	}

	volunteer.Task = input.Task
	volunteer.IsCompleted = input.IsCompleted
	if input.ScheduledDate != nil {
		volunteer.ScheduledDate = *input.ScheduledDate
	}

	if err := s.volunteerRepo.Update(volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer commitment: %w", err)
	}

	return volunteer, nil
}

// Delete removes a commitment after the ownership check.
func (s *VolunteerService) Delete(caller policy.Caller, id uint64) error {
	if _, err := s.findOwned(caller, id, policy.OpDelete); err != nil {
		return err
	}

	if err := s.volunteerRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete volunteer commitment: %w", err)
	}

	return nil
}

func (s *VolunteerService) findOwned(caller policy.Caller, id uint64, op policy.Operation) (*models.Volunteer, error) {
	volunteer, err := s.volunteerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer commitment: %w", err)
	}

	if err := policy.Authorize(caller, op, volunteer.VolunteerUserID); err != nil {
		return nil, err
	}

	return volunteer, nil
}
