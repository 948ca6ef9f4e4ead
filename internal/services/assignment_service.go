package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
)

var (
	ErrTaskNotAvailable = errors.New("task is no longer available")
	ErrTaskFull         = errors.New("task is full")
	ErrNotAssigned      = errors.New("caller is not assigned to this task")
	ErrAlreadyJoined    = errors.New("caller already joined this task")
)

// AssignmentService runs the volunteer task join/leave lifecycle.
// Capacity is the authoritative gate; the Open/Assigned label is a
// display derivative of the volunteer count.
type AssignmentService struct {
	taskRepo repository.TaskRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(taskRepo repository.TaskRepository) *AssignmentService {
	return &AssignmentService{taskRepo: taskRepo}
}

// Browse lists joinable tasks matching the filter, plus the distinct
// categories for filter options.
func (s *AssignmentService) Browse(caller policy.Caller, filter repository.BrowseFilter) ([]models.VolunteerTask, []string, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepo.Browse(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to browse tasks: %w", err)
	}

	categories, err := s.taskRepo.Categories()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return tasks, categories, nil
}

// Join attaches the caller to a task. The capacity check and increment
// are one conditional write in the repository; a miss is classified
// here by re-reading the task.
func (s *AssignmentService) Join(caller policy.Caller, taskID uint64) error {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return err
	}

	if _, err := s.taskRepo.FindAssignment(taskID, caller.UserID); err == nil {
		return ErrAlreadyJoined
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check assignment: %w", err)
	}

	err := s.taskRepo.Join(taskID, caller.UserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNoRowsUpdated) {
		return fmt.Errorf("failed to join task: %w", err)
	}

	task, ferr := s.taskRepo.FindByID(taskID)
	if ferr != nil {
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", ferr)
	}

	switch {
	case !task.Status.Joinable():
		return ErrTaskNotAvailable
	case task.CurrentVolunteerCount >= task.MaxVolunteers:
		return ErrTaskFull
	default:
		// Guards passed on re-read: the write lost a race.
		return ErrConcurrencyConflict
	}
}

// Leave detaches the caller from a task. Only a volunteer holding an
// assignment may leave; the count decrement floors at zero and the
// task reverts to Open once the last volunteer is gone.
func (s *AssignmentService) Leave(caller policy.Caller, taskID uint64) error {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return err
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Leave(taskID, caller.UserID); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			return ErrNotAssigned
		}
		return fmt.Errorf("failed to leave task: %w", err)
	}

	return nil
}
