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
	ErrTaskNotFound      = errors.New("volunteer task not found")
	ErrTaskTitleRequired = errors.New("title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles volunteer task metadata. Task metadata is owned
// by the assigned volunteer; joining and leaving go through
// AssignmentService.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// TaskInput carries the editable task fields.
type TaskInput struct {
	Title          string
	Description    string
	StartAt        *time.Time
	EndAt          *time.Time
	Status         string
	Notes          string
	Location       string
	Priority       string
	Category       string
	MaxVolunteers  int
	RequiredSkills string
}

// List returns the tasks assigned to the caller; admins see all tasks.
func (s *TaskService) List(caller policy.Caller, params utils.PaginationParams) ([]models.VolunteerTask, int64, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, 0, err
	}
	return s.taskRepo.List(policy.Scope(caller, "assigned_volunteer_id"), params)
}

// Get returns a single task. Tasks are browsable by any authenticated
// user, so no ownership check applies to viewing.
func (s *TaskService) Get(caller policy.Caller, id uint64) (*models.VolunteerTask, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(id, "AssignedVolunteer", "CreatedByUser", "Assignments", "Assignments.Volunteer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Create posts a new task. The creator is recorded but the task starts
// Open and unassigned; volunteers attach through the join flow.
func (s *TaskService) Create(caller policy.Caller, input TaskInput) (*models.VolunteerTask, error) {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	maxVolunteers := input.MaxVolunteers
	if maxVolunteers < 1 {
		maxVolunteers = 1
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.VolunteerTask{
		Title:           input.Title,
		Description:     input.Description,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		Status:          models.TaskStatusOpen,
		Notes:           input.Notes,
		Location:        input.Location,
		Priority:        priority,
		Category:        input.Category,
		MaxVolunteers:   maxVolunteers,
		RequiredSkills:  input.RequiredSkills,
		CreatedByUserID: policy.StampOwner(caller),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update edits task metadata after the ownership check against the
// assigned volunteer. A supplied status must parse; assignment-derived
// fields (assignee, volunteer count) are never writable here.
func (s *TaskService) Update(caller policy.Caller, id uint64, input TaskInput) (*models.VolunteerTask, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpEdit, task.AssignedVolunteerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	if input.Status != "" {
		status, perr := models.ParseTaskStatus(input.Status)
		if perr != nil {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = status
	}

	task.Title = input.Title
	task.Description = input.Description
	task.StartAt = input.StartAt
	task.EndAt = input.EndAt
	task.Notes = input.Notes
	task.Location = input.Location
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.Category = input.Category
	if input.MaxVolunteers >= 1 {
		task.MaxVolunteers = input.MaxVolunteers
	}
	task.RequiredSkills = input.RequiredSkills

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task after the ownership check.
func (s *TaskService) Delete(caller policy.Caller, id uint64) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpDelete, task.AssignedVolunteerID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
