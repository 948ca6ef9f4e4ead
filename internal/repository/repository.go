package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

// ErrNoRowsUpdated is returned by conditional writes whose guard did
// not match; the caller re-reads to classify what changed underneath.
var ErrNoRowsUpdated = errors.New("no rows updated")

// ListScope narrows a list query, typically to the caller's records.
type ListScope func(*gorm.DB) *gorm.DB

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Count returns the total number of users
	Count() (int64, error)
}

// ReportRepository defines the interface for disaster report data access
type ReportRepository interface {
	Create(report *models.DisasterReport) error

	// FindByID finds a report by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.DisasterReport, error)

	// List retrieves reports within scope, newest first
	List(scope ListScope, params utils.PaginationParams) ([]models.DisasterReport, int64, error)

	Update(report *models.DisasterReport) error

	Delete(id uint64) error

	Count() (int64, error)

	// Recent returns the most recently reported entries
	Recent(limit int) ([]models.DisasterReport, error)
}

// DonationRepository defines the interface for donation data access
type DonationRepository interface {
	Create(donation *models.Donation) error

	FindByID(id uint64, preload ...string) (*models.Donation, error)

	// List retrieves donations within scope, newest donation first
	List(scope ListScope, params utils.PaginationParams) ([]models.Donation, int64, error)

	Update(donation *models.Donation) error

	Delete(id uint64) error

	// UpdateStatusFrom applies updates only while the donation still has
	// status from, returning ErrNoRowsUpdated when the guard misses.
	UpdateStatusFrom(id uint64, from models.DonationStatus, updates map[string]interface{}) error

	// Inventory aggregates quantities per resource type, grouped by
	// status and excluding cancelled donations entirely.
	Inventory() ([]InventoryItem, error)

	Count() (int64, error)

	Recent(limit int) ([]models.Donation, error)
}

// InventoryItem is one row of the admin inventory aggregate.
type InventoryItem struct {
	ResourceType        string `json:"resource_type"`
	TotalQuantity       int    `json:"total_quantity"`
	PendingQuantity     int    `json:"pending_quantity"`
	ApprovedQuantity    int    `json:"approved_quantity"`
	DistributedQuantity int    `json:"distributed_quantity"`
}

// VolunteerRepository defines the interface for volunteer commitment data access
type VolunteerRepository interface {
	Create(volunteer *models.Volunteer) error

	FindByID(id uint64) (*models.Volunteer, error)

	List(scope ListScope, params utils.PaginationParams) ([]models.Volunteer, int64, error)

	Update(volunteer *models.Volunteer) error

	Delete(id uint64) error

	Count() (int64, error)
}

// TaskRepository defines the interface for volunteer task data access
type TaskRepository interface {
	Create(task *models.VolunteerTask) error

	FindByID(id uint64, preload ...string) (*models.VolunteerTask, error)

	// List retrieves tasks within scope, newest start first
	List(scope ListScope, params utils.PaginationParams) ([]models.VolunteerTask, int64, error)

	// Browse retrieves joinable tasks matching the filter
	Browse(filter BrowseFilter) ([]models.VolunteerTask, error)

	Update(task *models.VolunteerTask) error

	// Delete removes a task and its assignments
	Delete(id uint64) error

	// Join atomically claims a slot: the capacity and status guards and
	// the count increment are one conditional UPDATE, so two racing
	// joins cannot oversell the last slot. Returns ErrNoRowsUpdated
	// when the guards miss.
	Join(taskID uint64, userID string) error

	// Leave removes the caller's assignment and decrements the count,
	// reverting the task to Open once no volunteers remain. Returns
	// ErrNoRowsUpdated when the caller holds no assignment.
	Leave(taskID uint64, userID string) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID uint64, userID string) (*models.TaskAssignment, error)

	// Categories lists the distinct non-empty task categories
	Categories() ([]string, error)

	Count() (int64, error)

	Recent(limit int) ([]models.VolunteerTask, error)
}

// BrowseFilter holds the optional task browse filters.
type BrowseFilter struct {
	Category string
	Priority string
	Status   *models.TaskStatus
}

// CommunicationRepository defines the interface for message data access
type CommunicationRepository interface {
	Create(message *models.VolunteerCommunication) error

	FindByID(id uint64, preload ...string) (*models.VolunteerCommunication, error)

	// List retrieves messages within scope, newest first
	List(scope ListScope, params utils.PaginationParams) ([]models.VolunteerCommunication, int64, error)

	// MarkRead flips is_read exactly once for the given recipient,
	// stamping read_at alongside. Reports whether this call did the flip.
	MarkRead(id uint64, recipientUserID string) (bool, error)

	Delete(id uint64) error
}
