package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/constants"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/policy"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

var (
	ErrDonationNotFound      = errors.New("donation not found")
	ErrDonationNotEditable   = errors.New("donation can no longer be edited")
	ErrDonationClosed        = errors.New("donation is in a terminal status")
	ErrInvalidStatus         = errors.New("invalid donation status")
	ErrInvalidTransition     = errors.New("invalid donation status transition")
	ErrResourceTypeRequired  = errors.New("resource type is required")
	ErrQuantityOutOfRange    = errors.New("quantity must be between 1 and 10000")
	ErrConcurrencyConflict   = errors.New("record changed concurrently, retry the operation")
)

// donationTransitions is the closed transition table. Terminal states
// have no entry, so a repeated distribute/cancel reports
// ErrDonationClosed instead of being silently reapplied.
var donationTransitions = map[models.DonationStatus][]models.DonationStatus{
	models.DonationStatusPending:  {models.DonationStatusApproved, models.DonationStatusDistributed, models.DonationStatusCancelled},
	models.DonationStatusApproved: {models.DonationStatusDistributed, models.DonationStatusCancelled},
}

func canTransition(from, to models.DonationStatus) bool {
	for _, next := range donationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DonationService handles donation business logic, including the
// admin-only distribution workflow.
type DonationService struct {
	donationRepo repository.DonationRepository
}

// NewDonationService creates a new DonationService
func NewDonationService(donationRepo repository.DonationRepository) *DonationService {
	return &DonationService{donationRepo: donationRepo}
}

// DonationInput carries the donor-editable fields.
type DonationInput struct {
	ResourceType string
	Quantity     int
	Note         string
	DateDonated  *time.Time
}

func (in DonationInput) validate() error {
	if strings.TrimSpace(in.ResourceType) == "" {
		return ErrResourceTypeRequired
	}
	if in.Quantity < constants.MinDonationQuantity || in.Quantity > constants.MaxDonationQuantity {
		return ErrQuantityOutOfRange
	}
	return nil
}

// List returns donations visible to the caller.
func (s *DonationService) List(caller policy.Caller, params utils.PaginationParams) ([]models.Donation, int64, error) {
	if err := policy.Authorize(caller, policy.OpList, nil); err != nil {
		return nil, 0, err
	}
	return s.donationRepo.List(policy.Scope(caller, "donor_user_id"), params)
}

// Get returns a single donation after the ownership check.
func (s *DonationService) Get(caller policy.Caller, id uint64) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(id, "DonorUser", "DistributedByUser")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpView, donation.DonorUserID); err != nil {
		return nil, err
	}

	return donation, nil
}

// Create records a donation owned by the caller with status Pending.
func (s *DonationService) Create(caller policy.Caller, input DonationInput) (*models.Donation, error) {
	if err := policy.Authorize(caller, policy.OpCreate, nil); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	dateDonated := time.Now()
	if input.DateDonated != nil {
		dateDonated = *input.DateDonated
	}

	donation := &models.Donation{
		DonorUserID:  policy.StampOwner(caller),
		ResourceType: input.ResourceType,
		Quantity:     input.Quantity,
		Note:         input.Note,
		DateDonated:  dateDonated,
		Status:       models.DonationStatusPending,
	}

	if err := s.donationRepo.Create(donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	return donation, nil
}

// Update edits the donor-editable fields. Once an admin has moved the
// donation past Pending the record is frozen for the donor.
func (s *DonationService) Update(caller policy.Caller, id uint64, input DonationInput) (*models.Donation, error) {
	donation, err := s.donationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpEdit, donation.DonorUserID); err != nil {
		return nil, err
	}
	if donation.Status != models.DonationStatusPending {
		return nil, ErrDonationNotEditable
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	donation.ResourceType = input.ResourceType
	donation.Quantity = input.Quantity
	donation.Note = input.Note
	if input.DateDonated != nil {
		donation.DateDonated = *input.DateDonated
	}

	if err := s.donationRepo.Update(donation); err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	return donation, nil
}

// Delete removes a donation after the ownership check.
func (s *DonationService) Delete(caller policy.Caller, id uint64) error {
	donation, err := s.donationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDonationNotFound
		}
		return fmt.Errorf("failed to find donation: %w", err)
	}

	if err := policy.Authorize(caller, policy.OpDelete, donation.DonorUserID); err != nil {
		return err
	}

	if err := s.donationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete donation: %w", err)
	}

	return nil
}

// DistributeInput carries an admin status transition.
type DistributeInput struct {
	Status            string
	Location          string
	DistributionNotes string
}

// Distribute performs an admin-only status transition. Entering
// Distributed stamps date_distributed and distributed_by_user_id in the
// same write; no other transition touches those fields.
func (s *DonationService) Distribute(caller policy.Caller, id uint64, input DistributeInput) (*models.Donation, error) {
	if err := policy.Authorize(caller, policy.OpAdmin, nil); err != nil {
		return nil, err
	}

	next, err := models.ParseDonationStatus(input.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	donation, err := s.donationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to find donation: %w", err)
	}

	if donation.Status.Terminal() {
		return nil, ErrDonationClosed
	}
	if !canTransition(donation.Status, next) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"status":             next,
		"location":           input.Location,
		"distribution_notes": input.DistributionNotes,
	}
	if next == models.DonationStatusDistributed {
		updates["date_distributed"] = time.Now()
		updates["distributed_by_user_id"] = caller.UserID
	}

	if err := s.donationRepo.UpdateStatusFrom(id, donation.Status, updates); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			// Lost a race: re-check existence to classify.
			if _, ferr := s.donationRepo.FindByID(id); errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, ErrDonationNotFound
			}
			return nil, ErrConcurrencyConflict
		}
		return nil, fmt.Errorf("failed to update donation status: %w", err)
	}

	return s.donationRepo.FindByID(id, "DonorUser", "DistributedByUser")
}

// Inventory returns the admin-only per-resource aggregate.
func (s *DonationService) Inventory(caller policy.Caller) ([]repository.InventoryItem, error) {
	if err := policy.Authorize(caller, policy.OpAdmin, nil); err != nil {
		return nil, err
	}

	items, err := s.donationRepo.Inventory()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inventory: %w", err)
	}
	return items, nil
}
