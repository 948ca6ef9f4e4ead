package models

import (
	"fmt"
	"time"
)

type DonationStatus string

const (
	DonationStatusPending     DonationStatus = "Pending"
	DonationStatusApproved    DonationStatus = "Approved"
	DonationStatusDistributed DonationStatus = "Distributed"
	DonationStatusCancelled   DonationStatus = "Cancelled"
)

// ParseDonationStatus rejects any value outside the closed status set.
func ParseDonationStatus(s string) (DonationStatus, error) {
	switch DonationStatus(s) {
	case DonationStatusPending, DonationStatusApproved, DonationStatusDistributed, DonationStatusCancelled:
		return DonationStatus(s), nil
	}
	return "", fmt.Errorf("unknown donation status %q", s)
}

// Terminal reports whether no further transition is defined from s.
func (s DonationStatus) Terminal() bool {
	return s == DonationStatusDistributed || s == DonationStatusCancelled
}

type Donation struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	DonorUserID         *string        `gorm:"type:varchar(64);index" json:"donor_user_id"`
	ResourceType        string         `gorm:"type:varchar(200);not null" json:"resource_type"`
	Quantity            int            `gorm:"not null" json:"quantity"`
	DateDonated         time.Time      `json:"date_donated"`
	Note                string         `gorm:"type:varchar(1000)" json:"note"`
	Status              DonationStatus `gorm:"type:varchar(50);not null;default:'Pending'" json:"status"`
	Location            string         `gorm:"type:varchar(200)" json:"location"`
	DistributionNotes   string         `gorm:"type:varchar(1000)" json:"distribution_notes"`
	DateDistributed     *time.Time     `json:"date_distributed"`
	DistributedByUserID *string        `gorm:"type:varchar(64)" json:"distributed_by_user_id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	DonorUser         *User `gorm:"foreignKey:DonorUserID;constraint:OnDelete:SET NULL" json:"donor_user,omitempty"`
	DistributedByUser *User `gorm:"foreignKey:DistributedByUserID;constraint:OnDelete:SET NULL" json:"distributed_by_user,omitempty"`
}
