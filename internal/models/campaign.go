package models

import (
	"fmt"
	"time"
)

// Principal identifies the party behind a call (donor, recipient or admin).
type Principal string

// CampaignCategory is the closed set of campaign categories
type CampaignCategory string

const (
	CategoryZakat         CampaignCategory = "Zakat"
	CategoryEducation     CampaignCategory = "Education"
	CategoryHealth        CampaignCategory = "Health"
	CategoryDisaster      CampaignCategory = "Disaster"
	CategorySmallBusiness CampaignCategory = "SmallBusiness"
)

// Categories lists every valid category in declaration order.
var Categories = []CampaignCategory{
	CategoryZakat,
	CategoryEducation,
	CategoryHealth,
	CategoryDisaster,
	CategorySmallBusiness,
}

// Valid reports whether c is one of the known categories.
func (c CampaignCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts s into a CampaignCategory.
func ParseCategory(s string) (CampaignCategory, error) {
	c := CampaignCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, s)
	}
	return c, nil
}

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "Active"
	CampaignStatusCompleted CampaignStatus = "Completed"
	CampaignStatusClosed    CampaignStatus = "Closed"
)

// Campaign is a fundraising goal. Amounts are in the smallest currency unit.
type Campaign struct {
	ID            uint32           `json:"id" db:"id"`
	Title         string           `json:"title" db:"title"`
	Description   string           `json:"description" db:"description"`
	Category      CampaignCategory `json:"category" db:"category"`
	TargetAmount  int64            `json:"targetAmount" db:"target_amount"`
	CurrentAmount int64            `json:"currentAmount" db:"current_amount"`
	Recipient     Principal        `json:"recipient" db:"recipient"`
	Status        CampaignStatus   `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// CampaignDraft carries the caller-supplied fields of a new campaign.
type CampaignDraft struct {
	Title        string
	Description  string
	Category     CampaignCategory
	TargetAmount int64
	Recipient    Principal
	CreatedAt    time.Time
}

// CampaignStats aggregates the ledger view of a single campaign
type CampaignStats struct {
	CampaignID     uint32         `json:"campaignId"`
	Status         CampaignStatus `json:"status"`
	TargetAmount   int64          `json:"targetAmount"`
	CurrentAmount  int64          `json:"currentAmount"`
	TotalDonated   int64          `json:"totalDonated"`
	Withdrawn      int64          `json:"withdrawn"`
	Remaining      int64          `json:"remaining"`
	DonationCount  int            `json:"donationCount"`
	DistinctDonors int            `json:"distinctDonors"`
}
