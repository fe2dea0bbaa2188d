package models

import (
	"time"
)

// Donation is an immutable ledger record of funds contributed to a campaign.
type Donation struct {
	Seq         int64     `json:"seq,omitempty" db:"seq"`
	CampaignID  uint32    `json:"campaignId" db:"campaign_id"`
	Donor       Principal `json:"donor" db:"donor"`
	Amount      int64     `json:"amount" db:"amount"` // smallest currency unit
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
	IsAnonymous bool      `json:"isAnonymous" db:"is_anonymous"`
}

// DonationEvent is published after a donation commits.
type DonationEvent struct {
	Topic      string    `json:"topic"`
	CampaignID uint32    `json:"campaignId"`
	Donor      Principal `json:"donor"`
	Amount     int64     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// TopicDonate is the topic of every DonationEvent
const TopicDonate = "donate"

// NewDonationEvent builds the notification for a committed donation.
func NewDonationEvent(d Donation) DonationEvent {
	return DonationEvent{
		Topic:      TopicDonate,
		CampaignID: d.CampaignID,
		Donor:      d.Donor,
		Amount:     d.Amount,
		Timestamp:  d.Timestamp,
	}
}

// Payout describes funds released to a campaign recipient by a withdrawal.
type Payout struct {
	CampaignID uint32    `json:"campaignId"`
	Recipient  Principal `json:"recipient"`
	Amount     int64     `json:"amount"`
	ExecutedAt time.Time `json:"executedAt"`
}
