package services

import (
	"fmt"
	"math"

	"github.com/zakatfund/backend/internal/models"
)

// applyDonation credits amount to the campaign and completes it once the
// target is reached.
func applyDonation(c *models.Campaign, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: donation amount must be greater than 0", models.ErrInvalidArgument)
	}
	if err := ensureAcceptsDonations(c); err != nil {
		return err
	}
	if c.CurrentAmount > math.MaxInt64-amount {
		return fmt.Errorf("%w: donation would overflow the balance of campaign %d", models.ErrInvalidArgument, c.ID)
	}

	c.CurrentAmount += amount
	if c.CurrentAmount >= c.TargetAmount {
		return transition(c, models.CampaignStatusCompleted)
	}
	return nil
}

// payout empties a completed campaign and closes it, returning the amount
// released.
func payout(c *models.Campaign) (int64, error) {
	if err := ensureWithdrawable(c); err != nil {
		return 0, err
	}
	if c.CurrentAmount == 0 {
		return 0, fmt.Errorf("%w: campaign %d has no funds to withdraw", models.ErrInsufficientFunds, c.ID)
	}

	amount := c.CurrentAmount
	c.CurrentAmount = 0
	if err := transition(c, models.CampaignStatusClosed); err != nil {
		return 0, err
	}
	return amount, nil
}

// closeCampaign forces a campaign to Closed without touching its balance.
// Closing a closed campaign is a no-op.
func closeCampaign(c *models.Campaign) error {
	if c.Status == models.CampaignStatusClosed {
		return nil
	}
	return transition(c, models.CampaignStatusClosed)
}

func campaignStats(c *models.Campaign, donations []models.Donation) models.CampaignStats {
	stats := models.CampaignStats{
		CampaignID:    c.ID,
		Status:        c.Status,
		TargetAmount:  c.TargetAmount,
		CurrentAmount: c.CurrentAmount,
		DonationCount: len(donations),
	}

	donors := make(map[models.Principal]struct{})
	for _, d := range donations {
		stats.TotalDonated += d.Amount
		donors[d.Donor] = struct{}{}
	}
	stats.DistinctDonors = len(donors)

	if withdrawn := stats.TotalDonated - c.CurrentAmount; withdrawn > 0 {
		stats.Withdrawn = withdrawn
	}
	if remaining := c.TargetAmount - stats.TotalDonated; remaining > 0 {
		stats.Remaining = remaining
	}
	return stats
}
