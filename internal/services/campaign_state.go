package services

import (
	"fmt"

	"github.com/zakatfund/backend/internal/models"
)

var transitions = map[models.CampaignStatus][]models.CampaignStatus{
	models.CampaignStatusActive:    {models.CampaignStatusCompleted, models.CampaignStatusClosed},
	models.CampaignStatusCompleted: {models.CampaignStatusClosed},
	models.CampaignStatusClosed:    nil,
}

// CanTransition reports whether a campaign may move from one status to
// another. Staying in the same status is not a transition.
func CanTransition(from, to models.CampaignStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transition(c *models.Campaign, to models.CampaignStatus) error {
	if !CanTransition(c.Status, to) {
		return fmt.Errorf("%w: campaign %d cannot move from %s to %s", models.ErrInvalidState, c.ID, c.Status, to)
	}
	c.Status = to
	return nil
}

func ensureAcceptsDonations(c *models.Campaign) error {
	if c.Status != models.CampaignStatusActive {
		return fmt.Errorf("%w: campaign %d is %s and does not accept donations", models.ErrInvalidState, c.ID, c.Status)
	}
	return nil
}

func ensureWithdrawable(c *models.Campaign) error {
	if c.Status != models.CampaignStatusCompleted {
		return fmt.Errorf("%w: campaign %d is %s, only completed campaigns can be withdrawn", models.ErrInvalidState, c.ID, c.Status)
	}
	return nil
}
