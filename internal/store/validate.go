package store

import (
	"fmt"

	"github.com/zakatfund/backend/internal/models"
)

func validateDraft(draft models.CampaignDraft) error {
	if draft.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be greater than 0", models.ErrInvalidArgument)
	}
	return nil
}

func validateDonation(d models.Donation) error {
	if d.Amount <= 0 {
		return fmt.Errorf("%w: donation amount must be greater than 0", models.ErrInvalidArgument)
	}
	return nil
}

func campaignNotFound(id uint32) error {
	return fmt.Errorf("campaign %d: %w", id, models.ErrNotFound)
}
