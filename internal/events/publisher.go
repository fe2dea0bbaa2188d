// Package events delivers post-commit donation notifications to subscribers.
package events

import (
	"context"
	"errors"

	"github.com/zakatfund/backend/internal/models"
)

// Publisher delivers a committed donation to its subscribers. Delivery is
// best-effort: callers log failures and carry on.
type Publisher interface {
	PublishDonation(ctx context.Context, event models.DonationEvent) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishDonation(context.Context, models.DonationEvent) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) PublishDonation(ctx context.Context, event models.DonationEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishDonation(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
