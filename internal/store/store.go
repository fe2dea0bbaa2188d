// Package store persists campaigns, the donation ledger and the admin identity.
package store

import (
	"context"

	"github.com/zakatfund/backend/internal/models"
)

// Mutator edits a campaign in place during CampaignStore.Update. Returning an
// error aborts the update.
type Mutator func(c *models.Campaign) error

// CampaignStore owns campaign records and the id counter.
type CampaignStore interface {
	Create(ctx context.Context, draft models.CampaignDraft) (uint32, error)
	Get(ctx context.Context, id uint32) (*models.Campaign, error)
	// Lock reads a campaign and holds off concurrent Updates of it until the
	// surrounding transaction ends.
	Lock(ctx context.Context, id uint32) (*models.Campaign, error)
	List(ctx context.Context) ([]models.Campaign, error)
	Update(ctx context.Context, id uint32, mutate Mutator) (*models.Campaign, error)
}

// DonationLedger is the append-only donation log.
type DonationLedger interface {
	Append(ctx context.Context, d models.Donation) error
	ListFor(ctx context.Context, campaignID uint32) ([]models.Donation, error)
	ListAll(ctx context.Context) ([]models.Donation, error)
	Sum(ctx context.Context, campaignID uint32) (int64, error)
	Total(ctx context.Context) (int64, error)
}

// Tx is a transactional view of the store.
type Tx interface {
	Campaigns() CampaignStore
	Donations() DonationLedger
}

// Store is the full persistence contract of the ledger. Campaigns and
// Donations outside Atomic commit each call on its own.
type Store interface {
	Tx

	// Atomic runs fn in a single transaction. Writes made through tx commit
	// together when fn returns nil and are discarded otherwise.
	Atomic(ctx context.Context, fn func(tx Tx) error) error

	// InitAdmin records the admin identity; a second call fails with
	// models.ErrAlreadyInitialized.
	InitAdmin(ctx context.Context, admin models.Principal) error
	Admin(ctx context.Context) (models.Principal, error)
}
