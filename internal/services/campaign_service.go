package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/zakatfund/backend/internal/audit"
	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/events"
	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/store"
)

// PayoutDispatcher hands released funds to the settlement side after a
// withdrawal commits.
type PayoutDispatcher interface {
	DispatchPayout(ctx context.Context, payout models.Payout) error
}

type nopPayouts struct{}

func (nopPayouts) DispatchPayout(context.Context, models.Payout) error { return nil }

// NewCampaign carries the caller-supplied fields of CreateCampaign.
type NewCampaign struct {
	Title        string
	Description  string
	Category     models.CampaignCategory
	TargetAmount int64
	Recipient    models.Principal
}

// CampaignService is the entry point for every ledger operation. Each
// mutation verifies the caller, then commits its writes in a single store
// transaction. Events and payouts are dispatched only after the commit and
// their failures never fail the call.
type CampaignService struct {
	store   store.Store
	auth    auth.Authorizer
	events  events.Publisher
	payouts PayoutDispatcher
	audit   *audit.Logger
	logger  zerolog.Logger
	clock   func() time.Time
}

func NewCampaignService(st store.Store, authorizer auth.Authorizer, publisher events.Publisher, payouts PayoutDispatcher, logger zerolog.Logger) *CampaignService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if payouts == nil {
		payouts = nopPayouts{}
	}
	return &CampaignService{
		store:   st,
		auth:    authorizer,
		events:  publisher,
		payouts: payouts,
		audit:   audit.NewLogger(logger),
		logger:  logger.With().Str("component", "CAMPAIGN").Logger(),
		clock:   time.Now,
	}
}

func (s *CampaignService) caller(ctx context.Context, token auth.Token) (models.Principal, error) {
	principal, err := s.auth.Verify(ctx, token)
	if err != nil {
		if !errors.Is(err, models.ErrUnauthorized) {
			err = fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
		}
		return "", err
	}
	if principal == "" {
		return "", fmt.Errorf("%w: empty identity", models.ErrUnauthorized)
	}
	return principal, nil
}

// Initialize records admin as the ledger administrator. The token must prove
// the admin identity itself.
func (s *CampaignService) Initialize(ctx context.Context, token auth.Token, admin models.Principal) error {
	caller, err := s.caller(ctx, token)
	if err != nil {
		s.audit.LogError(audit.EventInitialize, 0, "", err)
		return err
	}
	if caller != admin {
		err := fmt.Errorf("%w: caller does not match the admin being initialized", models.ErrUnauthorized)
		s.audit.LogError(audit.EventInitialize, 0, caller, err)
		return err
	}

	if err := s.store.InitAdmin(ctx, admin); err != nil {
		s.audit.LogError(audit.EventInitialize, 0, caller, err)
		return err
	}

	s.audit.LogOperation(audit.EventInitialize, 0, caller, 0, nil)
	return nil
}

// CreateCampaign opens a new Active campaign and returns its id. Only the
// admin may create campaigns.
func (s *CampaignService) CreateCampaign(ctx context.Context, token auth.Token, req NewCampaign) (uint32, error) {
	caller, err := s.caller(ctx, token)
	if err != nil {
		s.audit.LogError(audit.EventCreateCampaign, 0, "", err)
		return 0, err
	}

	if err := s.requireAdmin(ctx, caller); err != nil {
		s.audit.LogError(audit.EventCreateCampaign, 0, caller, err)
		return 0, err
	}

	if err := validateNewCampaign(req); err != nil {
		s.audit.LogError(audit.EventCreateCampaign, 0, caller, err)
		return 0, err
	}

	id, err := s.store.Campaigns().Create(ctx, models.CampaignDraft{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		Recipient:    req.Recipient,
		CreatedAt:    s.clock(),
	})
	if err != nil {
		s.audit.LogError(audit.EventCreateCampaign, 0, caller, err)
		return 0, err
	}

	s.audit.LogOperation(audit.EventCreateCampaign, id, caller, req.TargetAmount, map[string]string{
		"category":  string(req.Category),
		"recipient": string(req.Recipient),
	})
	return id, nil
}

func (s *CampaignService) requireAdmin(ctx context.Context, caller models.Principal) error {
	admin, err := s.store.Admin(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: ledger has no admin yet", models.ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if caller != admin {
		return fmt.Errorf("%w: only the admin can create campaigns", models.ErrUnauthorized)
	}
	return nil
}

func validateNewCampaign(req NewCampaign) error {
	if req.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be greater than 0", models.ErrInvalidArgument)
	}
	if !req.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", models.ErrInvalidArgument, req.Category)
	}
	if req.Recipient == "" {
		return fmt.Errorf("%w: recipient is required", models.ErrInvalidArgument)
	}
	return nil
}

// Donate credits amount to an Active campaign on behalf of the caller and
// appends the donation to the ledger. The campaign completes in the same
// transaction once its target is reached.
func (s *CampaignService) Donate(ctx context.Context, token auth.Token, campaignID uint32, amount int64, isAnonymous bool) (models.Donation, error) {
	donor, err := s.caller(ctx, token)
	if err != nil {
		s.audit.LogError(audit.EventDonate, campaignID, "", err)
		return models.Donation{}, err
	}

	if amount <= 0 {
		err := fmt.Errorf("%w: donation amount must be greater than 0", models.ErrInvalidArgument)
		s.audit.LogError(audit.EventDonate, campaignID, donor, err)
		return models.Donation{}, err
	}

	donation := models.Donation{
		CampaignID:  campaignID,
		Donor:       donor,
		Amount:      amount,
		Timestamp:   s.clock(),
		IsAnonymous: isAnonymous,
	}

	var updated *models.Campaign
	err = s.store.Atomic(ctx, func(tx store.Tx) error {
		var err error
		updated, err = tx.Campaigns().Update(ctx, campaignID, func(c *models.Campaign) error {
			return applyDonation(c, amount)
		})
		if err != nil {
			return err
		}
		return tx.Donations().Append(ctx, donation)
	})
	if err != nil {
		s.audit.LogError(audit.EventDonate, campaignID, donor, err)
		return models.Donation{}, err
	}

	s.audit.LogOperation(audit.EventDonate, campaignID, donor, amount, map[string]string{
		"status":    string(updated.Status),
		"anonymous": strconv.FormatBool(isAnonymous),
	})

	if err := s.events.PublishDonation(ctx, models.NewDonationEvent(donation)); err != nil {
		s.logger.Warn().Err(err).Uint32("campaign_id", campaignID).Msg("Failed to publish donation event")
	}

	return donation, nil
}

// CloseCampaign moves a campaign to Closed. Only its recipient may close it;
// funds stay in place and closing twice succeeds.
func (s *CampaignService) CloseCampaign(ctx context.Context, token auth.Token, campaignID uint32) error {
	caller, err := s.caller(ctx, token)
	if err != nil {
		s.audit.LogError(audit.EventCloseCampaign, campaignID, "", err)
		return err
	}

	_, err = s.store.Campaigns().Update(ctx, campaignID, func(c *models.Campaign) error {
		if err := requireRecipient(c, caller); err != nil {
			return err
		}
		return closeCampaign(c)
	})
	if err != nil {
		s.audit.LogError(audit.EventCloseCampaign, campaignID, caller, err)
		return err
	}

	s.audit.LogOperation(audit.EventCloseCampaign, campaignID, caller, 0, nil)
	return nil
}

// Withdraw releases the whole balance of a Completed campaign to its
// recipient and closes the campaign. It returns the amount released.
func (s *CampaignService) Withdraw(ctx context.Context, token auth.Token, campaignID uint32) (int64, error) {
	caller, err := s.caller(ctx, token)
	if err != nil {
		s.audit.LogError(audit.EventWithdraw, campaignID, "", err)
		return 0, err
	}

	var amount int64
	_, err = s.store.Campaigns().Update(ctx, campaignID, func(c *models.Campaign) error {
		if err := requireRecipient(c, caller); err != nil {
			return err
		}
		var err error
		amount, err = payout(c)
		return err
	})
	if err != nil {
		s.audit.LogError(audit.EventWithdraw, campaignID, caller, err)
		return 0, err
	}

	s.audit.LogOperation(audit.EventWithdraw, campaignID, caller, amount, nil)

	p := models.Payout{
		CampaignID: campaignID,
		Recipient:  caller,
		Amount:     amount,
		ExecutedAt: s.clock(),
	}
	if err := s.payouts.DispatchPayout(ctx, p); err != nil {
		s.logger.Error().Err(err).Uint32("campaign_id", campaignID).Int64("amount", amount).Msg("Failed to dispatch payout")
	}

	return amount, nil
}

func requireRecipient(c *models.Campaign, caller models.Principal) error {
	if c.Recipient != caller {
		return fmt.Errorf("%w: only the recipient of campaign %d can do this", models.ErrUnauthorized, c.ID)
	}
	return nil
}

func (s *CampaignService) GetCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.store.Campaigns().List(ctx)
}

func (s *CampaignService) GetCampaign(ctx context.Context, campaignID uint32) (*models.Campaign, error) {
	return s.store.Campaigns().Get(ctx, campaignID)
}

// GetCampaignDonations lists a campaign's donations oldest first. Unknown ids
// yield an empty list.
func (s *CampaignService) GetCampaignDonations(ctx context.Context, campaignID uint32) ([]models.Donation, error) {
	return s.store.Donations().ListFor(ctx, campaignID)
}

func (s *CampaignService) GetAllDonations(ctx context.Context) ([]models.Donation, error) {
	return s.store.Donations().ListAll(ctx)
}

// GetTotalDonations sums every donation ever recorded. Withdrawals do not
// reduce it.
func (s *CampaignService) GetTotalDonations(ctx context.Context) (int64, error) {
	return s.store.Donations().Total(ctx)
}

func (s *CampaignService) GetAdmin(ctx context.Context) (models.Principal, error) {
	return s.store.Admin(ctx)
}

// GetCampaignStats summarises a campaign's ledger. The campaign stays locked
// while its donations are read so no donation lands between the two reads.
func (s *CampaignService) GetCampaignStats(ctx context.Context, campaignID uint32) (models.CampaignStats, error) {
	var stats models.CampaignStats
	err := s.store.Atomic(ctx, func(tx store.Tx) error {
		c, err := tx.Campaigns().Lock(ctx, campaignID)
		if err != nil {
			return err
		}
		donations, err := tx.Donations().ListFor(ctx, campaignID)
		if err != nil {
			return err
		}
		stats = campaignStats(c, donations)
		return nil
	})
	return stats, err
}
