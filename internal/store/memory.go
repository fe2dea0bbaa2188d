package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/zakatfund/backend/internal/models"
)

// Memory is an in-process Store. Mutations of a campaign hold that campaign's
// lock until the surrounding transaction ends, and creations hold the counter
// lock, so read-modify-write sequences never interleave. Committed state only
// changes under mu, so readers never observe a half-applied transaction.
type Memory struct {
	mu        sync.RWMutex
	campaigns map[uint32]models.Campaign
	donations []models.Donation
	counter   uint32
	admin     models.Principal

	createMu sync.Mutex
	locksMu  sync.Mutex
	locks    map[uint32]*sync.Mutex
}

func NewMemory() *Memory {
	return &Memory{
		campaigns: make(map[uint32]models.Campaign),
		locks:     make(map[uint32]*sync.Mutex),
	}
}

func (m *Memory) Campaigns() CampaignStore { return autoCampaigns{m} }

func (m *Memory) Donations() DonationLedger { return autoDonations{m} }

func (m *Memory) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		m:         m,
		locked:    make(map[uint32]*sync.Mutex),
		campaigns: make(map[uint32]models.Campaign),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (m *Memory) InitAdmin(_ context.Context, admin models.Principal) error {
	if admin == "" {
		return fmt.Errorf("%w: admin identity is required", models.ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.admin != "" {
		return models.ErrAlreadyInitialized
	}
	m.admin = admin
	return nil
}

func (m *Memory) Admin(_ context.Context) (models.Principal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.admin == "" {
		return "", fmt.Errorf("admin: %w", models.ErrNotFound)
	}
	return m.admin, nil
}

func (m *Memory) campaignLock(id uint32) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	mu, ok := m.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[id] = mu
	}
	return mu
}

type memTx struct {
	m *Memory

	locked   map[uint32]*sync.Mutex
	creating bool
	counter  uint32

	campaigns map[uint32]models.Campaign
	donations []models.Donation
}

func (tx *memTx) Campaigns() CampaignStore { return memCampaigns{tx} }

func (tx *memTx) Donations() DonationLedger { return memDonations{tx} }

// lock takes the campaign's lock for the rest of the transaction. It reports
// false without allocating a lock when the campaign does not exist.
func (tx *memTx) lock(id uint32) bool {
	if _, held := tx.locked[id]; held {
		return true
	}
	if _, ok := tx.lookup(id); !ok {
		return false
	}
	mu := tx.m.campaignLock(id)
	mu.Lock()
	tx.locked[id] = mu
	return true
}

func (tx *memTx) lookup(id uint32) (models.Campaign, bool) {
	if c, ok := tx.campaigns[id]; ok {
		return c, true
	}
	tx.m.mu.RLock()
	defer tx.m.mu.RUnlock()
	c, ok := tx.m.campaigns[id]
	return c, ok
}

func (tx *memTx) commit() {
	tx.m.mu.Lock()
	defer tx.m.mu.Unlock()

	for id, c := range tx.campaigns {
		tx.m.campaigns[id] = c
	}
	if tx.creating {
		tx.m.counter = tx.counter
	}
	for _, d := range tx.donations {
		d.Seq = int64(len(tx.m.donations) + 1)
		tx.m.donations = append(tx.m.donations, d)
	}
}

func (tx *memTx) release() {
	for _, mu := range tx.locked {
		mu.Unlock()
	}
	if tx.creating {
		tx.m.createMu.Unlock()
	}
}

type memCampaigns struct{ tx *memTx }

func (s memCampaigns) Create(_ context.Context, draft models.CampaignDraft) (uint32, error) {
	if err := validateDraft(draft); err != nil {
		return 0, err
	}

	tx := s.tx
	if !tx.creating {
		tx.m.createMu.Lock()
		tx.creating = true
		tx.m.mu.RLock()
		tx.counter = tx.m.counter
		tx.m.mu.RUnlock()
	}
	if tx.counter == math.MaxUint32 {
		return 0, fmt.Errorf("%w: campaign id space exhausted", models.ErrInvalidState)
	}

	tx.counter++
	tx.campaigns[tx.counter] = models.Campaign{
		ID:            tx.counter,
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		TargetAmount:  draft.TargetAmount,
		CurrentAmount: 0,
		Recipient:     draft.Recipient,
		Status:        models.CampaignStatusActive,
		CreatedAt:     draft.CreatedAt,
	}
	return tx.counter, nil
}

func (s memCampaigns) Get(_ context.Context, id uint32) (*models.Campaign, error) {
	c, ok := s.tx.lookup(id)
	if !ok {
		return nil, campaignNotFound(id)
	}
	return &c, nil
}

func (s memCampaigns) List(_ context.Context) ([]models.Campaign, error) {
	tx := s.tx
	tx.m.mu.RLock()
	merged := make(map[uint32]models.Campaign, len(tx.m.campaigns)+len(tx.campaigns))
	for id, c := range tx.m.campaigns {
		merged[id] = c
	}
	tx.m.mu.RUnlock()
	for id, c := range tx.campaigns {
		merged[id] = c
	}

	ids := make([]uint32, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	campaigns := make([]models.Campaign, 0, len(ids))
	for _, id := range ids {
		campaigns = append(campaigns, merged[id])
	}
	return campaigns, nil
}

func (s memCampaigns) Lock(_ context.Context, id uint32) (*models.Campaign, error) {
	if !s.tx.lock(id) {
		return nil, campaignNotFound(id)
	}
	c, _ := s.tx.lookup(id)
	return &c, nil
}

func (s memCampaigns) Update(_ context.Context, id uint32, mutate Mutator) (*models.Campaign, error) {
	if !s.tx.lock(id) {
		return nil, campaignNotFound(id)
	}

	c, _ := s.tx.lookup(id)
	if err := mutate(&c); err != nil {
		return nil, err
	}
	c.ID = id
	s.tx.campaigns[id] = c
	return &c, nil
}

type memDonations struct{ tx *memTx }

func (s memDonations) Append(_ context.Context, d models.Donation) error {
	if err := validateDonation(d); err != nil {
		return err
	}
	s.tx.donations = append(s.tx.donations, d)
	return nil
}

func (s memDonations) snapshot() []models.Donation {
	s.tx.m.mu.RLock()
	all := make([]models.Donation, 0, len(s.tx.m.donations)+len(s.tx.donations))
	all = append(all, s.tx.m.donations...)
	s.tx.m.mu.RUnlock()
	return append(all, s.tx.donations...)
}

func (s memDonations) ListFor(_ context.Context, campaignID uint32) ([]models.Donation, error) {
	donations := []models.Donation{}
	for _, d := range s.snapshot() {
		if d.CampaignID == campaignID {
			donations = append(donations, d)
		}
	}
	return donations, nil
}

func (s memDonations) ListAll(_ context.Context) ([]models.Donation, error) {
	return s.snapshot(), nil
}

func (s memDonations) Sum(_ context.Context, campaignID uint32) (int64, error) {
	var total int64
	for _, d := range s.snapshot() {
		if d.CampaignID != campaignID {
			continue
		}
		if total > math.MaxInt64-d.Amount {
			return 0, fmt.Errorf("%w: donation sum of campaign %d overflows", models.ErrInvalidState, campaignID)
		}
		total += d.Amount
	}
	return total, nil
}

func (s memDonations) Total(_ context.Context) (int64, error) {
	var total int64
	for _, d := range s.snapshot() {
		if total > math.MaxInt64-d.Amount {
			return 0, fmt.Errorf("%w: donation total overflows", models.ErrInvalidState)
		}
		total += d.Amount
	}
	return total, nil
}

// autoCampaigns and autoDonations run each call in its own transaction.
type autoCampaigns struct{ m *Memory }

func (a autoCampaigns) Create(ctx context.Context, draft models.CampaignDraft) (id uint32, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		id, err = tx.Campaigns().Create(ctx, draft)
		return err
	})
	return id, err
}

func (a autoCampaigns) Get(ctx context.Context, id uint32) (c *models.Campaign, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		c, err = tx.Campaigns().Get(ctx, id)
		return err
	})
	return c, err
}

func (a autoCampaigns) Lock(ctx context.Context, id uint32) (c *models.Campaign, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		c, err = tx.Campaigns().Lock(ctx, id)
		return err
	})
	return c, err
}

func (a autoCampaigns) List(ctx context.Context) (campaigns []models.Campaign, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		campaigns, err = tx.Campaigns().List(ctx)
		return err
	})
	return campaigns, err
}

func (a autoCampaigns) Update(ctx context.Context, id uint32, mutate Mutator) (c *models.Campaign, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		c, err = tx.Campaigns().Update(ctx, id, mutate)
		return err
	})
	return c, err
}

type autoDonations struct{ m *Memory }

func (a autoDonations) Append(ctx context.Context, d models.Donation) error {
	return a.m.Atomic(ctx, func(tx Tx) error {
		return tx.Donations().Append(ctx, d)
	})
}

func (a autoDonations) ListFor(ctx context.Context, campaignID uint32) (donations []models.Donation, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		donations, err = tx.Donations().ListFor(ctx, campaignID)
		return err
	})
	return donations, err
}

func (a autoDonations) ListAll(ctx context.Context) (donations []models.Donation, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		donations, err = tx.Donations().ListAll(ctx)
		return err
	})
	return donations, err
}

func (a autoDonations) Sum(ctx context.Context, campaignID uint32) (total int64, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		total, err = tx.Donations().Sum(ctx, campaignID)
		return err
	})
	return total, err
}

func (a autoDonations) Total(ctx context.Context) (total int64, err error) {
	err = a.m.Atomic(ctx, func(tx Tx) error {
		total, err = tx.Donations().Total(ctx)
		return err
	})
	return total, err
}
