package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zakatfund/backend/internal/models"
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres is the durable Store. Campaign updates lock the row with
// SELECT ... FOR UPDATE and creations lock the counter row, both inside the
// caller's transaction.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Campaigns() CampaignStore { return pgCampaigns{q: p.db, auto: p} }

func (p *Postgres) Donations() DonationLedger { return pgDonations{q: p.db} }

func (p *Postgres) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(pgTx{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (p *Postgres) InitAdmin(ctx context.Context, admin models.Principal) error {
	if admin == "" {
		return fmt.Errorf("%w: admin identity is required", models.ErrInvalidArgument)
	}

	result, err := p.db.ExecContext(ctx, `
		INSERT INTO ledger_admin (id, principal, initialized_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING`,
		string(admin), time.Now())
	if err != nil {
		return fmt.Errorf("store admin: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrAlreadyInitialized
	}
	return nil
}

func (p *Postgres) Admin(ctx context.Context) (models.Principal, error) {
	var admin string
	err := p.db.QueryRowContext(ctx, `SELECT principal FROM ledger_admin WHERE id = 1`).Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("admin: %w", models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load admin: %w", err)
	}
	return models.Principal(admin), nil
}

type pgTx struct{ q queryer }

func (t pgTx) Campaigns() CampaignStore { return pgCampaigns{q: t.q} }

func (t pgTx) Donations() DonationLedger { return pgDonations{q: t.q} }

const campaignColumns = `id, title, description, category, target_amount, current_amount, recipient, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var (
		c                           models.Campaign
		id                          int64
		category, recipient, status string
	)
	err := row.Scan(&id, &c.Title, &c.Description, &category, &c.TargetAmount,
		&c.CurrentAmount, &recipient, &status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = uint32(id)
	c.Category = models.CampaignCategory(category)
	c.Recipient = models.Principal(recipient)
	c.Status = models.CampaignStatus(status)
	return &c, nil
}

// pgCampaigns runs against a transaction, or against the pool when auto is
// set, in which case writes open their own transaction.
type pgCampaigns struct {
	q    queryer
	auto *Postgres
}

func (s pgCampaigns) Create(ctx context.Context, draft models.CampaignDraft) (uint32, error) {
	if err := validateDraft(draft); err != nil {
		return 0, err
	}

	if s.auto != nil {
		var id uint32
		err := s.auto.Atomic(ctx, func(tx Tx) error {
			var err error
			id, err = tx.Campaigns().Create(ctx, draft)
			return err
		})
		return id, err
	}

	var next int64
	err := s.q.QueryRowContext(ctx, `
		UPDATE campaign_counter
		SET value = value + 1
		WHERE id = 1
		RETURNING value`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("advance campaign counter: %w", err)
	}
	if next > math.MaxUint32 {
		return 0, fmt.Errorf("%w: campaign id space exhausted", models.ErrInvalidState)
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO campaigns (id, title, description, category, target_amount, current_amount, recipient, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8)`,
		next, draft.Title, draft.Description, string(draft.Category), draft.TargetAmount,
		string(draft.Recipient), string(models.CampaignStatusActive), draft.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert campaign: %w", err)
	}

	return uint32(next), nil
}

func (s pgCampaigns) Get(ctx context.Context, id uint32) (*models.Campaign, error) {
	c, err := scanCampaign(s.q.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, campaignNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load campaign %d: %w", id, err)
	}
	return c, nil
}

// Lock takes a FOR SHARE row lock, which blocks Update's FOR UPDATE until the
// transaction ends. Outside a transaction it is a plain Get.
func (s pgCampaigns) Lock(ctx context.Context, id uint32) (*models.Campaign, error) {
	if s.auto != nil {
		return s.Get(ctx, id)
	}

	c, err := scanCampaign(s.q.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR SHARE`, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, campaignNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock campaign %d: %w", id, err)
	}
	return c, nil
}

func (s pgCampaigns) List(ctx context.Context) ([]models.Campaign, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// Update persists current_amount and status, the only columns that change
// after creation.
func (s pgCampaigns) Update(ctx context.Context, id uint32, mutate Mutator) (*models.Campaign, error) {
	if s.auto != nil {
		var updated *models.Campaign
		err := s.auto.Atomic(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.Campaigns().Update(ctx, id, mutate)
			return err
		})
		return updated, err
	}

	c, err := scanCampaign(s.q.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, campaignNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock campaign %d: %w", id, err)
	}

	if err := mutate(c); err != nil {
		return nil, err
	}
	c.ID = id

	result, err := s.q.ExecContext(ctx, `
		UPDATE campaigns
		SET current_amount = $1, status = $2
		WHERE id = $3`,
		c.CurrentAmount, string(c.Status), int64(id))
	if err != nil {
		return nil, fmt.Errorf("update campaign %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, campaignNotFound(id)
	}

	return c, nil
}

type pgDonations struct{ q queryer }

func (s pgDonations) Append(ctx context.Context, d models.Donation) error {
	if err := validateDonation(d); err != nil {
		return err
	}

	_, err := s.q.ExecContext(ctx, `
		INSERT INTO donations (campaign_id, donor, amount, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		int64(d.CampaignID), string(d.Donor), d.Amount, d.IsAnonymous, d.Timestamp)
	if err != nil {
		return fmt.Errorf("append donation: %w", err)
	}
	return nil
}

const donationColumns = `seq, campaign_id, donor, amount, is_anonymous, created_at`

func (s pgDonations) list(ctx context.Context, query string, args ...any) ([]models.Donation, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		var (
			d          models.Donation
			campaignID int64
			donor      string
		)
		if err := rows.Scan(&d.Seq, &campaignID, &donor, &d.Amount, &d.IsAnonymous, &d.Timestamp); err != nil {
			return nil, err
		}
		d.CampaignID = uint32(campaignID)
		d.Donor = models.Principal(donor)
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

func (s pgDonations) ListFor(ctx context.Context, campaignID uint32) ([]models.Donation, error) {
	return s.list(ctx, `SELECT `+donationColumns+` FROM donations WHERE campaign_id = $1 ORDER BY seq`, int64(campaignID))
}

func (s pgDonations) ListAll(ctx context.Context) ([]models.Donation, error) {
	return s.list(ctx, `SELECT `+donationColumns+` FROM donations ORDER BY seq`)
}

func (s pgDonations) Sum(ctx context.Context, campaignID uint32) (int64, error) {
	var total int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0)::BIGINT FROM donations WHERE campaign_id = $1`, int64(campaignID)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum donations for campaign %d: %w", campaignID, err)
	}
	return total, nil
}

func (s pgDonations) Total(ctx context.Context) (int64, error) {
	var total int64
	err := s.q.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM donations`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum donations: %w", err)
	}
	return total, nil
}
