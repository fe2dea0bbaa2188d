package store

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakatfund/backend/internal/models"
)

func draft(target int64) models.CampaignDraft {
	return models.CampaignDraft{
		Title:        "Flood relief",
		Description:  "Emergency shelter",
		Category:     models.CategoryDisaster,
		TargetAmount: target,
		Recipient:    "recipient-1",
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
	}
}

func TestMemory_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ids are sequential from 1", func(t *testing.T) {
		m := NewMemory()
		for want := uint32(1); want <= 3; want++ {
			id, err := m.Campaigns().Create(ctx, draft(100))
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}

		c, err := m.Campaigns().Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusActive, c.Status)
		assert.Equal(t, int64(0), c.CurrentAmount)
		assert.Equal(t, models.Principal("recipient-1"), c.Recipient)
	})

	t.Run("rejected creation does not consume an id", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Campaigns().Create(ctx, draft(0))
		assert.ErrorIs(t, err, models.ErrInvalidArgument)

		id, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)
		assert.Equal(t, uint32(1), id)
	})

	t.Run("rolled back creation does not consume an id", func(t *testing.T) {
		m := NewMemory()
		boom := errors.New("boom")
		err := m.Atomic(ctx, func(tx Tx) error {
			_, err := tx.Campaigns().Create(ctx, draft(100))
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = m.Campaigns().Get(ctx, 1)
		assert.ErrorIs(t, err, models.ErrNotFound)

		id, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)
		assert.Equal(t, uint32(1), id)
	})

	t.Run("counter exhaustion", func(t *testing.T) {
		m := NewMemory()
		m.counter = ^uint32(0)
		_, err := m.Campaigns().Create(ctx, draft(100))
		assert.ErrorIs(t, err, models.ErrInvalidState)
	})
}

func TestMemory_Atomic(t *testing.T) {
	ctx := context.Background()

	t.Run("failure discards every write", func(t *testing.T) {
		m := NewMemory()
		id, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)

		boom := errors.New("boom")
		err = m.Atomic(ctx, func(tx Tx) error {
			_, err := tx.Campaigns().Update(ctx, id, func(c *models.Campaign) error {
				c.CurrentAmount = 50
				return nil
			})
			require.NoError(t, err)
			require.NoError(t, tx.Donations().Append(ctx, models.Donation{CampaignID: id, Donor: "d", Amount: 50}))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		c, err := m.Campaigns().Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), c.CurrentAmount)

		donations, err := m.Donations().ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, donations)
	})

	t.Run("writes are visible inside the transaction", func(t *testing.T) {
		m := NewMemory()
		err := m.Atomic(ctx, func(tx Tx) error {
			id, err := tx.Campaigns().Create(ctx, draft(100))
			if err != nil {
				return err
			}
			if err := tx.Donations().Append(ctx, models.Donation{CampaignID: id, Donor: "d", Amount: 30}); err != nil {
				return err
			}
			sum, err := tx.Donations().Sum(ctx, id)
			assert.Equal(t, int64(30), sum)
			return err
		})
		require.NoError(t, err)

		donations, err := m.Donations().ListFor(ctx, 1)
		require.NoError(t, err)
		require.Len(t, donations, 1)
		assert.Equal(t, int64(1), donations[0].Seq)
	})

	t.Run("mutator error aborts the update", func(t *testing.T) {
		m := NewMemory()
		id, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)

		_, err = m.Campaigns().Update(ctx, id, func(c *models.Campaign) error {
			c.Status = models.CampaignStatusClosed
			return models.ErrInvalidState
		})
		assert.ErrorIs(t, err, models.ErrInvalidState)

		c, err := m.Campaigns().Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.CampaignStatusActive, c.Status)
	})

	t.Run("update of unknown campaign", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Campaigns().Update(ctx, 9, func(*models.Campaign) error { return nil })
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown ids do not allocate locks", func(t *testing.T) {
		m := NewMemory()
		for id := uint32(100); id < 110; id++ {
			_, err := m.Campaigns().Update(ctx, id, func(*models.Campaign) error { return nil })
			assert.ErrorIs(t, err, models.ErrNotFound)
			_, err = m.Campaigns().Lock(ctx, id)
			assert.ErrorIs(t, err, models.ErrNotFound)
		}
		assert.Empty(t, m.locks)
	})

	t.Run("lock holds off updates until the transaction ends", func(t *testing.T) {
		m := NewMemory()
		id, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)

		updated := make(chan struct{})
		err = m.Atomic(ctx, func(tx Tx) error {
			c, err := tx.Campaigns().Lock(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, c.ID)

			go func() {
				defer close(updated)
				_, err := m.Campaigns().Update(ctx, id, func(c *models.Campaign) error {
					c.CurrentAmount = 10
					return nil
				})
				assert.NoError(t, err)
			}()

			select {
			case <-updated:
				t.Error("update ran while the campaign was locked")
			case <-time.After(50 * time.Millisecond):
			}

			c, err = tx.Campaigns().Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, int64(0), c.CurrentAmount)
			return nil
		})
		require.NoError(t, err)
		<-updated

		c, err := m.Campaigns().Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(10), c.CurrentAmount)
	})

	t.Run("cancelled context", func(t *testing.T) {
		m := NewMemory()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := m.Atomic(cancelled, func(Tx) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemory_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id, err := m.Campaigns().Create(ctx, draft(1_000_000))
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Atomic(ctx, func(tx Tx) error {
				if _, err := tx.Campaigns().Update(ctx, id, func(c *models.Campaign) error {
					c.CurrentAmount += 10
					return nil
				}); err != nil {
					return err
				}
				return tx.Donations().Append(ctx, models.Donation{CampaignID: id, Donor: "d", Amount: 10})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := m.Campaigns().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*10), c.CurrentAmount)

	sum, err := m.Donations().Sum(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, c.CurrentAmount, sum)

	donations, err := m.Donations().ListFor(ctx, id)
	require.NoError(t, err)
	for i, d := range donations {
		assert.Equal(t, int64(i+1), d.Seq)
	}
}

func TestMemory_Listing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 0; i < 3; i++ {
		_, err := m.Campaigns().Create(ctx, draft(100))
		require.NoError(t, err)
	}

	campaigns, err := m.Campaigns().List(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	for i, c := range campaigns {
		assert.Equal(t, uint32(i+1), c.ID)
	}

	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 2, Donor: "a", Amount: 5}))
	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 1, Donor: "b", Amount: 7}))
	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 2, Donor: "c", Amount: 11}))

	all, err := m.Donations().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.Principal("a"), all[0].Donor)
	assert.Equal(t, models.Principal("c"), all[2].Donor)

	forTwo, err := m.Donations().ListFor(ctx, 2)
	require.NoError(t, err)
	require.Len(t, forTwo, 2)
	assert.Equal(t, int64(5), forTwo[0].Amount)
	assert.Equal(t, int64(11), forTwo[1].Amount)

	none, err := m.Donations().ListFor(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, none)

	total, err := m.Donations().Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)

	err = m.Donations().Append(ctx, models.Donation{CampaignID: 1, Donor: "z", Amount: 0})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestMemory_SumOverflow(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 1, Donor: "a", Amount: math.MaxInt64}))
	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 2, Donor: "b", Amount: 1}))

	sum, err := m.Donations().Sum(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = m.Donations().Total(ctx)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	require.NoError(t, m.Donations().Append(ctx, models.Donation{CampaignID: 1, Donor: "c", Amount: 1}))
	_, err = m.Donations().Sum(ctx, 1)
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestMemory_Admin(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Admin(ctx)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, m.InitAdmin(ctx, ""), models.ErrInvalidArgument)
	require.NoError(t, m.InitAdmin(ctx, "admin"))
	assert.ErrorIs(t, m.InitAdmin(ctx, "other"), models.ErrAlreadyInitialized)

	admin, err := m.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Principal("admin"), admin)
}
