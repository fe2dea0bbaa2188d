package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/store"
)

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Verify(ctx context.Context, token auth.Token) (models.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(models.Principal), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishDonation(ctx context.Context, event models.DonationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPayoutDispatcher struct {
	mock.Mock
}

func (m *MockPayoutDispatcher) DispatchPayout(ctx context.Context, payout models.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

type MockCampaignReader struct {
	mock.Mock
}

func (m *MockCampaignReader) GetCampaign(ctx context.Context, campaignID uint32) (*models.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

// failingLedgerStore fails every donation append made inside a transaction.
type failingLedgerStore struct {
	*store.Memory
	err error
}

func (f failingLedgerStore) Atomic(ctx context.Context, fn func(tx store.Tx) error) error {
	return f.Memory.Atomic(ctx, func(tx store.Tx) error {
		return fn(failingTx{Tx: tx, err: f.err})
	})
}

type failingTx struct {
	store.Tx
	err error
}

func (t failingTx) Donations() store.DonationLedger {
	return failingLedger{DonationLedger: t.Tx.Donations(), err: t.err}
}

type failingLedger struct {
	store.DonationLedger
	err error
}

func (l failingLedger) Append(context.Context, models.Donation) error {
	return l.err
}

// hookedStore runs beforeListFor ahead of every donation listing made inside
// a transaction.
type hookedStore struct {
	*store.Memory
	beforeListFor func()
}

func (h hookedStore) Atomic(ctx context.Context, fn func(tx store.Tx) error) error {
	return h.Memory.Atomic(ctx, func(tx store.Tx) error {
		return fn(hookedTx{Tx: tx, beforeListFor: h.beforeListFor})
	})
}

type hookedTx struct {
	store.Tx
	beforeListFor func()
}

func (t hookedTx) Donations() store.DonationLedger {
	return hookedLedger{DonationLedger: t.Tx.Donations(), before: t.beforeListFor}
}

type hookedLedger struct {
	store.DonationLedger
	before func()
}

func (l hookedLedger) ListFor(ctx context.Context, campaignID uint32) ([]models.Donation, error) {
	l.before()
	return l.DonationLedger.ListFor(ctx, campaignID)
}
