package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/skip2/go-qrcode"

	"github.com/zakatfund/backend/internal/config"
	"github.com/zakatfund/backend/internal/models"
)

// CampaignReader looks up campaigns for services that only read them.
type CampaignReader interface {
	GetCampaign(ctx context.Context, campaignID uint32) (*models.Campaign, error)
}

// DonationIntent is what a donation QR code resolves to. Amount is a
// suggestion; zero lets the donor choose.
type DonationIntent struct {
	Code       string    `json:"code"`
	CampaignID uint32    `json:"campaignId"`
	Amount     int64     `json:"amount,omitempty"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// QRService issues single-use donation QR codes backed by Redis keys that
// expire after the configured TTL.
type QRService struct {
	redis     *redis.Client
	campaigns CampaignReader
	cfg       *config.LedgerConfig
	now       func() time.Time
	nonce     func() (string, error)
}

func NewQRService(rdb *redis.Client, campaigns CampaignReader, cfg *config.LedgerConfig) *QRService {
	return &QRService{
		redis:     rdb,
		campaigns: campaigns,
		cfg:       cfg,
		now:       time.Now,
		nonce:     generateNonce,
	}
}

func qrKey(code string) string {
	return fmt.Sprintf("donation_qr:%s", code)
}

// GenerateQRCode stores a donation intent for an Active campaign and returns
// it with a base64 PNG of the QR code.
func (s *QRService) GenerateQRCode(ctx context.Context, campaignID uint32, amount int64) (*DonationIntent, string, error) {
	if s.redis == nil {
		return nil, "", errors.New("QR codes are unavailable without Redis")
	}
	if amount < 0 {
		return nil, "", fmt.Errorf("%w: suggested amount cannot be negative", models.ErrInvalidArgument)
	}

	campaign, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, "", err
	}
	if err := ensureAcceptsDonations(campaign); err != nil {
		return nil, "", err
	}

	code, err := s.nonce()
	if err != nil {
		return nil, "", err
	}
	createdAt := s.now()
	intent := &DonationIntent{
		Code:       code,
		CampaignID: campaignID,
		Amount:     amount,
		URL:        fmt.Sprintf("%s/%d?code=%s", s.cfg.DonateURLBase, campaignID, code),
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(s.cfg.QRCodeTTL),
	}

	jsonData, err := json.Marshal(intent)
	if err != nil {
		return nil, "", err
	}

	if err := s.redis.Set(ctx, qrKey(code), string(jsonData), s.cfg.QRCodeTTL).Err(); err != nil {
		return nil, "", fmt.Errorf("store QR intent: %w", err)
	}

	qr, err := qrcode.New(intent.URL, qrcode.Medium)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(s.cfg.QRCodeSize)); err != nil {
		return nil, "", err
	}

	return intent, base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ResolveQRCode consumes a QR code. Each code resolves at most once.
func (s *QRService) ResolveQRCode(ctx context.Context, code string) (*DonationIntent, error) {
	if s.redis == nil {
		return nil, errors.New("QR codes are unavailable without Redis")
	}

	data, err := s.redis.GetDel(ctx, qrKey(code)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: invalid, expired or used QR code", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var intent DonationIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func generateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate QR code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
