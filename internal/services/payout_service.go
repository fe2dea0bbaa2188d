package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
	"github.com/rs/zerolog"

	"github.com/zakatfund/backend/internal/config"
	"github.com/zakatfund/backend/internal/models"
)

const (
	pacs008MessageType = "pacs.008.001.08"
	minorUnitsPerMajor = 100
)

// PayoutInstruction is the queued form of a withdrawal, carrying the
// pacs.008 credit transfer that settles it.
type PayoutInstruction struct {
	MessageID   string           `json:"messageId"`
	MessageType string           `json:"messageType"`
	CampaignID  uint32           `json:"campaignId"`
	Recipient   models.Principal `json:"recipient"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	CreatedAt   time.Time        `json:"createdAt"`
	XML         string           `json:"xml"`
}

// PayoutService turns withdrawals into ISO 20022 credit transfers and queues
// them on Redis for the settlement worker.
type PayoutService struct {
	redis  *redis.Client
	cfg    *config.LedgerConfig
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewPayoutService(rdb *redis.Client, cfg *config.LedgerConfig, logger zerolog.Logger) *PayoutService {
	return &PayoutService{
		redis:  rdb,
		cfg:    cfg,
		logger: logger.With().Str("component", "PAYOUT").Logger(),
		now:    time.Now,
		newID: func() string {
			return strings.ReplaceAll(uuid.New().String(), "-", "")
		},
	}
}

func (s *PayoutService) DispatchPayout(ctx context.Context, p models.Payout) error {
	instruction, err := s.BuildInstruction(p)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(instruction)
	if err != nil {
		return fmt.Errorf("encode payout instruction: %w", err)
	}

	if s.redis == nil {
		s.logger.Warn().
			Str("message_id", instruction.MessageID).
			Uint32("campaign_id", p.CampaignID).
			Str("xml", instruction.XML).
			Msg("No payout queue available, instruction logged only")
		return nil
	}

	if err := s.redis.RPush(ctx, s.cfg.PayoutQueue, string(payload)).Err(); err != nil {
		return fmt.Errorf("queue payout instruction: %w", err)
	}

	s.logger.Info().
		Str("message_id", instruction.MessageID).
		Uint32("campaign_id", p.CampaignID).
		Int64("amount", p.Amount).
		Msg("Payout queued for settlement")
	return nil
}

// BuildInstruction renders the pacs.008 document for a payout.
func (s *PayoutService) BuildInstruction(p models.Payout) (*PayoutInstruction, error) {
	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be greater than 0", models.ErrInvalidArgument)
	}

	msgID := s.newID()
	createdAt := s.now()

	doc := s.CreatePacs008(p, msgID, createdAt)
	xmlData, err := ConvertToXML(doc)
	if err != nil {
		return nil, err
	}

	return &PayoutInstruction{
		MessageID:   msgID,
		MessageType: pacs008MessageType,
		CampaignID:  p.CampaignID,
		Recipient:   p.Recipient,
		Amount:      p.Amount,
		Currency:    s.cfg.PayoutCurrency,
		CreatedAt:   createdAt,
		XML:         xmlData,
	}, nil
}

// CreatePacs008 creates a pacs.008 FIToFICustomerCreditTransfer moving the
// payout from the escrow account to the campaign recipient.
func (s *PayoutService) CreatePacs008(p models.Payout, msgID string, createdAt time.Time) *pacs_v08.FIToFICustomerCreditTransferV08 {
	settlementDate := createdAt
	amount := float64(p.Amount) / minorUnitsPerMajor
	endToEndID := fmt.Sprintf("CAMPAIGN-%d", p.CampaignID)

	return &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:   common.Max35Text(msgID),
			CreDtTm: common.ISODateTime(createdAt),
			NbOfTxs: "1",
			TtlIntrBkSttlmAmt: &pacs_v08.ActiveCurrencyAndAmount{
				Ccy:   common.ActiveCurrencyCode(s.cfg.PayoutCurrency),
				Value: amount,
			},
			IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "CLRG",
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &[]common.Max35Text{common.Max35Text(msgID)}[0],
					EndToEndId: common.Max35Text(endToEndID),
					TxId:       &[]common.Max35Text{common.Max35Text(msgID)}[0],
				},
				IntrBkSttlmAmt: pacs_v08.ActiveCurrencyAndAmount{
					Ccy:   common.ActiveCurrencyCode(s.cfg.PayoutCurrency),
					Value: amount,
				},
				IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
				ChrgBr:        "SLEV",
				DbtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
						BICFI: &[]common.BICFIDec2014Identifier{common.BICFIDec2014Identifier(s.cfg.PayoutDebtorBIC)}[0],
					},
				},
				Dbtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(s.cfg.PayoutDebtorName)}[0],
				},
				CdtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
						BICFI: &[]common.BICFIDec2014Identifier{common.BICFIDec2014Identifier(s.cfg.PayoutAgentBIC)}[0],
					},
				},
				Cdtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(p.Recipient)}[0],
				},
			},
		},
	}
}

// ConvertToXML converts ISO20022 document to XML string
func ConvertToXML(doc any) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}
