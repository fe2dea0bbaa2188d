// Package audit records one structured event per ledger mutation.
package audit

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/zakatfund/backend/internal/models"
)

const (
	EventInitialize     = "INITIALIZE"
	EventCreateCampaign = "CREATE_CAMPAIGN"
	EventDonate         = "DONATE"
	EventCloseCampaign  = "CLOSE_CAMPAIGN"
	EventWithdraw       = "WITHDRAW"
)

type Event struct {
	Timestamp  time.Time
	EventType  string
	CampaignID uint32
	Actor      models.Principal
	Amount     int64
	Status     string
	Details    map[string]string
}

type Logger struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("component", "AUDIT").Logger(),
		now:    time.Now,
	}
}

// LogOperation records a committed mutation.
func (a *Logger) LogOperation(eventType string, campaignID uint32, actor models.Principal, amount int64, details map[string]string) {
	a.log(Event{
		Timestamp:  a.now(),
		EventType:  eventType,
		CampaignID: campaignID,
		Actor:      actor,
		Amount:     amount,
		Status:     "SUCCESS",
		Details:    details,
	})
}

// LogError records a rejected mutation together with its error kind.
func (a *Logger) LogError(eventType string, campaignID uint32, actor models.Principal, err error) {
	a.log(Event{
		Timestamp:  a.now(),
		EventType:  eventType,
		CampaignID: campaignID,
		Actor:      actor,
		Status:     "FAILED",
		Details: map[string]string{
			"kind":  models.ErrorKind(err),
			"error": err.Error(),
		},
	})
}

func (a *Logger) log(event Event) {
	e := a.logger.Info()
	if event.Status == "FAILED" {
		e = a.logger.Warn()
	}

	d := zerolog.Dict()
	for k, v := range event.Details {
		d = d.Str(k, v)
	}

	e.Time("event_time", event.Timestamp).
		Str("event_type", event.EventType).
		Uint32("campaign_id", event.CampaignID).
		Str("actor", string(event.Actor)).
		Int64("amount", event.Amount).
		Str("status", event.Status).
		Dict("details", d).
		Msg("AUDIT")
}
