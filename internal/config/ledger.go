package config

import (
	"os"
	"strconv"
	"time"
)

// LedgerConfig holds the tunables of the campaign ledger's side channels.
type LedgerConfig struct {
	QRCodeTTL        time.Duration
	QRCodeSize       int
	DonateURLBase    string
	EventChannel     string
	EventQueue       string
	PayoutQueue      string
	PayoutCurrency   string
	PayoutDebtorName string
	PayoutDebtorBIC  string
	PayoutAgentBIC   string
}

func LoadLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		QRCodeTTL:        getEnvAsDuration("QR_CODE_TTL", 15*time.Minute),
		QRCodeSize:       getEnvAsInt("QR_CODE_SIZE", 256),
		DonateURLBase:    getEnv("DONATE_URL_BASE", "https://zakat.fund/donate"),
		EventChannel:     getEnv("EVENT_CHANNEL", "donate"),
		EventQueue:       getEnv("EVENT_QUEUE", "donation_events"),
		PayoutQueue:      getEnv("PAYOUT_QUEUE", "payout_queue"),
		PayoutCurrency:   getEnv("PAYOUT_CURRENCY", "USD"),
		PayoutDebtorName: getEnv("PAYOUT_DEBTOR_NAME", "Zakat Fund Escrow"),
		PayoutDebtorBIC:  getEnv("PAYOUT_DEBTOR_BIC", "ZAKTUS33XXX"),
		PayoutAgentBIC:   getEnv("PAYOUT_AGENT_BIC", "ZAKTUS33XXX"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
