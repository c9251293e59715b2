// utils/config.go
package utils

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EscrowMode selects how the reward travels at selection time. See
// services.EscrowPolicy for the two behaviors.
type EscrowMode string

const (
	EscrowModeCustodial EscrowMode = "custodial"
	EscrowModeDirect    EscrowMode = "direct"
)

// Config is the full environment surface of the service. godotenv loads the
// .env file first; env.Parse then fills this struct.
type Config struct {
	DatabaseURL     string     `env:"DATABASE_URL,required"`
	Port            string     `env:"PORT" envDefault:"5300"`
	AllowedOrigins  []string   `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	GatewayToken    string     `env:"MARKET_SERVICE_TOKEN,required"`
	LedgerURL       string     `env:"LEDGER_SERVICE_URL,required"`
	EscrowMode      EscrowMode `env:"ESCROW_MODE" envDefault:"custodial"`
	WalletPollEvery int        `env:"WALLET_POLL_SECONDS" envDefault:"10"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.EscrowMode != EscrowModeCustodial && cfg.EscrowMode != EscrowModeDirect {
		return nil, fmt.Errorf("invalid ESCROW_MODE %q (want custodial or direct)", cfg.EscrowMode)
	}
	return cfg, nil
}
