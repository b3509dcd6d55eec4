package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	MinBet        int64 `env:"MIN_BET" envDefault:"1"`
	MaxBet        int64 `env:"MAX_BET" envDefault:"100000"`
	MinWithdrawal int64 `env:"MIN_WITHDRAWAL" envDefault:"500"`
	DepositMin    int64 `env:"DEPOSIT_MIN" envDefault:"1"`
	DepositMax    int64 `env:"DEPOSIT_MAX" envDefault:"10000"`

	RefereeBonus  int64 `env:"REFERRAL_REFEREE_BONUS" envDefault:"50"`
	ReferrerBonus int64 `env:"REFERRAL_REFERRER_BONUS" envDefault:"25"`

	BroadcastConcurrency int           `env:"BROADCAST_CONCURRENCY" envDefault:"16"`
	WagerRateLimit       int           `env:"WAGER_RATE_LIMIT" envDefault:"30"`
	WagerRateWindow      time.Duration `env:"WAGER_RATE_WINDOW" envDefault:"1m"`
	DrawSettleDelay      time.Duration `env:"DRAW_SETTLE_DELAY" envDefault:"3500ms"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
