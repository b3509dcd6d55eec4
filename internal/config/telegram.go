package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type TelegramConfig struct {
	Token       string        `env:"TELEGRAM_TOKEN"`
	APIURL      string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	AdminChatID int64         `env:"ADMIN_CHAT_ID"`
	BotUsername string        `env:"BOT_USERNAME"`
	Timeout     time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

func LoadTelegram() (TelegramConfig, error) {
	var cfg TelegramConfig
	err := env.Parse(&cfg)
	return cfg, err
}
