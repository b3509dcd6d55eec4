package config

import "testing"

func TestLoadTelegramDefaults(t *testing.T) {
	cfg, err := LoadTelegram()
	if err != nil {
		t.Fatalf("LoadTelegram() error = %v", err)
	}
	if cfg.APIURL != "https://api.telegram.org" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.AdminChatID != 0 {
		t.Fatalf("AdminChatID = %d, want 0", cfg.AdminChatID)
	}
}

func TestLoadTelegramOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ADMIN_CHAT_ID", "-100200300")
	t.Setenv("BOT_USERNAME", "star_casino_bot")

	cfg, err := LoadTelegram()
	if err != nil {
		t.Fatalf("LoadTelegram() error = %v", err)
	}
	if cfg.Token != "123:abc" || cfg.AdminChatID != -100200300 || cfg.BotUsername != "star_casino_bot" {
		t.Fatalf("unexpected telegram config: %+v", cfg)
	}
}

func TestLoadRedisOptional(t *testing.T) {
	cfg, err := LoadRedis()
	if err != nil {
		t.Fatalf("LoadRedis() error = %v", err)
	}
	if cfg.Addr != "" {
		t.Fatalf("Addr = %q, want empty", cfg.Addr)
	}
}
