package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appaccount "star-casino/internal/app/account"
	apppayment "star-casino/internal/app/payment"
	appreferral "star-casino/internal/app/referral"
	appwager "star-casino/internal/app/wager"
	"star-casino/internal/config"
	"star-casino/internal/ledger"
	"star-casino/internal/logging"
	"star-casino/internal/mcpserver"
	"star-casino/internal/ratelimit"
	"star-casino/internal/store"
	"star-casino/internal/telegram"
	httptransport "star-casino/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	led := ledger.New(st)

	tg := telegram.NewClient(cfg.Telegram, cfg.Server.DrawSettleDelay)
	if cfg.Telegram.Token == "" {
		log.Warn().Msg("TELEGRAM_TOKEN not set, draws and chat delivery will fail")
	}

	var limiter appwager.RateLimiter
	rl, err := ratelimit.New(cfg.Redis, cfg.Server.WagerRateLimit, cfg.Server.WagerRateWindow)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limiter init failed")
	}
	if rl != nil {
		defer rl.Close()
		limiter = rl
		log.Info().Str("addr", cfg.Redis.Addr).Int("limit", cfg.Server.WagerRateLimit).Dur("window", cfg.Server.WagerRateWindow).Msg("wager rate limiting enabled")
	}

	referrals := appreferral.NewService(st, cfg.Server, cfg.Telegram.BotUsername)
	accounts := appaccount.NewService(st, led, referrals, tg, cfg.Server)
	svc := httptransport.Services{
		Store:     st,
		Accounts:  accounts,
		Wagers:    appwager.NewEngine(led, tg, limiter, cfg.Server),
		Referrals: referrals,
		Payments:  apppayment.NewService(led, tg, tg, cfg.Server, cfg.Telegram.AdminChatID),
		MCP:       mcpserver.New(accounts, referrals, st).Handler(),
	}
	r := httptransport.NewRouter(svc, cfg.Server)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	// In-flight wagers finish settlement before the pool closes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.DrawSettleDelay+10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
