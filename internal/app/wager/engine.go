package wager

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"star-casino/internal/config"
	"star-casino/internal/outcome"
	"star-casino/internal/store"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	accounts Accounts
	roller   Roller
	limiter  RateLimiter
	minBet   int64
	maxBet   int64
}

// NewEngine wires the engine; limiter may be nil to disable rate limiting.
func NewEngine(accounts Accounts, roller Roller, limiter RateLimiter, cfg config.ServerConfig) *Engine {
	return &Engine{
		accounts: accounts,
		roller:   roller,
		limiter:  limiter,
		minBet:   cfg.MinBet,
		maxBet:   cfg.MaxBet,
	}
}

// Place runs one wager from validation to settlement. Once the stake is debited the
// wager completes even if ctx is cancelled.
func (e *Engine) Place(ctx context.Context, in PlaceInput) (*Result, error) {
	variant, err := outcome.ParseVariant(in.Variant)
	if err != nil {
		return nil, err
	}
	if in.Stake < e.minBet || in.Stake > e.maxBet {
		return nil, ErrStakeOutOfRange
	}
	if err := e.checkRate(ctx, in.AccountID); err != nil {
		return nil, err
	}
	bal, err := e.accounts.Balance(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if in.Stake > bal {
		return nil, ErrInsufficientFunds
	}

	wagerID := store.NewID()
	if _, err := e.accounts.DebitStake(ctx, in.AccountID, wagerID, in.Stake); err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("debit stake: %w", err)
	}

	ctx = context.WithoutCancel(ctx)
	chatID := in.ChatID
	if chatID == 0 {
		chatID = in.AccountID
	}
	draw, err := e.roller.Roll(ctx, chatID, variant)
	if err != nil {
		return nil, e.refund(ctx, in, wagerID, err)
	}
	res, err := outcome.Resolve(variant, draw)
	if err != nil {
		return nil, e.refund(ctx, in, wagerID, err)
	}

	payout := res.Payout(in.Stake)
	bal, err = e.accounts.SettleWager(ctx, in.AccountID, wagerID, in.Stake, payout)
	if err != nil {
		log.Error().Err(err).
			Int64("user_id", in.AccountID).
			Str("wager_id", wagerID).
			Int64("stake", in.Stake).
			Int64("payout", payout).
			Msg("wager settle failed")
		return nil, fmt.Errorf("settle wager %s: %w", wagerID, err)
	}

	log.Info().
		Int64("user_id", in.AccountID).
		Str("wager_id", wagerID).
		Str("variant", string(variant)).
		Int("draw", draw).
		Str("label", res.Label).
		Int64("stake", in.Stake).
		Int64("payout", payout).
		Int64("balance", bal).
		Msg("wager settled")

	return &Result{
		WagerID: wagerID,
		Variant: variant,
		Label:   res.Label,
		Kind:    res.Kind,
		Draw:    draw,
		Stake:   in.Stake,
		Payout:  payout,
		Balance: bal,
	}, nil
}

func (e *Engine) checkRate(ctx context.Context, accountID int64) error {
	if e.limiter == nil {
		return nil
	}
	ok, err := e.limiter.Allow(ctx, "wager:"+strconv.FormatInt(accountID, 10))
	if err != nil {
		log.Warn().Err(err).Int64("user_id", accountID).Msg("rate limiter unavailable")
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}

// refund returns the stake after a failed draw and reports the draw failure.
func (e *Engine) refund(ctx context.Context, in PlaceInput, wagerID string, cause error) error {
	if _, err := e.accounts.RefundStake(ctx, in.AccountID, wagerID, in.Stake); err != nil {
		log.Error().Err(err).
			AnErr("cause", cause).
			Int64("user_id", in.AccountID).
			Str("wager_id", wagerID).
			Int64("stake", in.Stake).
			Msg("wager refund failed")
		return fmt.Errorf("%w: %v; refund: %w", ErrDrawFailed, cause, err)
	}
	log.Warn().Err(cause).
		Int64("user_id", in.AccountID).
		Str("wager_id", wagerID).
		Msg("wager draw failed, stake refunded")
	return fmt.Errorf("%w: %v", ErrDrawFailed, cause)
}
