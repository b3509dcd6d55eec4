package wager

import (
	"context"

	"star-casino/internal/outcome"
)

type PlaceInput struct {
	AccountID int64
	// ChatID is where the draw animation is shown; 0 means the account's private chat.
	ChatID  int64
	Variant string
	Stake   int64
}

type Result struct {
	WagerID string          `json:"wager_id"`
	Variant outcome.Variant `json:"variant"`
	Label   string          `json:"label"`
	Kind    outcome.Kind    `json:"kind"`
	Draw    int             `json:"draw"`
	Stake   int64           `json:"stake"`
	Payout  int64           `json:"payout"`
	Balance int64           `json:"balance"`
}

// Roller is the randomness source: it returns a draw in 1..variant.MaxDraw().
type Roller interface {
	Roll(ctx context.Context, chatID int64, v outcome.Variant) (int, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Accounts is the slice of the ledger the engine mutates.
type Accounts interface {
	Balance(ctx context.Context, accountID int64) (int64, error)
	DebitStake(ctx context.Context, accountID int64, wagerID string, amount int64) (int64, error)
	RefundStake(ctx context.Context, accountID int64, wagerID string, amount int64) (int64, error)
	SettleWager(ctx context.Context, accountID int64, wagerID string, stake, payout int64) (int64, error)
}
