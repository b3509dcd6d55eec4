package account

import (
	"context"

	"star-casino/internal/app/referral"
	"star-casino/internal/store"
)

type Store interface {
	EnsureAccount(ctx context.Context, id int64, displayName string) (bool, error)
	GetAccount(ctx context.Context, id int64) (*store.Account, error)
	GetBalance(ctx context.Context, id int64) (int64, error)
	SetNickname(ctx context.Context, id int64, nickname string) error
	TopAccounts(ctx context.Context, limit int) ([]store.LeaderRow, error)
	GlobalAggregate(ctx context.Context) (store.GlobalAggregate, error)
	ListAccountIDs(ctx context.Context) ([]int64, error)
}

// AdminLedger applies operator balance corrections.
type AdminLedger interface {
	AdminAdjust(ctx context.Context, accountID, delta int64, operator string) (int64, error)
	AdminSet(ctx context.Context, accountID, value int64, operator string) (int64, error)
}

type Referrals interface {
	Register(ctx context.Context, code string, referredID int64) (*referral.RegisterResult, error)
}

// Notifier delivers a chat message to one account.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type StartResult struct {
	Created  bool                     `json:"created"`
	Balance  int64                    `json:"balance"`
	Referral *referral.RegisterResult `json:"referral,omitempty"`
}

type Profile struct {
	ID               int64   `json:"id"`
	DisplayName      string  `json:"display_name"`
	Nickname         string  `json:"nickname,omitempty"`
	Balance          int64   `json:"balance"`
	GamesPlayed      int64   `json:"games_played"`
	GamesWon         int64   `json:"games_won"`
	WinRate          float64 `json:"win_rate"`
	TotalWagered     int64   `json:"total_wagered"`
	NetProfit        int64   `json:"net_profit"`
	ReferralCode     string  `json:"referral_code,omitempty"`
	ReferralsCount   int     `json:"referrals_count"`
	ReferralEarnings int64   `json:"referral_earnings"`
}

type LeaderEntry struct {
	Rank      int    `json:"rank"`
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
}

type GlobalStats struct {
	Accounts       int64   `json:"accounts"`
	TotalBalance   int64   `json:"total_balance"`
	GamesPlayed    int64   `json:"games_played"`
	TotalWagered   int64   `json:"total_wagered"`
	CasinoProfit   int64   `json:"casino_profit"`
	AvgBalance     float64 `json:"avg_balance"`
	AvgGamesPlayed float64 `json:"avg_games_played"`
	AvgWagered     float64 `json:"avg_wagered"`
}

type BroadcastResult struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}
