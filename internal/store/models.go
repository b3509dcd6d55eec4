package store

import "time"

type Account struct {
	ID               int64
	DisplayName      string
	Nickname         string
	Balance          int64
	GamesPlayed      int64
	GamesWon         int64
	TotalWagered     int64
	NetProfit        int64
	ReferralCode     string
	ReferrerID       *int64
	ReferralsCount   int
	ReferralEarnings int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Entry describes the ledger row written alongside a balance mutation.
type Entry struct {
	Type    string
	RefType string
	RefID   string
}

type LedgerEntry struct {
	ID           string    `json:"id"`
	AccountID    int64     `json:"account_id"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	RefType      string    `json:"ref_type"`
	RefID        string    `json:"ref_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type LeaderRow struct {
	AccountID   int64
	DisplayName string
	Nickname    string
	Balance     int64
}

type GlobalAggregate struct {
	Accounts     int64
	Balance      int64
	GamesPlayed  int64
	TotalWagered int64
	NetProfit    int64
}

// CasinoProfit is the house side of every settled wager.
func (g GlobalAggregate) CasinoProfit() int64 {
	return -g.NetProfit
}

type Referral struct {
	ID         int64
	ReferrerID int64
	ReferredID int64
	BonusPaid  bool
	CreatedAt  time.Time
}

type ReferralSummary struct {
	ReferredID  int64
	DisplayName string
	Nickname    string
	CreatedAt   time.Time
	BonusPaid   bool
}

type ReferralStats struct {
	Code             string
	ReferralsCount   int
	ReferralEarnings int64
}

type Withdrawal struct {
	ID        string
	AccountID int64
	Amount    int64
	Status    string
	CreatedAt time.Time
}

const (
	WithdrawalPending    = "pending"
	WithdrawalForwarded  = "forwarded"
	WithdrawalRolledBack = "rolled_back"
)
