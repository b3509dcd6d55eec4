package ledger

import (
	"context"

	"star-casino/internal/store"
)

// Entry types written to ledger_entries.
const (
	WagerDebit       = "wager_debit"
	WagerPayout      = "wager_payout"
	WagerRefund      = "wager_refund"
	DepositCredit    = "deposit_credit"
	WithdrawalDebit  = "withdrawal_debit"
	WithdrawalRefund = "withdrawal_refund"
	ReferralBonus    = "referral_bonus"
	AdminAdjust      = "admin_adjust"
	AdminSet         = "admin_set"
)

type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) DebitStake(ctx context.Context, accountID int64, wagerID string, amount int64) (int64, error) {
	return l.Store.Debit(ctx, accountID, amount, store.Entry{Type: WagerDebit, RefType: "wager", RefID: wagerID})
}

func (l *Ledger) RefundStake(ctx context.Context, accountID int64, wagerID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, accountID, amount, store.Entry{Type: WagerRefund, RefType: "wager", RefID: wagerID})
}

// SettleWager pays out (when positive) and records the resolved wager.
func (l *Ledger) SettleWager(ctx context.Context, accountID int64, wagerID string, stake, payout int64) (int64, error) {
	return l.Store.SettleWager(ctx, accountID, stake, payout, store.Entry{Type: WagerPayout, RefType: "wager", RefID: wagerID})
}

func (l *Ledger) CreditDeposit(ctx context.Context, accountID, amount int64, paymentRef string) (int64, bool, error) {
	return l.Store.CreditDeposit(ctx, accountID, amount, paymentRef, store.Entry{Type: DepositCredit, RefType: "payment", RefID: paymentRef})
}

func (l *Ledger) OpenWithdrawal(ctx context.Context, accountID, amount int64) (*store.Withdrawal, int64, error) {
	return l.Store.CreateWithdrawal(ctx, accountID, amount, WithdrawalDebit)
}

func (l *Ledger) RollbackWithdrawal(ctx context.Context, withdrawalID string) (int64, error) {
	return l.Store.RollbackWithdrawal(ctx, withdrawalID, WithdrawalRefund)
}

func (l *Ledger) AdminAdjust(ctx context.Context, accountID, delta int64, operator string) (int64, error) {
	return l.Store.AdjustBalance(ctx, accountID, delta, store.Entry{Type: AdminAdjust, RefType: "admin", RefID: operator})
}

func (l *Ledger) AdminSet(ctx context.Context, accountID, value int64, operator string) (int64, error) {
	return l.Store.SetBalance(ctx, accountID, value, store.Entry{Type: AdminSet, RefType: "admin", RefID: operator})
}

func (l *Ledger) Balance(ctx context.Context, accountID int64) (int64, error) {
	return l.Store.GetBalance(ctx, accountID)
}

func (l *Ledger) MarkWithdrawalForwarded(ctx context.Context, withdrawalID string) error {
	return l.Store.MarkWithdrawalForwarded(ctx, withdrawalID)
}
