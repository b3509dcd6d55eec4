package payment

import (
	"context"

	"star-casino/internal/store"
)

// Currency is the platform's in-app star currency code.
const Currency = "XTR"

const depositPayloadPrefix = "casino-deposit-"

type Invoice struct {
	Title       string
	Description string
	Payload     string
	Currency    string
	Amount      int64
}

// InvoiceIssuer creates hosted payment links.
type InvoiceIssuer interface {
	CreateInvoiceLink(ctx context.Context, inv Invoice) (string, error)
}

// Reviewer delivers withdrawal requests to the human review channel.
type Reviewer interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Ledger interface {
	Balance(ctx context.Context, accountID int64) (int64, error)
	CreditDeposit(ctx context.Context, accountID, amount int64, paymentRef string) (int64, bool, error)
	OpenWithdrawal(ctx context.Context, accountID, amount int64) (*store.Withdrawal, int64, error)
	MarkWithdrawalForwarded(ctx context.Context, withdrawalID string) error
	RollbackWithdrawal(ctx context.Context, withdrawalID string) (int64, error)
}

type DepositLink struct {
	URL     string `json:"url"`
	Payload string `json:"payload"`
	Amount  int64  `json:"amount"`
}

type DepositResult struct {
	Balance   int64 `json:"balance"`
	Duplicate bool  `json:"duplicate"`
}

type WithdrawalInput struct {
	AccountID int64
	Amount    int64
	UserLabel string
}

type WithdrawalResult struct {
	WithdrawalID string `json:"withdrawal_id"`
	Amount       int64  `json:"amount"`
	Balance      int64  `json:"balance"`
}
