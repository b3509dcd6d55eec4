package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"star-casino/internal/config"
	"star-casino/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	ledger        Ledger
	issuer        InvoiceIssuer
	reviewer      Reviewer
	adminChatID   int64
	depositMin    int64
	depositMax    int64
	minWithdrawal int64
	now           func() time.Time
}

func NewService(ledger Ledger, issuer InvoiceIssuer, reviewer Reviewer, cfg config.ServerConfig, adminChatID int64) *Service {
	return &Service{
		ledger:        ledger,
		issuer:        issuer,
		reviewer:      reviewer,
		adminChatID:   adminChatID,
		depositMin:    cfg.DepositMin,
		depositMax:    cfg.DepositMax,
		minWithdrawal: cfg.MinWithdrawal,
		now:           time.Now,
	}
}

func (s *Service) CreateDepositLink(ctx context.Context, accountID, amount int64) (*DepositLink, error) {
	if amount < s.depositMin || amount > s.depositMax {
		return nil, ErrInvalidAmount
	}
	payload := fmt.Sprintf("%s%d-%d", depositPayloadPrefix, accountID, s.now().Unix())
	url, err := s.issuer.CreateInvoiceLink(ctx, Invoice{
		Title:       fmt.Sprintf("Deposit %d stars", amount),
		Description: fmt.Sprintf("Top up your casino balance with %d stars", amount),
		Payload:     payload,
		Currency:    Currency,
		Amount:      amount,
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", accountID).Int64("amount", amount).Msg("invoice link creation failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentLinkCreationFailed, err)
	}
	return &DepositLink{URL: url, Payload: payload, Amount: amount}, nil
}

// ValidatePreCheckout accepts only payloads minted by CreateDepositLink.
func (s *Service) ValidatePreCheckout(payload string) error {
	if !strings.HasPrefix(payload, depositPayloadPrefix) {
		return ErrInvalidPayload
	}
	return nil
}

// CreditDeposit applies a confirmed payment. Confirmations replayed with the same
// paymentRef are acknowledged without a second credit.
func (s *Service) CreditDeposit(ctx context.Context, accountID, amount int64, paymentRef string) (*DepositResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(paymentRef) == "" {
		return nil, ErrInvalidPayload
	}
	bal, dup, err := s.ledger.CreditDeposit(ctx, accountID, amount, paymentRef)
	if err != nil {
		return nil, err
	}
	ev := log.Info()
	if dup {
		ev = log.Warn()
	}
	ev.Int64("user_id", accountID).
		Int64("amount", amount).
		Str("payment_ref", paymentRef).
		Bool("duplicate", dup).
		Int64("balance", bal).
		Msg("deposit confirmed")
	return &DepositResult{Balance: bal, Duplicate: dup}, nil
}

// RequestWithdrawal debits the amount and forwards the request for review. If the
// review channel cannot be reached the debit is refunded.
func (s *Service) RequestWithdrawal(ctx context.Context, in WithdrawalInput) (*WithdrawalResult, error) {
	if in.Amount < s.minWithdrawal {
		return nil, ErrWithdrawalBelowMinimum
	}
	bal, err := s.ledger.Balance(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if in.Amount > bal {
		return nil, ErrInsufficientFunds
	}

	w, bal, err := s.ledger.OpenWithdrawal(ctx, in.AccountID, in.Amount)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.reviewer.SendMessage(ctx, s.adminChatID, reviewMessage(in, w.ID, bal)); err != nil {
		refunded, rbErr := s.ledger.RollbackWithdrawal(ctx, w.ID)
		if rbErr != nil {
			log.Error().Err(rbErr).
				AnErr("cause", err).
				Int64("user_id", in.AccountID).
				Str("withdrawal_id", w.ID).
				Int64("amount", in.Amount).
				Msg("withdrawal rollback failed")
			return nil, fmt.Errorf("%w: %v; rollback: %w", ErrWithdrawalForwardingFailed, err, rbErr)
		}
		log.Warn().Err(err).
			Int64("user_id", in.AccountID).
			Str("withdrawal_id", w.ID).
			Int64("balance", refunded).
			Msg("withdrawal forwarding failed, refunded")
		return nil, fmt.Errorf("%w: %v", ErrWithdrawalForwardingFailed, err)
	}
	if err := s.ledger.MarkWithdrawalForwarded(ctx, w.ID); err != nil {
		log.Error().Err(err).Str("withdrawal_id", w.ID).Msg("mark withdrawal forwarded failed")
	}

	log.Info().
		Int64("user_id", in.AccountID).
		Str("withdrawal_id", w.ID).
		Int64("amount", in.Amount).
		Int64("balance", bal).
		Msg("withdrawal forwarded")
	return &WithdrawalResult{WithdrawalID: w.ID, Amount: in.Amount, Balance: bal}, nil
}

func reviewMessage(in WithdrawalInput, withdrawalID string, balanceAfter int64) string {
	label := in.UserLabel
	if label == "" {
		label = fmt.Sprintf("User %d", in.AccountID)
	}
	var b strings.Builder
	b.WriteString("Withdrawal request\n")
	fmt.Fprintf(&b, "User: %s (id %d)\n", label, in.AccountID)
	fmt.Fprintf(&b, "Amount: %d stars\n", in.Amount)
	fmt.Fprintf(&b, "Balance after: %d stars\n", balanceAfter)
	fmt.Fprintf(&b, "Request: %s", withdrawalID)
	return b.String()
}
