package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrWithdrawalNotPending = errors.New("withdrawal_not_pending")

// CreditDeposit records the deposit under paymentRef and credits it in the same transaction.
// A paymentRef seen before is reported as duplicate and credits nothing.
func (s *Store) CreditDeposit(ctx context.Context, id, amount int64, paymentRef string, e Entry) (int64, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("deposit %d: %w", amount, ErrInvalidAmount)
	}
	var (
		bal       int64
		duplicate bool
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := lockAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO deposits (payment_ref, account_id, amount) VALUES ($1, $2, $3)
			ON CONFLICT (payment_ref) DO NOTHING`, paymentRef, id, amount)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			duplicate = true
			bal = cur
			return nil
		}
		bal, err = applyDelta(ctx, tx, id, amount, e)
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return bal, duplicate, nil
}

// CreateWithdrawal debits amount and opens a pending withdrawal request.
func (s *Store) CreateWithdrawal(ctx context.Context, id, amount int64, entryType string) (*Withdrawal, int64, error) {
	if amount <= 0 {
		return nil, 0, fmt.Errorf("withdraw %d: %w", amount, ErrInvalidAmount)
	}
	w := &Withdrawal{ID: NewID(), AccountID: id, Amount: amount, Status: WithdrawalPending}
	var bal int64
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		bal, err = applyDelta(ctx, tx, id, -amount, Entry{Type: entryType, RefType: "withdrawal", RefID: w.ID})
		if err != nil {
			return err
		}
		var createdAt pgtype.Timestamptz
		if err := tx.QueryRow(ctx, `
			INSERT INTO withdrawals (id, account_id, amount, status) VALUES ($1, $2, $3, $4)
			RETURNING created_at`, w.ID, id, amount, w.Status).Scan(&createdAt); err != nil {
			return err
		}
		w.CreatedAt = createdAt.Time
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return w, bal, nil
}

func (s *Store) MarkWithdrawalForwarded(ctx context.Context, withdrawalID string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE withdrawals SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`, withdrawalID, WithdrawalForwarded, WithdrawalPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWithdrawalNotPending
	}
	return nil
}

// RollbackWithdrawal refunds a pending withdrawal and closes it.
func (s *Store) RollbackWithdrawal(ctx context.Context, withdrawalID, entryType string) (int64, error) {
	var bal int64
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var (
			accountID int64
			amount    int64
			status    string
		)
		if err := tx.QueryRow(ctx, `
			SELECT account_id, amount, status FROM withdrawals WHERE id = $1 FOR UPDATE`, withdrawalID).
			Scan(&accountID, &amount, &status); err != nil {
			return mapNotFound(err)
		}
		if status != WithdrawalPending {
			return ErrWithdrawalNotPending
		}
		var err error
		bal, err = applyDelta(ctx, tx, accountID, amount, Entry{Type: entryType, RefType: "withdrawal", RefID: withdrawalID})
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE withdrawals SET status = $2, updated_at = now() WHERE id = $1`, withdrawalID, WithdrawalRolledBack)
		return err
	})
	if err != nil {
		return 0, err
	}
	return bal, nil
}

func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*Withdrawal, error) {
	var (
		w         Withdrawal
		createdAt pgtype.Timestamptz
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT id, account_id, amount, status, created_at FROM withdrawals WHERE id = $1`, withdrawalID).
		Scan(&w.ID, &w.AccountID, &w.Amount, &w.Status, &createdAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	w.CreatedAt = createdAt.Time
	return &w, nil
}
