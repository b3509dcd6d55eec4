package store

import (
	"errors"
	"testing"
)

func TestCreditDepositIsIdempotent(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	bal, dup, err := st.CreditDeposit(ctx, 1, 100, "charge-1", Entry{Type: "deposit_credit"})
	if err != nil || dup || bal != 100 {
		t.Fatalf("first credit: bal=%d dup=%v err=%v", bal, dup, err)
	}
	bal, dup, err = st.CreditDeposit(ctx, 1, 100, "charge-1", Entry{Type: "deposit_credit"})
	if err != nil || !dup || bal != 100 {
		t.Fatalf("replayed credit: bal=%d dup=%v err=%v", bal, dup, err)
	}
	if _, _, err := st.CreditDeposit(ctx, 1, 0, "charge-2", Entry{Type: "deposit_credit"}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestWithdrawalForwardAndRollback(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustEnsureAccount(t, st, ctx, 1, "a", 1000)

	w, bal, err := st.CreateWithdrawal(ctx, 1, 600, "withdrawal_debit")
	if err != nil || bal != 400 || w.Status != WithdrawalPending {
		t.Fatalf("create: w=%+v bal=%d err=%v", w, bal, err)
	}
	bal, err = st.RollbackWithdrawal(ctx, w.ID, "withdrawal_refund")
	if err != nil || bal != 1000 {
		t.Fatalf("rollback: bal=%d err=%v", bal, err)
	}
	if _, err := st.RollbackWithdrawal(ctx, w.ID, "withdrawal_refund"); !errors.Is(err, ErrWithdrawalNotPending) {
		t.Fatalf("expected not pending, got %v", err)
	}
	got, err := st.GetWithdrawal(ctx, w.ID)
	if err != nil || got.Status != WithdrawalRolledBack {
		t.Fatalf("unexpected withdrawal: %+v err=%v", got, err)
	}

	w2, _, err := st.CreateWithdrawal(ctx, 1, 500, "withdrawal_debit")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := st.MarkWithdrawalForwarded(ctx, w2.ID); err != nil {
		t.Fatalf("forward: %v", err)
	}
	if _, _, err := st.CreateWithdrawal(ctx, 1, 600, "withdrawal_debit"); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}
