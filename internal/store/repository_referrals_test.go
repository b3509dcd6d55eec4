package store

import (
	"errors"
	"testing"
)

var testBonus = ReferralBonus{Referee: 50, Referrer: 25}

func TestAssignReferralCodeIsStable(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustEnsureAccount(t, st, ctx, 1, "a", 0)
	mustEnsureAccount(t, st, ctx, 2, "b", 0)

	code, err := st.AssignReferralCode(ctx, 1, "AAAA1111")
	if err != nil || code != "AAAA1111" {
		t.Fatalf("assign: %q err=%v", code, err)
	}
	code, err = st.AssignReferralCode(ctx, 1, "BBBB2222")
	if err != nil || code != "AAAA1111" {
		t.Fatalf("expected existing code, got %q err=%v", code, err)
	}
	if _, err := st.AssignReferralCode(ctx, 2, "AAAA1111"); !errors.Is(err, ErrReferralCodeTaken) {
		t.Fatalf("expected code taken, got %v", err)
	}
}

func TestRegisterReferralOutcomes(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustEnsureAccount(t, st, ctx, 1, "referrer", 0)
	mustEnsureAccount(t, st, ctx, 2, "referred", 0)
	mustEnsureAccount(t, st, ctx, 3, "other", 0)
	if _, err := st.AssignReferralCode(ctx, 1, "CODE0001"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := st.AssignReferralCode(ctx, 3, "CODE0003"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := st.RegisterReferral(ctx, "NOPE0000", 2, testBonus); !errors.Is(err, ErrUnknownReferralCode) {
		t.Fatalf("expected unknown code, got %v", err)
	}
	if _, err := st.RegisterReferral(ctx, "CODE0001", 1, testBonus); !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("expected self referral, got %v", err)
	}

	ref, err := st.RegisterReferral(ctx, "CODE0001", 2, testBonus)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !ref.BonusPaid || ref.ReferrerID != 1 || ref.ReferredID != 2 {
		t.Fatalf("unexpected referral: %+v", ref)
	}

	if _, err := st.RegisterReferral(ctx, "CODE0001", 2, testBonus); !errors.Is(err, ErrAlreadyReferred) {
		t.Fatalf("expected already referred, got %v", err)
	}
	if _, err := st.RegisterReferral(ctx, "CODE0003", 2, testBonus); !errors.Is(err, ErrAlreadyReferred) {
		t.Fatalf("expected already referred for second referrer, got %v", err)
	}

	referred, err := st.GetAccount(ctx, 2)
	if err != nil {
		t.Fatalf("get referred: %v", err)
	}
	if referred.Balance != 50 || referred.ReferrerID == nil || *referred.ReferrerID != 1 {
		t.Fatalf("unexpected referred: %+v", referred)
	}
	stats, err := st.ReferralStats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Code != "CODE0001" || stats.ReferralsCount != 1 || stats.ReferralEarnings != 25 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	bal, err := st.GetBalance(ctx, 1)
	if err != nil || bal != 25 {
		t.Fatalf("expected referrer balance 25, got %d err=%v", bal, err)
	}
}

func TestListReferralsMostRecentFirst(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustEnsureAccount(t, st, ctx, 1, "referrer", 0)
	if _, err := st.AssignReferralCode(ctx, 1, "CODE0001"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	for _, id := range []int64{2, 3, 4} {
		mustEnsureAccount(t, st, ctx, id, "u", 0)
		if _, err := st.RegisterReferral(ctx, "CODE0001", id, testBonus); err != nil {
			t.Fatalf("register %d: %v", id, err)
		}
	}

	items, err := st.ListReferrals(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].ReferredID != 4 || items[2].ReferredID != 2 {
		t.Fatalf("unexpected order: %+v", items)
	}
}
