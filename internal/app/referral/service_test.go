package referral

import (
	"context"
	"errors"
	"testing"

	"star-casino/internal/config"
	"star-casino/internal/store"
	"star-casino/internal/testutil"
)

var testCfg = config.ServerConfig{RefereeBonus: 50, ReferrerBonus: 25}

type stubRepo struct {
	taken       map[string]bool
	assigned    map[int64]string
	registerErr error
}

func (r *stubRepo) AssignReferralCode(_ context.Context, id int64, code string) (string, error) {
	if c, ok := r.assigned[id]; ok {
		return c, nil
	}
	if r.taken[code] {
		return "", store.ErrReferralCodeTaken
	}
	r.assigned[id] = code
	return code, nil
}

func (r *stubRepo) RegisterReferral(_ context.Context, _ string, referredID int64, _ store.ReferralBonus) (*store.Referral, error) {
	if r.registerErr != nil {
		return nil, r.registerErr
	}
	return &store.Referral{ReferrerID: 1, ReferredID: referredID, BonusPaid: true}, nil
}

func (r *stubRepo) ReferralStats(context.Context, int64) (store.ReferralStats, error) {
	return store.ReferralStats{}, nil
}

func (r *stubRepo) ListReferrals(context.Context, int64) ([]store.ReferralSummary, error) {
	return nil, nil
}

func sequenceCodes(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
}

func TestEnsureCodeRetriesOnCollision(t *testing.T) {
	repo := &stubRepo{taken: map[string]bool{"TAKEN001": true}, assigned: map[int64]string{}}
	svc := NewService(repo, testCfg, "bot")
	svc.newCode = sequenceCodes("TAKEN001", "FRESH002")

	code, err := svc.EnsureCode(context.Background(), 9)
	if err != nil || code != "FRESH002" {
		t.Fatalf("expected FRESH002, got %q err=%v", code, err)
	}

	svc.newCode = sequenceCodes("TAKEN001")
	if _, err := svc.EnsureCode(context.Background(), 10); !errors.Is(err, ErrCodeGenerationFailed) {
		t.Fatalf("expected generation failure, got %v", err)
	}
}

func TestRegisterMapsOutcomes(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{err: nil, want: OutcomeSuccess},
		{err: store.ErrUnknownReferralCode, want: OutcomeUnknownCode},
		{err: store.ErrSelfReferral, want: OutcomeSelfReferral},
		{err: store.ErrAlreadyReferred, want: OutcomeAlreadyReferred},
	}
	for _, tt := range tests {
		svc := NewService(&stubRepo{registerErr: tt.err}, testCfg, "bot")
		res, err := svc.Register(context.Background(), "abcd1234", 2)
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if res.Outcome != tt.want {
			t.Fatalf("expected %s, got %s", tt.want, res.Outcome)
		}
	}

	boom := errors.New("db down")
	svc := NewService(&stubRepo{registerErr: boom}, testCfg, "bot")
	if _, err := svc.Register(context.Background(), "ABCD1234", 2); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestReferralFlowPaysBothSidesOnce(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewService(st, testCfg, "star_casino_bot")

	if _, err := st.EnsureAccount(ctx, 1, "referrer"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	stats, err := svc.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Link != "https://t.me/star_casino_bot?start="+stats.Code {
		t.Fatalf("unexpected link %q", stats.Link)
	}

	if _, err := st.EnsureAccount(ctx, 2, "newbie"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	res, err := svc.Register(ctx, stats.Code, 2)
	if err != nil || res.Outcome != OutcomeSuccess {
		t.Fatalf("register: %+v err=%v", res, err)
	}
	res, err = svc.Register(ctx, stats.Code, 2)
	if err != nil || res.Outcome != OutcomeAlreadyReferred {
		t.Fatalf("second register: %+v err=%v", res, err)
	}
	res, err = svc.Register(ctx, stats.Code, 1)
	if err != nil || res.Outcome != OutcomeSelfReferral {
		t.Fatalf("self register: %+v err=%v", res, err)
	}

	if bal, _ := st.GetBalance(ctx, 2); bal != 50 {
		t.Fatalf("expected referred balance 50, got %d", bal)
	}
	if bal, _ := st.GetBalance(ctx, 1); bal != 25 {
		t.Fatalf("expected referrer balance 25, got %d", bal)
	}
	stats, err = svc.Stats(ctx, 1)
	if err != nil || stats.ReferralsCount != 1 || stats.ReferralEarnings != 25 {
		t.Fatalf("unexpected stats: %+v err=%v", stats, err)
	}
	list, err := svc.List(ctx, 1)
	if err != nil || len(list) != 1 || list[0].ReferredID != 2 || list[0].DisplayName != "newbie" {
		t.Fatalf("unexpected list: %+v err=%v", list, err)
	}
}
