package referral

import (
	"context"
	"time"

	"star-casino/internal/store"
)

// Outcome of a referral registration. Only OutcomeSuccess moves money.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeSelfReferral    Outcome = "self_referral"
	OutcomeAlreadyReferred Outcome = "already_referred"
	OutcomeUnknownCode     Outcome = "unknown_code"
)

type RegisterResult struct {
	Outcome       Outcome `json:"outcome"`
	ReferrerID    int64   `json:"referrer_id,omitempty"`
	RefereeBonus  int64   `json:"referee_bonus,omitempty"`
	ReferrerBonus int64   `json:"referrer_bonus,omitempty"`
}

type Stats struct {
	Code             string `json:"code"`
	Link             string `json:"link,omitempty"`
	ReferralsCount   int    `json:"referrals_count"`
	ReferralEarnings int64  `json:"referral_earnings"`
}

type Summary struct {
	ReferredID  int64     `json:"referred_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	BonusPaid   bool      `json:"bonus_paid"`
}

// Repository is the referral side of the ledger store.
type Repository interface {
	AssignReferralCode(ctx context.Context, id int64, code string) (string, error)
	RegisterReferral(ctx context.Context, code string, referredID int64, bonus store.ReferralBonus) (*store.Referral, error)
	ReferralStats(ctx context.Context, id int64) (store.ReferralStats, error)
	ListReferrals(ctx context.Context, id int64) ([]store.ReferralSummary, error)
}
