package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"star-casino/internal/app/referral"
	"star-casino/internal/config"
	"star-casino/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,15}$`)

type Service struct {
	store     Store
	ledger    AdminLedger
	referrals Referrals
	notifier  Notifier
	fanout    int
}

func NewService(st Store, ledger AdminLedger, referrals Referrals, notifier Notifier, cfg config.ServerConfig) *Service {
	fanout := cfg.BroadcastConcurrency
	if fanout <= 0 {
		fanout = 1
	}
	return &Service{store: st, ledger: ledger, referrals: referrals, notifier: notifier, fanout: fanout}
}

// Start provisions the account and redeems a referral code carried by the start message.
func (s *Service) Start(ctx context.Context, id int64, displayName, startText string) (*StartResult, error) {
	if id == 0 {
		return nil, ErrInvalidRequest
	}
	created, err := s.store.EnsureAccount(ctx, id, strings.TrimSpace(displayName))
	if err != nil {
		return nil, err
	}
	res := &StartResult{Created: created}
	if code, ok := referral.ParseStartPayload(startText); ok && s.referrals != nil {
		ref, err := s.referrals.Register(ctx, code, id)
		if err != nil {
			return nil, fmt.Errorf("register referral: %w", err)
		}
		res.Referral = ref
	}
	if res.Balance, err = s.store.GetBalance(ctx, id); err != nil {
		return nil, err
	}
	if created {
		log.Info().Int64("user_id", id).Msg("account created")
	}
	return res, nil
}

func (s *Service) Balance(ctx context.Context, id int64) (int64, error) {
	return s.store.GetBalance(ctx, id)
}

func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	a, err := s.store.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	p := &Profile{
		ID:               a.ID,
		DisplayName:      DisplayName(a.Nickname, a.DisplayName, a.ID),
		Nickname:         a.Nickname,
		Balance:          a.Balance,
		GamesPlayed:      a.GamesPlayed,
		GamesWon:         a.GamesWon,
		TotalWagered:     a.TotalWagered,
		NetProfit:        a.NetProfit,
		ReferralCode:     a.ReferralCode,
		ReferralsCount:   a.ReferralsCount,
		ReferralEarnings: a.ReferralEarnings,
	}
	if a.GamesPlayed > 0 {
		p.WinRate = ratio(a.GamesWon*100, a.GamesPlayed)
	}
	return p, nil
}

func (s *Service) SetNickname(ctx context.Context, id int64, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if !nicknamePattern.MatchString(nickname) {
		return ErrInvalidNickname
	}
	return s.store.SetNickname(ctx, id, nickname)
}

func (s *Service) Top(ctx context.Context, limit int) ([]LeaderEntry, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	rows, err := s.store.TopAccounts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderEntry, 0, len(rows))
	for i, r := range rows {
		out = append(out, LeaderEntry{
			Rank:      i + 1,
			AccountID: r.AccountID,
			Name:      DisplayName(r.Nickname, r.DisplayName, r.AccountID),
			Balance:   r.Balance,
		})
	}
	return out, nil
}

// DisplayName prefers the nickname, then the platform name, then a synthetic label.
func DisplayName(nickname, displayName string, id int64) string {
	if nickname != "" {
		return nickname
	}
	if displayName != "" {
		return displayName
	}
	return fmt.Sprintf("User %d", id)
}

func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(den), 2).InexactFloat64()
}
