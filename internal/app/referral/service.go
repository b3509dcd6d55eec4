package referral

import (
	"context"
	"errors"
	"strings"

	"star-casino/internal/config"
	"star-casino/internal/store"

	"github.com/rs/zerolog/log"
)

const maxCodeAttempts = 5

type Service struct {
	repo        Repository
	bonus       store.ReferralBonus
	botUsername string
	newCode     func() (string, error)
}

func NewService(repo Repository, cfg config.ServerConfig, botUsername string) *Service {
	return &Service{
		repo:        repo,
		bonus:       store.ReferralBonus{Referee: cfg.RefereeBonus, Referrer: cfg.ReferrerBonus},
		botUsername: botUsername,
		newCode:     NewCode,
	}
}

// EnsureCode returns the account's referral code, generating one on first use.
func (s *Service) EnsureCode(ctx context.Context, id int64) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := s.newCode()
		if err != nil {
			return "", err
		}
		code, err := s.repo.AssignReferralCode(ctx, id, candidate)
		if errors.Is(err, store.ErrReferralCodeTaken) {
			log.Debug().Int64("user_id", id).Int("attempt", attempt+1).Msg("referral code collision")
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrCodeGenerationFailed
}

// Register applies code for referredID. Rejections are reported as outcomes, not errors.
func (s *Service) Register(ctx context.Context, code string, referredID int64) (*RegisterResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return &RegisterResult{Outcome: OutcomeUnknownCode}, nil
	}
	ref, err := s.repo.RegisterReferral(ctx, code, referredID, s.bonus)
	var outcome Outcome
	switch {
	case err == nil:
		log.Info().
			Int64("user_id", referredID).
			Int64("referrer_id", ref.ReferrerID).
			Str("code", code).
			Msg("referral registered")
		return &RegisterResult{
			Outcome:       OutcomeSuccess,
			ReferrerID:    ref.ReferrerID,
			RefereeBonus:  s.bonus.Referee,
			ReferrerBonus: s.bonus.Referrer,
		}, nil
	case errors.Is(err, store.ErrUnknownReferralCode):
		outcome = OutcomeUnknownCode
	case errors.Is(err, store.ErrSelfReferral):
		outcome = OutcomeSelfReferral
	case errors.Is(err, store.ErrAlreadyReferred):
		outcome = OutcomeAlreadyReferred
	default:
		return nil, err
	}
	log.Info().Int64("user_id", referredID).Str("code", code).Str("outcome", string(outcome)).Msg("referral rejected")
	return &RegisterResult{Outcome: outcome}, nil
}

func (s *Service) Stats(ctx context.Context, id int64) (*Stats, error) {
	code, err := s.EnsureCode(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := s.repo.ReferralStats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Code:             code,
		Link:             Link(s.botUsername, code),
		ReferralsCount:   st.ReferralsCount,
		ReferralEarnings: st.ReferralEarnings,
	}, nil
}

// List returns the accounts referred by id, most recent first.
func (s *Service) List(ctx context.Context, id int64) ([]Summary, error) {
	rows, err := s.repo.ListReferrals(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		name := r.Nickname
		if name == "" {
			name = r.DisplayName
		}
		out = append(out, Summary{
			ReferredID:  r.ReferredID,
			DisplayName: name,
			CreatedAt:   r.CreatedAt,
			BonusPaid:   r.BonusPaid,
		})
	}
	return out, nil
}

func (s *Service) Link(code string) string {
	return Link(s.botUsername, code)
}
