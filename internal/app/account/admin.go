package account

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"star-casino/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func (s *Service) AdminBalance(ctx context.Context, id int64) (int64, error) {
	a, err := s.store.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return a.Balance, nil
}

func (s *Service) AdminAdjust(ctx context.Context, id, delta int64, operator string) (int64, error) {
	if delta == 0 {
		return 0, ErrInvalidAmount
	}
	bal, err := s.ledger.AdminAdjust(ctx, id, delta, operator)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return 0, ErrNegativeBalance
		}
		return 0, err
	}
	log.Warn().Int64("user_id", id).Int64("delta", delta).Int64("balance", bal).Str("operator", operator).Msg("admin balance adjust")
	return bal, nil
}

func (s *Service) AdminSet(ctx context.Context, id, value int64, operator string) (int64, error) {
	if value < 0 {
		return 0, ErrInvalidAmount
	}
	bal, err := s.ledger.AdminSet(ctx, id, value, operator)
	if err != nil {
		return 0, err
	}
	log.Warn().Int64("user_id", id).Int64("balance", bal).Str("operator", operator).Msg("admin balance set")
	return bal, nil
}

func (s *Service) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	g, err := s.store.GlobalAggregate(ctx)
	if err != nil {
		return nil, err
	}
	return &GlobalStats{
		Accounts:       g.Accounts,
		TotalBalance:   g.Balance,
		GamesPlayed:    g.GamesPlayed,
		TotalWagered:   g.TotalWagered,
		CasinoProfit:   g.CasinoProfit(),
		AvgBalance:     ratio(g.Balance, g.Accounts),
		AvgGamesPlayed: ratio(g.GamesPlayed, g.Accounts),
		AvgWagered:     ratio(g.TotalWagered, g.Accounts),
	}, nil
}

// Broadcast sends message to every account. Delivery failures are counted, not retried.
func (s *Service) Broadcast(ctx context.Context, message string) (*BroadcastResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidRequest
	}
	ids, err := s.store.ListAccountIDs(ctx)
	if err != nil {
		return nil, err
	}

	var sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for _, id := range ids {
		g.Go(func() error {
			if err := s.notifier.SendMessage(gctx, id, message); err != nil {
				failed.Add(1)
				log.Debug().Err(err).Int64("user_id", id).Msg("broadcast delivery failed")
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := &BroadcastResult{Recipients: len(ids), Sent: int(sent.Load()), Failed: int(failed.Load())}
	log.Info().Int("recipients", res.Recipients).Int("sent", res.Sent).Int("failed", res.Failed).Msg("broadcast finished")
	return res, nil
}
