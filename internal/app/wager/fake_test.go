package wager

import (
	"context"
	"errors"
	"sync"
	"time"

	"star-casino/internal/outcome"
	"star-casino/internal/store"
)

type stats struct {
	played, won, wagered, net int64
}

type memLedger struct {
	mu       sync.Mutex
	balances map[int64]int64
	stats    map[int64]stats
	entries  map[int64][]int64
	settled  map[string]int
}

func newMemLedger(seed map[int64]int64) *memLedger {
	l := &memLedger{
		balances: map[int64]int64{},
		stats:    map[int64]stats{},
		entries:  map[int64][]int64{},
		settled:  map[string]int{},
	}
	for id, bal := range seed {
		l.balances[id] = bal
		l.entries[id] = append(l.entries[id], bal)
	}
	return l
}

func (l *memLedger) Balance(_ context.Context, id int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[id], nil
}

func (l *memLedger) adjust(id, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.balances[id] + delta
	if next < 0 {
		return 0, store.ErrInsufficientBalance
	}
	l.balances[id] = next
	l.entries[id] = append(l.entries[id], delta)
	return next, nil
}

func (l *memLedger) DebitStake(_ context.Context, id int64, _ string, amount int64) (int64, error) {
	return l.adjust(id, -amount)
}

func (l *memLedger) RefundStake(_ context.Context, id int64, _ string, amount int64) (int64, error) {
	return l.adjust(id, amount)
}

func (l *memLedger) SettleWager(_ context.Context, id int64, wagerID string, stake, payout int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if payout > 0 {
		l.balances[id] += payout
		l.entries[id] = append(l.entries[id], payout)
	}
	s := l.stats[id]
	s.played++
	if payout > 0 {
		s.won++
	}
	s.wagered += stake
	s.net += payout - stake
	l.stats[id] = s
	l.settled[wagerID]++
	return l.balances[id], nil
}

func (l *memLedger) entrySum(id int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var sum int64
	for _, v := range l.entries[id] {
		sum += v
	}
	return sum
}

type fixedRoller struct {
	draw  int
	err   error
	delay time.Duration
	hook  func()
}

func (r *fixedRoller) Roll(ctx context.Context, _ int64, _ outcome.Variant) (int, error) {
	if r.hook != nil {
		r.hook()
	}
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return r.draw, r.err
}

type denyLimiter struct {
	allow bool
	err   error
}

func (d denyLimiter) Allow(context.Context, string) (bool, error) {
	return d.allow, d.err
}

var errRollerDown = errors.New("roller down")
