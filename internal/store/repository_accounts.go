package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const accountColumns = `id, display_name, nickname, balance, games_played, games_won, total_wagered,
	net_profit, referral_code, referrer_id, referrals_count, referral_earnings, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var (
		a          Account
		nickname   pgtype.Text
		code       pgtype.Text
		referrerID pgtype.Int8
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&a.ID, &a.DisplayName, &nickname, &a.Balance, &a.GamesPlayed, &a.GamesWon,
		&a.TotalWagered, &a.NetProfit, &code, &referrerID, &a.ReferralsCount, &a.ReferralEarnings,
		&createdAt, &updatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	a.Nickname = textVal(nickname)
	a.ReferralCode = textVal(code)
	a.ReferrerID = int64PtrVal(referrerID)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}

// EnsureAccount provisions the account on first contact. Repeat calls only refresh the
// display name. created reports whether the row was inserted by this call.
func (s *Store) EnsureAccount(ctx context.Context, id int64, displayName string) (bool, error) {
	var created bool
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO accounts (id, display_name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, updated_at = now()
		RETURNING (xmax = 0)`, id, displayName).Scan(&created)
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*Account, error) {
	return scanAccount(s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetBalance returns 0 for accounts that were never provisioned.
func (s *Store) GetBalance(ctx context.Context, id int64) (int64, error) {
	var bal int64
	err := s.Pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1`, id).Scan(&bal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return bal, nil
}

// lockAccount creates the row if missing and takes its row lock for the rest of tx.
func lockAccount(ctx context.Context, tx pgx.Tx, id int64) (int64, error) {
	if _, err := tx.Exec(ctx, `INSERT INTO accounts (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return 0, err
	}
	var bal int64
	if err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	return bal, nil
}

// applyDelta moves the balance of a locked account and writes the matching ledger entry.
func applyDelta(ctx context.Context, tx pgx.Tx, id, delta int64, e Entry) (int64, error) {
	bal, err := lockAccount(ctx, tx, id)
	if err != nil {
		return 0, err
	}
	newBal := bal + delta
	if newBal < 0 {
		return 0, ErrInsufficientBalance
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2, updated_at = now() WHERE id = $1`, id, newBal); err != nil {
		return 0, err
	}
	if err := insertLedgerEntry(ctx, tx, id, delta, newBal, e); err != nil {
		return 0, err
	}
	return newBal, nil
}

// AdjustBalance applies a signed delta atomically and returns the new balance.
func (s *Store) AdjustBalance(ctx context.Context, id, delta int64, e Entry) (int64, error) {
	var newBal int64
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		newBal, err = applyDelta(ctx, tx, id, delta, e)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) Debit(ctx context.Context, id, amount int64, e Entry) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit %d: %w", amount, ErrInvalidAmount)
	}
	return s.AdjustBalance(ctx, id, -amount, e)
}

func (s *Store) Credit(ctx context.Context, id, amount int64, e Entry) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit %d: %w", amount, ErrInvalidAmount)
	}
	return s.AdjustBalance(ctx, id, amount, e)
}

// SetBalance overwrites the balance. The ledger entry carries the difference.
func (s *Store) SetBalance(ctx context.Context, id, value int64, e Entry) (int64, error) {
	if value < 0 {
		return 0, fmt.Errorf("set balance %d: %w", value, ErrInvalidAmount)
	}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		bal, err := lockAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = applyDelta(ctx, tx, id, value-bal, e)
		return err
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func recordOutcome(ctx context.Context, tx pgx.Tx, id, stake, payout int64) error {
	won := 0
	if payout > 0 {
		won = 1
	}
	tag, err := tx.Exec(ctx, `
		UPDATE accounts SET
			games_played = games_played + 1,
			games_won = games_won + $2,
			total_wagered = total_wagered + $3,
			net_profit = net_profit + $4,
			updated_at = now()
		WHERE id = $1`, id, won, stake, payout-stake)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordWagerOutcome updates the play statistics of one resolved wager.
func (s *Store) RecordWagerOutcome(ctx context.Context, id, stake, payout int64) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockAccount(ctx, tx, id); err != nil {
			return err
		}
		return recordOutcome(ctx, tx, id, stake, payout)
	})
}

// SettleWager credits the payout (when positive) and records the outcome in one transaction.
func (s *Store) SettleWager(ctx context.Context, id, stake, payout int64, e Entry) (int64, error) {
	var bal int64
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if payout > 0 {
			bal, err = applyDelta(ctx, tx, id, payout, e)
		} else {
			bal, err = lockAccount(ctx, tx, id)
		}
		if err != nil {
			return err
		}
		return recordOutcome(ctx, tx, id, stake, payout)
	})
	if err != nil {
		return 0, err
	}
	return bal, nil
}

func (s *Store) SetNickname(ctx context.Context, id int64, nickname string) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO accounts (id, nickname) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET nickname = EXCLUDED.nickname, updated_at = now()`,
		id, textParam(nickname))
	return err
}

// TopAccounts orders by balance, ties broken by provisioning order.
func (s *Store) TopAccounts(ctx context.Context, limit int) ([]LeaderRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, display_name, COALESCE(nickname, ''), balance
		FROM accounts
		ORDER BY balance DESC, created_seq ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderRow, 0, limit)
	for rows.Next() {
		var r LeaderRow
		if err := rows.Scan(&r.AccountID, &r.DisplayName, &r.Nickname, &r.Balance); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GlobalAggregate(ctx context.Context) (GlobalAggregate, error) {
	var g GlobalAggregate
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(balance), 0)::BIGINT,
			COALESCE(SUM(games_played), 0)::BIGINT,
			COALESCE(SUM(total_wagered), 0)::BIGINT,
			COALESCE(SUM(net_profit), 0)::BIGINT
		FROM accounts`).Scan(&g.Accounts, &g.Balance, &g.GamesPlayed, &g.TotalWagered, &g.NetProfit)
	return g, err
}

func (s *Store) ListAccountIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id FROM accounts ORDER BY created_seq`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}
