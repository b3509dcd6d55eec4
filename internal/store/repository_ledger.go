package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerFilter struct {
	AccountID int64
	Type      string
	From      *time.Time
	To        *time.Time
}

func insertLedgerEntry(ctx context.Context, tx pgx.Tx, accountID, amount, balanceAfter int64, e Entry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO ledger_entries (id, account_id, type, amount, balance_after, ref_type, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		NewID(), accountID, e.Type, amount, balanceAfter, e.RefType, e.RefID)
	return err
}

func (s *Store) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, account_id, type, amount, balance_after, ref_type, ref_id, created_at
		FROM ledger_entries
		WHERE ($1::BIGINT IS NULL OR account_id = $1)
			AND ($2::TEXT IS NULL OR type = $2)
			AND ($3::TIMESTAMPTZ IS NULL OR created_at >= $3)
			AND ($4::TIMESTAMPTZ IS NULL OR created_at < $4)
		ORDER BY created_at DESC, id DESC
		LIMIT $5 OFFSET $6`,
		int8Param(f.AccountID), textParam(f.Type), timeParam(f.From), timeParam(f.To), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LedgerEntry, 0, limit)
	for rows.Next() {
		var (
			e         LedgerEntry
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Type, &e.Amount, &e.BalanceAfter, &e.RefType, &e.RefID, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

// LedgerSum totals the signed entry amounts of one account; it equals the balance.
func (s *Store) LedgerSum(ctx context.Context, accountID int64) (int64, error) {
	var sum int64
	err := s.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::BIGINT FROM ledger_entries WHERE account_id = $1`, accountID).Scan(&sum)
	return sum, err
}
