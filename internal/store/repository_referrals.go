package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrReferralCodeTaken   = errors.New("referral_code_taken")
	ErrUnknownReferralCode = errors.New("unknown_code")
	ErrSelfReferral        = errors.New("self_referral")
	ErrAlreadyReferred     = errors.New("already_referred")
)

// ReferralBonus is the credit paid to each side of a new referral.
type ReferralBonus struct {
	Referee  int64
	Referrer int64
}

// AssignReferralCode stores code unless the account already has one; the stored code
// is returned either way. A code owned by another account yields ErrReferralCodeTaken.
func (s *Store) AssignReferralCode(ctx context.Context, id int64, code string) (string, error) {
	var out string
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockAccount(ctx, tx, id); err != nil {
			return err
		}
		var existing pgtype.Text
		if err := tx.QueryRow(ctx, `SELECT referral_code FROM accounts WHERE id = $1`, id).Scan(&existing); err != nil {
			return err
		}
		if existing.Valid {
			out = existing.String
			return nil
		}
		if _, err := tx.Exec(ctx, `UPDATE accounts SET referral_code = $2, updated_at = now() WHERE id = $1`, id, code); err != nil {
			if isUniqueViolation(err) {
				return ErrReferralCodeTaken
			}
			return err
		}
		out = code
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *Store) AccountIDByReferralCode(ctx context.Context, code string) (int64, error) {
	var id int64
	if err := s.Pool.QueryRow(ctx, `SELECT id FROM accounts WHERE referral_code = $1`, code).Scan(&id); err != nil {
		return 0, mapNotFound(err)
	}
	return id, nil
}

// RegisterReferral links referredID to the owner of code and pays both bonuses.
// Either every effect commits or none does.
func (s *Store) RegisterReferral(ctx context.Context, code string, referredID int64, bonus ReferralBonus) (*Referral, error) {
	var ref Referral
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var referrerID int64
		if err := tx.QueryRow(ctx, `SELECT id FROM accounts WHERE referral_code = $1`, code).Scan(&referrerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUnknownReferralCode
			}
			return err
		}
		if referrerID == referredID {
			return ErrSelfReferral
		}

		first, second := referrerID, referredID
		if second < first {
			first, second = second, first
		}
		if _, err := lockAccount(ctx, tx, first); err != nil {
			return err
		}
		if _, err := lockAccount(ctx, tx, second); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM referrals WHERE referred_id = $1)`, referredID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrAlreadyReferred
		}

		var createdAt pgtype.Timestamptz
		err := tx.QueryRow(ctx, `
			INSERT INTO referrals (referrer_id, referred_id) VALUES ($1, $2)
			RETURNING id, created_at`, referrerID, referredID).Scan(&ref.ID, &createdAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyReferred
			}
			return err
		}
		ref.ReferrerID = referrerID
		ref.ReferredID = referredID
		ref.CreatedAt = createdAt.Time

		entry := Entry{Type: "referral_bonus", RefType: "referral", RefID: code}
		if bonus.Referee > 0 {
			if _, err := applyDelta(ctx, tx, referredID, bonus.Referee, entry); err != nil {
				return err
			}
		}
		if bonus.Referrer > 0 {
			if _, err := applyDelta(ctx, tx, referrerID, bonus.Referrer, entry); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `UPDATE referrals SET bonus_paid = TRUE WHERE id = $1`, ref.ID); err != nil {
			return err
		}
		ref.BonusPaid = true

		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET
				referrals_count = (SELECT COUNT(*) FROM referrals WHERE referrer_id = $1),
				referral_earnings = referral_earnings + $2,
				updated_at = now()
			WHERE id = $1`, referrerID, bonus.Referrer); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE accounts SET referrer_id = $2, updated_at = now()
			WHERE id = $1 AND referrer_id IS NULL`, referredID, referrerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *Store) ReferralStats(ctx context.Context, id int64) (ReferralStats, error) {
	var (
		st   ReferralStats
		code pgtype.Text
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT referral_code, referrals_count, referral_earnings FROM accounts WHERE id = $1`, id).
		Scan(&code, &st.ReferralsCount, &st.ReferralEarnings)
	if err != nil {
		return ReferralStats{}, mapNotFound(err)
	}
	st.Code = textVal(code)
	return st, nil
}

// ListReferrals returns the accounts referred by id, most recent first.
func (s *Store) ListReferrals(ctx context.Context, id int64) ([]ReferralSummary, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT r.referred_id, a.display_name, COALESCE(a.nickname, ''), r.created_at, r.bonus_paid
		FROM referrals r
		JOIN accounts a ON a.id = r.referred_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at DESC, r.id DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReferralSummary
	for rows.Next() {
		var (
			r         ReferralSummary
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&r.ReferredID, &r.DisplayName, &r.Nickname, &createdAt, &r.BonusPaid); err != nil {
			return nil, err
		}
		r.CreatedAt = createdAt.Time
		out = append(out, r)
	}
	return out, rows.Err()
}
