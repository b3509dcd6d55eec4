package mcpserver

import "star-casino/internal/ledger"

const (
	defaultPageLimit    = 50
	maxPageLimit        = 500
	maxLeaderboardLimit = 100
	mcpOperator         = "mcp"
)

func clampPagination(limit, offset, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func isAllowedEntryType(v string) bool {
	switch v {
	case "", ledger.WagerDebit, ledger.WagerPayout, ledger.WagerRefund,
		ledger.DepositCredit, ledger.WithdrawalDebit, ledger.WithdrawalRefund,
		ledger.ReferralBonus, ledger.AdminAdjust, ledger.AdminSet:
		return true
	}
	return false
}
