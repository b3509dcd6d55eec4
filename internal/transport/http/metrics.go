package httptransport

import "expvar"

var (
	metricWagerPlacedTotal = expvar.NewInt("wager_placed_total")
	metricWagerErrorsTotal = expvar.NewInt("wager_errors_total")
	metricWagerStakeTotal  = expvar.NewInt("wager_stake_total")
	metricWagerPayoutTotal = expvar.NewInt("wager_payout_total")

	metricDepositCreditedTotal  = expvar.NewInt("deposit_credited_total")
	metricDepositDuplicateTotal = expvar.NewInt("deposit_duplicate_total")
	metricWithdrawalTotal       = expvar.NewInt("withdrawal_requested_total")
	metricWithdrawalErrors      = expvar.NewInt("withdrawal_errors_total")

	metricReferralRedeemTotal = expvar.NewInt("referral_redeem_total")
	metricBroadcastTotal      = expvar.NewInt("broadcast_total")
)
