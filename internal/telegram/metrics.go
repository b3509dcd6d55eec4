package telegram

import "expvar"

var (
	metricAPICallsTotal  = expvar.NewInt("telegram_api_calls_total")
	metricAPIErrorsTotal = expvar.NewInt("telegram_api_errors_total")
	metricDiceRollsTotal = expvar.NewInt("telegram_dice_rolls_total")
)
