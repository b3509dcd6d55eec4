package httptransport

import (
	"errors"
	"net/http"

	appaccount "star-casino/internal/app/account"
	apppayment "star-casino/internal/app/payment"
	appreferral "star-casino/internal/app/referral"
	appwager "star-casino/internal/app/wager"
	"star-casino/internal/outcome"

	"github.com/rs/zerolog/log"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is checked in order; more specific sentinels come first.
var errorTable = []errorMapping{
	{appwager.ErrStakeOutOfRange, http.StatusBadRequest, "stake_out_of_range"},
	{appwager.ErrInsufficientFunds, http.StatusBadRequest, "insufficient_funds"},
	{appwager.ErrInvalidWager, http.StatusBadRequest, "invalid_wager"},
	{appwager.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{appwager.ErrDrawFailed, http.StatusBadGateway, "draw_failed"},
	{outcome.ErrUnknownVariant, http.StatusBadRequest, "unknown_variant"},

	{appaccount.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{appaccount.ErrInvalidNickname, http.StatusBadRequest, "invalid_nickname"},
	{appaccount.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{appaccount.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{appaccount.ErrNegativeBalance, http.StatusConflict, "negative_balance"},

	{appreferral.ErrCodeGenerationFailed, http.StatusServiceUnavailable, "referral_code_generation_failed"},

	{apppayment.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{apppayment.ErrInvalidPayload, http.StatusBadRequest, "invalid_payload"},
	{apppayment.ErrInsufficientFunds, http.StatusBadRequest, "insufficient_funds"},
	{apppayment.ErrWithdrawalBelowMinimum, http.StatusBadRequest, "withdrawal_below_minimum"},
	{apppayment.ErrPaymentLinkCreationFailed, http.StatusBadGateway, "payment_link_creation_failed"},
	{apppayment.ErrWithdrawalForwardingFailed, http.StatusBadGateway, "withdrawal_forwarding_failed"},
}

func statusForError(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// writeServiceError maps a service error to its status and code. Unmapped errors are
// logged and surface as internal_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("code", code).Msg("request failed")
	}
	WriteHTTPError(w, status, code)
}
