package payment

import "errors"

var (
	ErrInvalidAmount              = errors.New("invalid_amount")
	ErrInvalidPayload             = errors.New("invalid_payload")
	ErrInsufficientFunds          = errors.New("insufficient_funds")
	ErrWithdrawalBelowMinimum     = errors.New("withdrawal_below_minimum")
	ErrPaymentLinkCreationFailed  = errors.New("payment_link_creation_failed")
	ErrWithdrawalForwardingFailed = errors.New("withdrawal_forwarding_failed")
)
