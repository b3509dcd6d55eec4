package account

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidNickname = errors.New("invalid_nickname")
	ErrAccountNotFound = errors.New("account_not_found")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrNegativeBalance = errors.New("negative_balance")
)
