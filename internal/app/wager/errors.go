package wager

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWager = errors.New("invalid_wager")
	ErrRateLimited  = errors.New("rate_limited")
	ErrDrawFailed   = errors.New("draw_failed")
)

var (
	ErrStakeOutOfRange   = fmt.Errorf("stake_out_of_range: %w", ErrInvalidWager)
	ErrInsufficientFunds = fmt.Errorf("insufficient_funds: %w", ErrInvalidWager)
)
