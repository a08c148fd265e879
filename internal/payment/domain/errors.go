package domain

import "errors"

var (
	ErrNotFound              = errors.New("transaction_not_found")
	ErrOrderNotPending       = errors.New("order_not_pending")
	ErrOrderAlreadyPaid      = errors.New("order_already_paid")
	ErrTransactionNotPending = errors.New("transaction_not_pending")
	ErrInvalidMethod         = errors.New("invalid_payment_method")
	ErrInvalidID             = errors.New("invalid_id")
)
