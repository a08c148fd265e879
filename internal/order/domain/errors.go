package domain

import "errors"

var (
	ErrNotFound        = errors.New("order_not_found")
	ErrOrderNotPending = errors.New("order_not_pending")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrInvalidID       = errors.New("invalid_id")
)
