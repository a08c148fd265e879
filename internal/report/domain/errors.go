package domain

import "errors"

var (
	ErrNotFound     = errors.New("summary_not_found")
	ErrInvalidRange = errors.New("invalid_date_range")
)
