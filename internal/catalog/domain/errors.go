package domain

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category_not_found")
	ErrItemNotFound        = errors.New("menu_item_not_found")
	ErrTaxSettingsNotFound = errors.New("tax_settings_not_configured")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidTaxRate      = errors.New("invalid_tax_rate")
	ErrInvalidID           = errors.New("invalid_id")
)
