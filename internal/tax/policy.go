// Package tax resolves the tax rate applied to an order line.
//
// Rates are fractions in basis points over a denominator of 10000, which
// gives four decimal digits of rate precision without floating point:
// a 10% rate is 1000 bp, and tax on a 60000 subtotal is 6000 exactly.
package tax

import (
	catalogdomain "github.com/warungkit/warungpos/internal/catalog/domain"
)

// RateDenominator converts basis points to a fraction.
const RateDenominator = 10000

// Resolve returns the rate for one line item. Non-taxable items are never
// taxed regardless of any rate fields; a per-item custom rate overrides
// the store default.
func Resolve(settings catalogdomain.TaxSettings, item catalogdomain.MenuItem) (rateBp int64, taxable bool) {
	if !item.IsTaxable {
		return 0, false
	}
	if item.CustomTaxRateBp != nil {
		return *item.CustomTaxRateBp, true
	}
	return settings.DefaultTaxRateBp, true
}

// LineTax computes tax on a subtotal in integer arithmetic, rounding
// half-up on the remainder.
func LineTax(subtotal, rateBp int64) int64 {
	product := subtotal * rateBp
	tax := product / RateDenominator
	if product%RateDenominator >= RateDenominator/2 {
		tax++
	}
	return tax
}
