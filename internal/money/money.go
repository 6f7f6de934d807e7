// Package money holds the shared currency arithmetic conventions: decimal
// fixed-point everywhere inside the calculators, rounding to cents only at
// output boundaries.
package money

import "github.com/shopspring/decimal"

func init() {
	// Division shows up in amortization and effective-rate math; the default
	// 16 digits is not enough headroom to keep cent-level assertions stable.
	if decimal.DivisionPrecision < 24 {
		decimal.DivisionPrecision = 24
	}
}

var moneyFactorScale = decimal.NewFromInt(2400)

// RoundCents rounds half-up to two decimal places. Call only when a value
// leaves the engine; never round intermediate sums or amortization terms.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Clamp0 returns d, floored at zero.
func Clamp0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MoneyFactorToAPR converts a lease money factor to its APR equivalent.
// apr = money factor x 2400.
func MoneyFactorToAPR(mf decimal.Decimal) decimal.Decimal {
	return mf.Mul(moneyFactorScale)
}

// APRToMoneyFactor converts an APR to a lease money factor.
// money factor = apr / 2400.
func APRToMoneyFactor(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(moneyFactorScale)
}

// ValidRate reports whether r is a fraction in [0, 1].
func ValidRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}
