package rules

import (
	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/money"
)

// regFeeFormula computes registration from vehicle value: percent of price,
// floored and capped. A named exception table, not a general mechanism.
type regFeeFormula struct {
	Percent decimal.Decimal
	Floor   decimal.Decimal
	Ceiling decimal.Decimal
}

func (f regFeeFormula) apply(price decimal.Decimal) decimal.Decimal {
	fee := price.Mul(f.Percent)
	if fee.LessThan(f.Floor) {
		return f.Floor
	}
	if f.Ceiling.IsPositive() && fee.GreaterThan(f.Ceiling) {
		return f.Ceiling
	}
	return fee
}

// regFeeFormulas lists the states whose first-year registration is keyed on
// vehicle value rather than the rule set's flat base fee.
var regFeeFormulas = map[string]regFeeFormula{
	"CO": {
		Percent: decimal.NewFromFloat(0.021),
		Floor:   decimal.NewFromInt(75),
		Ceiling: decimal.NewFromInt(900),
	},
	"IA": {
		Percent: decimal.NewFromFloat(0.01),
		Floor:   decimal.NewFromInt(60),
		Ceiling: decimal.NewFromInt(400),
	},
}

// RegistrationFeeFor returns the registration fee for a vehicle priced at
// price under rs, and whether a value-based formula was used.
func RegistrationFeeFor(rs *RuleSet, price decimal.Decimal) (decimal.Decimal, bool) {
	if f, ok := regFeeFormulas[rs.State]; ok {
		return money.RoundCents(f.apply(price)), true
	}
	return rs.RegistrationFee, false
}
