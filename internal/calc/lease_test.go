package calc_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/taxengine/internal/calc"
	"github.com/dealerdesk/taxengine/internal/domain"
)

// standardLease is the shared lease shape used across the method tests:
// $33,500 selling price, $21,000 residual, 36 months at a 0.002 money
// factor, $595 acquisition and $85 doc fee capitalized, $450 DMV fees due
// at signing, and $6,000 of cap reduction ($3,500 cash, $1,500 trade
// equity, $1,000 rebate).
func standardLease() domain.LeaseInput {
	return domain.LeaseInput{
		SellingPrice:       d("33500"),
		ResidualValue:      d("21000"),
		TermMonths:         36,
		MoneyFactor:        d("0.002"),
		CashDown:           d("3500"),
		TradeAllowance:     d("1500"),
		RebateCapReduction: d("1000"),
		Fees: []domain.FeeItem{
			{Description: "Acquisition fee", Category: domain.CategoryOther, Amount: d("595"), Capitalized: true},
			{Description: "Documentation fee", Category: domain.CategoryDocFee, Amount: d("85"), Capitalized: true},
			{Description: "DMV fees", Category: domain.CategoryGovernment, Amount: d("450")},
		},
	}
}

// Test_CalculateLease_MonthlyPaymentMethod validates the payment-method
// amortization end to end at a 9.5% combined rate: $297.80 base payment,
// $28.29 monthly tax, $326.09 monthly payment, $4,276.09 due at signing.
func Test_CalculateLease_MonthlyPaymentMethod(t *testing.T) {
	rs := mustRules(t, "CA")

	result, err := calc.CalculateLease(rs, d("0.035"), standardLease())
	require.NoError(t, err)

	assert.True(t, result.GrossCapCost.Equal(d("34180")), "33500 + 595 + 85, got %s", result.GrossCapCost)
	assert.True(t, result.TotalCapReduction.Equal(d("6000")), "got %s", result.TotalCapReduction)
	assert.True(t, result.AdjustedCapCost.Equal(d("28180")), "got %s", result.AdjustedCapCost)

	assert.True(t, result.Depreciation.Equal(d("199.44")), "(28180 - 21000) / 36, got %s", result.Depreciation)
	assert.True(t, result.RentCharge.Equal(d("98.36")), "(28180 + 21000) * 0.002, got %s", result.RentCharge)
	assert.True(t, result.BasePayment.Equal(d("297.8")), "got %s", result.BasePayment)

	assert.True(t, result.MonthlyTax.Equal(d("28.29")), "297.80 * 0.095, got %s", result.MonthlyTax)
	assert.True(t, result.MonthlyPayment.Equal(d("326.09")), "got %s", result.MonthlyPayment)
	assert.True(t, result.UpfrontTax.IsZero(), "payment method collects no tax at signing")

	assert.True(t, result.DriveOffTotal.Equal(d("4276.09")),
		"326.09 payment + 3500 cash + 450 fees, got %s", result.DriveOffTotal)
	assert.True(t, result.TotalOfPayments.Equal(d("11739.24")), "326.09 * 36, got %s", result.TotalOfPayments)
	assert.True(t, result.TotalLeaseCost.Equal(d("15689.24")), "got %s", result.TotalLeaseCost)

	assert.True(t, result.APR.Equal(d("4.8")), "0.002 * 2400, got %s", result.APR)
}

// Test_CalculateLease_TotalCapCostMethod validates the Texas shape: tax on
// the full adjusted cap cost at signing, none on the payments.
func Test_CalculateLease_TotalCapCostMethod(t *testing.T) {
	rs := mustRules(t, "TX")

	result, err := calc.CalculateLease(rs, decimal.Zero, standardLease())
	require.NoError(t, err)

	assert.True(t, result.MonthlyTax.IsZero())
	assert.True(t, result.MonthlyPayment.Equal(d("297.8")), "untaxed payment, got %s", result.MonthlyPayment)
	assert.True(t, result.UpfrontTax.Equal(d("1761.25")), "28180 * 0.0625, got %s", result.UpfrontTax)
	assert.True(t, result.DriveOffTotal.Equal(d("6009.05")),
		"297.80 + 3500 + 450 + 1761.25, got %s", result.DriveOffTotal)
}

// Test_CalculateLease_SellingPriceMethod validates that the selling-price
// base ignores cap reductions and capitalized fees entirely.
func Test_CalculateLease_SellingPriceMethod(t *testing.T) {
	rs := mustRules(t, "IL")

	result, err := calc.CalculateLease(rs, decimal.Zero, standardLease())
	require.NoError(t, err)
	assert.True(t, result.UpfrontTax.Equal(d("2093.75")), "33500 * 0.0625, got %s", result.UpfrontTax)
	assert.True(t, result.MonthlyTax.IsZero())

	// Doubling the cash down changes the payment but not the tax base.
	heavier := standardLease()
	heavier.CashDown = d("7000")
	again, err := calc.CalculateLease(rs, decimal.Zero, heavier)
	require.NoError(t, err)
	assert.True(t, again.UpfrontTax.Equal(result.UpfrontTax))
	assert.True(t, again.BasePayment.LessThan(result.BasePayment))
}

func Test_CalculateLease_NegativeEquity(t *testing.T) {
	rs := mustRules(t, "CA")

	in := standardLease()
	in.TradeAllowance = d("5000")
	in.TradePayoff = d("8000")

	result, err := calc.CalculateLease(rs, d("0.035"), in)
	require.NoError(t, err)

	assert.True(t, result.NegativeEquity.Equal(d("3000")), "payoff 8000 - allowance 5000, got %s", result.NegativeEquity)
	assert.True(t, result.TotalCapReduction.Equal(d("4500")),
		"cash 3500 + rebate 1000; negative equity is not a reduction, got %s", result.TotalCapReduction)
	assert.True(t, result.AdjustedCapCost.Equal(d("32680")),
		"34180 - 3500 - 1000 + 3000, got %s", result.AdjustedCapCost)
	assert.Contains(t, result.Notes, "negative trade equity added to the capitalized cost")
}

// Test_CalculateLease_OverReducedCapCost pins the floor: a cap reduction
// above the gross capitalized cost never drives the tax base or the payment
// below zero.
func Test_CalculateLease_OverReducedCapCost(t *testing.T) {
	in := domain.LeaseInput{
		SellingPrice:  d("10000"),
		ResidualValue: d("4000"),
		TermMonths:    36,
		MoneyFactor:   d("0.002"),
		CashDown:      d("15000"),
	}

	t.Run("upfront method", func(t *testing.T) {
		rs := mustRules(t, "TX")

		result, err := calc.CalculateLease(rs, decimal.Zero, in)
		require.NoError(t, err)

		assert.True(t, result.UpfrontTax.IsZero(), "got %s", result.UpfrontTax)
		assert.True(t, result.BasePayment.IsZero(), "got %s", result.BasePayment)
		assert.False(t, result.MonthlyPayment.IsNegative())
		assert.False(t, result.DriveOffTotal.IsNegative())
		assert.True(t, result.AdjustedCapCost.Equal(d("-5000")),
			"the reported cap cost keeps its sign, got %s", result.AdjustedCapCost)
		assert.Contains(t, result.Notes,
			"capitalized cost reduction exceeds the gross capitalized cost; tax base floored at zero")
	})

	t.Run("payment method", func(t *testing.T) {
		rs := mustRules(t, "CA")

		result, err := calc.CalculateLease(rs, d("0.035"), in)
		require.NoError(t, err)

		assert.True(t, result.BasePayment.IsZero())
		assert.True(t, result.MonthlyTax.IsZero(), "no payment means no payment tax, got %s", result.MonthlyTax)
	})
}

func Test_CalculateLease_BasePaymentOverride(t *testing.T) {
	rs := mustRules(t, "CA")

	in := standardLease()
	in.BasePayment = d("310")

	result, err := calc.CalculateLease(rs, d("0.035"), in)
	require.NoError(t, err)

	assert.True(t, result.BasePayment.Equal(d("310")))
	assert.True(t, result.MonthlyTax.Equal(d("29.45")), "310 * 0.095, got %s", result.MonthlyTax)
	assert.Contains(t, result.Notes, "base payment supplied by caller; computed payment not used")
}

func Test_CalculateLease_NoSalesTaxState(t *testing.T) {
	rs := mustRules(t, "OR")

	result, err := calc.CalculateLease(rs, decimal.Zero, standardLease())
	require.NoError(t, err)

	assert.True(t, result.MonthlyTax.IsZero())
	assert.True(t, result.UpfrontTax.IsZero())
	assert.True(t, result.MonthlyPayment.Equal(result.BasePayment))
	assert.NotEmpty(t, result.Notes)
}

func Test_CalculateLease_StateOnlyIgnoresLocalRate(t *testing.T) {
	rs := mustRules(t, "TX")

	with, err := calc.CalculateLease(rs, d("0.02"), standardLease())
	require.NoError(t, err)
	without, err := calc.CalculateLease(rs, decimal.Zero, standardLease())
	require.NoError(t, err)

	assert.True(t, with.UpfrontTax.Equal(without.UpfrontTax),
		"a state-only scheme never stacks a local rate")
}

func Test_CalculateLease_InvalidInputs(t *testing.T) {
	rs := mustRules(t, "CA")

	t.Run("nil rule set", func(t *testing.T) {
		_, err := calc.CalculateLease(nil, decimal.Zero, standardLease())
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("zero term", func(t *testing.T) {
		in := standardLease()
		in.TermMonths = 0
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative money factor", func(t *testing.T) {
		in := standardLease()
		in.MoneyFactor = d("-0.001")
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative selling price", func(t *testing.T) {
		in := standardLease()
		in.SellingPrice = d("-1")
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative local rate", func(t *testing.T) {
		_, err := calc.CalculateLease(rs, d("-0.01"), standardLease())
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative residual value", func(t *testing.T) {
		in := standardLease()
		in.ResidualValue = d("-100")
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative cash down", func(t *testing.T) {
		in := standardLease()
		in.CashDown = d("-500")
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative trade allowance", func(t *testing.T) {
		in := standardLease()
		in.TradeAllowance = d("-1")
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative fee amount", func(t *testing.T) {
		in := standardLease()
		in.Fees = append(in.Fees, domain.FeeItem{Description: "Credit", Category: domain.CategoryOther, Amount: d("-50")})
		_, err := calc.CalculateLease(rs, decimal.Zero, in)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})
}

func Test_CalculateLease_Deterministic(t *testing.T) {
	rs := mustRules(t, "CA")

	first, err := calc.CalculateLease(rs, d("0.035"), standardLease())
	require.NoError(t, err)
	second, err := calc.CalculateLease(rs, d("0.035"), standardLease())
	require.NoError(t, err)

	assert.True(t, first.MonthlyPayment.Equal(second.MonthlyPayment))
	assert.True(t, first.DriveOffTotal.Equal(second.DriveOffTotal))
	assert.True(t, first.TotalLeaseCost.Equal(second.TotalLeaseCost))
}

func Test_CalculateLease_BreakdownLines(t *testing.T) {
	rs := mustRules(t, "TX")

	result, err := calc.CalculateLease(rs, decimal.Zero, standardLease())
	require.NoError(t, err)

	byDesc := make(map[string]domain.BreakdownLine)
	for _, line := range result.Breakdown {
		byDesc[line.Description] = line
	}

	reduction, ok := byDesc["Capitalized cost reduction"]
	require.True(t, ok)
	assert.Equal(t, domain.LineCredit, reduction.Kind)
	assert.True(t, reduction.Amount.IsNegative())

	upfront, ok := byDesc["Upfront lease tax"]
	require.True(t, ok)
	assert.Equal(t, domain.LineTax, upfront.Kind)
	assert.True(t, upfront.Amount.Equal(result.UpfrontTax))

	_, hasMonthly := byDesc["Monthly lease tax"]
	assert.False(t, hasMonthly, "zero lines stay out of the breakdown")
}
