package calc

import (
	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/money"
	"github.com/dealerdesk/taxengine/internal/rules"
)

// CalculateLease applies a jurisdiction's rule set to a lease's capitalized
// cost structure.
//
// The core amortization is method-independent; only the tax base differs:
// PAYMENT taxes each period, TOTAL_CAP_COST taxes the adjusted cap cost at
// signing, SELLING_PRICE taxes the selling price alone at signing.
func CalculateLease(rs *rules.RuleSet, localRate decimal.Decimal, in domain.LeaseInput) (domain.LeaseTaxResult, error) {
	const op = "calc.lease"

	if rs == nil {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "rule set is required")
	}
	if in.TermMonths <= 0 {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "payment count must be positive")
	}
	if in.SellingPrice.IsNegative() {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "selling price must not be negative")
	}
	if in.MoneyFactor.IsNegative() {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "money factor must not be negative")
	}
	if in.ResidualValue.IsNegative() {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "residual value must not be negative")
	}
	if in.CashDown.IsNegative() || in.RebateCapReduction.IsNegative() {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "capitalized cost reductions must not be negative")
	}
	if in.TradeAllowance.IsNegative() || in.TradePayoff.IsNegative() {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "trade-in amounts must not be negative")
	}
	if !money.ValidRate(localRate) {
		return domain.LeaseTaxResult{}, domain.Invalid(op, "local rate must be a fraction in [0, 1]")
	}

	var result domain.LeaseTaxResult

	grossCap := in.SellingPrice
	upfrontFees := decimal.Zero
	for _, f := range in.Fees {
		if f.Amount.IsNegative() {
			return domain.LeaseTaxResult{}, domain.Invalid(op, "fee amounts must not be negative")
		}
		if f.Capitalized {
			grossCap = grossCap.Add(f.Amount)
		} else {
			upfrontFees = upfrontFees.Add(f.Amount)
		}
	}

	// Trade equity is a single signed term: positive equity reduces the cap
	// cost, negative equity (payoff above allowance) raises it.
	tradeEquity := in.TradeAllowance.Sub(in.TradePayoff)
	capReduction := in.CashDown.Add(in.RebateCapReduction).Add(tradeEquity)
	adjCap := grossCap.Sub(capReduction)

	result.GrossCapCost = money.RoundCents(grossCap)
	result.TotalCapReduction = money.RoundCents(in.CashDown.Add(in.RebateCapReduction).Add(money.Clamp0(tradeEquity)))
	result.NegativeEquity = money.RoundCents(money.Clamp0(tradeEquity.Neg()))
	result.AdjustedCapCost = money.RoundCents(adjCap)
	if result.NegativeEquity.IsPositive() {
		result.Notes = append(result.Notes, "negative trade equity added to the capitalized cost")
	}

	// A reduction larger than the gross cap cost floors the tax base and
	// the payment at zero; they are never negative.
	taxableCap := money.Clamp0(adjCap)
	if adjCap.IsNegative() {
		result.Notes = append(result.Notes, "capitalized cost reduction exceeds the gross capitalized cost; tax base floored at zero")
	}

	term := decimal.NewFromInt(int64(in.TermMonths))
	depreciation := adjCap.Sub(in.ResidualValue).Div(term)
	rentCharge := adjCap.Add(in.ResidualValue).Mul(in.MoneyFactor)

	basePayment := money.Clamp0(depreciation.Add(rentCharge))
	if in.BasePayment.IsPositive() {
		basePayment = in.BasePayment
		result.Notes = append(result.Notes, "base payment supplied by caller; computed payment not used")
	}

	taxRate := rs.StateRate
	if rs.Scheme == rules.SchemeStateLocal {
		taxRate = taxRate.Add(localRate)
	}
	if rs.Scheme == rules.SchemeNoSalesTax {
		taxRate = decimal.Zero
		result.Notes = append(result.Notes, "no sales or use tax levied on leases in "+rs.State)
	}

	monthlyTax := decimal.Zero
	upfrontTax := decimal.Zero
	switch rs.LeaseMethod {
	case rules.LeasePayment:
		monthlyTax = basePayment.Mul(taxRate)
	case rules.LeaseTotalCapCost:
		upfrontTax = taxableCap.Mul(taxRate)
	case rules.LeaseSellingPrice:
		upfrontTax = in.SellingPrice.Mul(taxRate)
	default:
		return domain.LeaseTaxResult{}, domain.Errorf(domain.EINVALID, op,
			"unhandled lease tax method: %s", rs.LeaseMethod)
	}

	// Rounding happens per displayed component; the monthly payment is the
	// sum of the rounded base and rounded tax, as printed on a contract.
	result.Depreciation = money.RoundCents(depreciation)
	result.RentCharge = money.RoundCents(rentCharge)
	result.BasePayment = money.RoundCents(basePayment)
	result.MonthlyTax = money.RoundCents(monthlyTax)
	result.MonthlyPayment = result.BasePayment.Add(result.MonthlyTax)
	result.UpfrontTax = money.RoundCents(upfrontTax)

	upfrontFees = money.RoundCents(upfrontFees)
	cashDown := money.RoundCents(in.CashDown)

	// Drive-off collects the first payment plus the non-recurring pieces;
	// the total of payments already includes period one, so total lease
	// cost adds only the non-recurring components on top of it.
	result.DriveOffTotal = result.MonthlyPayment.Add(cashDown).Add(upfrontFees).Add(result.UpfrontTax)
	result.TotalOfPayments = result.MonthlyPayment.Mul(term)
	result.TotalLeaseCost = result.TotalOfPayments.Add(cashDown).Add(upfrontFees).Add(result.UpfrontTax)

	result.APR = money.MoneyFactorToAPR(in.MoneyFactor).Round(4)

	result.Breakdown = leaseBreakdown(result, upfrontFees)
	return result, nil
}

func leaseBreakdown(r domain.LeaseTaxResult, upfrontFees decimal.Decimal) []domain.BreakdownLine {
	var lines []domain.BreakdownLine
	add := func(kind domain.LineKind, desc string, amount decimal.Decimal) {
		if !amount.IsZero() {
			lines = append(lines, domain.BreakdownLine{Kind: kind, Description: desc, Amount: amount})
		}
	}

	add(domain.LineCredit, "Capitalized cost reduction", r.TotalCapReduction.Neg())
	add(domain.LineFee, "Negative equity capitalized", r.NegativeEquity)
	add(domain.LineTax, "Monthly lease tax", r.MonthlyTax)
	add(domain.LineTax, "Upfront lease tax", r.UpfrontTax)
	add(domain.LineFee, "Upfront fees", upfrontFees)
	return lines
}
