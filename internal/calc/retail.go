// Package calc holds the retail and lease tax calculators. Both are pure:
// no I/O, no shared state, deterministic for identical inputs, safe to call
// concurrently.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/money"
	"github.com/dealerdesk/taxengine/internal/rules"
)

// CalculateRetail applies a jurisdiction's rule set and resolved local rate
// to a retail deal.
//
// Order of operations: rebate, trade-in credit, taxable fee add-backs,
// clamp, state/local/luxury components, tax cap, fees, breakdown. All
// intermediate math stays unrounded; outputs are rounded to cents.
func CalculateRetail(rs *rules.RuleSet, localRate decimal.Decimal, in domain.RetailInput) (domain.TaxResult, error) {
	const op = "calc.retail"

	if rs == nil {
		return domain.TaxResult{}, domain.Invalid(op, "rule set is required")
	}
	if in.VehiclePrice.IsNegative() {
		return domain.TaxResult{}, domain.Invalid(op, "vehicle price must not be negative")
	}
	if in.TradeAllowance.IsNegative() || in.TradePayoff.IsNegative() {
		return domain.TaxResult{}, domain.Invalid(op, "trade-in amounts must not be negative")
	}
	if in.RebateManufacturer.IsNegative() || in.RebateDealer.IsNegative() {
		return domain.TaxResult{}, domain.Invalid(op, "rebates must not be negative")
	}
	if in.DocFee.IsNegative() || in.ServiceContracts.IsNegative() || in.GAP.IsNegative() {
		return domain.TaxResult{}, domain.Invalid(op, "fees must not be negative")
	}
	if !money.ValidRate(localRate) {
		return domain.TaxResult{}, domain.Invalid(op, "local rate must be a fraction in [0, 1]")
	}

	var result domain.TaxResult

	// Doc fee is charged at most at the statutory maximum.
	docFee := in.DocFee
	if rs.MaxDocFee.IsPositive() && docFee.GreaterThan(rs.MaxDocFee) {
		docFee = rs.MaxDocFee
		result.Notes = append(result.Notes, "doc fee reduced to the statutory maximum")
	}

	regFee, usedFormula := rules.RegistrationFeeFor(rs, in.VehiclePrice)
	if usedFormula {
		result.Notes = append(result.Notes, "registration fee computed from vehicle value")
	}
	result.RegistrationFee = regFee
	result.TitleFee = rs.TitleFee

	otherFeeTotal := decimal.Zero
	for _, f := range in.OtherFees {
		if f.Amount.IsNegative() {
			return domain.TaxResult{}, domain.Invalid(op, "fee amounts must not be negative")
		}
		otherFeeTotal = otherFeeTotal.Add(f.Amount)
	}
	result.FeeTotal = money.RoundCents(docFee.
		Add(in.ServiceContracts).
		Add(in.GAP).
		Add(otherFeeTotal).
		Add(regFee).
		Add(rs.TitleFee))

	// Exempt sales skip all tax computation: fees only.
	if in.TaxExempt || rs.Scheme == rules.SchemeNoSalesTax {
		result.Exempt = in.TaxExempt
		if in.TaxExempt {
			result.Notes = append(result.Notes, "sale marked tax exempt; only title and registration fees apply")
		} else {
			result.Notes = append(result.Notes, "no sales or use tax levied on vehicle sales in "+rs.State)
		}
		result.TaxableBase = decimal.Zero
		result.StateTax = decimal.Zero
		result.LocalTax = decimal.Zero
		result.LuxuryTax = decimal.Zero
		result.TotalTax = decimal.Zero
		result.EffectiveRate = decimal.Zero
		result.TradeCreditApplied = decimal.Zero
		result.TradeTaxSavings = decimal.Zero
		result.Breakdown = feeLines(regFee, rs.TitleFee, docFee)
		return result, nil
	}

	base := in.VehiclePrice

	// Rebates: most jurisdictions tax the post-rebate price on new
	// vehicles; a handful tax the full price.
	rebate := decimal.Zero
	if rs.RebateReducesTaxable && in.NewVehicle && in.RebateManufacturer.IsPositive() {
		rebate = in.RebateManufacturer
		base = base.Sub(rebate)
	}

	// Trade-in credit, dispatched on the jurisdiction's policy.
	credit := decimal.Zero
	switch rs.TradeInPolicy {
	case rules.TradeInNone:
		// No reduction.
	case rules.TradeInFull:
		credit = money.Min(in.TradeAllowance, money.Clamp0(base))
		base = base.Sub(credit)
	case rules.TradeInTaxOnDiff:
		// Equity concept: the allowance comes straight off and the base may
		// go negative before the clamp.
		credit = in.TradeAllowance
		base = base.Sub(credit)
	case rules.TradeInPartialWithCap:
		credit = money.Min(in.TradeAllowance, money.Clamp0(base))
		if rs.TradeInCap.IsPositive() && credit.GreaterThan(rs.TradeInCap) {
			credit = rs.TradeInCap
			result.Notes = append(result.Notes, "trade-in credit limited to the statutory cap")
		}
		base = base.Sub(credit)
	default:
		return domain.TaxResult{}, domain.Errorf(domain.EINVALID, op,
			"unhandled trade-in policy: %s", rs.TradeInPolicy)
	}

	// Taxable fee and product add-backs. Untaxed categories stay out of the
	// base but remain in the fee total.
	if rs.Fees.DocFee {
		base = base.Add(docFee)
	}
	if rs.Fees.Warranty {
		base = base.Add(in.ServiceContracts)
	}
	if rs.Fees.GAP {
		base = base.Add(in.GAP)
	}
	for _, f := range in.OtherFees {
		taxable, err := feeTaxable(rs.Fees, f.Category)
		if err != nil {
			return domain.TaxResult{}, err
		}
		if taxable {
			base = base.Add(f.Amount)
		}
	}

	base = money.Clamp0(base)

	effectiveLocal := decimal.Zero
	if rs.Scheme == rules.SchemeStateLocal {
		effectiveLocal = localRate
	}

	stateTax := base.Mul(rs.StateRate)
	localTax := base.Mul(effectiveLocal)

	luxuryTax := decimal.Zero
	if rs.LuxuryThreshold.IsPositive() && in.VehiclePrice.GreaterThanOrEqual(rs.LuxuryThreshold) {
		// Luxury banding runs on the vehicle price, not the adjusted base.
		luxuryTax = in.VehiclePrice.Sub(rs.LuxuryThreshold).Mul(rs.LuxuryRate)
	}

	totalTax := stateTax.Add(localTax).Add(luxuryTax)
	if rs.TaxCap.IsPositive() && totalTax.GreaterThan(rs.TaxCap) {
		totalTax = rs.TaxCap
		result.CapApplied = true
		result.Notes = append(result.Notes, "total tax limited to the statutory ceiling")
	}

	effectiveRate := decimal.Zero
	if base.IsPositive() {
		effectiveRate = totalTax.Div(base)
	}

	result.TaxableBase = money.RoundCents(base)
	result.StateTax = money.RoundCents(stateTax)
	result.LocalTax = money.RoundCents(localTax)
	result.LuxuryTax = money.RoundCents(luxuryTax)
	result.TotalTax = money.RoundCents(totalTax)
	result.EffectiveRate = effectiveRate.Round(6)
	result.TradeCreditApplied = money.RoundCents(credit)
	result.TradeTaxSavings = money.RoundCents(credit.Mul(rs.StateRate.Add(effectiveLocal)))

	result.Breakdown = retailBreakdown(result, rebate, docFee)
	return result, nil
}

// feeTaxable maps a product category to its taxability flag. The switch is
// exhaustive over the closed category set; unknown categories are an error.
func feeTaxable(f rules.FeeTaxability, c domain.ProductCategory) (bool, error) {
	switch c {
	case domain.CategoryDocFee:
		return f.DocFee, nil
	case domain.CategoryWarranty:
		return f.Warranty, nil
	case domain.CategoryGAP, domain.CategoryTheftProtection:
		return f.GAP, nil
	case domain.CategoryMaintenance, domain.CategoryTireWheel:
		return f.Maintenance, nil
	case domain.CategoryAccessory, domain.CategoryPaintProtection,
		domain.CategoryEtch, domain.CategoryCustom:
		return f.Accessories, nil
	case domain.CategoryGovernment, domain.CategoryTitle,
		domain.CategoryRegistration, domain.CategoryOther:
		return false, nil
	default:
		return false, domain.Errorf(domain.EINVALID, "calc.fee_taxable",
			"unknown product category: %s", c)
	}
}

func retailBreakdown(r domain.TaxResult, rebate, docFee decimal.Decimal) []domain.BreakdownLine {
	var lines []domain.BreakdownLine
	add := func(kind domain.LineKind, desc string, amount decimal.Decimal) {
		if !amount.IsZero() {
			lines = append(lines, domain.BreakdownLine{Kind: kind, Description: desc, Amount: money.RoundCents(amount)})
		}
	}

	add(domain.LineIncentive, "Manufacturer rebate", rebate.Neg())
	add(domain.LineCredit, "Trade-in credit", r.TradeCreditApplied.Neg())
	add(domain.LineTax, "State tax", r.StateTax)
	add(domain.LineTax, "Local tax", r.LocalTax)
	add(domain.LineTax, "Luxury tax", r.LuxuryTax)
	add(domain.LineFee, "Documentation fee", docFee)
	add(domain.LineFee, "Registration fee", r.RegistrationFee)
	add(domain.LineFee, "Title fee", r.TitleFee)
	return lines
}

func feeLines(regFee, titleFee, docFee decimal.Decimal) []domain.BreakdownLine {
	var lines []domain.BreakdownLine
	add := func(desc string, amount decimal.Decimal) {
		if !amount.IsZero() {
			lines = append(lines, domain.BreakdownLine{Kind: domain.LineFee, Description: desc, Amount: money.RoundCents(amount)})
		}
	}
	add("Documentation fee", docFee)
	add("Registration fee", regFee)
	add("Title fee", titleFee)
	return lines
}
