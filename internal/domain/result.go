package domain

import "github.com/shopspring/decimal"

// LineKind tags an itemized breakdown line.
type LineKind string

const (
	LineTax       LineKind = "TAX"
	LineFee       LineKind = "FEE"
	LineCredit    LineKind = "CREDIT"
	LineIncentive LineKind = "INCENTIVE"
)

// BreakdownLine is one row of the itemized quote breakdown.
// Credits and incentives carry negative amounts.
type BreakdownLine struct {
	Kind        LineKind        `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxResult is the structured output of a retail calculation.
// All monetary fields are rounded to cents; intermediate math is not.
type TaxResult struct {
	TaxableBase   decimal.Decimal `json:"taxableBase"`
	StateTax      decimal.Decimal `json:"stateTax"`
	LocalTax      decimal.Decimal `json:"localTax"`
	LuxuryTax     decimal.Decimal `json:"luxuryTax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`

	RegistrationFee decimal.Decimal `json:"registrationFee"`
	TitleFee        decimal.Decimal `json:"titleFee"`
	FeeTotal        decimal.Decimal `json:"feeTotal"`

	TradeCreditApplied decimal.Decimal `json:"tradeCreditApplied"`
	TradeTaxSavings    decimal.Decimal `json:"tradeTaxSavings"`
	CapApplied         bool            `json:"capApplied"`
	Exempt             bool            `json:"exempt"`

	Breakdown []BreakdownLine `json:"breakdown"`
	Notes     []string        `json:"notes,omitempty"`
}

// LeaseTaxResult is the structured output of a lease calculation.
type LeaseTaxResult struct {
	GrossCapCost      decimal.Decimal `json:"grossCapCost"`
	TotalCapReduction decimal.Decimal `json:"totalCapReduction"`
	NegativeEquity    decimal.Decimal `json:"negativeEquity"`
	AdjustedCapCost   decimal.Decimal `json:"adjustedCapCost"`

	Depreciation   decimal.Decimal `json:"depreciationPerPeriod"`
	RentCharge     decimal.Decimal `json:"rentChargePerPeriod"`
	BasePayment    decimal.Decimal `json:"basePayment"`
	MonthlyTax     decimal.Decimal `json:"monthlyTax"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	UpfrontTax     decimal.Decimal `json:"upfrontTax"`

	DriveOffTotal   decimal.Decimal `json:"driveOffTotal"`
	TotalOfPayments decimal.Decimal `json:"totalOfPayments"`
	TotalLeaseCost  decimal.Decimal `json:"totalLeaseCost"`

	APR decimal.Decimal `json:"apr"`

	Breakdown []BreakdownLine `json:"breakdown"`
	Notes     []string        `json:"notes,omitempty"`
}

// QuoteStatus flags the overall disposition of a quote.
type QuoteStatus string

const (
	QuoteStatusOK   QuoteStatus = "OK"
	QuoteStatusStub QuoteStatus = "STUB_JURISDICTION"
)

// QuoteResponse is the engine's external response contract.
type QuoteResponse struct {
	Status  QuoteStatus `json:"status"`
	Context TaxContext  `json:"context"`

	Retail *TaxResult      `json:"result,omitempty"`
	Lease  *LeaseTaxResult `json:"leaseResult,omitempty"`

	// StubReason is set when Status is STUB_JURISDICTION: the governing
	// state's scheme is not fully modeled and no calculation was run.
	StubReason string `json:"stubReason,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}
