package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealType distinguishes the two calculation shapes.
type DealType string

const (
	DealTypeRetail DealType = "RETAIL"
	DealTypeLease  DealType = "LEASE"
)

// ProductCategory classifies a fee or aftermarket product for taxability.
// The set is closed: calculators switch exhaustively over these values and
// reject anything else, rather than consulting an open-ended string map.
type ProductCategory string

const (
	CategoryDocFee          ProductCategory = "DOC_FEE"
	CategoryWarranty        ProductCategory = "WARRANTY"
	CategoryGAP             ProductCategory = "GAP"
	CategoryMaintenance     ProductCategory = "MAINTENANCE"
	CategoryTireWheel       ProductCategory = "TIRE_WHEEL"
	CategoryTheftProtection ProductCategory = "THEFT_PROTECTION"
	CategoryAccessory       ProductCategory = "ACCESSORY"
	CategoryPaintProtection ProductCategory = "PAINT_PROTECTION"
	CategoryEtch            ProductCategory = "ETCH"
	CategoryCustom          ProductCategory = "CUSTOM"
	CategoryGovernment      ProductCategory = "GOVERNMENT"
	CategoryTitle           ProductCategory = "TITLE"
	CategoryRegistration    ProductCategory = "REGISTRATION"
	CategoryOther           ProductCategory = "OTHER"
)

// Valid reports whether c is a known product category.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryDocFee, CategoryWarranty, CategoryGAP, CategoryMaintenance,
		CategoryTireWheel, CategoryTheftProtection, CategoryAccessory,
		CategoryPaintProtection, CategoryEtch, CategoryCustom,
		CategoryGovernment, CategoryTitle, CategoryRegistration, CategoryOther:
		return true
	}
	return false
}

// FeeItem is a single itemized fee or product on a deal.
type FeeItem struct {
	Description string          `json:"description"`
	Category    ProductCategory `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`

	// Capitalized marks a lease fee as rolled into the capitalized cost
	// rather than paid up front at signing.
	Capitalized bool `json:"capitalized,omitempty"`
}

// RetailInput carries the financial inputs of a retail purchase.
// Monetary amounts are non-negative; a payoff above the allowance expresses
// negative equity, not a negative amount.
type RetailInput struct {
	VehiclePrice       decimal.Decimal `json:"vehiclePrice" validate:"gte=0"`
	NewVehicle         bool            `json:"newVehicle"`
	TaxExempt          bool            `json:"taxExempt"`
	TradeAllowance     decimal.Decimal `json:"tradeInValue" validate:"gte=0"`
	TradePayoff        decimal.Decimal `json:"tradePayoff" validate:"gte=0"`
	RebateManufacturer decimal.Decimal `json:"rebateManufacturer" validate:"gte=0"`
	RebateDealer       decimal.Decimal `json:"rebateDealer" validate:"gte=0"`
	DocFee             decimal.Decimal `json:"docFee" validate:"gte=0"`
	ServiceContracts   decimal.Decimal `json:"serviceContracts" validate:"gte=0"`
	GAP                decimal.Decimal `json:"gap" validate:"gte=0"`
	OtherFees          []FeeItem       `json:"otherFees,omitempty" validate:"omitempty,dive"`
}

// LeaseInput carries the capitalized-cost structure of a lease.
type LeaseInput struct {
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"gte=0"`
	ResidualValue decimal.Decimal `json:"residualValue" validate:"gte=0"`
	TermMonths    int             `json:"paymentCount"`
	MoneyFactor   decimal.Decimal `json:"moneyFactor" validate:"gte=0"`

	CashDown           decimal.Decimal `json:"capReductionCash" validate:"gte=0"`
	TradeAllowance     decimal.Decimal `json:"tradeInValue" validate:"gte=0"`
	TradePayoff        decimal.Decimal `json:"tradePayoff" validate:"gte=0"`
	RebateCapReduction decimal.Decimal `json:"capReductionRebate" validate:"gte=0"`

	// Fees marked Capitalized are added to the gross capitalized cost;
	// the rest are due at signing as part of the drive-off.
	Fees []FeeItem `json:"fees,omitempty" validate:"omitempty,dive"`

	// BasePayment, when positive, overrides the computed depreciation+rent
	// payment. Lenders sometimes quote the payment directly.
	BasePayment decimal.Decimal `json:"basePayment,omitempty" validate:"gte=0"`
}

// RateComponent is one authority's contribution to a local rate, supplied
// explicitly on a quote request instead of a ZIP lookup.
type RateComponent struct {
	Authority string          `json:"authority"`
	Rate      decimal.Decimal `json:"rate"`
}

// QuoteRequest is the engine's external request contract.
// Either Rates or ZipCode supplies the local rate; when both are present the
// explicit rates win and the result carries a warning.
type QuoteRequest struct {
	DealType DealType `json:"dealType" validate:"required,oneof=RETAIL LEASE"`

	// AsOfDate pins jurisdiction-rate effective dating for ZIP lookups.
	// Zero means now.
	AsOfDate time.Time `json:"asOfDate,omitempty"`

	Location LocationConfig `json:"location" validate:"required"`
	Party    DealParty      `json:"party"`

	Retail *RetailInput `json:"retail,omitempty" validate:"required_if=DealType RETAIL"`
	Lease  *LeaseInput  `json:"lease,omitempty" validate:"required_if=DealType LEASE"`

	Rates   []RateComponent `json:"rates,omitempty"`
	ZipCode string          `json:"zipCode,omitempty" validate:"omitempty,zipcode"`
}
