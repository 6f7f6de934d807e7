// Package rules holds the per-jurisdiction rule definitions for vehicle
// sales and lease taxation. Rule sets are immutable reference data: loaded
// once at startup, looked up by state code, never mutated at runtime.
package rules

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/domain"
)

// Scheme describes how a state stacks tax authorities.
type Scheme string

const (
	// SchemeStateOnly applies a single statewide rate with no local stacking.
	SchemeStateOnly Scheme = "STATE_ONLY"
	// SchemeStateLocal stacks county/city/district rates on the state rate.
	SchemeStateLocal Scheme = "STATE_PLUS_LOCAL"
	// SchemeNoSalesTax levies no sales or use tax on vehicle sales.
	SchemeNoSalesTax Scheme = "NO_SALES_TAX"
)

// TradeInPolicy describes how trade-in value offsets the taxable base.
type TradeInPolicy string

const (
	TradeInNone           TradeInPolicy = "NONE"
	TradeInFull           TradeInPolicy = "FULL"
	TradeInTaxOnDiff      TradeInPolicy = "TAX_ON_DIFFERENCE"
	TradeInPartialWithCap TradeInPolicy = "PARTIAL_WITH_CAP"
)

// LeaseMethod selects the base a jurisdiction taxes on a lease.
type LeaseMethod string

const (
	// LeasePayment taxes each periodic payment as it is made.
	LeasePayment LeaseMethod = "PAYMENT"
	// LeaseTotalCapCost taxes the adjusted capitalized cost once at signing.
	LeaseTotalCapCost LeaseMethod = "TOTAL_CAP_COST"
	// LeaseSellingPrice taxes the vehicle selling price once at signing.
	// Distinct from TOTAL_CAP_COST: cap reductions and capitalized fees do
	// not change the base.
	LeaseSellingPrice LeaseMethod = "SELLING_PRICE"
)

// Reciprocity describes credit for tax already paid in another state.
type Reciprocity string

const (
	ReciprocityFull Reciprocity = "FULL"
	ReciprocityNone Reciprocity = "NONE"
)

// FeeTaxability flags which product categories enter the taxable base.
// The category set is fixed; see domain.ProductCategory.
type FeeTaxability struct {
	DocFee      bool
	Warranty    bool
	GAP         bool
	Maintenance bool
	Accessories bool
}

// RuleSet is one state's complete, immutable rule definition.
type RuleSet struct {
	State     string
	StateRate decimal.Decimal
	Scheme    Scheme

	TradeInPolicy TradeInPolicy
	// TradeInCap bounds the trade-in credit under TradeInPartialWithCap.
	TradeInCap decimal.Decimal

	Fees FeeTaxability
	// MaxDocFee caps the taxable (and chargeable) doc fee when positive.
	MaxDocFee decimal.Decimal

	// RebateReducesTaxable controls whether a manufacturer rebate on a new
	// vehicle is subtracted before tax. Most states reduce; a handful tax
	// the rebated amount.
	RebateReducesTaxable bool

	// LuxuryThreshold/LuxuryRate add a surtax on the portion of the vehicle
	// price above the threshold. Zero threshold means no luxury banding.
	LuxuryThreshold decimal.Decimal
	LuxuryRate      decimal.Decimal

	// TaxCap, when positive, is a hard ceiling on total tax due.
	TaxCap decimal.Decimal

	LeaseMethod LeaseMethod
	Reciprocity Reciprocity

	// RegistrationFee and TitleFee are the flat base fees. A handful of
	// states compute registration from vehicle value instead; see
	// RegistrationFeeFor.
	RegistrationFee decimal.Decimal
	TitleFee        decimal.Decimal
}

// Status distinguishes fully modeled states from stubs.
type Status string

const (
	StatusImplemented Status = "IMPLEMENTED"
	StatusStub        Status = "STUB"
)

// Definition wraps a rule set with its implementation status. Stub states
// carry a reason instead of rules, forcing callers to branch explicitly
// rather than falling through to a zero-rate default.
type Definition struct {
	State      string
	Status     Status
	Rules      *RuleSet
	StubReason string
}

// Implemented reports whether the definition carries a usable rule set.
func (d Definition) Implemented() bool {
	return d.Status == StatusImplemented && d.Rules != nil
}

// StateInfo is one row of the state enumeration.
type StateInfo struct {
	State      string `json:"state"`
	Status     Status `json:"status"`
	StubReason string `json:"stubReason,omitempty"`
}

// StateReference is the consolidated per-state fallback record: the state
// base rate and the average combined local rate share one row so the two
// can never silently diverge.
type StateReference struct {
	State        string
	BaseRate     decimal.Decimal
	AvgLocalRate decimal.Decimal
	// Provenance names where the averages came from (revenue department
	// publications, vendor rate files).
	Provenance string
}

// Repository looks up immutable rule definitions by state code.
type Repository struct {
	defs map[string]Definition
	refs map[string]StateReference
}

// NewRepository builds the repository from the static state tables.
func NewRepository() *Repository {
	r := &Repository{
		defs: make(map[string]Definition, len(stateDefinitions)),
		refs: make(map[string]StateReference, len(stateDefinitions)),
	}
	for _, d := range stateDefinitions {
		r.defs[d.State] = d
		r.refs[d.State] = StateReference{
			State:        d.State,
			BaseRate:     baseRateOf(d),
			AvgLocalRate: avgLocalRates[d.State],
			Provenance:   referenceProvenance,
		}
	}
	return r
}

func baseRateOf(d Definition) decimal.Decimal {
	if d.Rules != nil {
		return d.Rules.StateRate
	}
	return decimal.Zero
}

// Get returns the definition for a state code. Unknown codes are a caller
// error, never a silent default.
func (r *Repository) Get(state string) (Definition, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	d, ok := r.defs[code]
	if !ok {
		return Definition{}, domain.InvalidState("rules.get", state)
	}
	return d, nil
}

// RuleSet returns the rule set for a fully modeled state. Stub states are
// surfaced as a distinct error so callers cannot run a calculator against
// an unmodeled scheme.
func (r *Repository) RuleSet(state string) (*RuleSet, error) {
	d, err := r.Get(state)
	if err != nil {
		return nil, err
	}
	if !d.Implemented() {
		return nil, domain.StubJurisdiction("rules.ruleset", d.State, d.StubReason)
	}
	return d.Rules, nil
}

// Reference returns the consolidated fallback record for a state.
func (r *Repository) Reference(state string) (StateReference, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	ref, ok := r.refs[code]
	if !ok {
		return StateReference{}, domain.InvalidState("rules.reference", state)
	}
	return ref, nil
}

// States enumerates all known states, implemented and stub, sorted by code.
func (r *Repository) States() []StateInfo {
	out := make([]StateInfo, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, StateInfo{State: d.State, Status: d.Status, StubReason: d.StubReason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
