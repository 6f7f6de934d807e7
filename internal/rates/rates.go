// Package rates resolves combined local tax rates for a postal code,
// assembling county, city, and special-district authority rates from
// persistent storage with a TTL cache and a state-average fallback.
package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

// JurisdictionType classifies a contributing tax authority.
type JurisdictionType string

const (
	JurisdictionState           JurisdictionType = "STATE"
	JurisdictionCounty          JurisdictionType = "COUNTY"
	JurisdictionCity            JurisdictionType = "CITY"
	JurisdictionSpecialDistrict JurisdictionType = "SPECIAL_DISTRICT"
)

// RateSource records where a resolved rate came from.
type RateSource string

const (
	SourceDatabase RateSource = "DATABASE"
	SourceFallback RateSource = "FALLBACK"
)

// AuthorityRate is one line of a rate breakdown: a single contributing
// authority and its rate.
type AuthorityRate struct {
	Name string           `json:"name"`
	Type JurisdictionType `json:"type"`
	Rate decimal.Decimal  `json:"rate"`
}

// LocalRateInfo is the resolved local rate for a (state, postal code) pair.
// CombinedLocalRate always equals the sum of the county/city/special
// components; the state line appears only in Breakdown.
type LocalRateInfo struct {
	PostalCode string `json:"postalCode"`
	State      string `json:"state"`
	County     string `json:"county,omitempty"`
	City       string `json:"city,omitempty"`

	CountyRate  decimal.Decimal `json:"countyRate"`
	CityRate    decimal.Decimal `json:"cityRate"`
	SpecialRate decimal.Decimal `json:"specialRate"`

	CombinedLocalRate decimal.Decimal `json:"combinedLocalRate"`

	Breakdown []AuthorityRate `json:"breakdown,omitempty"`
	Source    RateSource      `json:"source"`
}

// Jurisdiction is a search result from the name-search operation.
type Jurisdiction struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Type  JurisdictionType `json:"type"`
	State string           `json:"state"`
	Rate  decimal.Decimal  `json:"rate"`
}

// PostalMapping is the stored postal-code-to-jurisdiction record. It always
// carries a pre-combined local rate; JurisdictionIDs is empty when no
// itemized breakdown exists.
type PostalMapping struct {
	PostalCode      string
	State           string
	County          string
	City            string
	CombinedRate    decimal.Decimal
	JurisdictionIDs []string
}

// JurisdictionRate is one stored authority rate with its effective window.
type JurisdictionRate struct {
	ID            string
	Name          string
	Type          JurisdictionType
	State         string
	Rate          decimal.Decimal
	EffectiveDate time.Time
	// EndDate is zero for open-ended rates.
	EndDate time.Time
}

// Active reports whether the rate is in effect at t.
func (jr JurisdictionRate) Active(t time.Time) bool {
	if jr.EffectiveDate.After(t) {
		return false
	}
	return jr.EndDate.IsZero() || jr.EndDate.After(t)
}
