package rates

import (
	"context"
	"time"
)

// Store is the persistent reference-data boundary: a postal-code-to-
// jurisdiction mapping table and a jurisdiction rate table with effective
// windows. Implementations: postgres.RateStore.
type Store interface {
	// GetPostalMapping returns the mapping for (state, zip), or a
	// domain.ENOTFOUND error when no record exists.
	GetPostalMapping(ctx context.Context, state, zip string) (*PostalMapping, error)

	// GetJurisdictionRates returns the rates for the given jurisdiction IDs
	// that are active as of asOf. Missing or expired IDs are omitted.
	GetJurisdictionRates(ctx context.Context, ids []string, asOf time.Time) ([]JurisdictionRate, error)

	// SearchJurisdictions matches stored jurisdiction names by substring.
	SearchJurisdictions(ctx context.Context, query string, limit int) ([]Jurisdiction, error)
}
