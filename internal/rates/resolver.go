package rates

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/rules"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// NormalizePostalCode validates a 5-digit (optionally ZIP+4) postal code and
// returns its primary 5-digit form. Invalid formats are a caller error,
// never silently corrected.
func NormalizePostalCode(zip string) (string, error) {
	z := strings.TrimSpace(zip)
	if !zipPattern.MatchString(z) {
		return "", domain.InvalidPostalCode("rates.normalize", zip)
	}
	return z[:5], nil
}

// ReferenceSource supplies the consolidated per-state fallback record.
// *rules.Repository satisfies it.
type ReferenceSource interface {
	Reference(state string) (rules.StateReference, error)
}

// Resolver resolves combined local rates with caching and fallback.
// Storage errors degrade to the state-average fallback; a missing local
// rate must never abort a tax quote.
type Resolver struct {
	store   Store
	cache   *Cache
	refs    ReferenceSource
	logger  *slog.Logger
	metrics *Metrics
	now     Clock
}

// NewResolver wires a resolver. cache is required; metrics may be nil; a
// nil logger uses slog.Default; a nil clock uses time.Now.
func NewResolver(store Store, cache *Cache, refs ReferenceSource, logger *slog.Logger, metrics *Metrics, now Clock) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		store:   store,
		cache:   cache,
		refs:    refs,
		logger:  logger,
		metrics: metrics,
		now:     now,
	}
}

// Lookup resolves the combined local rate for a postal code, effective at
// the current clock time.
//
// Order: cache, postal-mapping lookup, itemized jurisdiction rates when the
// mapping carries them, otherwise the mapping's pre-combined rate. A missing
// mapping or any storage error falls back to the state-average record.
// The result is cached before returning. No lock is held across store calls.
func (r *Resolver) Lookup(ctx context.Context, zip, state string) (LocalRateInfo, error) {
	return r.LookupAsOf(ctx, zip, state, time.Time{})
}

// LookupAsOf resolves the combined local rate effective at asOf; a zero
// asOf means the current clock time. The cache holds current rates only,
// so dated lookups go straight to storage and are never cached: a
// historical answer must not shadow a current one.
func (r *Resolver) LookupAsOf(ctx context.Context, zip, state string, asOf time.Time) (LocalRateInfo, error) {
	st := strings.ToUpper(strings.TrimSpace(state))

	zip5, err := NormalizePostalCode(zip)
	if err != nil {
		return LocalRateInfo{}, err
	}

	current := asOf.IsZero()
	effective := asOf
	if current {
		effective = r.now()
	}

	if current {
		if info, ok := r.cache.Get(st, zip5); ok {
			r.metrics.hit()
			return info, nil
		}
		r.metrics.miss()
	}

	// An unknown state is a caller error, not a degradation.
	ref, err := r.refs.Reference(st)
	if err != nil {
		return LocalRateInfo{}, err
	}

	info := r.resolve(ctx, st, zip5, ref, effective)
	if current {
		r.cache.Set(st, zip5, info)
	}
	return info, nil
}

func (r *Resolver) resolve(ctx context.Context, state, zip string, ref rules.StateReference, effective time.Time) LocalRateInfo {
	mapping, err := r.store.GetPostalMapping(ctx, state, zip)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			r.logger.Info("no postal mapping, using state average",
				"state", state, "zip", zip)
		} else {
			r.logger.Error("postal mapping lookup failed, using state average",
				"state", state, "zip", zip, "error", err)
			r.metrics.storeError()
		}
		return r.fallback(state, zip, ref)
	}

	if len(mapping.JurisdictionIDs) == 0 {
		return LocalRateInfo{
			PostalCode:        zip,
			State:             state,
			County:            mapping.County,
			City:              mapping.City,
			CombinedLocalRate: mapping.CombinedRate,
			Source:            SourceDatabase,
		}
	}

	jrs, err := r.store.GetJurisdictionRates(ctx, mapping.JurisdictionIDs, effective)
	if err != nil {
		r.logger.Error("jurisdiction rate lookup failed, using state average",
			"state", state, "zip", zip, "error", err)
		r.metrics.storeError()
		return r.fallback(state, zip, ref)
	}

	info := LocalRateInfo{
		PostalCode: zip,
		State:      state,
		County:     mapping.County,
		City:       mapping.City,
		Source:     SourceDatabase,
		Breakdown: []AuthorityRate{
			{Name: state, Type: JurisdictionState, Rate: ref.BaseRate},
		},
	}

	for _, jr := range jrs {
		switch jr.Type {
		case JurisdictionCounty:
			info.CountyRate = info.CountyRate.Add(jr.Rate)
		case JurisdictionCity:
			info.CityRate = info.CityRate.Add(jr.Rate)
		case JurisdictionSpecialDistrict:
			info.SpecialRate = info.SpecialRate.Add(jr.Rate)
		default:
			continue
		}
		info.Breakdown = append(info.Breakdown, AuthorityRate{Name: jr.Name, Type: jr.Type, Rate: jr.Rate})
	}

	info.CombinedLocalRate = info.CountyRate.Add(info.CityRate).Add(info.SpecialRate)
	return info
}

func (r *Resolver) fallback(state, zip string, ref rules.StateReference) LocalRateInfo {
	r.metrics.fallback()
	return LocalRateInfo{
		PostalCode:        zip,
		State:             state,
		CombinedLocalRate: ref.AvgLocalRate,
		Source:            SourceFallback,
	}
}

// BulkRequest is one item of a bulk lookup.
type BulkRequest struct {
	ZipCode string `json:"zipCode"`
	State   string `json:"state"`
}

// BulkResult pairs a bulk request with its outcome. Error carries the
// caller-facing message for invalid items; valid items always resolve.
type BulkResult struct {
	ZipCode string         `json:"zipCode"`
	State   string         `json:"state"`
	Info    *LocalRateInfo `json:"info,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// LookupBulk resolves each request independently. There is no atomicity
// across the batch; one invalid item does not fail the rest.
func (r *Resolver) LookupBulk(ctx context.Context, reqs []BulkRequest) []BulkResult {
	out := make([]BulkResult, len(reqs))
	for i, req := range reqs {
		out[i] = BulkResult{ZipCode: req.ZipCode, State: req.State}
		info, err := r.Lookup(ctx, req.ZipCode, req.State)
		if err != nil {
			out[i].Error = domain.ErrorMessage(err)
			continue
		}
		out[i].Info = &info
	}
	return out
}

// Search matches stored jurisdiction names by substring. Independent of the
// rate-resolution path; storage errors propagate here.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]Jurisdiction, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.Invalid("rates.search", "search query must not be empty")
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	js, err := r.store.SearchJurisdictions(ctx, q, limit)
	if err != nil {
		return nil, domain.Internal(err, "rates.search", "jurisdiction search failed")
	}
	return js, nil
}

// FallbackFor builds a state-average rate record without touching storage.
// Used when a quote carries no ZIP at all.
func (r *Resolver) FallbackFor(state string) (LocalRateInfo, error) {
	st := strings.ToUpper(strings.TrimSpace(state))
	ref, err := r.refs.Reference(st)
	if err != nil {
		return LocalRateInfo{}, err
	}
	return r.fallback(st, "", ref), nil
}

// CacheStats exposes the cache counters.
func (r *Resolver) CacheStats() CacheStats {
	return r.cache.Stats()
}

// ClearCache drops all cached entries.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}
