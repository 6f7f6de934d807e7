package api

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/rates"
)

// maxBulkLookups caps one bulk call.
const maxBulkLookups = 100

// AdminTokenHeader authenticates privileged cache operations.
const AdminTokenHeader = "X-Admin-Token"

// LocalRatesHandler serves local-rate lookups and cache administration.
type LocalRatesHandler struct {
	resolver   *rates.Resolver
	adminToken string
	logger     *slog.Logger
}

// NewLocalRatesHandler creates a new local-rates handler. An empty
// adminToken disables the privileged cache-clear endpoint.
func NewLocalRatesHandler(resolver *rates.Resolver, adminToken string, logger *slog.Logger) *LocalRatesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalRatesHandler{resolver: resolver, adminToken: adminToken, logger: logger}
}

// Lookup handles GET /api/v1/rates/local?zip=&state=.
func (h *LocalRatesHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	state := r.URL.Query().Get("state")
	if state == "" {
		respondError(w, r, domain.Invalid("api.local_rate", "state query parameter is required"))
		return
	}

	info, err := h.resolver.Lookup(r.Context(), zip, state)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// Breakdown handles GET /api/v1/rates/local/breakdown?zip=&state=.
// Same resolution path as Lookup; the response is the per-authority lines.
func (h *LocalRatesHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	state := r.URL.Query().Get("state")
	if state == "" {
		respondError(w, r, domain.Invalid("api.local_rate_breakdown", "state query parameter is required"))
		return
	}

	info, err := h.resolver.Lookup(r.Context(), zip, state)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"postalCode": info.PostalCode,
		"state":      info.State,
		"source":     info.Source,
		"breakdown":  info.Breakdown,
	})
}

// LookupBulk handles POST /api/v1/rates/local/bulk with a JSON array of
// requests, capped at 100 per call.
func (h *LocalRatesHandler) LookupBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []rates.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, r, domain.WrapError(err, domain.EINVALID, "api.local_rate_bulk", "malformed request body"))
		return
	}
	if len(reqs) == 0 {
		respondError(w, r, domain.Invalid("api.local_rate_bulk", "at least one lookup is required"))
		return
	}
	if len(reqs) > maxBulkLookups {
		respondError(w, r, domain.Errorf(domain.EINVALID, "api.local_rate_bulk",
			"bulk lookups are capped at %d per call", maxBulkLookups))
		return
	}

	results := h.resolver.LookupBulk(r.Context(), reqs)
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Search handles GET /api/v1/rates/jurisdictions/search?q=.
func (h *LocalRatesHandler) Search(w http.ResponseWriter, r *http.Request) {
	js, err := h.resolver.Search(r.Context(), r.URL.Query().Get("q"), 25)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"jurisdictions": js})
}

// CacheStats handles GET /api/v1/rates/cache/stats.
func (h *LocalRatesHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.resolver.CacheStats())
}

// CacheClear handles POST /api/v1/rates/cache/clear. Privileged: requires
// the configured admin token.
func (h *LocalRatesHandler) CacheClear(w http.ResponseWriter, r *http.Request) {
	if h.adminToken == "" ||
		subtle.ConstantTimeCompare([]byte(r.Header.Get(AdminTokenHeader)), []byte(h.adminToken)) != 1 {
		respondError(w, r, domain.Unauthorized("api.cache_clear", "admin token required"))
		return
	}

	h.resolver.ClearCache()
	h.logger.Info("local rate cache cleared")
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
