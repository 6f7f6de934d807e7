package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/service"
)

// QuoteHandler serves the quote endpoint.
type QuoteHandler struct {
	quotes *service.QuoteService
	logger *slog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(quotes *service.QuoteService, logger *slog.Logger) *QuoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteHandler{quotes: quotes, logger: logger}
}

// Quote handles POST /api/v1/quote.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, domain.WrapError(err, domain.EINVALID, "api.quote", "malformed request body"))
		return
	}

	resp, err := h.quotes.Quote(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// States handles GET /api/v1/states: the jurisdiction enumeration,
// distinguishing fully modeled states from stubs.
func (h *QuoteHandler) States(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"states": h.quotes.States()})
}
