// Package service orchestrates quote requests: validation, jurisdiction
// resolution, rule lookup, local rate resolution, and calculator dispatch.
package service

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/calc"
	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/jurisdiction"
	"github.com/dealerdesk/taxengine/internal/money"
	"github.com/dealerdesk/taxengine/internal/rates"
	"github.com/dealerdesk/taxengine/internal/rules"
)

// QuoteService produces retail and lease tax quotes.
type QuoteService struct {
	rules    *rules.Repository
	resolver *rates.Resolver
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *Metrics
}

// NewQuoteService wires a quote service. metrics may be nil; a nil logger
// uses slog.Default.
func NewQuoteService(repo *rules.Repository, resolver *rates.Resolver, logger *slog.Logger, metrics *Metrics) (*QuoteService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// Expose decimal fields to numeric tags (gte, lte) as float64.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	err := v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		_, err := rates.NormalizePostalCode(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, domain.Internal(err, "service.new_quote", "failed to register zip validation")
	}

	return &QuoteService{
		rules:    repo,
		resolver: resolver,
		validate: v,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Quote validates the request, resolves the governing jurisdiction and the
// local rate, and dispatches the matching calculator.
//
// Request-shape problems are rejected before any calculation; calculation-
// internal degradations (missing local rate, capped doc fee) surface as
// warnings and notes inside the result.
func (s *QuoteService) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	const op = "service.quote"

	if err := s.validate.Struct(req); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, op, "invalid quote request")
	}

	taxCtx, err := jurisdiction.Resolve(req.Location, req.Party)
	if err != nil {
		return nil, err
	}

	def, err := s.rules.Get(taxCtx.PrimaryState)
	if err != nil {
		return nil, err
	}

	resp := &domain.QuoteResponse{Status: domain.QuoteStatusOK, Context: taxCtx}

	if !def.Implemented() {
		// Never apply a default scheme to an unmodeled state: surface the
		// stub as a flagged, non-fatal result state.
		resp.Status = domain.QuoteStatusStub
		resp.StubReason = def.StubReason
		s.metrics.quote(string(req.DealType), "stub")
		return resp, nil
	}
	rs := def.Rules

	localRate, warnings, err := s.localRate(ctx, rs, taxCtx.PrimaryState, req)
	if err != nil {
		return nil, err
	}
	resp.Warnings = warnings

	switch req.DealType {
	case domain.DealTypeRetail:
		result, err := calc.CalculateRetail(rs, localRate, *req.Retail)
		if err != nil {
			return nil, err
		}
		resp.Retail = &result
	case domain.DealTypeLease:
		result, err := calc.CalculateLease(rs, localRate, *req.Lease)
		if err != nil {
			return nil, err
		}
		resp.Lease = &result
	default:
		return nil, domain.Errorf(domain.EINVALID, op, "unknown deal type: %s", req.DealType)
	}

	s.metrics.quote(string(req.DealType), "ok")
	s.logger.Info("quote produced",
		"deal_type", req.DealType,
		"state", taxCtx.PrimaryState,
		"warnings", len(resp.Warnings),
	)
	return resp, nil
}

// localRate picks the combined local rate for a quote. Explicit rate
// components win over a ZIP code; a quote with neither uses the state
// average. Every non-database source carries a warning.
func (s *QuoteService) localRate(ctx context.Context, rs *rules.RuleSet, state string, req domain.QuoteRequest) (decimal.Decimal, []string, error) {
	const op = "service.local_rate"

	if rs.Scheme != rules.SchemeStateLocal {
		return decimal.Zero, nil, nil
	}

	if len(req.Rates) > 0 {
		sum := decimal.Zero
		for _, c := range req.Rates {
			if !money.ValidRate(c.Rate) {
				return decimal.Zero, nil, domain.Errorf(domain.EINVALID, op,
					"rate for %q must be a fraction in [0, 1]", c.Authority)
			}
			sum = sum.Add(c.Rate)
		}
		var warnings []string
		if req.ZipCode != "" {
			warnings = append(warnings, "explicit rates supplied; local rate was not derived from the ZIP code")
		}
		return sum, warnings, nil
	}

	if req.ZipCode != "" {
		info, err := s.resolver.LookupAsOf(ctx, req.ZipCode, state, req.AsOfDate)
		if err != nil {
			return decimal.Zero, nil, err
		}
		var warnings []string
		if info.Source == rates.SourceFallback {
			warnings = append(warnings, "no local rate record for ZIP "+req.ZipCode+", used state average local rate")
		}
		return info.CombinedLocalRate, warnings, nil
	}

	info, err := s.resolver.FallbackFor(state)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return info.CombinedLocalRate, []string{"no ZIP provided, used state average local rate"}, nil
}

// States enumerates the known jurisdictions for conservative branching by
// callers (implemented vs stub).
func (s *QuoteService) States() []rules.StateInfo {
	return s.rules.States()
}
