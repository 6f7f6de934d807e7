// Package jurisdiction decides which state's rules govern a deal, from the
// rooftop configuration and the deal parties' states. The resolver never
// infers a missing state; an unresolvable deal is a distinct error.
package jurisdiction

import (
	"slices"
	"strings"

	"github.com/dealerdesk/taxengine/internal/domain"
)

// Resolve picks the single governing jurisdiction for a deal.
//
// Precedence: a FORCE override wins outright; otherwise drive-out redirects
// to the registration state when enabled and allow-listed; otherwise the
// rooftop's configured perspective picks the state. A non-empty
// AllowedRegStates list restricts which out-of-state registrations may
// govern: drive-out skips an unlisted registration, and a registration
// perspective on one is unresolvable. A FORBID override on the chosen
// state, or a missing state, yields AmbiguousJurisdiction.
func Resolve(cfg domain.LocationConfig, party domain.DealParty) (domain.TaxContext, error) {
	const op = "jurisdiction.resolve"

	home := norm(cfg.HomeState)
	residence := norm(party.ResidenceState)
	registration := norm(party.RegistrationState)

	regAllowed := registration == "" || registration == home ||
		len(cfg.AllowedRegStates) == 0 || containsState(cfg.AllowedRegStates, registration)

	ctx := domain.TaxContext{
		BuyerResidenceState: residence,
		RegistrationState:   registration,
	}

	// Forced overrides take precedence over everything, including drive-out.
	var forced []string
	for state, mode := range cfg.Overrides {
		if mode == domain.OverrideForce {
			forced = append(forced, norm(state))
		}
	}
	if len(forced) > 1 {
		return domain.TaxContext{}, domain.AmbiguousJurisdiction(op,
			"location config forces more than one primary state")
	}
	if len(forced) == 1 {
		ctx.PrimaryState = forced[0]
		return ctx, nil
	}

	primary := ""
	switch cfg.Perspective {
	case domain.PerspectiveDealerState:
		primary = home
	case domain.PerspectiveBuyerState:
		primary = residence
	case domain.PerspectiveRegistrationState:
		if !regAllowed {
			return domain.TaxContext{}, domain.AmbiguousJurisdiction(op,
				"registration state "+registration+" is not an allowed registration state for this location")
		}
		primary = registration
	default:
		return domain.TaxContext{}, domain.AmbiguousJurisdiction(op,
			"location config has no tax perspective")
	}

	// Drive-out: an out-of-state registration in the allow-list becomes
	// primary even under a dealer-state perspective.
	if cfg.DriveOutEnabled && regAllowed && registration != "" && registration != home &&
		containsState(cfg.DriveOutStates, registration) {
		primary = registration
	}

	if primary == "" {
		return domain.TaxContext{}, domain.AmbiguousJurisdiction(op,
			"no determinable primary state for this deal")
	}

	if mode, ok := overrideFor(cfg.Overrides, primary); ok && mode == domain.OverrideForbid {
		return domain.TaxContext{}, domain.AmbiguousJurisdiction(op,
			"primary state "+primary+" is forbidden by location config")
	}

	ctx.PrimaryState = primary
	return ctx, nil
}

func norm(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

func containsState(states []string, state string) bool {
	return slices.ContainsFunc(states, func(s string) bool { return norm(s) == state })
}

func overrideFor(overrides map[string]domain.OverrideMode, state string) (domain.OverrideMode, bool) {
	for s, m := range overrides {
		if norm(s) == state {
			return m, true
		}
	}
	return "", false
}
