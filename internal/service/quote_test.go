package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/rates"
	"github.com/dealerdesk/taxengine/internal/rules"
	"github.com/dealerdesk/taxengine/internal/service"
)

// stubStore serves a fixed postal mapping set so service tests can exercise
// both the database path and the state-average fallback.
type stubStore struct {
	mappings    map[string]*rates.PostalMapping
	lastRatesAt time.Time
}

var _ rates.Store = (*stubStore)(nil)

func (s *stubStore) GetPostalMapping(_ context.Context, state, zip string) (*rates.PostalMapping, error) {
	if pm, ok := s.mappings[state+":"+zip]; ok {
		return pm, nil
	}
	return nil, domain.NotFound("stub.get_postal_mapping", "postal mapping", zip)
}

func (s *stubStore) GetJurisdictionRates(_ context.Context, _ []string, at time.Time) ([]rates.JurisdictionRate, error) {
	s.lastRatesAt = at
	return nil, nil
}

func (s *stubStore) SearchJurisdictions(_ context.Context, _ string, _ int) ([]rates.Jurisdiction, error) {
	return nil, nil
}

func newTestService(t *testing.T) *service.QuoteService {
	t.Helper()

	store := &stubStore{
		mappings: map[string]*rates.PostalMapping{
			"MO:63101": {
				PostalCode:   "63101",
				State:        "MO",
				City:         "St. Louis",
				CombinedRate: decimal.RequireFromString("0.05"),
			},
		},
	}

	repo := rules.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := rates.NewCache(24*time.Hour, nil)
	resolver := rates.NewResolver(store, cache, repo, logger, nil, nil)

	svc, err := service.NewQuoteService(repo, resolver, logger, nil)
	require.NoError(t, err)
	return svc
}

func retailRequest(state string) domain.QuoteRequest {
	return domain.QuoteRequest{
		DealType: domain.DealTypeRetail,
		Location: domain.LocationConfig{
			HomeState:   state,
			Perspective: domain.PerspectiveDealerState,
		},
		Party: domain.DealParty{ResidenceState: state},
		Retail: &domain.RetailInput{
			VehiclePrice:   decimal.RequireFromString("30000"),
			TradeAllowance: decimal.RequireFromString("5000"),
		},
	}
}

func Test_Quote_Retail(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Quote(context.Background(), retailRequest("IN"))
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusOK, resp.Status)
	assert.Equal(t, "IN", resp.Context.PrimaryState)
	require.NotNil(t, resp.Retail)
	assert.Nil(t, resp.Lease)
	assert.True(t, resp.Retail.TotalTax.Equal(decimal.RequireFromString("1750")),
		"(30000 - 5000) * 0.07, got %s", resp.Retail.TotalTax)
}

func Test_Quote_Lease(t *testing.T) {
	svc := newTestService(t)

	req := domain.QuoteRequest{
		DealType: domain.DealTypeLease,
		Location: domain.LocationConfig{
			HomeState:   "TX",
			Perspective: domain.PerspectiveDealerState,
		},
		Lease: &domain.LeaseInput{
			SellingPrice:  decimal.RequireFromString("33500"),
			ResidualValue: decimal.RequireFromString("21000"),
			TermMonths:    36,
			MoneyFactor:   decimal.RequireFromString("0.002"),
			CashDown:      decimal.RequireFromString("3500"),
		},
	}

	resp, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteStatusOK, resp.Status)
	require.NotNil(t, resp.Lease)
	assert.Nil(t, resp.Retail)
	assert.True(t, resp.Lease.UpfrontTax.IsPositive(), "Texas taxes the cap cost at signing")
}

func Test_Quote_StubJurisdiction(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Quote(context.Background(), retailRequest("GA"))
	require.NoError(t, err, "a stub jurisdiction is a flagged response, not an error")

	assert.Equal(t, domain.QuoteStatusStub, resp.Status)
	assert.NotEmpty(t, resp.StubReason)
	assert.Nil(t, resp.Retail, "no calculation runs for a stub state")
	assert.Nil(t, resp.Lease)
}

func Test_Quote_UnknownState(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Quote(context.Background(), retailRequest("ZZ"))
	assert.Equal(t, domain.EINVALIDSTATE, domain.ErrorCode(err))
}

func Test_Quote_ValidationRejects(t *testing.T) {
	svc := newTestService(t)

	t.Run("missing deal type", func(t *testing.T) {
		req := retailRequest("TX")
		req.DealType = ""
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("retail deal without retail input", func(t *testing.T) {
		req := retailRequest("TX")
		req.Retail = nil
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("malformed zip code", func(t *testing.T) {
		req := retailRequest("MO")
		req.ZipCode = "123"
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("missing location config", func(t *testing.T) {
		req := retailRequest("TX")
		req.Location = domain.LocationConfig{}
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative trade-in value", func(t *testing.T) {
		req := retailRequest("TX")
		req.Retail.TradeAllowance = decimal.RequireFromString("-5000")
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err),
			"a negative allowance must never reach the calculator")
	})

	t.Run("negative doc fee", func(t *testing.T) {
		req := retailRequest("TX")
		req.Retail.DocFee = decimal.RequireFromString("-100")
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative itemized fee", func(t *testing.T) {
		req := retailRequest("TX")
		req.Retail.OtherFees = []domain.FeeItem{
			{Description: "Credit", Category: domain.CategoryOther, Amount: decimal.RequireFromString("-25")},
		}
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("negative lease cash down", func(t *testing.T) {
		req := domain.QuoteRequest{
			DealType: domain.DealTypeLease,
			Location: domain.LocationConfig{
				HomeState:   "TX",
				Perspective: domain.PerspectiveDealerState,
			},
			Lease: &domain.LeaseInput{
				SellingPrice:  decimal.RequireFromString("33500"),
				ResidualValue: decimal.RequireFromString("21000"),
				TermMonths:    36,
				MoneyFactor:   decimal.RequireFromString("0.002"),
				CashDown:      decimal.RequireFromString("-3500"),
			},
		}
		_, err := svc.Quote(context.Background(), req)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})
}

func Test_Quote_LocalRateFromZip(t *testing.T) {
	svc := newTestService(t)

	req := retailRequest("MO")
	req.ZipCode = "63101"

	resp, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.Retail)
	assert.Empty(t, resp.Warnings, "a database-backed rate carries no warning")
	// (30000 - 5000) * (0.04225 + 0.05)
	assert.True(t, resp.Retail.TotalTax.Equal(decimal.RequireFromString("2306.25")),
		"got %s", resp.Retail.TotalTax)
}

func Test_Quote_AsOfDatePinsRateLookup(t *testing.T) {
	store := &stubStore{
		mappings: map[string]*rates.PostalMapping{
			"MO:63102": {PostalCode: "63102", State: "MO", JurisdictionIDs: []string{"mo-stl-city"}},
		},
	}
	repo := rules.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := rates.NewResolver(store, rates.NewCache(24*time.Hour, nil), repo, logger, nil, nil)
	svc, err := service.NewQuoteService(repo, resolver, logger, nil)
	require.NoError(t, err)

	req := retailRequest("MO")
	req.ZipCode = "63102"
	req.AsOfDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	_, err = svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, store.lastRatesAt.Equal(req.AsOfDate),
		"the request's as-of date drives effective dating, got %s", store.lastRatesAt)
}

func Test_Quote_LocalRateFallbackWarning(t *testing.T) {
	svc := newTestService(t)

	req := retailRequest("MO")
	req.ZipCode = "64999"

	resp, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "state average")
}

func Test_Quote_NoZipUsesStateAverage(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Quote(context.Background(), retailRequest("MO"))
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "no ZIP provided")
	// (30000 - 5000) * (0.04225 + 0.0407)
	assert.True(t, resp.Retail.TotalTax.Equal(decimal.RequireFromString("2073.75")),
		"got %s", resp.Retail.TotalTax)
}

func Test_Quote_ExplicitRatesWin(t *testing.T) {
	svc := newTestService(t)

	req := retailRequest("MO")
	req.ZipCode = "63101"
	req.Rates = []domain.RateComponent{
		{Authority: "St. Louis County", Rate: decimal.RequireFromString("0.02263")},
		{Authority: "City of St. Louis", Rate: decimal.RequireFromString("0.025")},
	}

	resp, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "explicit rates")
	// (30000 - 5000) * (0.04225 + 0.02263 + 0.025)
	assert.True(t, resp.Retail.TotalTax.Equal(decimal.RequireFromString("2247")),
		"explicit components override the ZIP lookup, got %s", resp.Retail.TotalTax)
}

func Test_Quote_InvalidExplicitRate(t *testing.T) {
	svc := newTestService(t)

	req := retailRequest("MO")
	req.Rates = []domain.RateComponent{{Authority: "County", Rate: decimal.RequireFromString("1.5")}}

	_, err := svc.Quote(context.Background(), req)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func Test_Quote_StateOnlySkipsRateResolution(t *testing.T) {
	svc := newTestService(t)

	req := retailRequest("IN")
	req.ZipCode = "46204"

	resp, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings, "a state-only scheme never resolves a local rate")
	assert.True(t, resp.Retail.LocalTax.IsZero())
}

func Test_States(t *testing.T) {
	svc := newTestService(t)

	states := svc.States()
	assert.NotEmpty(t, states)

	var sawStub bool
	for _, s := range states {
		if s.Status == rules.StatusStub {
			sawStub = true
			assert.NotEmpty(t, s.StubReason)
		}
	}
	assert.True(t, sawStub, "enumeration includes stub jurisdictions")
}
