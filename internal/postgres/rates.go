// Package postgres implements the rate-reference storage boundary against
// PostgreSQL via pgx. The tables are read-mostly reference data owned by an
// offline seed process; this engine only reads them.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dealerdesk/taxengine/internal/domain"
	"github.com/dealerdesk/taxengine/internal/rates"
)

// RateStore implements rates.Store using PostgreSQL.
type RateStore struct {
	pool *pgxpool.Pool
}

// Compile-time check that RateStore implements rates.Store.
var _ rates.Store = (*RateStore)(nil)

// NewRateStore creates a new PostgreSQL-backed rate store.
func NewRateStore(pool *pgxpool.Pool) *RateStore {
	return &RateStore{pool: pool}
}

// GetPostalMapping returns the postal-code-to-jurisdiction mapping for
// (state, zip), or a not-found domain error when no record exists.
func (s *RateStore) GetPostalMapping(ctx context.Context, state, zip string) (*rates.PostalMapping, error) {
	const q = `
		SELECT postal_code, state, county, city, combined_rate::text, jurisdiction_ids
		FROM postal_jurisdictions
		WHERE state = $1 AND postal_code = $2`

	var (
		m        rates.PostalMapping
		county   pgtype.Text
		city     pgtype.Text
		rateText string
		ids      []string
	)
	err := s.pool.QueryRow(ctx, q, state, zip).Scan(
		&m.PostalCode, &m.State, &county, &city, &rateText, &ids,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("postgres.postal_mapping", "postal mapping", state+" "+zip)
		}
		return nil, domain.Internal(err, "postgres.postal_mapping", "failed to query postal mapping")
	}

	m.County = county.String
	m.City = city.String
	m.JurisdictionIDs = ids
	m.CombinedRate, err = decimal.NewFromString(rateText)
	if err != nil {
		return nil, domain.Internal(err, "postgres.postal_mapping", "malformed combined rate")
	}
	return &m, nil
}

// GetJurisdictionRates returns the stored rates for the given jurisdiction
// IDs that are active as of asOf. Expired or unknown IDs are omitted.
func (s *RateStore) GetJurisdictionRates(ctx context.Context, ids []string, asOf time.Time) ([]rates.JurisdictionRate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const q = `
		SELECT id, name, type, state, rate::text, effective_date, end_date
		FROM jurisdiction_rates
		WHERE id = ANY($1)
		  AND effective_date <= $2
		  AND (end_date IS NULL OR end_date > $2)
		ORDER BY type, name`

	rows, err := s.pool.Query(ctx, q, ids, asOf)
	if err != nil {
		return nil, domain.Internal(err, "postgres.jurisdiction_rates", "failed to query jurisdiction rates")
	}
	defer rows.Close()

	var out []rates.JurisdictionRate
	for rows.Next() {
		var (
			jr       rates.JurisdictionRate
			rateText string
			jrType   string
			endDate  pgtype.Timestamptz
		)
		if err := rows.Scan(&jr.ID, &jr.Name, &jrType, &jr.State, &rateText, &jr.EffectiveDate, &endDate); err != nil {
			return nil, domain.Internal(err, "postgres.jurisdiction_rates", "failed to scan jurisdiction rate")
		}
		jr.Type = rates.JurisdictionType(jrType)
		if endDate.Valid {
			jr.EndDate = endDate.Time
		}
		jr.Rate, err = decimal.NewFromString(rateText)
		if err != nil {
			return nil, domain.Internal(err, "postgres.jurisdiction_rates", "malformed jurisdiction rate")
		}
		out = append(out, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.jurisdiction_rates", "failed to read jurisdiction rates")
	}
	return out, nil
}

// SearchJurisdictions matches jurisdiction names by case-insensitive
// substring, most recently effective first.
func (s *RateStore) SearchJurisdictions(ctx context.Context, query string, limit int) ([]rates.Jurisdiction, error) {
	const q = `
		SELECT id, name, type, state, rate::text
		FROM jurisdiction_rates
		WHERE name ILIKE '%' || $1 || '%'
		  AND (end_date IS NULL OR end_date > now())
		ORDER BY effective_date DESC, name
		LIMIT $2`

	rows, err := s.pool.Query(ctx, q, query, limit)
	if err != nil {
		return nil, domain.Internal(err, "postgres.search_jurisdictions", "failed to search jurisdictions")
	}
	defer rows.Close()

	var out []rates.Jurisdiction
	for rows.Next() {
		var (
			j        rates.Jurisdiction
			jType    string
			rateText string
		)
		if err := rows.Scan(&j.ID, &j.Name, &jType, &j.State, &rateText); err != nil {
			return nil, domain.Internal(err, "postgres.search_jurisdictions", "failed to scan jurisdiction")
		}
		j.Type = rates.JurisdictionType(jType)
		j.Rate, err = decimal.NewFromString(rateText)
		if err != nil {
			return nil, domain.Internal(err, "postgres.search_jurisdictions", "malformed jurisdiction rate")
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "postgres.search_jurisdictions", "failed to read jurisdictions")
	}
	return out, nil
}
