package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	"github.com/Dotan-Peleh/currency-convertor/pkg/util"
)

// ClickHousePriceSink persists the price matrix and the exchange-rate log,
// and serves the previous run's published prices back to the stability gate.
type ClickHousePriceSink struct {
	db         *sql.DB
	matrix     string
	ratesTable string
}

// NewClickHousePriceSink creates the sink over fully qualified table names.
func NewClickHousePriceSink(db *sql.DB, matrixTable, ratesTable string) drepo.PriceSink {
	return &ClickHousePriceSink{db: db, matrix: matrixTable, ratesTable: ratesTable}
}

func (s *ClickHousePriceSink) Init(ctx context.Context) error {
	return s.db.PingContext(ctx) // schema managed by the clickhouse client
}

// StoreBatch inserts one row per record. Rows replace by (country,
// apple_sku) on merge, so the matrix always converges to the latest run.
func (s *ClickHousePriceSink) StoreBatch(ctx context.Context, records []models.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	const chunkSize = 1000
	now := time.Now().UTC()
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*19)
		for _, r := range records[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				r.Country, r.CountryName, r.Currency, r.AppleSKU, r.GoogleSKU,
				r.USDTier, r.RawLocalPrice, r.VisiblePrice, r.UserPays,
				r.RemittancePrice, r.VATRate, r.VATAmount,
				r.GrossUSD, r.FeeUSD, r.NetUSD, r.NetVsReference,
				boolToUInt8(r.WasUpdated), r.UpdateReason, now,
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (country, country_name, currency, apple_sku, google_sku, usd_tier, raw_local_price, visible_price, user_pays, remittance_price, vat_rate, vat_amount, gross_usd, fee_usd, net_usd, net_vs_reference, was_updated, update_reason, updated_at) VALUES %s",
			s.matrix, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert price matrix: %w", err)
		}
	}
	return nil
}

// Query returns the latest matrix rows, optionally filtered by country
// and/or SKU.
func (s *ClickHousePriceSink) Query(ctx context.Context, country, sku string, limit int) ([]models.PriceRecord, error) {
	if limit <= 0 {
		limit = 500
	}
	var conds []string
	var args []interface{}
	if country != "" {
		conds = append(conds, "country = ?")
		args = append(args, country)
	}
	if sku != "" {
		conds = append(conds, "apple_sku = ?")
		args = append(args, sku)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)

	q := fmt.Sprintf(
		"SELECT country, country_name, currency, apple_sku, google_sku, usd_tier, raw_local_price, visible_price, user_pays, remittance_price, vat_rate, vat_amount, gross_usd, fee_usd, net_usd, net_vs_reference, was_updated, update_reason FROM %s FINAL%s ORDER BY country, apple_sku LIMIT ?",
		s.matrix, where)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query price matrix: %w", err)
	}
	defer rows.Close()

	var out []models.PriceRecord
	for rows.Next() {
		var r models.PriceRecord
		var wasUpdated uint8
		if err := rows.Scan(
			&r.Country, &r.CountryName, &r.Currency, &r.AppleSKU, &r.GoogleSKU,
			&r.USDTier, &r.RawLocalPrice, &r.VisiblePrice, &r.UserPays,
			&r.RemittancePrice, &r.VATRate, &r.VATAmount,
			&r.GrossUSD, &r.FeeUSD, &r.NetUSD, &r.NetVsReference,
			&wasUpdated, &r.UpdateReason,
		); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		r.WasUpdated = wasUpdated == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// PreviousPrices loads the last published visible price per (country, sku).
func (s *ClickHousePriceSink) PreviousPrices(ctx context.Context) (models.PreviousPrices, error) {
	q := fmt.Sprintf(
		"SELECT country, apple_sku, argMax(visible_price, updated_at) FROM %s GROUP BY country, apple_sku",
		s.matrix)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query previous prices: %w", err)
	}
	defer rows.Close()

	prev := make(models.PreviousPrices)
	for rows.Next() {
		var country, sku string
		var price float64
		if err := rows.Scan(&country, &sku, &price); err != nil {
			return nil, fmt.Errorf("scan previous price: %w", err)
		}
		prev[models.PairKey{Country: country, AppleSKU: sku}] = price
	}
	return prev, rows.Err()
}

// LogRates appends the snapshot to the rate log, one row per currency.
func (s *ClickHousePriceSink) LogRates(ctx context.Context, snap models.RateSnapshot) error {
	if len(snap.Rates) == 0 {
		return nil
	}
	date := util.ParseDateDefault(snap.Date, time.Now().UTC())
	values := make([]string, 0, len(snap.Rates))
	args := make([]interface{}, 0, len(snap.Rates)*3)
	for cur, rate := range snap.Rates {
		values = append(values, "(?, ?, ?)")
		args = append(args, date, cur, rate)
	}
	q := fmt.Sprintf("INSERT INTO %s (rate_date, currency, rate) VALUES %s",
		s.ratesTable, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert rate log: %w", err)
	}
	return nil
}

func (s *ClickHousePriceSink) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHousePriceSink) Close() error {
	return nil // pool owned by the clickhouse client
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
