package repository

import (
	"context"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
)

// RateSource supplies the date-stamped USD-base rate snapshot for a run.
// Retry and stale-cache fallback live behind this interface, not in the engine.
type RateSource interface {
	Latest(ctx context.Context) (models.RateSnapshot, error)
}

// SKUSource loads the SKU catalog, once per run.
type SKUSource interface {
	LoadSKUs(ctx context.Context) ([]models.SKU, error)
}

// PriceSink persists price matrix rows and serves back the previous run's
// published prices for the stability gate.
type PriceSink interface {
	Init(ctx context.Context) error
	StoreBatch(ctx context.Context, records []models.PriceRecord) error
	Query(ctx context.Context, country, sku string, limit int) ([]models.PriceRecord, error)
	PreviousPrices(ctx context.Context) (models.PreviousPrices, error)
	LogRates(ctx context.Context, snap models.RateSnapshot) error
	Health(ctx context.Context) error
	Close() error
}

// PricePublisher emits one event per adopted price change.
type PricePublisher interface {
	PublishUpdates(ctx context.Context, updates []models.PriceUpdate) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordPair(result string) // "converted", "held", "skipped"
	RecordRun(records, held, skipped int, seconds float64)
	RecordRateFetch(seconds float64, failed bool)
	RecordVisiblePrice(country, sku string, price float64)
}
