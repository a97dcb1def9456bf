package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

// PriceConverter orchestrates one full conversion run: rates in, SKUs in,
// pipeline, matrix out. The engine itself never does I/O; everything
// external sits behind the repository interfaces.
type PriceConverter struct {
	rates           drepo.RateSource
	skus            drepo.SKUSource
	sink            drepo.PriceSink
	publisher       drepo.PricePublisher // nil when event publishing is disabled
	pipeline        *Pipeline
	countryCurrency map[string]string
	metrics         drepo.Metrics
	logger          *applogger.Logger
}

// NewPriceConverter creates the run orchestrator.
func NewPriceConverter(
	rates drepo.RateSource,
	skus drepo.SKUSource,
	sink drepo.PriceSink,
	publisher drepo.PricePublisher,
	pipeline *Pipeline,
	countryCurrency map[string]string,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *PriceConverter {
	return &PriceConverter{
		rates:           rates,
		skus:            skus,
		sink:            sink,
		publisher:       publisher,
		pipeline:        pipeline,
		countryCurrency: countryCurrency,
		metrics:         metrics,
		logger:          logger,
	}
}

// RunOnce executes a single conversion run and persists the result.
func (c *PriceConverter) RunOnce(ctx context.Context) (*models.RunResult, error) {
	start := time.Now()

	fetchStart := time.Now()
	snap, err := c.rates.Latest(ctx)
	c.metrics.RecordRateFetch(time.Since(fetchStart).Seconds(), err != nil)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	c.logger.Info("rate snapshot loaded",
		applogger.String("date", snap.Date),
		applogger.Int("currencies", len(snap.Rates)))

	skus, err := c.skus.LoadSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skus: %w", err)
	}
	if len(skus) == 0 {
		c.logger.Warn("no SKUs configured, zero-count run")
		return &models.RunResult{RateDate: snap.Date}, nil
	}

	prev, err := c.sink.PreviousPrices(ctx)
	if err != nil {
		// A missing history only disables the stability gate's hold path;
		// the run itself proceeds as a first publish.
		c.logger.Warn("previous prices unavailable", applogger.Error(err))
		prev = models.PreviousPrices{}
	}

	result := c.pipeline.Run(ctx, skus, c.countryCurrency, snap, prev)

	if len(result.Records) > 0 {
		if err := c.sink.StoreBatch(ctx, result.Records); err != nil {
			return nil, fmt.Errorf("store price matrix: %w", err)
		}
	}
	if err := c.sink.LogRates(ctx, snap); err != nil {
		c.logger.Warn("rate log write failed", applogger.Error(err))
	}

	if c.publisher != nil {
		if err := c.publisher.PublishUpdates(ctx, adoptedUpdates(result, snap.Date)); err != nil {
			c.logger.Warn("price update publish failed", applogger.Error(err))
		}
	}

	c.metrics.RecordRun(len(result.Records), result.Held, len(result.Skipped), time.Since(start).Seconds())
	for _, r := range result.Records {
		c.metrics.RecordVisiblePrice(r.Country, r.AppleSKU, r.VisiblePrice)
	}

	c.logger.Info("conversion run finished",
		applogger.Int("records", len(result.Records)),
		applogger.Int("adopted", result.Adopted),
		applogger.Int("held", result.Held),
		applogger.Int("skipped", len(result.Skipped)),
		applogger.Duration("took", time.Since(start)))
	return result, nil
}

// adoptedUpdates builds one event per adopted record.
func adoptedUpdates(result *models.RunResult, rateDate string) []models.PriceUpdate {
	updates := make([]models.PriceUpdate, 0, result.Adopted)
	for _, r := range result.Records {
		if !r.WasUpdated {
			continue
		}
		updates = append(updates, models.PriceUpdate{
			Country:      r.Country,
			Currency:     r.Currency,
			AppleSKU:     r.AppleSKU,
			GoogleSKU:    r.GoogleSKU,
			VisiblePrice: r.VisiblePrice,
			UserPays:     r.UserPays,
			Reason:       r.UpdateReason,
			RateDate:     rateDate,
		})
	}
	return updates
}
