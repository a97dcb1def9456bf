package di

import (
	"context"
	"fmt"
	"time"

	"github.com/Dotan-Peleh/currency-convertor/internal/countries"
	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	"github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	"github.com/Dotan-Peleh/currency-convertor/internal/handler/api"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fees"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/stability"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tax"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tiers"
	internalrepo "github.com/Dotan-Peleh/currency-convertor/internal/repository"
	"github.com/Dotan-Peleh/currency-convertor/internal/service/exchange"
	"github.com/Dotan-Peleh/currency-convertor/internal/usecase"
	"github.com/Dotan-Peleh/currency-convertor/pkg/cache"
	pkgch "github.com/Dotan-Peleh/currency-convertor/pkg/clickhouse"
	"github.com/Dotan-Peleh/currency-convertor/pkg/config"
	xhttp "github.com/Dotan-Peleh/currency-convertor/pkg/http"
	pkgkafka "github.com/Dotan-Peleh/currency-convertor/pkg/kafka"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
	"github.com/Dotan-Peleh/currency-convertor/pkg/metrics"
	"github.com/Dotan-Peleh/currency-convertor/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.price_matrix (
			country LowCardinality(String),
			country_name String,
			currency LowCardinality(String),
			apple_sku String,
			google_sku String,
			usd_tier Float64,
			raw_local_price Float64,
			visible_price Float64,
			user_pays Float64,
			remittance_price Float64,
			vat_rate Float64,
			vat_amount Float64,
			gross_usd Float64,
			fee_usd Float64,
			net_usd Float64,
			net_vs_reference String,
			was_updated UInt8,
			update_reason String,
			updated_at DateTime
		) ENGINE=ReplacingMergeTree(updated_at) ORDER BY (country, apple_sku)`, db),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.rate_log (
			rate_date Date,
			currency LowCardinality(String),
			rate Float64
		) ENGINE=MergeTree ORDER BY (rate_date, currency)`, db),
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCache creates the snapshot cache. With Redis enabled it layers an
// in-process cache over Redis; without it the in-memory cache still lets the
// rate-source fallback work within one process lifetime.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRateSource creates the exchange-rate client.
func ProvideRateSource(cfg *config.Config, c cache.Service, logger *applogger.Logger) repository.RateSource {
	timeout := cfg.Exchange.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := xhttp.NewClient(xhttp.WithTimeout(timeout))
	return exchange.New(httpClient, cfg.Exchange.BaseURL, cfg.Exchange.APIKey, c, logger)
}

// ProvideSKUSource creates the configured SKU catalog source.
func ProvideSKUSource(cfg *config.Config) repository.SKUSource {
	skus := make([]models.SKU, 0, len(cfg.SKUs))
	for _, s := range cfg.SKUs {
		skus = append(skus, models.SKU{
			AppleSKU:  s.AppleSKU,
			GoogleSKU: s.GoogleSKU,
			USDCost:   s.USDCost,
		})
	}
	return internalrepo.NewConfigSKUSource(skus)
}

// ProvidePriceSink creates ClickHouse-backed price matrix storage.
func ProvidePriceSink(chClient *pkgch.Client, cfg *config.Config) (repository.PriceSink, error) {
	db := cfg.ClickHouse.Database
	sink := internalrepo.NewClickHousePriceSink(chClient.DB(), db+".price_matrix", db+".rate_log")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sink.Init(ctx); err != nil {
		return nil, fmt.Errorf("price sink init: %w", err)
	}
	return sink, nil
}

// ProvidePricePublisher creates the Kafka publisher, or nil when disabled.
func ProvidePricePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.PricePublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPricePublisher(producer, cfg.Kafka.Topic)
}

// ProvidePipeline builds the pure conversion engine from config.
func ProvidePipeline(cfg *config.Config, m repository.Metrics, logger *applogger.Logger) (*usecase.Pipeline, error) {
	mode, err := tiers.ParseSnapMode(cfg.Pricing.SnapMode)
	if err != nil {
		return nil, err
	}
	return usecase.NewPipeline(
		tiers.NewResolver(tiers.NewCatalog(), mode),
		tax.DefaultTable(),
		stability.NewGate(cfg.Pricing.PriceChangeThreshold),
		fees.Config{
			FeePercent:          cfg.Pricing.FeePercent,
			FixedFee:            cfg.Pricing.FixedFee,
			ReferenceFeePercent: cfg.Pricing.ReferenceFeePercent,
			SmallSeller:         cfg.Pricing.SmallSeller,
		},
		cfg.Pricing.ExcludedCountries,
		cfg.Pricing.Workers,
		m,
		logger,
	), nil
}

// ProvidePriceConverter creates the run orchestrator.
func ProvidePriceConverter(
	rates repository.RateSource,
	skus repository.SKUSource,
	sink repository.PriceSink,
	publisher repository.PricePublisher,
	pipeline *usecase.Pipeline,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.PriceConverter {
	return usecase.NewPriceConverter(rates, skus, sink, publisher, pipeline, countries.CurrencyMap(), m, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(logger *applogger.Logger, converter *usecase.PriceConverter, sink repository.PriceSink) xhttp.Handler {
	return api.NewPricesEchoHandler(logger, converter, sink)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	converter *usecase.PriceConverter,
	chClient *pkgch.Client,
	handler xhttp.Handler,
	logger *applogger.Logger,
	publisher repository.PricePublisher,
	c cache.Service,
) *server.App {
	app := server.New(cfg, converter, chClient, handler, logger)
	if publisher != nil {
		app.AddCloser(publisher.Close)
	}
	if closer, ok := c.(interface{ Close() error }); ok {
		app.AddCloser(closer.Close)
	}
	return app
}
