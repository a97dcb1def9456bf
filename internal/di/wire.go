//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Dotan-Peleh/currency-convertor/pkg/config"
	"github.com/Dotan-Peleh/currency-convertor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideKafkaProducer,

		// Repositories
		ProvideRateSource,
		ProvideSKUSource,
		ProvidePriceSink,
		ProvidePricePublisher,

		// Use cases
		ProvidePipeline,
		ProvidePriceConverter,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
