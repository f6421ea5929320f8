//go:build wireinject
// +build wireinject

package di

import (
	"QuantLab/pkg/config"
	"QuantLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Market data pipeline
		ProvideCache,
		ProvideGateway,
		ProvideSource,
		ProvideDetector,
		ProvideSynthesizer,

		// Downstream feed
		ProvideKafkaProducer,
		ProvideAnomalySink,

		// Use cases and HTTP surface
		ProvideAggregator,
		ProvideHandler,
		ProvideWarmer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
