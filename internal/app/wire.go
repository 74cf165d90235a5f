//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"yourtranscript/internal/api/server"
	"yourtranscript/internal/api/v1/services"
	"yourtranscript/internal/config"
)

// InitializeServer builds the fully wired API server. The returned
// cleanup closes the Postgres and Redis connections.
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(
		providePostgres,
		provideRedis,
		provideTranscriptDAO,
		provideRequestLogDAO,
		provideQuotaDAO,
		provideQuotaLedger,
		provideTranscriptCache,
		provideJobStore,
		provideDispatcher,
		provideWorkerClient,
		provideVerifier,
		provideReceiver,
		provideServiceConfig,
		services.NewExtractionService,
		provideContainer,
		provideServerConfig,
		server.NewServer,
	)
	return nil, nil, nil
}
