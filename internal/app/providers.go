// Package app assembles the service from its parts. The provider set is
// consumed by wire; see wire.go and the generated wire_gen.go.
package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"yourtranscript/internal/api/server"
	v1routes "yourtranscript/internal/api/v1/routes"
	"yourtranscript/internal/api/v1/services"
	"yourtranscript/internal/app/auth"
	"yourtranscript/internal/app/cache"
	"yourtranscript/internal/app/queue"
	"yourtranscript/internal/app/quota"
	"yourtranscript/internal/app/repository"
	"yourtranscript/internal/app/repository/pg"
	"yourtranscript/internal/app/worker"
	"yourtranscript/internal/config"
)

const startupTimeout = 10 * time.Second

func providePostgres(cfg *config.Config) (*sql.DB, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := pg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func provideRedis(cfg *config.Config) (*redis.Client, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

func provideTranscriptDAO(db *sql.DB) repository.TranscriptDAO {
	return pg.NewTranscriptRepo(db)
}

func provideRequestLogDAO(db *sql.DB) repository.RequestLogDAO {
	return pg.NewRequestLogRepo(db)
}

func provideQuotaDAO(db *sql.DB) repository.QuotaDAO {
	return pg.NewQuotaRepo(db)
}

func provideQuotaLedger(dao repository.QuotaDAO, cfg *config.Config, logger *zap.Logger) services.QuotaLedger {
	return quota.NewLedger(dao, cfg.FreeTierDailyLimit, logger)
}

func provideTranscriptCache(client *redis.Client, cfg *config.Config) services.TranscriptCache {
	return cache.NewTranscriptCache(client, cfg.TranscriptCacheTTL)
}

func provideJobStore(client *redis.Client, cfg *config.Config) services.JobStore {
	return cache.NewJobStore(client, cfg.JobStatusTTL)
}

func provideDispatcher(client *redis.Client, cfg *config.Config) services.Dispatcher {
	return queue.NewDispatcher(client, cfg.QueueStream, cfg.QueueMaxAttempts)
}

func provideWorkerClient(cfg *config.Config) services.WorkerClient {
	return worker.NewClient(cfg.WorkerURL)
}

func provideVerifier(cfg *config.Config) auth.Verifier {
	return auth.NewHTTPVerifier(cfg.AuthURL)
}

func provideReceiver(cfg *config.Config) *queue.Receiver {
	return queue.NewReceiver(cfg.SigningKeyCurrent, cfg.SigningKeyNext)
}

func provideServiceConfig(cfg *config.Config) services.Config {
	return services.Config{
		AsyncDispatch: cfg.UseAsyncDispatch,
		CallbackURL:   cfg.CallbackURL,
	}
}

func provideContainer(
	extraction services.ExtractionService,
	verifier auth.Verifier,
	receiver *queue.Receiver,
	logger *zap.Logger,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		ExtractionService: extraction,
		Verifier:          verifier,
		Receiver:          receiver,
		Logger:            logger,
	}
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		IdleTimeout:        cfg.IdleTimeout,
		Environment:        cfg.Environment,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
}
