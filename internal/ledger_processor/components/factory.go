package components

import (
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/retail-ledger-engine/internal/config"
	"github.com/retail-ledger-engine/internal/ledger_processor/service"
	"github.com/retail-ledger-engine/internal/platform/messaging/producers"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	engine service.LedgerEngine,
	redisClient redis.Cmdable,
	dlq producers.DeadLetterPublisher,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	idempotency := NewIdempotencyStore(redisClient, cfg.Redis.IdempotencyTTL, logger.With("component", "idempotency"))
	failureRecorder := NewFailureRecorder(dlq, logger.With("component", "failure_recorder"))

	baseService := service.NewProcessingService(engine, idempotency, failureRecorder, logger)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
