package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/ledger_processor/service"
)

const idempotencyKeyPrefix = "ledger:command:"

// RedisIdempotencyStore keeps the outcome of every handled command ID for a TTL
type RedisIdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) service.IdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func idempotencyKey(commandID uuid.UUID) string {
	return idempotencyKeyPrefix + commandID.String()
}

func (s *RedisIdempotencyStore) Outcome(ctx context.Context, commandID uuid.UUID) (service.Outcome, bool, error) {
	val, err := s.client.Get(ctx, idempotencyKey(commandID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read idempotency key for command %s: %w", commandID, err)
	}
	return service.Outcome(val), true, nil
}

// MarkProcessed stores the outcome unless one is already stored
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, commandID uuid.UUID, outcome service.Outcome) error {
	set, err := s.client.SetNX(ctx, idempotencyKey(commandID), string(outcome), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to mark command %s as processed: %w", commandID, err)
	}
	if !set {
		s.logger.Warn("Command was already marked as processed", "command_id", commandID.String(), "outcome", outcome)
	}
	return nil
}
