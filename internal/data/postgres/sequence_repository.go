package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

// SequenceRepository implements sequence.Repository on a counter row per namespace.
// The upsert takes the row lock, so concurrent callers never see the same value.
type SequenceRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewSequenceRepository(logger *slog.Logger, db *persistence.PostgresDB) sequence.Repository {
	return &SequenceRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *SequenceRepository) WithTx(tx pgx.Tx) sequence.Repository {
	return &SequenceRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *SequenceRepository) Next(ctx context.Context, ns sequence.Namespace) (int64, error) {
	query := `
		INSERT INTO sequences (namespace, value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (namespace) DO UPDATE SET value = sequences.value + 1, updated_at = NOW()
		RETURNING value
	`

	var value int64
	if err := r.querier.QueryRow(ctx, query, string(ns)).Scan(&value); err != nil {
		r.logger.Error("Failed to advance sequence", "namespace", string(ns), "error", err)
		return 0, fmt.Errorf("failed to advance sequence %s: %w", ns, err)
	}
	return value, nil
}

func (r *SequenceRepository) Sync(ctx context.Context, ns sequence.Namespace, floor int64) error {
	query := `
		INSERT INTO sequences (namespace, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (namespace) DO UPDATE SET value = GREATEST(sequences.value, EXCLUDED.value), updated_at = NOW()
	`

	if _, err := r.querier.Exec(ctx, query, string(ns), floor); err != nil {
		r.logger.Error("Failed to sync sequence", "namespace", string(ns), "floor", floor, "error", err)
		return fmt.Errorf("failed to sync sequence %s: %w", ns, err)
	}
	return nil
}
