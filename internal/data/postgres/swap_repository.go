package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

const swapColumns = `id, swap_id, from_account_id, to_account_id,
		from_amount, from_cash_amount, from_digital_amount,
		to_amount, to_cash_amount, to_digital_amount,
		exchange_rate, details, created_by, created_at, updated_at`

// SwapRepository implements the ledger.SwapRepository interface for PostgreSQL
type SwapRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewSwapRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.SwapRepository {
	return &SwapRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *SwapRepository) WithTx(tx pgx.Tx) ledger.SwapRepository {
	return &SwapRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new swap. Returns ErrDuplicateSwapID when the swap ID is already used.
func (r *SwapRepository) Create(ctx context.Context, s *ledger.AccountSwap) error {
	query := `
		INSERT INTO account_swaps (` + swapColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.querier.Exec(ctx, query,
		s.ID,
		s.SwapID,
		s.FromAccountID,
		s.ToAccountID,
		s.FromAmount,
		s.FromCashAmount,
		s.FromDigitalAmount,
		s.ToAmount,
		s.ToCashAmount,
		s.ToDigitalAmount,
		s.ExchangeRate,
		s.Details,
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if persistence.IsUniqueViolation(err, "account_swaps_swap_id_key") {
			return ledger.ErrDuplicateSwapID{SwapID: s.SwapID}
		}
		r.logger.Error("Failed to create account swap", "swap_id", s.SwapID, "error", err)
		return fmt.Errorf("failed to create account swap: %w", err)
	}

	return nil
}

func (r *SwapRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	return r.get(ctx, `SELECT `+swapColumns+` FROM account_swaps WHERE id = $1`, id)
}

func (r *SwapRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	return r.get(ctx, `SELECT `+swapColumns+` FROM account_swaps WHERE id = $1 FOR UPDATE`, id)
}

func (r *SwapRepository) get(ctx context.Context, query string, id uuid.UUID) (*ledger.AccountSwap, error) {
	var s ledger.AccountSwap
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.SwapID,
		&s.FromAccountID,
		&s.ToAccountID,
		&s.FromAmount,
		&s.FromCashAmount,
		&s.FromDigitalAmount,
		&s.ToAmount,
		&s.ToCashAmount,
		&s.ToDigitalAmount,
		&s.ExchangeRate,
		&s.Details,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{Entity: shared.EntityAccountSwap, ID: id}
		}
		r.logger.Error("Failed to get account swap", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account swap: %w", err)
	}
	return &s, nil
}

// Update overwrites the swap's amounts and accounts; the swap ID never changes
func (r *SwapRepository) Update(ctx context.Context, s *ledger.AccountSwap) error {
	query := `
		UPDATE account_swaps
		SET from_account_id = $1, to_account_id = $2,
			from_amount = $3, from_cash_amount = $4, from_digital_amount = $5,
			to_amount = $6, to_cash_amount = $7, to_digital_amount = $8,
			exchange_rate = $9, details = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.querier.Exec(ctx, query,
		s.FromAccountID,
		s.ToAccountID,
		s.FromAmount,
		s.FromCashAmount,
		s.FromDigitalAmount,
		s.ToAmount,
		s.ToCashAmount,
		s.ToDigitalAmount,
		s.ExchangeRate,
		s.Details,
		s.UpdatedAt,
		s.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update account swap", "id", s.ID.String(), "error", err)
		return fmt.Errorf("failed to update account swap: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityAccountSwap, ID: s.ID}
	}
	return nil
}

func (r *SwapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM account_swaps WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete account swap", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete account swap: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityAccountSwap, ID: id}
	}
	return nil
}

// LatestSwapID returns the swap ID of the most recently created swap
func (r *SwapRepository) LatestSwapID(ctx context.Context) (string, error) {
	query := `SELECT swap_id FROM account_swaps ORDER BY created_at DESC LIMIT 1`

	var swapID string
	if err := r.querier.QueryRow(ctx, query).Scan(&swapID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("Failed to get latest swap id", "error", err)
		return "", fmt.Errorf("failed to get latest swap id: %w", err)
	}
	return swapID, nil
}
