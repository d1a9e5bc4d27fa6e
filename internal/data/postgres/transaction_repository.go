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

const transactionColumns = `id, account_id, acc, type, amount, category_id, details,
		is_exchange, exchange_type, sender_name, sender_phone, receiver_name, receiver_phone,
		created_by, created_at, updated_at`

// TransactionRepository implements the ledger.TransactionRepository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.TransactionRepository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *TransactionRepository) WithTx(tx pgx.Tx) ledger.TransactionRepository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new transaction row
func (r *TransactionRepository) Create(ctx context.Context, t *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.AccountID,
		t.Side,
		t.Type,
		t.Amount,
		t.CategoryID,
		t.Details,
		t.Exchange.IsExchange,
		t.Exchange.ExchangeType,
		t.Exchange.SenderName,
		t.Exchange.SenderPhone,
		t.Exchange.ReceiverName,
		t.Exchange.ReceiverPhone,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", "id", t.ID.String(), "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// GetForUpdate retrieves a transaction and locks its row until the transaction ends
func (r *TransactionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransactionRepository) get(ctx context.Context, query string, id uuid.UUID) (*ledger.Transaction, error) {
	var t ledger.Transaction
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.AccountID,
		&t.Side,
		&t.Type,
		&t.Amount,
		&t.CategoryID,
		&t.Details,
		&t.Exchange.IsExchange,
		&t.Exchange.ExchangeType,
		&t.Exchange.SenderName,
		&t.Exchange.SenderPhone,
		&t.Exchange.ReceiverName,
		&t.Exchange.ReceiverPhone,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

// Update overwrites every editable field of the transaction
func (r *TransactionRepository) Update(ctx context.Context, t *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, acc = $2, type = $3, amount = $4, category_id = $5, details = $6,
			is_exchange = $7, exchange_type = $8, sender_name = $9, sender_phone = $10,
			receiver_name = $11, receiver_phone = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := r.querier.Exec(ctx, query,
		t.AccountID,
		t.Side,
		t.Type,
		t.Amount,
		t.CategoryID,
		t.Details,
		t.Exchange.IsExchange,
		t.Exchange.ExchangeType,
		t.Exchange.SenderName,
		t.Exchange.SenderPhone,
		t.Exchange.ReceiverName,
		t.Exchange.ReceiverPhone,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update transaction", "id", t.ID.String(), "error", err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: t.ID}
	}
	return nil
}

// Delete removes the transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: id}
	}
	return nil
}
