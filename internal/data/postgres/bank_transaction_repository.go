package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

const bankTransactionColumns = `id, bank_account_id, account_id, acc, cash_balance, digital_balance, amount,
		details, created_by, created_at, updated_at`

// BankTransactionRepository implements the ledger.BankTransactionRepository interface for PostgreSQL
type BankTransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewBankTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.BankTransactionRepository {
	return &BankTransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *BankTransactionRepository) WithTx(tx pgx.Tx) ledger.BankTransactionRepository {
	return &BankTransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *BankTransactionRepository) Create(ctx context.Context, bt *ledger.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		bt.ID,
		bt.BankAccountID,
		bt.AccountID,
		bt.Side,
		bt.CashAmount,
		bt.DigitalAmount,
		bt.Amount,
		bt.Details,
		bt.CreatedBy,
		bt.CreatedAt,
		bt.UpdatedAt,
	)
	if err != nil {
		switch {
		case persistence.IsForeignKeyViolation(err, "bank_transactions_bank_account_id_fkey"):
			return account.ErrBankAccountNotFound{BankAccountID: bt.BankAccountID}
		case persistence.IsForeignKeyViolation(err, "bank_transactions_account_id_fkey"):
			return account.ErrAccountNotFound{AccountID: bt.AccountID}
		}
		r.logger.Error("Failed to create bank transaction", "id", bt.ID.String(), "error", err)
		return fmt.Errorf("failed to create bank transaction: %w", err)
	}

	return nil
}

func (r *BankTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	return r.get(ctx, `SELECT `+bankTransactionColumns+` FROM bank_transactions WHERE id = $1`, id)
}

func (r *BankTransactionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	return r.get(ctx, `SELECT `+bankTransactionColumns+` FROM bank_transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *BankTransactionRepository) get(ctx context.Context, query string, id uuid.UUID) (*ledger.BankTransaction, error) {
	var bt ledger.BankTransaction
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&bt.ID,
		&bt.BankAccountID,
		&bt.AccountID,
		&bt.Side,
		&bt.CashAmount,
		&bt.DigitalAmount,
		&bt.Amount,
		&bt.Details,
		&bt.CreatedBy,
		&bt.CreatedAt,
		&bt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound{Entity: shared.EntityBankTransaction, ID: id}
		}
		r.logger.Error("Failed to get bank transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get bank transaction: %w", err)
	}
	return &bt, nil
}

func (r *BankTransactionRepository) Update(ctx context.Context, bt *ledger.BankTransaction) error {
	query := `
		UPDATE bank_transactions
		SET bank_account_id = $1, account_id = $2, acc = $3, cash_balance = $4, digital_balance = $5,
			amount = $6, details = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.querier.Exec(ctx, query,
		bt.BankAccountID,
		bt.AccountID,
		bt.Side,
		bt.CashAmount,
		bt.DigitalAmount,
		bt.Amount,
		bt.Details,
		bt.UpdatedAt,
		bt.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update bank transaction", "id", bt.ID.String(), "error", err)
		return fmt.Errorf("failed to update bank transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityBankTransaction, ID: bt.ID}
	}
	return nil
}

func (r *BankTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM bank_transactions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete bank transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete bank transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound{Entity: shared.EntityBankTransaction, ID: id}
	}
	return nil
}
