package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

// BankAccountRepository implements the account.BankAccountRepository interface for PostgreSQL
type BankAccountRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewBankAccountRepository creates a new PostgreSQL bank account repository
func NewBankAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.BankAccountRepository {
	return &BankAccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *BankAccountRepository) WithTx(tx pgx.Tx) account.BankAccountRepository {
	return &BankAccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new bank account. Returns ErrDuplicateAccountNumber when the number is taken.
func (r *BankAccountRepository) Create(ctx context.Context, ba *account.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, account_number, name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query, ba.ID, ba.AccountNumber, ba.Name, ba.CreatedBy, ba.CreatedAt)
	if err != nil {
		if persistence.IsUniqueViolation(err, "bank_accounts_account_number_key") {
			return account.ErrDuplicateAccountNumber{AccountNumber: ba.AccountNumber}
		}
		r.logger.Error("Failed to create bank account", "account_number", ba.AccountNumber, "error", err)
		return fmt.Errorf("failed to create bank account: %w", err)
	}

	return nil
}

// GetByID retrieves a bank account with its balances summed from its transactions
// (credits positive, debits negative).
func (r *BankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.BankAccount, error) {
	query := `
		SELECT b.id, b.account_number, b.name, b.created_by, b.created_at,
			COALESCE(SUM(CASE WHEN t.acc = 'cr' THEN t.cash_balance ELSE -t.cash_balance END), 0)::BIGINT,
			COALESCE(SUM(CASE WHEN t.acc = 'cr' THEN t.digital_balance ELSE -t.digital_balance END), 0)::BIGINT
		FROM bank_accounts b
		LEFT JOIN bank_transactions t ON t.bank_account_id = b.id
		WHERE b.id = $1
		GROUP BY b.id
	`

	var ba account.BankAccount
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&ba.ID,
		&ba.AccountNumber,
		&ba.Name,
		&ba.CreatedBy,
		&ba.CreatedAt,
		&ba.CashBalance,
		&ba.DigitalBalance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrBankAccountNotFound{BankAccountID: id}
		}
		r.logger.Error("Failed to get bank account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	ba.TotalBalance = ba.CashBalance + ba.DigitalBalance

	return &ba, nil
}

// Lock takes a row lock on the bank account for the rest of the transaction
func (r *BankAccountRepository) Lock(ctx context.Context, id uuid.UUID) error {
	query := `SELECT id FROM bank_accounts WHERE id = $1 FOR UPDATE`

	var locked uuid.UUID
	if err := r.querier.QueryRow(ctx, query, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.ErrBankAccountNotFound{BankAccountID: id}
		}
		r.logger.Error("Failed to lock bank account", "id", id.String(), "error", err)
		return fmt.Errorf("failed to lock bank account: %w", err)
	}
	return nil
}

// LatestAccountNumber returns the account number of the most recently created bank account
func (r *BankAccountRepository) LatestAccountNumber(ctx context.Context) (string, error) {
	query := `SELECT account_number FROM bank_accounts ORDER BY created_at DESC LIMIT 1`

	var number string
	if err := r.querier.QueryRow(ctx, query).Scan(&number); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		r.logger.Error("Failed to get latest bank account number", "error", err)
		return "", fmt.Errorf("failed to get latest bank account number: %w", err)
	}
	return number, nil
}
