// Package postgres provides PostgreSQL implementations of the domain repositories.
// Every repository can be bound to a pgx.Tx with WithTx so that the mutation engine
// performs all of a mutation's reads and writes inside one transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

const accountColumns = `id, name, balance, cash_balance, is_default, created_at, updated_at`

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to tx
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account. Returns ErrDuplicateName when the name is taken.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, balance, cash_balance, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.Name,
		acc.Balance,
		acc.CashBalance,
		acc.IsDefault,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		if persistence.IsUniqueViolation(err, "accounts_name_key") {
			return account.ErrDuplicateName{Name: acc.Name}
		}
		r.logger.Error("Failed to create account", "name", acc.Name, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

// GetByName retrieves an account by its normalized name. Returns nil, nil when none exists.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1`

	acc, err := scanAccount(r.querier.QueryRow(ctx, query, account.NormalizeName(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get account by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get account by name: %w", err)
	}

	return acc, nil
}

// List returns every account ordered by name
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name ASC`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}

// AdjustBalances increments both sub-balances in one statement. The row lock taken by
// the UPDATE serializes concurrent mutations of the same account.
func (r *AccountRepository) AdjustBalances(ctx context.Context, id uuid.UUID, delta shared.BalanceDelta) error {
	query := `
		UPDATE accounts
		SET cash_balance = cash_balance + $1, balance = balance + $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.querier.Exec(ctx, query, delta.Cash, delta.Digital, id)
	if err != nil {
		r.logger.Error("Failed to adjust account balances",
			"id", id.String(),
			"cash_delta", delta.Cash,
			"digital_delta", delta.Digital,
			"error", err)
		return fmt.Errorf("failed to adjust account balances: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound{AccountID: id}
	}

	return nil
}

// ClearDefault unsets the default flag on every account
func (r *AccountRepository) ClearDefault(ctx context.Context) error {
	query := `UPDATE accounts SET is_default = FALSE, updated_at = NOW() WHERE is_default`

	if _, err := r.querier.Exec(ctx, query); err != nil {
		r.logger.Error("Failed to clear default account", "error", err)
		return fmt.Errorf("failed to clear default account: %w", err)
	}
	return nil
}

// SetDefault flags one account as the default
func (r *AccountRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET is_default = TRUE, updated_at = NOW() WHERE id = $1`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to set default account", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set default account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound{AccountID: id}
	}
	return nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var acc account.Account
	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Balance,
		&acc.CashBalance,
		&acc.IsDefault,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
