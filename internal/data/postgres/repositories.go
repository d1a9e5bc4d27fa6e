package postgres

import (
	"log/slog"

	"github.com/retail-ledger-engine/internal/engine"
	"github.com/retail-ledger-engine/internal/platform/persistence"
)

// NewEngineRepositories builds the full Postgres repository set the engine writes through
func NewEngineRepositories(logger *slog.Logger, db *persistence.PostgresDB) engine.Repositories {
	return engine.Repositories{
		Accounts:         NewAccountRepository(logger, db),
		BankAccounts:     NewBankAccountRepository(logger, db),
		Transactions:     NewTransactionRepository(logger, db),
		BankTransactions: NewBankTransactionRepository(logger, db),
		Swaps:            NewSwapRepository(logger, db),
		Stock:            NewStockRepository(logger, db),
		Sequences:        NewSequenceRepository(logger, db),
		Outbox:           NewOutboxRepository(logger, db),
	}
}
