package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// BankAccount is an external holding. Unlike Account its balances are not stored:
// they are derived at read time from the bank account's BankTransactions.
type BankAccount struct {
	ID             uuid.UUID `json:"id"`
	AccountNumber  string    `json:"account_number"`
	Name           string    `json:"name"`
	CashBalance    int64     `json:"cash_balance"`
	DigitalBalance int64     `json:"digital_balance"`
	TotalBalance   int64     `json:"total_balance"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBankAccount creates a bank account with an already issued account number
func NewBankAccount(accountNumber, holderName string, createdBy uuid.UUID) (*BankAccount, error) {
	holderName = strings.TrimSpace(holderName)
	if holderName == "" {
		return nil, shared.Invalid("name", "holder name cannot be empty")
	}
	if accountNumber == "" {
		return nil, shared.Invalid("account_number", "account number cannot be empty")
	}
	return &BankAccount{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Name:          holderName,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}, nil
}
