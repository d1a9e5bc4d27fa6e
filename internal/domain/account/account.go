package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Account is a named monetary bucket such as "USD" or "KES" holding a digital
// sub-balance (Balance) and a cash sub-balance. Both are running totals maintained
// exclusively by the mutation engine.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Balance     int64     `json:"balance"`      // Digital, minor units
	CashBalance int64     `json:"cash_balance"` // Cash, minor units
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAccount creates an empty account. Names are stored upper-cased.
func NewAccount(name string, isDefault bool) (*Account, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, shared.Invalid("name", "account name cannot be empty")
	}

	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		Name:      normalized,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeName trims and upper-cases an account name
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Total is the sum of the cash and digital sub-balances
func (a *Account) Total() int64 {
	return a.Balance + a.CashBalance
}

// Apply adds delta to the in-memory balances. Persistence goes through
// Repository.AdjustBalances; this keeps returned snapshots consistent with it.
func (a *Account) Apply(delta shared.BalanceDelta) {
	a.CashBalance += delta.Cash
	a.Balance += delta.Digital
}
