package shared

import (
	"strings"
)

// EntrySide tags a ledger entry as a credit or a debit
type EntrySide string

const (
	SideCredit EntrySide = "cr"
	SideDebit  EntrySide = "dr"
)

// ParseEntrySide accepts "cr"/"dr" in any letter case
func ParseEntrySide(s string) (EntrySide, error) {
	switch EntrySide(strings.ToLower(strings.TrimSpace(s))) {
	case SideCredit:
		return SideCredit, nil
	case SideDebit:
		return SideDebit, nil
	}
	return "", Invalid("acc", "%q is neither cr nor dr", s)
}

// Sign returns +amount for credits and -amount for debits
func (s EntrySide) Sign(amount int64) int64 {
	if s == SideDebit {
		return -amount
	}
	return amount
}

// BalanceType selects which sub-balance of an account an entry moves
type BalanceType string

const (
	BalanceCash    BalanceType = "cash"
	BalanceDigital BalanceType = "digital"
)

// ParseBalanceType accepts "cash"/"digital" in any letter case
func ParseBalanceType(s string) (BalanceType, error) {
	switch BalanceType(strings.ToLower(strings.TrimSpace(s))) {
	case BalanceCash:
		return BalanceCash, nil
	case BalanceDigital:
		return BalanceDigital, nil
	}
	return "", Invalid("type", "%q is neither cash nor digital", s)
}

// BalanceDelta is a signed change to an account's cash and digital sub-balances,
// in minor units.
type BalanceDelta struct {
	Cash    int64 `json:"cash" bson:"cash"`
	Digital int64 `json:"digital" bson:"digital"`
}

// Inverse returns the delta that undoes d
func (d BalanceDelta) Inverse() BalanceDelta {
	return BalanceDelta{Cash: -d.Cash, Digital: -d.Digital}
}

// Add sums two deltas
func (d BalanceDelta) Add(o BalanceDelta) BalanceDelta {
	return BalanceDelta{Cash: d.Cash + o.Cash, Digital: d.Digital + o.Digital}
}

func (d BalanceDelta) IsZero() bool {
	return d.Cash == 0 && d.Digital == 0
}

// EntityType names the records whose mutations are audited
type EntityType string

const (
	EntityAccount         EntityType = "ACCOUNT"
	EntityBankAccount     EntityType = "BANK_ACCOUNT"
	EntityTransaction     EntityType = "TRANSACTION"
	EntityBankTransaction EntityType = "BANK_TRANSACTION"
	EntityAccountSwap     EntityType = "ACCOUNT_SWAP"
	EntityStockMovement   EntityType = "STOCK_MOVEMENT"
)

// ParseEntityType accepts the upper-case names and their kebab-case URL forms
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch t {
	case EntityAccount, EntityBankAccount, EntityTransaction, EntityBankTransaction, EntityAccountSwap, EntityStockMovement:
		return t, nil
	}
	return "", Invalid("entity_type", "unknown entity type %q", s)
}

// Operation is the lifecycle step an audit event records
type Operation string

const (
	OperationCreated Operation = "CREATED"
	OperationUpdated Operation = "UPDATED"
	OperationDeleted Operation = "DELETED"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
