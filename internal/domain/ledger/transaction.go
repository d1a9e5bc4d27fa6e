package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// ExchangeDetails holds the optional money exchange service fields layered on a Transaction
type ExchangeDetails struct {
	IsExchange    bool   `json:"is_exchange"`
	ExchangeType  string `json:"exchange_type,omitempty"`
	SenderName    string `json:"sender_name,omitempty"`
	SenderPhone   string `json:"sender_phone,omitempty"`
	ReceiverName  string `json:"receiver_name,omitempty"`
	ReceiverPhone string `json:"receiver_phone,omitempty"`
}

// TransactionFields are the caller-editable fields of a Transaction, before validation
type TransactionFields struct {
	AccountID  uuid.UUID
	Side       string
	Type       string
	Amount     int64
	CategoryID *uuid.UUID
	Details    string
	Exchange   ExchangeDetails
}

// Transaction is a single-account ledger entry moving either the cash or the digital
// sub-balance of its Account.
type Transaction struct {
	ID         uuid.UUID          `json:"id"`
	AccountID  uuid.UUID          `json:"account_id"`
	Side       shared.EntrySide   `json:"acc"`
	Type       shared.BalanceType `json:"type"`
	Amount     int64              `json:"amount"`
	CategoryID *uuid.UUID         `json:"category_id,omitempty"`
	Details    string             `json:"details,omitempty"`
	Exchange   ExchangeDetails    `json:"exchange"`
	CreatedBy  uuid.UUID          `json:"created_by"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewTransaction validates fields and builds a Transaction attributed to actor
func NewTransaction(fields TransactionFields, actor uuid.UUID) (*Transaction, error) {
	t := &Transaction{ID: uuid.New(), CreatedBy: actor}
	if err := t.assign(fields); err != nil {
		return nil, err
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	return t, nil
}

// Revise returns a copy of t carrying the new field values, leaving t untouched
func (t *Transaction) Revise(fields TransactionFields) (*Transaction, error) {
	revised := *t
	if err := revised.assign(fields); err != nil {
		return nil, err
	}
	revised.UpdatedAt = time.Now()
	return &revised, nil
}

// ValidateTransactionFields reports the first invalid field without building an entry
func ValidateTransactionFields(fields TransactionFields) error {
	var scratch Transaction
	return scratch.assign(fields)
}

func (t *Transaction) assign(fields TransactionFields) error {
	if fields.AccountID == uuid.Nil {
		return shared.Invalid("account_id", "is required")
	}
	side, err := shared.ParseEntrySide(fields.Side)
	if err != nil {
		return err
	}
	balanceType, err := shared.ParseBalanceType(fields.Type)
	if err != nil {
		return err
	}
	if fields.Amount <= 0 {
		return shared.Invalid("amount", "must be positive, got %d", fields.Amount)
	}
	if fields.Exchange.IsExchange && strings.TrimSpace(fields.Exchange.ExchangeType) == "" {
		return shared.Invalid("exchange_type", "is required for exchange transactions")
	}

	t.AccountID = fields.AccountID
	t.Side = side
	t.Type = balanceType
	t.Amount = fields.Amount
	t.CategoryID = fields.CategoryID
	t.Details = strings.TrimSpace(fields.Details)
	t.Exchange = fields.Exchange
	return nil
}

// Effect is the balance change this transaction applies to its account
func (t *Transaction) Effect() Adjustment {
	signed := t.Side.Sign(t.Amount)
	delta := shared.BalanceDelta{Digital: signed}
	if t.Type == shared.BalanceCash {
		delta = shared.BalanceDelta{Cash: signed}
	}
	return Adjustment{AccountID: t.AccountID, Delta: delta}
}
