package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// BankTransactionFields are the caller-editable fields of a BankTransaction.
// Amount is optional; when present it must equal CashAmount + DigitalAmount.
type BankTransactionFields struct {
	BankAccountID uuid.UUID
	AccountID     uuid.UUID
	Side          string
	CashAmount    int64
	DigitalAmount int64
	Amount        *int64
	Details       string
}

// BankTransaction is an entry against a BankAccount mirrored on a linked Account.
// Amount is always CashAmount + DigitalAmount.
type BankTransaction struct {
	ID            uuid.UUID        `json:"id"`
	BankAccountID uuid.UUID        `json:"bank_account_id"`
	AccountID     uuid.UUID        `json:"account_id"`
	Side          shared.EntrySide `json:"acc"`
	CashAmount    int64            `json:"cash_balance"`
	DigitalAmount int64            `json:"digital_balance"`
	Amount        int64            `json:"amount"`
	Details       string           `json:"details,omitempty"`
	CreatedBy     uuid.UUID        `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewBankTransaction validates fields and builds a BankTransaction attributed to actor
func NewBankTransaction(fields BankTransactionFields, actor uuid.UUID) (*BankTransaction, error) {
	bt := &BankTransaction{ID: uuid.New(), CreatedBy: actor}
	if err := bt.assign(fields); err != nil {
		return nil, err
	}
	bt.CreatedAt = time.Now()
	bt.UpdatedAt = bt.CreatedAt
	return bt, nil
}

// Revise returns a copy of bt carrying the new field values
func (bt *BankTransaction) Revise(fields BankTransactionFields) (*BankTransaction, error) {
	revised := *bt
	if err := revised.assign(fields); err != nil {
		return nil, err
	}
	revised.UpdatedAt = time.Now()
	return &revised, nil
}

// ValidateBankTransactionFields reports the first invalid field without building an entry
func ValidateBankTransactionFields(fields BankTransactionFields) error {
	var scratch BankTransaction
	return scratch.assign(fields)
}

func (bt *BankTransaction) assign(fields BankTransactionFields) error {
	if fields.BankAccountID == uuid.Nil {
		return shared.Invalid("bank_account_id", "is required")
	}
	if fields.AccountID == uuid.Nil {
		return shared.Invalid("account_id", "is required")
	}
	side, err := shared.ParseEntrySide(fields.Side)
	if err != nil {
		return err
	}
	if fields.CashAmount < 0 {
		return shared.Invalid("cash_balance", "must not be negative, got %d", fields.CashAmount)
	}
	if fields.DigitalAmount < 0 {
		return shared.Invalid("digital_balance", "must not be negative, got %d", fields.DigitalAmount)
	}
	total := fields.CashAmount + fields.DigitalAmount
	if fields.Amount != nil && *fields.Amount != total {
		return shared.Invalid("amount", "cash %d + digital %d does not equal amount %d",
			fields.CashAmount, fields.DigitalAmount, *fields.Amount)
	}
	if total == 0 {
		return shared.Invalid("amount", "must be positive")
	}

	bt.BankAccountID = fields.BankAccountID
	bt.AccountID = fields.AccountID
	bt.Side = side
	bt.CashAmount = fields.CashAmount
	bt.DigitalAmount = fields.DigitalAmount
	bt.Amount = total
	bt.Details = strings.TrimSpace(fields.Details)
	return nil
}

// Effect is the balance change on the linked Account, split across cash and digital
func (bt *BankTransaction) Effect() Adjustment {
	return Adjustment{
		AccountID: bt.AccountID,
		Delta: shared.BalanceDelta{
			Cash:    bt.Side.Sign(bt.CashAmount),
			Digital: bt.Side.Sign(bt.DigitalAmount),
		},
	}
}
