package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SwapFields are the caller-editable fields of an AccountSwap
type SwapFields struct {
	FromAccountID     uuid.UUID
	ToAccountID       uuid.UUID
	FromAmount        int64
	FromCashAmount    int64
	FromDigitalAmount int64
	ToAmount          int64
	ToCashAmount      int64
	ToDigitalAmount   int64
	ExchangeRate      decimal.NullDecimal
	Details           string
}

// AccountSwap transfers value between two accounts, each side independently split
// into cash and digital parts. From and to totals need not match: the caller-supplied
// difference models currency exchange.
type AccountSwap struct {
	ID                uuid.UUID           `json:"id"`
	SwapID            string              `json:"swap_id"`
	FromAccountID     uuid.UUID           `json:"from_account_id"`
	ToAccountID       uuid.UUID           `json:"to_account_id"`
	FromAmount        int64               `json:"from_amount"`
	FromCashAmount    int64               `json:"from_cash_amount"`
	FromDigitalAmount int64               `json:"from_digital_amount"`
	ToAmount          int64               `json:"to_amount"`
	ToCashAmount      int64               `json:"to_cash_amount"`
	ToDigitalAmount   int64               `json:"to_digital_amount"`
	ExchangeRate      decimal.NullDecimal `json:"exchange_rate"`
	Details           string              `json:"details,omitempty"`
	CreatedBy         uuid.UUID           `json:"created_by"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ValidateSwapFields checks the split sums exactly. The same account on both sides
// is allowed and acts as a cash/digital shuffle.
func ValidateSwapFields(fields SwapFields) error {
	if fields.FromAccountID == uuid.Nil {
		return shared.Invalid("from_account_id", "is required")
	}
	if fields.ToAccountID == uuid.Nil {
		return shared.Invalid("to_account_id", "is required")
	}
	amounts := []struct {
		field string
		value int64
	}{
		{"from_amount", fields.FromAmount},
		{"from_cash_amount", fields.FromCashAmount},
		{"from_digital_amount", fields.FromDigitalAmount},
		{"to_amount", fields.ToAmount},
		{"to_cash_amount", fields.ToCashAmount},
		{"to_digital_amount", fields.ToDigitalAmount},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return shared.Invalid(a.field, "must not be negative, got %d", a.value)
		}
	}
	if fields.FromCashAmount+fields.FromDigitalAmount != fields.FromAmount {
		return shared.Invalid("from_amount", "cash %d + digital %d does not equal %d",
			fields.FromCashAmount, fields.FromDigitalAmount, fields.FromAmount)
	}
	if fields.ToCashAmount+fields.ToDigitalAmount != fields.ToAmount {
		return shared.Invalid("to_amount", "cash %d + digital %d does not equal %d",
			fields.ToCashAmount, fields.ToDigitalAmount, fields.ToAmount)
	}
	if fields.ExchangeRate.Valid && !fields.ExchangeRate.Decimal.IsPositive() {
		return shared.Invalid("exchange_rate", "must be positive, got %s", fields.ExchangeRate.Decimal.String())
	}
	return nil
}

// NewAccountSwap validates fields and builds a swap carrying an issued swap ID
func NewAccountSwap(swapID string, fields SwapFields, actor uuid.UUID) (*AccountSwap, error) {
	if err := ValidateSwapFields(fields); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &AccountSwap{
		ID:        uuid.New(),
		SwapID:    swapID,
		CreatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.assign(fields)
	return s, nil
}

// Revise returns a copy of s carrying the new field values; SwapID is kept
func (s *AccountSwap) Revise(fields SwapFields) (*AccountSwap, error) {
	if err := ValidateSwapFields(fields); err != nil {
		return nil, err
	}
	revised := *s
	revised.assign(fields)
	revised.UpdatedAt = time.Now()
	return &revised, nil
}

func (s *AccountSwap) assign(fields SwapFields) {
	s.FromAccountID = fields.FromAccountID
	s.ToAccountID = fields.ToAccountID
	s.FromAmount = fields.FromAmount
	s.FromCashAmount = fields.FromCashAmount
	s.FromDigitalAmount = fields.FromDigitalAmount
	s.ToAmount = fields.ToAmount
	s.ToCashAmount = fields.ToCashAmount
	s.ToDigitalAmount = fields.ToDigitalAmount
	s.ExchangeRate = fields.ExchangeRate
	s.Details = strings.TrimSpace(fields.Details)
}

// Effects returns the from-side debit followed by the to-side credit
func (s *AccountSwap) Effects() []Adjustment {
	return []Adjustment{
		{
			AccountID: s.FromAccountID,
			Delta:     shared.BalanceDelta{Cash: -s.FromCashAmount, Digital: -s.FromDigitalAmount},
		},
		{
			AccountID: s.ToAccountID,
			Delta:     shared.BalanceDelta{Cash: s.ToCashAmount, Digital: s.ToDigitalAmount},
		},
	}
}
