package command

import (
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ref addresses an existing entry for delete and set-default commands
type Ref struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// Revision carries the replacement fields of an existing entry
type Revision[T any] struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Entry T         `json:"entry"`
}

// ExchangePayload is the optional money-transfer detail of a transaction
type ExchangePayload struct {
	IsExchange    bool   `json:"is_exchange"`
	ExchangeType  string `json:"exchange_type,omitempty" validate:"max=50"`
	SenderName    string `json:"sender_name,omitempty" validate:"max=100"`
	SenderPhone   string `json:"sender_phone,omitempty" validate:"max=30"`
	ReceiverName  string `json:"receiver_name,omitempty" validate:"max=100"`
	ReceiverPhone string `json:"receiver_phone,omitempty" validate:"max=30"`
}

// TransactionPayload describes a single-account entry. Amounts are decimals such as "12.50".
type TransactionPayload struct {
	AccountID  uuid.UUID       `json:"account_id" validate:"required"`
	Acc        string          `json:"acc" validate:"required"`
	Type       string          `json:"type" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	Details    string          `json:"details,omitempty" validate:"max=500"`
	Exchange   ExchangePayload `json:"exchange"`
}

// Fields converts the payload into minor-unit engine input
func (p TransactionPayload) Fields() (ledger.TransactionFields, error) {
	amount, err := shared.MinorUnits("amount", p.Amount)
	if err != nil {
		return ledger.TransactionFields{}, err
	}
	return ledger.TransactionFields{
		AccountID:  p.AccountID,
		Side:       p.Acc,
		Type:       p.Type,
		Amount:     amount,
		CategoryID: p.CategoryID,
		Details:    p.Details,
		Exchange:   ledger.ExchangeDetails(p.Exchange),
	}, nil
}

// BankTransactionPayload describes a bank-account entry. Amount is optional; when
// present it must equal the cash and digital split.
type BankTransactionPayload struct {
	BankAccountID  uuid.UUID           `json:"bank_account_id" validate:"required"`
	AccountID      uuid.UUID           `json:"account_id" validate:"required"`
	Acc            string              `json:"acc" validate:"required"`
	CashBalance    decimal.Decimal     `json:"cash_balance"`
	DigitalBalance decimal.Decimal     `json:"digital_balance"`
	Amount         decimal.NullDecimal `json:"amount"`
	Details        string              `json:"details,omitempty" validate:"max=500"`
}

func (p BankTransactionPayload) Fields() (ledger.BankTransactionFields, error) {
	var (
		f   ledger.BankTransactionFields
		err error
	)
	if f.CashAmount, err = shared.MinorUnits("cash_balance", p.CashBalance); err != nil {
		return f, err
	}
	if f.DigitalAmount, err = shared.MinorUnits("digital_balance", p.DigitalBalance); err != nil {
		return f, err
	}
	if p.Amount.Valid {
		amount, err := shared.MinorUnits("amount", p.Amount.Decimal)
		if err != nil {
			return f, err
		}
		f.Amount = &amount
	}
	f.BankAccountID = p.BankAccountID
	f.AccountID = p.AccountID
	f.Side = p.Acc
	f.Details = p.Details
	return f, nil
}

// SwapPayload describes a two-sided swap between accounts
type SwapPayload struct {
	FromAccountID     uuid.UUID           `json:"from_account_id" validate:"required"`
	ToAccountID       uuid.UUID           `json:"to_account_id" validate:"required"`
	FromAmount        decimal.Decimal     `json:"from_amount"`
	FromCashAmount    decimal.Decimal     `json:"from_cash_amount"`
	FromDigitalAmount decimal.Decimal     `json:"from_digital_amount"`
	ToAmount          decimal.Decimal     `json:"to_amount"`
	ToCashAmount      decimal.Decimal     `json:"to_cash_amount"`
	ToDigitalAmount   decimal.Decimal     `json:"to_digital_amount"`
	ExchangeRate      decimal.NullDecimal `json:"exchange_rate"`
	Details           string              `json:"details,omitempty" validate:"max=500"`
}

func (p SwapPayload) Fields() (ledger.SwapFields, error) {
	f := ledger.SwapFields{
		FromAccountID: p.FromAccountID,
		ToAccountID:   p.ToAccountID,
		ExchangeRate:  p.ExchangeRate,
		Details:       p.Details,
	}
	amounts := []struct {
		field string
		value decimal.Decimal
		dst   *int64
	}{
		{"from_amount", p.FromAmount, &f.FromAmount},
		{"from_cash_amount", p.FromCashAmount, &f.FromCashAmount},
		{"from_digital_amount", p.FromDigitalAmount, &f.FromDigitalAmount},
		{"to_amount", p.ToAmount, &f.ToAmount},
		{"to_cash_amount", p.ToCashAmount, &f.ToCashAmount},
		{"to_digital_amount", p.ToDigitalAmount, &f.ToDigitalAmount},
	}
	for _, a := range amounts {
		v, err := shared.MinorUnits(a.field, a.value)
		if err != nil {
			return ledger.SwapFields{}, err
		}
		*a.dst = v
	}
	return f, nil
}

// StockMovementPayload records a non-negative quantity of one SKU
type StockMovementPayload struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	SKUID     uuid.UUID `json:"sku_id" validate:"required"`
	Quantity  int64     `json:"quantity"`
}

// StockQuantityPayload replaces the quantity of an existing movement
type StockQuantityPayload struct {
	Quantity int64 `json:"quantity"`
}

type AccountPayload struct {
	Name      string `json:"name" validate:"required,max=100"`
	IsDefault bool   `json:"is_default"`
}

type BankAccountPayload struct {
	HolderName string `json:"holder_name" validate:"required,max=200"`
}
