package handler

import (
	"encoding/json"
	"time"

	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Request bodies reuse the command payloads in internal/domain/command, so the REST
// API and the Kafka command topic accept the same JSON.

// SubmitCommandRequest queues a mutation for asynchronous processing
type SubmitCommandRequest struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// CommandAcceptedResponse acknowledges a queued command
type CommandAcceptedResponse struct {
	CommandID string `json:"command_id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

// IdentifierResponse carries a newly issued sequence identifier
type IdentifierResponse struct {
	Namespace  string `json:"namespace"`
	Identifier string `json:"identifier"`
}

// AccountResponse represents an account in API responses. Amounts are decimals.
type AccountResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	CashBalance  decimal.Decimal `json:"cash_balance"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	IsDefault    bool            `json:"is_default"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type BankAccountResponse struct {
	ID             string          `json:"id"`
	AccountNumber  string          `json:"account_number"`
	Name           string          `json:"name"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	DigitalBalance decimal.Decimal `json:"digital_balance"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      string          `json:"created_at"`
}

type TransactionResponse struct {
	ID         string                 `json:"id"`
	AccountID  string                 `json:"account_id"`
	Acc        string                 `json:"acc"`
	Type       string                 `json:"type"`
	Amount     decimal.Decimal        `json:"amount"`
	CategoryID *string                `json:"category_id,omitempty"`
	Details    string                 `json:"details,omitempty"`
	Exchange   ledger.ExchangeDetails `json:"exchange"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  string                 `json:"created_at"`
	UpdatedAt  string                 `json:"updated_at"`
}

type BankTransactionResponse struct {
	ID             string          `json:"id"`
	BankAccountID  string          `json:"bank_account_id"`
	AccountID      string          `json:"account_id"`
	Acc            string          `json:"acc"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	DigitalBalance decimal.Decimal `json:"digital_balance"`
	Amount         decimal.Decimal `json:"amount"`
	Details        string          `json:"details,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type SwapResponse struct {
	ID                string              `json:"id"`
	SwapID            string              `json:"swap_id"`
	FromAccountID     string              `json:"from_account_id"`
	ToAccountID       string              `json:"to_account_id"`
	FromAmount        decimal.Decimal     `json:"from_amount"`
	FromCashAmount    decimal.Decimal     `json:"from_cash_amount"`
	FromDigitalAmount decimal.Decimal     `json:"from_digital_amount"`
	ToAmount          decimal.Decimal     `json:"to_amount"`
	ToCashAmount      decimal.Decimal     `json:"to_cash_amount"`
	ToDigitalAmount   decimal.Decimal     `json:"to_digital_amount"`
	ExchangeRate      decimal.NullDecimal `json:"exchange_rate"`
	Details           string              `json:"details,omitempty"`
	CreatedBy         string              `json:"created_by"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func mapAccountToResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Balance:      shared.FromMinorUnits(a.Balance),
		CashBalance:  shared.FromMinorUnits(a.CashBalance),
		TotalBalance: shared.FromMinorUnits(a.Total()),
		IsDefault:    a.IsDefault,
		CreatedAt:    formatTime(a.CreatedAt),
		UpdatedAt:    formatTime(a.UpdatedAt),
	}
}

func mapBankAccountToResponse(ba *account.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:             ba.ID.String(),
		AccountNumber:  ba.AccountNumber,
		Name:           ba.Name,
		CashBalance:    shared.FromMinorUnits(ba.CashBalance),
		DigitalBalance: shared.FromMinorUnits(ba.DigitalBalance),
		TotalBalance:   shared.FromMinorUnits(ba.TotalBalance),
		CreatedBy:      ba.CreatedBy.String(),
		CreatedAt:      formatTime(ba.CreatedAt),
	}
}

func mapTransactionToResponse(t *ledger.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:        t.ID.String(),
		AccountID: t.AccountID.String(),
		Acc:       string(t.Side),
		Type:      string(t.Type),
		Amount:    shared.FromMinorUnits(t.Amount),
		Details:   t.Details,
		Exchange:  t.Exchange,
		CreatedBy: t.CreatedBy.String(),
		CreatedAt: formatTime(t.CreatedAt),
		UpdatedAt: formatTime(t.UpdatedAt),
	}
	if t.CategoryID != nil {
		category := t.CategoryID.String()
		response.CategoryID = &category
	}
	return response
}

func mapBankTransactionToResponse(bt *ledger.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:             bt.ID.String(),
		BankAccountID:  bt.BankAccountID.String(),
		AccountID:      bt.AccountID.String(),
		Acc:            string(bt.Side),
		CashBalance:    shared.FromMinorUnits(bt.CashAmount),
		DigitalBalance: shared.FromMinorUnits(bt.DigitalAmount),
		Amount:         shared.FromMinorUnits(bt.Amount),
		Details:        bt.Details,
		CreatedBy:      bt.CreatedBy.String(),
		CreatedAt:      formatTime(bt.CreatedAt),
		UpdatedAt:      formatTime(bt.UpdatedAt),
	}
}

func mapSwapToResponse(s *ledger.AccountSwap) SwapResponse {
	return SwapResponse{
		ID:                s.ID.String(),
		SwapID:            s.SwapID,
		FromAccountID:     s.FromAccountID.String(),
		ToAccountID:       s.ToAccountID.String(),
		FromAmount:        shared.FromMinorUnits(s.FromAmount),
		FromCashAmount:    shared.FromMinorUnits(s.FromCashAmount),
		FromDigitalAmount: shared.FromMinorUnits(s.FromDigitalAmount),
		ToAmount:          shared.FromMinorUnits(s.ToAmount),
		ToCashAmount:      shared.FromMinorUnits(s.ToCashAmount),
		ToDigitalAmount:   shared.FromMinorUnits(s.ToDigitalAmount),
		ExchangeRate:      s.ExchangeRate,
		Details:           s.Details,
		CreatedBy:         s.CreatedBy.String(),
		CreatedAt:         formatTime(s.CreatedAt),
		UpdatedAt:         formatTime(s.UpdatedAt),
	}
}
