package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/engine"
	"github.com/stretchr/testify/mock"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessCommand(ctx context.Context, cmd *command.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Outcome(ctx context.Context, commandID uuid.UUID) (Outcome, bool, error) {
	args := m.Called(ctx, commandID)
	return args.Get(0).(Outcome), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, commandID uuid.UUID, outcome Outcome) error {
	args := m.Called(ctx, commandID, outcome)
	return args.Error(0)
}

type MockFailureRecorder struct {
	mock.Mock
}

func (m *MockFailureRecorder) RecordFailure(ctx context.Context, cmd *command.Command, failureReason string) error {
	args := m.Called(ctx, cmd, failureReason)
	return args.Error(0)
}

type MockLedgerEngine struct {
	mock.Mock
}

func (m *MockLedgerEngine) CreateTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	args := m.Called(ctx, actorID, fields)
	tx, _ := args.Get(0).(*ledger.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedgerEngine) UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, fields)
	tx, _ := args.Get(0).(*ledger.Transaction)
	return tx, args.Error(1)
}

func (m *MockLedgerEngine) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerEngine) CreateBankTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, actorID, fields)
	bt, _ := args.Get(0).(*ledger.BankTransaction)
	return bt, args.Error(1)
}

func (m *MockLedgerEngine) UpdateBankTransaction(ctx context.Context, id uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, id, fields)
	bt, _ := args.Get(0).(*ledger.BankTransaction)
	return bt, args.Error(1)
}

func (m *MockLedgerEngine) DeleteBankTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerEngine) CreateSwap(ctx context.Context, actorID uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	args := m.Called(ctx, actorID, fields)
	s, _ := args.Get(0).(*ledger.AccountSwap)
	return s, args.Error(1)
}

func (m *MockLedgerEngine) UpdateSwap(ctx context.Context, id uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	args := m.Called(ctx, id, fields)
	s, _ := args.Get(0).(*ledger.AccountSwap)
	return s, args.Error(1)
}

func (m *MockLedgerEngine) DeleteSwap(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerEngine) CreateStockMovement(ctx context.Context, actorID, productID, variantID, skuID uuid.UUID, quantity int64) (*engine.StockLevel, error) {
	args := m.Called(ctx, actorID, productID, variantID, skuID, quantity)
	lvl, _ := args.Get(0).(*engine.StockLevel)
	return lvl, args.Error(1)
}

func (m *MockLedgerEngine) UpdateStockMovement(ctx context.Context, id uuid.UUID, quantity int64) (*engine.StockLevel, error) {
	args := m.Called(ctx, id, quantity)
	lvl, _ := args.Get(0).(*engine.StockLevel)
	return lvl, args.Error(1)
}

func (m *MockLedgerEngine) DeleteStockMovement(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerEngine) CreateAccount(ctx context.Context, name string, isDefault bool) (*account.Account, error) {
	args := m.Called(ctx, name, isDefault)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockLedgerEngine) SetDefaultAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockLedgerEngine) CreateBankAccount(ctx context.Context, actorID uuid.UUID, holderName string) (*account.BankAccount, error) {
	args := m.Called(ctx, actorID, holderName)
	ba, _ := args.Get(0).(*account.BankAccount)
	return ba, args.Error(1)
}

func (m *MockLedgerEngine) SyncSequences(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
