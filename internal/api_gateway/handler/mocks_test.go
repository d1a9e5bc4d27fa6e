package handler

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/audit"
	"github.com/retail-ledger-engine/internal/domain/command"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/engine"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, name string, isDefault bool) (*account.Account, error) {
	args := m.Called(ctx, name, isDefault)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) SetDefaultAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountService) CreateBankAccount(ctx context.Context, actorID uuid.UUID, holderName string) (*account.BankAccount, error) {
	args := m.Called(ctx, actorID, holderName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.BankAccount), args.Error(1)
}

func (m *MockAccountService) GetBankAccount(ctx context.Context, id uuid.UUID) (*account.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.BankAccount), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	args := m.Called(ctx, actorID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, id uuid.UUID, fields ledger.TransactionFields) (*ledger.Transaction, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerService) CreateBankTransaction(ctx context.Context, actorID uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, actorID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BankTransaction), args.Error(1)
}

func (m *MockLedgerService) UpdateBankTransaction(ctx context.Context, id uuid.UUID, fields ledger.BankTransactionFields) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BankTransaction), args.Error(1)
}

func (m *MockLedgerService) DeleteBankTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) GetBankTransaction(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.BankTransaction), args.Error(1)
}

func (m *MockLedgerService) CreateSwap(ctx context.Context, actorID uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	args := m.Called(ctx, actorID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountSwap), args.Error(1)
}

func (m *MockLedgerService) UpdateSwap(ctx context.Context, id uuid.UUID, fields ledger.SwapFields) (*ledger.AccountSwap, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountSwap), args.Error(1)
}

func (m *MockLedgerService) DeleteSwap(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) GetSwap(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountSwap), args.Error(1)
}

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) CreateStockMovement(ctx context.Context, actorID, productID, variantID, skuID uuid.UUID, quantity int64) (*engine.StockLevel, error) {
	args := m.Called(ctx, actorID, productID, variantID, skuID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.StockLevel), args.Error(1)
}

func (m *MockStockService) UpdateStockMovement(ctx context.Context, id uuid.UUID, quantity int64) (*engine.StockLevel, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.StockLevel), args.Error(1)
}

func (m *MockStockService) DeleteStockMovement(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSequenceService struct {
	mock.Mock
}

func (m *MockSequenceService) NextIdentifier(ctx context.Context, ns sequence.Namespace) (string, error) {
	args := m.Called(ctx, ns)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceService) SyncSequences(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ListEntityEvents(ctx context.Context, entityType string, entityID uuid.UUID, page, perPage int) ([]*audit.Event, int64, error) {
	args := m.Called(ctx, entityType, entityID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*audit.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditService) CommandEvent(ctx context.Context, commandID uuid.UUID) (*audit.Event, error) {
	args := m.Called(ctx, commandID)
	event, _ := args.Get(0).(*audit.Event)
	return event, args.Error(1)
}

type MockCommandService struct {
	mock.Mock
}

func (m *MockCommandService) Submit(ctx context.Context, commandType command.Type, payload json.RawMessage) (*command.Command, error) {
	args := m.Called(ctx, commandType, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*command.Command), args.Error(1)
}
