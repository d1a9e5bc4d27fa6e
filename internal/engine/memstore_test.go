package engine

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/retail-ledger-engine/internal/domain/ledger"
	"github.com/retail-ledger-engine/internal/domain/outbox"
	"github.com/retail-ledger-engine/internal/domain/sequence"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/retail-ledger-engine/internal/domain/stock"
)

var errInjected = errors.New("injected store failure")

type memState struct {
	accounts         map[uuid.UUID]account.Account
	bankAccounts     map[uuid.UUID]account.BankAccount
	transactions     map[uuid.UUID]ledger.Transaction
	bankTransactions map[uuid.UUID]ledger.BankTransaction
	swaps            map[uuid.UUID]ledger.AccountSwap
	products         map[uuid.UUID]stock.Product
	skus             map[uuid.UUID]stock.SKU
	movements        map[uuid.UUID]stock.Movement
	sequences        map[sequence.Namespace]int64
	outbox           []outbox.Message
	adjustments      []ledger.Adjustment
}

func (s memState) clone() memState {
	return memState{
		accounts:         maps.Clone(s.accounts),
		bankAccounts:     maps.Clone(s.bankAccounts),
		transactions:     maps.Clone(s.transactions),
		bankTransactions: maps.Clone(s.bankTransactions),
		swaps:            maps.Clone(s.swaps),
		products:         maps.Clone(s.products),
		skus:             maps.Clone(s.skus),
		movements:        maps.Clone(s.movements),
		sequences:        maps.Clone(s.sequences),
		outbox:           append([]outbox.Message(nil), s.outbox...),
		adjustments:      append([]ledger.Adjustment(nil), s.adjustments...),
	}
}

// memStore implements every repository the engine uses on top of maps. ExecuteTx
// snapshots the state and restores it when the scope fails, which mirrors a rollback.
type memStore struct {
	txMu   sync.Mutex
	mu     sync.Mutex
	state  memState
	faults map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			accounts:         map[uuid.UUID]account.Account{},
			bankAccounts:     map[uuid.UUID]account.BankAccount{},
			transactions:     map[uuid.UUID]ledger.Transaction{},
			bankTransactions: map[uuid.UUID]ledger.BankTransaction{},
			swaps:            map[uuid.UUID]ledger.AccountSwap{},
			products:         map[uuid.UUID]stock.Product{},
			skus:             map[uuid.UUID]stock.SKU{},
			movements:        map[uuid.UUID]stock.Movement{},
			sequences:        map[sequence.Namespace]int64{},
		},
		faults: map[string]error{},
	}
}

func (m *memStore) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) repositories() Repositories {
	return Repositories{
		Accounts:         memAccounts{m},
		BankAccounts:     memBankAccounts{m},
		Transactions:     memTransactions{m},
		BankTransactions: memBankTransactions{m},
		Swaps:            memSwaps{m},
		Stock:            memStock{m},
		Sequences:        memSequences{m},
		Outbox:           memOutbox{m},
	}
}

// failOn makes every later call of op return err
func (m *memStore) failOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op] = err
}

// enter takes the state lock for op unless a fault is injected for it
func (m *memStore) enter(op string) error {
	m.mu.Lock()
	if err := m.faults[op]; err != nil {
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) seedAccount(name string, digital, cash int64) uuid.UUID {
	id := uuid.New()
	m.putAccount(id, name, digital, cash)
	return id
}

func (m *memStore) putAccount(id uuid.UUID, name string, digital, cash int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.accounts[id] = account.Account{ID: id, Name: name, Balance: digital, CashBalance: cash}
}

func (m *memStore) putBankAccount(id uuid.UUID, number string, createdAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.bankAccounts[id] = account.BankAccount{ID: id, AccountNumber: number, Name: "Holder", CreatedAt: createdAt}
}

func (m *memStore) seedBankAccount(number string) uuid.UUID {
	id := uuid.New()
	m.putBankAccount(id, number, time.Now())
	return id
}

func (m *memStore) seedSKU(productID, variantID uuid.UUID) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.products[productID]; !ok {
		m.state.products[productID] = stock.Product{ID: productID, Name: "Kitenge shirt"}
	}
	id := uuid.New()
	m.state.skus[id] = stock.SKU{ID: id, ProductID: productID, VariantID: variantID, Code: id.String()[:8]}
	return id
}

func (m *memStore) account(id uuid.UUID) account.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.accounts[id]
}

func (m *memStore) sku(id uuid.UUID) stock.SKU {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.skus[id]
}

func (m *memStore) product(id uuid.UUID) stock.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.products[id]
}

func (m *memStore) movementSum(filter func(stock.Movement) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, mv := range m.state.movements {
		if filter(mv) {
			sum += mv.Quantity
		}
	}
	return sum
}

func (m *memStore) outboxMessages() []outbox.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]outbox.Message(nil), m.state.outbox...)
}

func (m *memStore) adjustmentLog() []ledger.Adjustment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ledger.Adjustment(nil), m.state.adjustments...)
}

func (m *memStore) resetAdjustmentLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.adjustments = nil
}

type memAccounts struct{ m *memStore }

func (r memAccounts) WithTx(pgx.Tx) account.Repository { return r }

func (r memAccounts) Create(_ context.Context, acc *account.Account) error {
	if err := r.m.enter("accounts.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.state.accounts {
		if existing.Name == acc.Name {
			return account.ErrDuplicateName{Name: acc.Name}
		}
	}
	r.m.state.accounts[acc.ID] = *acc
	return nil
}

func (r memAccounts) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	if err := r.m.enter("accounts.GetByID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	acc, ok := r.m.state.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound{AccountID: id}
	}
	return &acc, nil
}

func (r memAccounts) GetByName(_ context.Context, name string) (*account.Account, error) {
	if err := r.m.enter("accounts.GetByName"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, acc := range r.m.state.accounts {
		if acc.Name == account.NormalizeName(name) {
			return &acc, nil
		}
	}
	return nil, nil
}

func (r memAccounts) List(context.Context) ([]*account.Account, error) {
	if err := r.m.enter("accounts.List"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	out := make([]*account.Account, 0, len(r.m.state.accounts))
	for _, acc := range r.m.state.accounts {
		out = append(out, &acc)
	}
	return out, nil
}

func (r memAccounts) AdjustBalances(_ context.Context, id uuid.UUID, delta shared.BalanceDelta) error {
	if err := r.m.enter("accounts.AdjustBalances"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	acc, ok := r.m.state.accounts[id]
	if !ok {
		return account.ErrAccountNotFound{AccountID: id}
	}
	acc.Apply(delta)
	r.m.state.accounts[id] = acc
	r.m.state.adjustments = append(r.m.state.adjustments, ledger.Adjustment{AccountID: id, Delta: delta})
	return nil
}

func (r memAccounts) ClearDefault(context.Context) error {
	if err := r.m.enter("accounts.ClearDefault"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for id, acc := range r.m.state.accounts {
		acc.IsDefault = false
		r.m.state.accounts[id] = acc
	}
	return nil
}

func (r memAccounts) SetDefault(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("accounts.SetDefault"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	acc, ok := r.m.state.accounts[id]
	if !ok {
		return account.ErrAccountNotFound{AccountID: id}
	}
	acc.IsDefault = true
	r.m.state.accounts[id] = acc
	return nil
}

type memBankAccounts struct{ m *memStore }

func (r memBankAccounts) WithTx(pgx.Tx) account.BankAccountRepository { return r }

func (r memBankAccounts) Create(_ context.Context, ba *account.BankAccount) error {
	if err := r.m.enter("bankAccounts.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.state.bankAccounts {
		if existing.AccountNumber == ba.AccountNumber {
			return account.ErrDuplicateAccountNumber{AccountNumber: ba.AccountNumber}
		}
	}
	r.m.state.bankAccounts[ba.ID] = *ba
	return nil
}

func (r memBankAccounts) GetByID(_ context.Context, id uuid.UUID) (*account.BankAccount, error) {
	if err := r.m.enter("bankAccounts.GetByID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	ba, ok := r.m.state.bankAccounts[id]
	if !ok {
		return nil, account.ErrBankAccountNotFound{BankAccountID: id}
	}
	ba.CashBalance, ba.DigitalBalance = 0, 0
	for _, bt := range r.m.state.bankTransactions {
		if bt.BankAccountID == id {
			ba.CashBalance += bt.Side.Sign(bt.CashAmount)
			ba.DigitalBalance += bt.Side.Sign(bt.DigitalAmount)
		}
	}
	ba.TotalBalance = ba.CashBalance + ba.DigitalBalance
	return &ba, nil
}

func (r memBankAccounts) Lock(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("bankAccounts.Lock"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.bankAccounts[id]; !ok {
		return account.ErrBankAccountNotFound{BankAccountID: id}
	}
	return nil
}

func (r memBankAccounts) LatestAccountNumber(context.Context) (string, error) {
	if err := r.m.enter("bankAccounts.LatestAccountNumber"); err != nil {
		return "", err
	}
	defer r.m.mu.Unlock()
	var latest account.BankAccount
	for _, ba := range r.m.state.bankAccounts {
		if latest.AccountNumber == "" || ba.CreatedAt.After(latest.CreatedAt) {
			latest = ba
		}
	}
	return latest.AccountNumber, nil
}

type memTransactions struct{ m *memStore }

func (r memTransactions) WithTx(pgx.Tx) ledger.TransactionRepository { return r }

func (r memTransactions) Create(_ context.Context, t *ledger.Transaction) error {
	if err := r.m.enter("transactions.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	r.m.state.transactions[t.ID] = *t
	return nil
}

func (r memTransactions) GetByID(_ context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	if err := r.m.enter("transactions.GetByID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	t, ok := r.m.state.transactions[id]
	if !ok {
		return nil, ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: id}
	}
	return &t, nil
}

func (r memTransactions) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r memTransactions) Update(_ context.Context, t *ledger.Transaction) error {
	if err := r.m.enter("transactions.Update"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.transactions[t.ID]; !ok {
		return ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: t.ID}
	}
	r.m.state.transactions[t.ID] = *t
	return nil
}

func (r memTransactions) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("transactions.Delete"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.transactions[id]; !ok {
		return ledger.ErrEntryNotFound{Entity: shared.EntityTransaction, ID: id}
	}
	delete(r.m.state.transactions, id)
	return nil
}

type memBankTransactions struct{ m *memStore }

func (r memBankTransactions) WithTx(pgx.Tx) ledger.BankTransactionRepository { return r }

func (r memBankTransactions) Create(_ context.Context, bt *ledger.BankTransaction) error {
	if err := r.m.enter("bankTransactions.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	r.m.state.bankTransactions[bt.ID] = *bt
	return nil
}

func (r memBankTransactions) GetByID(_ context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	if err := r.m.enter("bankTransactions.GetByID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	bt, ok := r.m.state.bankTransactions[id]
	if !ok {
		return nil, ledger.ErrEntryNotFound{Entity: shared.EntityBankTransaction, ID: id}
	}
	return &bt, nil
}

func (r memBankTransactions) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.BankTransaction, error) {
	return r.GetByID(ctx, id)
}

func (r memBankTransactions) Update(_ context.Context, bt *ledger.BankTransaction) error {
	if err := r.m.enter("bankTransactions.Update"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	r.m.state.bankTransactions[bt.ID] = *bt
	return nil
}

func (r memBankTransactions) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("bankTransactions.Delete"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	delete(r.m.state.bankTransactions, id)
	return nil
}

type memSwaps struct{ m *memStore }

func (r memSwaps) WithTx(pgx.Tx) ledger.SwapRepository { return r }

func (r memSwaps) Create(_ context.Context, s *ledger.AccountSwap) error {
	if err := r.m.enter("swaps.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.state.swaps {
		if existing.SwapID == s.SwapID {
			return ledger.ErrDuplicateSwapID{SwapID: s.SwapID}
		}
	}
	r.m.state.swaps[s.ID] = *s
	return nil
}

func (r memSwaps) GetByID(_ context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	if err := r.m.enter("swaps.GetByID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	s, ok := r.m.state.swaps[id]
	if !ok {
		return nil, ledger.ErrEntryNotFound{Entity: shared.EntityAccountSwap, ID: id}
	}
	return &s, nil
}

func (r memSwaps) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.AccountSwap, error) {
	return r.GetByID(ctx, id)
}

func (r memSwaps) Update(_ context.Context, s *ledger.AccountSwap) error {
	if err := r.m.enter("swaps.Update"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	r.m.state.swaps[s.ID] = *s
	return nil
}

func (r memSwaps) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("swaps.Delete"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	delete(r.m.state.swaps, id)
	return nil
}

func (r memSwaps) LatestSwapID(context.Context) (string, error) {
	if err := r.m.enter("swaps.LatestSwapID"); err != nil {
		return "", err
	}
	defer r.m.mu.Unlock()
	var latest ledger.AccountSwap
	for _, s := range r.m.state.swaps {
		if latest.SwapID == "" || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest.SwapID, nil
}

type memStock struct{ m *memStore }

func (r memStock) WithTx(pgx.Tx) stock.Repository { return r }

func (r memStock) GetSKUForUpdate(_ context.Context, id uuid.UUID) (*stock.SKU, error) {
	if err := r.m.enter("stock.GetSKUForUpdate"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	sku, ok := r.m.state.skus[id]
	if !ok {
		return nil, stock.ErrSKUNotFound{SKUID: id}
	}
	return &sku, nil
}

func (r memStock) GetProductForUpdate(_ context.Context, id uuid.UUID) (*stock.Product, error) {
	if err := r.m.enter("stock.GetProductForUpdate"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.state.products[id]
	if !ok {
		return nil, stock.ErrProductNotFound{ProductID: id}
	}
	return &p, nil
}

func (r memStock) CreateMovement(_ context.Context, mv *stock.Movement) error {
	if err := r.m.enter("stock.CreateMovement"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	r.m.state.movements[mv.ID] = *mv
	return nil
}

func (r memStock) GetMovementForUpdate(_ context.Context, id uuid.UUID) (*stock.Movement, error) {
	if err := r.m.enter("stock.GetMovementForUpdate"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	mv, ok := r.m.state.movements[id]
	if !ok {
		return nil, stock.ErrMovementNotFound{MovementID: id}
	}
	return &mv, nil
}

func (r memStock) UpdateMovementQuantity(_ context.Context, id uuid.UUID, quantity int64) error {
	if err := r.m.enter("stock.UpdateMovementQuantity"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	mv, ok := r.m.state.movements[id]
	if !ok {
		return stock.ErrMovementNotFound{MovementID: id}
	}
	mv.Quantity = quantity
	r.m.state.movements[id] = mv
	return nil
}

func (r memStock) DeleteMovement(_ context.Context, id uuid.UUID) error {
	if err := r.m.enter("stock.DeleteMovement"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.movements[id]; !ok {
		return stock.ErrMovementNotFound{MovementID: id}
	}
	delete(r.m.state.movements, id)
	return nil
}

func (r memStock) RecomputeSKU(_ context.Context, skuID uuid.UUID) (int64, error) {
	if err := r.m.enter("stock.RecomputeSKU"); err != nil {
		return 0, err
	}
	defer r.m.mu.Unlock()
	sku, ok := r.m.state.skus[skuID]
	if !ok {
		return 0, stock.ErrSKUNotFound{SKUID: skuID}
	}
	sku.StockQuantity = 0
	for _, mv := range r.m.state.movements {
		if mv.SKUID == skuID {
			sku.StockQuantity += mv.Quantity
		}
	}
	r.m.state.skus[skuID] = sku
	return sku.StockQuantity, nil
}

func (r memStock) RecomputeProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	if err := r.m.enter("stock.RecomputeProduct"); err != nil {
		return 0, err
	}
	defer r.m.mu.Unlock()
	p, ok := r.m.state.products[productID]
	if !ok {
		return 0, stock.ErrProductNotFound{ProductID: productID}
	}
	p.StockQuantity = 0
	for _, mv := range r.m.state.movements {
		if mv.ProductID == productID {
			p.StockQuantity += mv.Quantity
		}
	}
	r.m.state.products[productID] = p
	return p.StockQuantity, nil
}

type memSequences struct{ m *memStore }

func (r memSequences) WithTx(pgx.Tx) sequence.Repository { return r }

func (r memSequences) Next(_ context.Context, ns sequence.Namespace) (int64, error) {
	if err := r.m.enter("sequences.Next"); err != nil {
		return 0, err
	}
	defer r.m.mu.Unlock()
	r.m.state.sequences[ns]++
	return r.m.state.sequences[ns], nil
}

func (r memSequences) Sync(_ context.Context, ns sequence.Namespace, floor int64) error {
	if err := r.m.enter("sequences.Sync"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	if floor > r.m.state.sequences[ns] {
		r.m.state.sequences[ns] = floor
	}
	return nil
}

type memOutbox struct{ m *memStore }

func (r memOutbox) WithTx(pgx.Tx) outbox.Repository { return r }

func (r memOutbox) Create(_ context.Context, msg *outbox.Message) error {
	if err := r.m.enter("outbox.Create"); err != nil {
		return err
	}
	defer r.m.mu.Unlock()
	for _, existing := range r.m.state.outbox {
		if existing.EventID == msg.EventID {
			return outbox.ErrDuplicateMessage{EventID: msg.EventID}
		}
	}
	msg.ID = int64(len(r.m.state.outbox) + 1)
	r.m.state.outbox = append(r.m.state.outbox, *msg)
	return nil
}

func (r memOutbox) GetPending(context.Context, int) ([]*outbox.Message, error) {
	return nil, errors.New("not used by the engine")
}

func (r memOutbox) UpdateStatus(context.Context, int64, shared.OutboxStatus) error {
	return errors.New("not used by the engine")
}

func (r memOutbox) IncrementAttempts(context.Context, int64) error {
	return errors.New("not used by the engine")
}

func (r memOutbox) Delete(context.Context, int64) error {
	return errors.New("not used by the engine")
}

func (r memOutbox) GetByEventID(_ context.Context, eventID uuid.UUID) (*outbox.Message, error) {
	if err := r.m.enter("outbox.GetByEventID"); err != nil {
		return nil, err
	}
	defer r.m.mu.Unlock()
	for _, msg := range r.m.state.outbox {
		if msg.EventID == eventID {
			return &msg, nil
		}
	}
	return nil, outbox.ErrMessageNotFound{}
}
