package account

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		beforeCreation := time.Now()
		acc, err := NewAccount("  usd ", true)
		afterCreation := time.Now()

		require.NoError(t, err)
		require.NotNil(t, acc)

		assert.NotEqual(t, uuid.Nil, acc.ID)
		assert.Equal(t, "USD", acc.Name, "name should be trimmed and upper-cased")
		assert.Zero(t, acc.Balance)
		assert.Zero(t, acc.CashBalance)
		assert.True(t, acc.IsDefault)
		assert.WithinDuration(t, beforeCreation, acc.CreatedAt, afterCreation.Sub(beforeCreation)+time.Millisecond)
		assert.Equal(t, acc.CreatedAt, acc.UpdatedAt)
	})

	t.Run("EmptyName", func(t *testing.T) {
		acc, err := NewAccount("   ", false)
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})
}

func TestAccount_Apply(t *testing.T) {
	acc := &Account{Balance: 100, CashBalance: 50}

	acc.Apply(shared.BalanceDelta{Cash: 20, Digital: 30})
	assert.Equal(t, int64(130), acc.Balance)
	assert.Equal(t, int64(70), acc.CashBalance)
	assert.Equal(t, int64(200), acc.Total())

	acc.Apply(shared.BalanceDelta{Cash: 20, Digital: 30}.Inverse())
	assert.Equal(t, int64(100), acc.Balance)
	assert.Equal(t, int64(50), acc.CashBalance)
}

func TestNewBankAccount(t *testing.T) {
	actor := uuid.New()

	ba, err := NewBankAccount("ACC-0001", " Jane Wanjiku ", actor)
	require.NoError(t, err)
	assert.Equal(t, "ACC-0001", ba.AccountNumber)
	assert.Equal(t, "Jane Wanjiku", ba.Name)
	assert.Equal(t, actor, ba.CreatedBy)
	assert.Zero(t, ba.TotalBalance)

	_, err = NewBankAccount("ACC-0001", "", actor)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)

	_, err = NewBankAccount("", "Jane", actor)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestErrorMatching(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("lock: %w", ErrAccountNotFound{AccountID: id})

	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.True(t, errors.Is(err, ErrAccountNotFound{}))
	assert.True(t, errors.Is(err, ErrAccountNotFound{AccountID: id}))
	assert.False(t, errors.Is(err, ErrAccountNotFound{AccountID: uuid.New()}))

	assert.True(t, errors.Is(ErrBankAccountNotFound{BankAccountID: id}, shared.ErrNotFound))
	assert.True(t, errors.Is(ErrDuplicateName{Name: "USD"}, shared.ErrConflict))
}
