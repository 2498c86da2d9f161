package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccount(t *testing.T) {
	t.Run("TableName", func(t *testing.T) {
		a := Account{}
		assert.Equal(t, "accounts", a.TableName())
	})

	t.Run("Constructors", func(t *testing.T) {
		userID := uuid.New()
		u := NewUserAccount(userID)
		assert.Equal(t, AccountKindUser, u.Kind)
		assert.Equal(t, NewUserAddress(userID), u.Address)
		assert.Equal(t, userID, *u.OwnerID)
		assert.False(t, u.IsEscrow())

		e := NewEscrowAccount(testEscrow)
		assert.True(t, e.IsEscrow())
		assert.Nil(t, e.OwnerID)

		x := NewExternalAccount(testDevWallet)
		assert.Equal(t, AccountKindExternal, x.Kind)
	})

	t.Run("Credit and Debit", func(t *testing.T) {
		a := Account{Balance: 100}

		assert.NoError(t, a.Credit(50))
		assert.Equal(t, uint64(150), a.Balance)

		assert.NoError(t, a.Debit(150))
		assert.Equal(t, uint64(0), a.Balance)

		assert.ErrorIs(t, a.Debit(1), ErrInsufficientBalance)
		assert.ErrorIs(t, a.Debit(0), ErrInvalidTransactionAmount)
		assert.ErrorIs(t, a.Credit(0), ErrInvalidTransactionAmount)

		a.Balance = MaxAmount
		assert.ErrorIs(t, a.Credit(1), ErrArithmeticOverflow)
	})

	t.Run("Lock blocks debits", func(t *testing.T) {
		a := Account{Balance: 100}
		a.Lock("review")
		assert.False(t, a.IsOperationAllowed())
		assert.Equal(t, "review", a.LockReason)
		assert.ErrorIs(t, a.Debit(10), ErrAccountLocked)

		// credits still land on a frozen account
		assert.NoError(t, a.Credit(10))

		a.Unlock()
		assert.True(t, a.IsOperationAllowed())
		assert.NoError(t, a.Debit(10))
	})

	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, NewUserAccount(uuid.New()).Validate())
		assert.NoError(t, NewEscrowAccount(testEscrow).Validate())
		assert.NoError(t, NewExternalAccount(testDevWallet).Validate())

		assert.ErrorIs(t, (&Account{Address: "x", Kind: AccountKindUser}).Validate(), ErrInvalidAddress)
		assert.ErrorIs(t, (&Account{Address: testEscrow, Kind: "vault"}).Validate(), ErrInvalidAccountKind)
		assert.ErrorIs(t, (&Account{Address: testBettor, Kind: AccountKindUser}).Validate(), ErrInvalidUserID)

		// an escrow must live in the keyless address space
		assert.ErrorIs(t, NewEscrowAccount(testBettor).Validate(), ErrInvalidAddress)
	})
}
