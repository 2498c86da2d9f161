package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind tells who may authorize a debit from an account
type AccountKind string

const (
	// AccountKindUser is controlled by a registered user's signature.
	AccountKindUser AccountKind = "user"
	// AccountKindEscrow has no key; only the program may debit it.
	AccountKindEscrow AccountKind = "escrow"
	// AccountKindExternal receives funds but is never debited here.
	AccountKindExternal AccountKind = "external"
)

// Valid reports whether k is a known kind
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindUser, AccountKindEscrow, AccountKindExternal:
		return true
	default:
		return false
	}
}

// Account is a balance-holding address on the ledger
type Account struct {
	Address    string      `gorm:"type:varchar(42);primaryKey" json:"address"`
	Kind       AccountKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	OwnerID    *uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"owner_id,omitempty"`
	Balance    uint64      `gorm:"type:bigint;not null;default:0;check:balance >= 0" json:"balance"`
	IsLocked   bool        `gorm:"default:false" json:"is_locked"`
	LockReason string      `gorm:"type:text" json:"lock_reason,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Entries []LedgerEntry `gorm:"foreignKey:AccountAddress;references:Address" json:"-"`
}

// TableName specifies the table name for Account model
func (*Account) TableName() string {
	return "accounts"
}

// NewUserAccount opens the account tied to a registered user
func NewUserAccount(userID uuid.UUID) *Account {
	return &Account{
		Address: NewUserAddress(userID),
		Kind:    AccountKindUser,
		OwnerID: &userID,
	}
}

// NewEscrowAccount opens an empty, keyless escrow account
func NewEscrowAccount(address string) *Account {
	return &Account{Address: address, Kind: AccountKindEscrow}
}

// NewExternalAccount opens an account for an address first seen as a recipient
func NewExternalAccount(address string) *Account {
	return &Account{Address: address, Kind: AccountKindExternal}
}

// IsEscrow reports whether debits need program authority
func (a *Account) IsEscrow() bool {
	return a.Kind == AccountKindEscrow
}

// IsOperationAllowed checks if account operations are allowed
func (a *Account) IsOperationAllowed() bool {
	return !a.IsLocked
}

// Lock freezes the account with a reason
func (a *Account) Lock(reason string) {
	a.IsLocked = true
	a.LockReason = reason
}

// Unlock lifts a freeze
func (a *Account) Unlock() {
	a.IsLocked = false
	a.LockReason = ""
}

// CanDebit checks if the account holds at least amount
func (a *Account) CanDebit(amount uint64) bool {
	return a.Balance >= amount
}

// Credit adds funds to the account
func (a *Account) Credit(amount uint64) error {
	if amount == 0 {
		return ErrInvalidTransactionAmount
	}
	if amount > MaxAmount-a.Balance {
		return ErrArithmeticOverflow
	}
	a.Balance += amount
	return nil
}

// Debit removes funds from the account
func (a *Account) Debit(amount uint64) error {
	if amount == 0 {
		return ErrInvalidTransactionAmount
	}
	if !a.IsOperationAllowed() {
		return ErrAccountLocked
	}
	if !a.CanDebit(amount) {
		return ErrInsufficientBalance
	}
	a.Balance -= amount
	return nil
}

// Validate performs validation on the account model
func (a *Account) Validate() error {
	if _, err := NormalizeAddress(a.Address); err != nil {
		return err
	}
	if !a.Kind.Valid() {
		return ErrInvalidAccountKind
	}
	if a.Kind == AccountKindUser && (a.OwnerID == nil || *a.OwnerID == uuid.Nil) {
		return ErrInvalidUserID
	}
	if a.Kind == AccountKindEscrow && !IsProgramAddress(a.Address) {
		return ErrInvalidAddress
	}
	if a.Balance > MaxAmount {
		return ErrArithmeticOverflow
	}
	return nil
}
