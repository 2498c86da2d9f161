package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryType represents why a ledger entry was written
type EntryType string

const (
	EntryTypeDeposit   EntryType = "deposit"
	EntryTypeBetPlace  EntryType = "bet_place"
	EntryTypeEscrowIn  EntryType = "escrow_in"
	EntryTypePayout    EntryType = "payout"
	EntryTypeFee       EntryType = "fee"
	EntryTypeEscrowOut EntryType = "escrow_out"
)

// Valid reports whether t is a known entry type
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeDeposit, EntryTypeBetPlace, EntryTypeEscrowIn,
		EntryTypePayout, EntryTypeFee, EntryTypeEscrowOut:
		return true
	default:
		return false
	}
}

// EntryDirection is the side of the account an entry touches
type EntryDirection string

const (
	DirectionCredit EntryDirection = "credit"
	DirectionDebit  EntryDirection = "debit"
)

// Reference types linking entries to domain records
const (
	ReferenceMarket  = "market"
	ReferenceBet     = "bet"
	ReferenceClaim   = "claim"
	ReferenceDeposit = "deposit"
)

// LedgerEntry is one immutable side of a balance movement
type LedgerEntry struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TransferID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"transfer_id"`
	AccountAddress string         `gorm:"type:varchar(42);not null;index:idx_ledger_entries_account" json:"account"`
	Counterparty   string         `gorm:"type:varchar(42)" json:"counterparty,omitempty"`
	EntryType      EntryType      `gorm:"type:varchar(20);not null" json:"entry_type"`
	Direction      EntryDirection `gorm:"type:varchar(10);not null" json:"direction"`
	Amount         uint64         `gorm:"type:bigint;not null" json:"amount"`
	BalanceBefore  uint64         `gorm:"type:bigint;not null" json:"balance_before"`
	BalanceAfter   uint64         `gorm:"type:bigint;not null" json:"balance_after"`
	ReferenceType  string         `gorm:"type:varchar(20)" json:"reference_type"`
	ReferenceID    string         `gorm:"type:varchar(64)" json:"reference_id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index:idx_ledger_entries_created_at" json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (*LedgerEntry) TableName() string {
	return "ledger_entries"
}

// BeforeCreate sets up the model before creation
func (e *LedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// IsCredit checks if the entry increased the balance
func (e *LedgerEntry) IsCredit() bool {
	return e.Direction == DirectionCredit
}

// IsDebit checks if the entry decreased the balance
func (e *LedgerEntry) IsDebit() bool {
	return e.Direction == DirectionDebit
}

// IsBalanceConsistent checks before +/- amount == after
func (e *LedgerEntry) IsBalanceConsistent() bool {
	switch e.Direction {
	case DirectionCredit:
		return e.BalanceAfter >= e.BalanceBefore && e.BalanceAfter-e.BalanceBefore == e.Amount
	case DirectionDebit:
		return e.BalanceBefore >= e.BalanceAfter && e.BalanceBefore-e.BalanceAfter == e.Amount
	default:
		return false
	}
}

// Validate performs validation on the ledger entry
func (e *LedgerEntry) Validate() error {
	if _, err := NormalizeAddress(e.AccountAddress); err != nil {
		return err
	}
	if !e.EntryType.Valid() {
		return ErrInvalidTransactionType
	}
	if e.Amount == 0 {
		return ErrInvalidTransactionAmount
	}
	if !e.IsBalanceConsistent() {
		return ErrInvalidTransactionAmount
	}
	return nil
}

// Reference ties a transfer to the record that caused it
type Reference struct {
	Type string
	ID   string
}

// NewDebitEntry records the paying side of a transfer
func NewDebitEntry(transferID uuid.UUID, from *Account, to string,
	entryType EntryType, amount, balanceBefore uint64, ref Reference) *LedgerEntry {
	return &LedgerEntry{
		TransferID:     transferID,
		AccountAddress: from.Address,
		Counterparty:   to,
		EntryType:      entryType,
		Direction:      DirectionDebit,
		Amount:         amount,
		BalanceBefore:  balanceBefore,
		BalanceAfter:   from.Balance,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
	}
}

// NewCreditEntry records the receiving side of a transfer
func NewCreditEntry(transferID uuid.UUID, to *Account, from string,
	entryType EntryType, amount, balanceBefore uint64, ref Reference) *LedgerEntry {
	return &LedgerEntry{
		TransferID:     transferID,
		AccountAddress: to.Address,
		Counterparty:   from,
		EntryType:      entryType,
		Direction:      DirectionCredit,
		Amount:         amount,
		BalanceBefore:  balanceBefore,
		BalanceAfter:   to.Balance,
		ReferenceType:  ref.Type,
		ReferenceID:    ref.ID,
	}
}
