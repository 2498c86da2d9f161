package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/models"
)

// TransferRequest moves Amount from one address to another. Signer is the
// address that authenticated the request; Capability is required instead
// when From is an escrow.
type TransferRequest struct {
	From       string
	To         string
	Amount     uint64
	DebitType  models.EntryType
	CreditType models.EntryType
	Signer     string
	Capability escrow.Capability
	Reference  models.Reference
}

// TransferResult holds both sides of a completed transfer
type TransferResult struct {
	TransferID uuid.UUID
	Debit      *models.LedgerEntry
	Credit     *models.LedgerEntry
}

// DepositRequest represents a faucet credit to the caller's account
type DepositRequest struct {
	Amount uint64 `json:"amount" binding:"required,gt=0"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	Address        string             `json:"address"`
	Kind           models.AccountKind `json:"kind"`
	Balance        uint64             `json:"balance"`
	DisplayBalance decimal.Decimal    `json:"display_balance"`
	IsLocked       bool               `json:"is_locked"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// EntryResponse represents one ledger entry in API responses
type EntryResponse struct {
	ID            uuid.UUID             `json:"id"`
	TransferID    uuid.UUID             `json:"transfer_id"`
	Counterparty  string                `json:"counterparty,omitempty"`
	EntryType     models.EntryType      `json:"entry_type"`
	Direction     models.EntryDirection `json:"direction"`
	Amount        uint64                `json:"amount"`
	BalanceBefore uint64                `json:"balance_before"`
	BalanceAfter  uint64                `json:"balance_after"`
	ReferenceType string                `json:"reference_type,omitempty"`
	ReferenceID   string                `json:"reference_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// EntryListResponse is a page of entries
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// OperationResponse represents the result of a balance-changing call
type OperationResponse struct {
	Account *AccountResponse `json:"account"`
	Entry   *EntryResponse   `json:"entry"`
}

// ToAccountResponse converts a models.Account for display with decimals places
func ToAccountResponse(account *models.Account, decimals int32) *AccountResponse {
	return &AccountResponse{
		Address:        account.Address,
		Kind:           account.Kind,
		Balance:        account.Balance,
		DisplayBalance: DisplayAmount(account.Balance, decimals),
		IsLocked:       account.IsLocked,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// ToEntryResponse converts a models.LedgerEntry
func ToEntryResponse(entry *models.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:            entry.ID,
		TransferID:    entry.TransferID,
		Counterparty:  entry.Counterparty,
		EntryType:     entry.EntryType,
		Direction:     entry.Direction,
		Amount:        entry.Amount,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		ReferenceType: entry.ReferenceType,
		ReferenceID:   entry.ReferenceID,
		CreatedAt:     entry.CreatedAt,
	}
}

// DisplayAmount scales base units down by decimals
func DisplayAmount(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-decimals)
}
