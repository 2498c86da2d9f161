package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

// Repository persists accounts and their entries
type Repository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	// EnsureAccount inserts the account unless its address exists and
	// reports whether a row was written.
	EnsureAccount(ctx context.Context, account *models.Account) (bool, error)
	GetAccount(ctx context.Context, address string) (*models.Account, error)
	GetAccountByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
	// LockAccounts takes row locks in ascending address order. Missing
	// addresses are absent from the result.
	LockAccounts(ctx context.Context, addresses []string) (map[string]*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error

	CreateEntries(ctx context.Context, entries []*models.LedgerEntry) error
	GetEntries(ctx context.Context, address string, limit, offset int) ([]models.LedgerEntry, int64, error)
	GetEntriesByReference(ctx context.Context, refType, refID string) ([]models.LedgerEntry, error)

	WithTx(tx *gorm.DB) Repository
}

// Service moves funds between accounts. Transfer and LockAccounts expect to
// run inside the caller's transaction; bind one with WithTx.
type Service interface {
	WithTx(tx *gorm.DB) Service

	Transfer(ctx context.Context, req *TransferRequest) (*TransferResult, error)
	LockAccounts(ctx context.Context, addresses ...string) error
	OpenUserAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	OpenEscrow(ctx context.Context, address string) (*models.Account, error)
	GetBalance(ctx context.Context, address string) (uint64, error)

	GetAccount(ctx context.Context, address string) (*AccountResponse, error)
	GetEntries(ctx context.Context, address string, q *api.PageQuery) (*EntryListResponse, error)
	Deposit(ctx context.Context, address string, req *DepositRequest) (*OperationResponse, error)
}
