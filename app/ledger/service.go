package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/models"
)

type service struct {
	repo   Repository
	db     *gorm.DB
	config *Config
	logger logger.Logger
}

func NewService(repo Repository, db *gorm.DB, config *Config, log logger.Logger) Service {
	return &service{
		repo:   repo,
		db:     db,
		config: config,
		logger: log,
	}
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{
		repo:   s.repo.WithTx(tx),
		db:     tx,
		config: s.config,
		logger: s.logger,
	}
}

func (s *service) Transfer(ctx context.Context, req *TransferRequest) (*TransferResult, error) {
	if req.Amount == 0 {
		return nil, models.ErrInvalidTransactionAmount
	}
	if !req.DebitType.Valid() || !req.CreditType.Valid() {
		return nil, models.ErrInvalidTransactionType
	}

	from, err := models.NormalizeAddress(req.From)
	if err != nil {
		return nil, err
	}
	to, err := models.NormalizeAddress(req.To)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, models.ErrInvalidAddress
	}

	// The first credit to an address opens it.
	if _, err := s.repo.EnsureAccount(ctx, models.NewExternalAccount(to)); err != nil {
		return nil, fmt.Errorf("failed to open recipient account: %w", err)
	}

	accounts, err := s.repo.LockAccounts(ctx, []string{from, to})
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}

	payer, ok := accounts[from]
	if !ok {
		return nil, models.ErrInsufficientBalance
	}
	payee, ok := accounts[to]
	if !ok {
		return nil, fmt.Errorf("recipient %s vanished: %w", to, models.ErrInconsistentState)
	}

	if err := authorizeDebit(payer, req); err != nil {
		return nil, err
	}

	payerBefore, payeeBefore := payer.Balance, payee.Balance
	if err := payer.Debit(req.Amount); err != nil {
		return nil, err
	}
	if err := payee.Credit(req.Amount); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAccount(ctx, payer); err != nil {
		return nil, fmt.Errorf("failed to update payer: %w", err)
	}
	if err := s.repo.UpdateAccount(ctx, payee); err != nil {
		return nil, fmt.Errorf("failed to update payee: %w", err)
	}

	transferID := uuid.New()
	debit := models.NewDebitEntry(transferID, payer, to, req.DebitType, req.Amount, payerBefore, req.Reference)
	credit := models.NewCreditEntry(transferID, payee, from, req.CreditType, req.Amount, payeeBefore, req.Reference)

	if err := s.repo.CreateEntries(ctx, []*models.LedgerEntry{debit, credit}); err != nil {
		return nil, fmt.Errorf("failed to record transfer: %w", err)
	}

	return &TransferResult{TransferID: transferID, Debit: debit, Credit: credit}, nil
}

// authorizeDebit checks that the request carries the authority the payer's
// kind demands
func authorizeDebit(payer *models.Account, req *TransferRequest) error {
	switch payer.Kind {
	case models.AccountKindUser:
		signer, err := models.NormalizeAddress(req.Signer)
		if err != nil || signer != payer.Address {
			return models.ErrUnauthorized
		}
		return nil
	case models.AccountKindEscrow:
		if !req.Capability.Permits(payer.Address) {
			return models.ErrEscrowDebitDenied
		}
		return nil
	case models.AccountKindExternal:
		return models.ErrUnauthorized
	default:
		return models.ErrInvalidAccountKind
	}
}

// LockAccounts opens any unknown address as external, then locks every
// account in address order
func (s *service) LockAccounts(ctx context.Context, addresses ...string) error {
	normalized := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n, err := models.NormalizeAddress(a)
		if err != nil {
			return err
		}
		normalized = append(normalized, n)
	}
	for _, a := range sortedUnique(normalized) {
		if _, err := s.repo.EnsureAccount(ctx, models.NewExternalAccount(a)); err != nil {
			return fmt.Errorf("failed to open account %s: %w", a, err)
		}
	}
	if _, err := s.repo.LockAccounts(ctx, normalized); err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	return nil
}

func (s *service) OpenUserAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account := models.NewUserAccount(userID)
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to open user account: %w", err)
	}
	return account, nil
}

// OpenEscrow creates the escrow account at a derived address. An address
// that already received funds as an external account is taken over with
// its balance.
func (s *service) OpenEscrow(ctx context.Context, address string) (*models.Account, error) {
	address, err := models.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	account := models.NewEscrowAccount(address)
	created, err := s.repo.EnsureAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to open escrow: %w", err)
	}
	if created {
		return account, nil
	}

	locked, err := s.repo.LockAccounts(ctx, []string{address})
	if err != nil {
		return nil, fmt.Errorf("failed to lock escrow: %w", err)
	}
	existing, ok := locked[address]
	if !ok {
		return nil, fmt.Errorf("escrow %s vanished: %w", address, models.ErrInconsistentState)
	}

	switch existing.Kind {
	case models.AccountKindExternal:
		existing.Kind = models.AccountKindEscrow
		if err := s.repo.UpdateAccount(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to convert escrow: %w", err)
		}
		s.logger.Info("external account converted to escrow", map[string]interface{}{
			"address": address,
			"balance": existing.Balance,
		})
		return existing, nil
	case models.AccountKindEscrow:
		return nil, models.ErrAlreadyExists
	default:
		return nil, fmt.Errorf("escrow address %s held by %s account: %w", address, existing.Kind, models.ErrInconsistentState)
	}
}

func (s *service) GetBalance(ctx context.Context, address string) (uint64, error) {
	address, err := models.NormalizeAddress(address)
	if err != nil {
		return 0, err
	}
	account, err := s.repo.GetAccount(ctx, address)
	if errors.Is(err, models.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	return account.Balance, nil
}

func (s *service) GetAccount(ctx context.Context, address string) (*AccountResponse, error) {
	address, err := models.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	return ToAccountResponse(account, s.config.DisplayDecimals), nil
}

func (s *service) GetEntries(ctx context.Context, address string, q *api.PageQuery) (*EntryListResponse, error) {
	address, err := models.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	q.Normalize()

	entries, total, err := s.repo.GetEntries(ctx, address, q.PerPage, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = *ToEntryResponse(&entries[i])
	}

	return &EntryListResponse{
		Entries: responses,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	}, nil
}

// Deposit mints funds into a user account. It only works when the faucet
// is enabled.
func (s *service) Deposit(ctx context.Context, address string, req *DepositRequest) (*OperationResponse, error) {
	if !s.config.AllowDeposits {
		return nil, models.ErrUnauthorized
	}
	if req.Amount == 0 || req.Amount > s.config.MaxDepositAmount {
		return nil, models.ErrInvalidTransactionAmount
	}
	address, err := models.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	var result *OperationResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		locked, err := txRepo.LockAccounts(ctx, []string{address})
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
		account, ok := locked[address]
		if !ok || account.Kind != models.AccountKindUser {
			return models.ErrRecordNotFound
		}

		before := account.Balance
		if err := account.Credit(req.Amount); err != nil {
			return err
		}
		if err := txRepo.UpdateAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}

		transferID := uuid.New()
		entry := models.NewCreditEntry(transferID, account, "", models.EntryTypeDeposit, req.Amount, before,
			models.Reference{Type: models.ReferenceDeposit, ID: transferID.String()})
		if err := txRepo.CreateEntries(ctx, []*models.LedgerEntry{entry}); err != nil {
			return fmt.Errorf("failed to record deposit: %w", err)
		}

		result = &OperationResponse{
			Account: ToAccountResponse(account, s.config.DisplayDecimals),
			Entry:   ToEntryResponse(entry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
