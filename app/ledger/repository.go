package ledger

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joefazee/arena/models"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

func (r *repository) EnsureAccount(ctx context.Context, account *models.Account) (bool, error) {
	if err := account.Validate(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "address"}}, DoNothing: true}).
		Create(account)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) GetAccount(ctx context.Context, address string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("address = ?", address).First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *repository) GetAccountByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *repository) LockAccounts(ctx context.Context, addresses []string) (map[string]*models.Account, error) {
	ordered := sortedUnique(addresses)
	locked := make(map[string]*models.Account, len(ordered))

	for _, address := range ordered {
		var account models.Account
		err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("address = ?", address).
			First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked[address] = &account
	}
	return locked, nil
}

func (r *repository) UpdateAccount(ctx context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *repository) CreateEntries(ctx context.Context, entries []*models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) GetEntries(ctx context.Context, address string, limit, offset int) ([]models.LedgerEntry, int64, error) {
	var (
		entries []models.LedgerEntry
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("account_address = ?", address)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *repository) GetEntriesByReference(ctx context.Context, refType, refID string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func sortedUnique(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok || a == "" {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrAlreadyExists
	default:
		return err
	}
}
