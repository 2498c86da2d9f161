package prediction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joefazee/arena/models"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new betting repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) LockBet(ctx context.Context, eventID, owner string, slot uint8) (*models.UserBet, error) {
	var bet models.UserBet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("market_event_id = ? AND owner = ? AND slot = ?", eventID, owner, slot).
		First(&bet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bet, nil
}

// GetBetsByOwner returns every position the owner holds in a market
func (r *repository) GetBetsByOwner(ctx context.Context, eventID, owner string) ([]models.UserBet, error) {
	var bets []models.UserBet
	err := r.db.WithContext(ctx).
		Where("market_event_id = ? AND owner = ?", eventID, owner).
		Order("slot ASC").
		Find(&bets).Error
	return bets, err
}

// SaveBet inserts a new position or updates an existing one
func (r *repository) SaveBet(ctx context.Context, bet *models.UserBet) error {
	if err := bet.Validate(); err != nil {
		return err
	}
	if bet.IsNew() {
		return translate(r.db.WithContext(ctx).Create(bet).Error)
	}
	return translate(r.db.WithContext(ctx).Save(bet).Error)
}

func (r *repository) CreateClaim(ctx context.Context, claim *models.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(claim).Error)
}

func (r *repository) GetClaimByBet(ctx context.Context, betID uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	if err := r.db.WithContext(ctx).Where("bet_id = ?", betID).First(&claim).Error; err != nil {
		return nil, translate(err)
	}
	return &claim, nil
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
