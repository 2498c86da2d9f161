package markets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new market repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create inserts a new market
func (r *repository) Create(ctx context.Context, market *models.Market) error {
	if err := market.Validate(); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(market).Error)
}

// GetByEventID retrieves a market without locking it
func (r *repository) GetByEventID(ctx context.Context, eventID string) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&market).Error
	if err != nil {
		return nil, translate(err)
	}
	return &market, nil
}

func (r *repository) LockByEventID(ctx context.Context, eventID string) (*models.Market, error) {
	var market models.Market
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		First(&market).Error
	if err != nil {
		return nil, translate(err)
	}
	return &market, nil
}

func (r *repository) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Market{}).
		Where("address = ? OR escrow_address = ?", address, address).
		Count(&count).Error
	return count > 0, err
}

// Update saves the mutable market fields
func (r *repository) Update(ctx context.Context, market *models.Market) error {
	if err := market.Validate(); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Save(market).Error)
}

// GetAll retrieves markets with filters and pagination
func (r *repository) GetAll(ctx context.Context, filters *MarketFilters) ([]models.Market, error) {
	var markets []models.Market

	query := r.db.WithContext(ctx).Model(&models.Market{})
	query = r.applyFilters(query, filters)
	query = r.applySorting(query, filters)
	query = r.applyPagination(query, filters)

	err := query.Find(&markets).Error
	return markets, err
}

// Count returns the total count of markets matching filters
func (r *repository) Count(ctx context.Context, filters *MarketFilters) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Market{})
	query = r.applyFilters(query, filters)
	err := query.Count(&count).Error
	return count, err
}

// GetExpiredOpen lists the authority's open markets past their end time,
// oldest deadline first
func (r *repository) GetExpiredOpen(ctx context.Context, authority string, now time.Time, limit int) ([]models.Market, error) {
	var markets []models.Market
	err := r.db.WithContext(ctx).
		Where("status = ? AND authority = ? AND end_time <= ?", models.MarketStatusOpen, authority, now.Unix()).
		Order("end_time ASC").
		Limit(limit).
		Find(&markets).Error
	return markets, err
}

func (r *repository) applyFilters(query *gorm.DB, filters *MarketFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Authority != "" {
		query = query.Where("authority = ?", filters.Authority)
	}

	return query
}

func (r *repository) applySorting(query *gorm.DB, filters *MarketFilters) *gorm.DB {
	sortBy, sortOrder := "created_at", "desc"
	if filters != nil {
		sortBy, sortOrder = filters.SortBy, filters.SortOrder
	}

	// column names cannot be bound as parameters
	validSortFields := map[string]bool{
		"created_at": true,
		"end_time":   true,
		"total_pool": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))
}

func (r *repository) applyPagination(query *gorm.DB, filters *MarketFilters) *gorm.DB {
	q := api.PageQuery{}
	if filters != nil {
		q = filters.PageQuery
	}
	q.Normalize()
	return query.Offset(q.Offset()).Limit(q.PerPage)
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
