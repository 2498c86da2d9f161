package markets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/joefazee/arena/app/audit"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/models"
)

const cacheKeyPrefix = "market:"

// Dependencies are the collaborators a market service writes through
type Dependencies struct {
	DB       *gorm.DB
	Deriver  *escrow.Deriver
	Ledger   ledger.Service
	Recorder audit.Recorder
	Cache    cache.Cache[string]
	Logger   logger.Logger
}

type service struct {
	repo     Repository
	config   *Config
	db       *gorm.DB
	deriver  *escrow.Deriver
	ledger   ledger.Service
	recorder audit.Recorder
	cache    cache.Cache[string]
	logger   logger.Logger
	now      func() time.Time

	// generations counts invalidations per event id; a snapshot read before
	// an invalidation must not be written back over it
	generations sync.Map
}

// NewService creates a new market service
func NewService(repo Repository, config *Config, d Dependencies) Service {
	if d.Recorder == nil {
		d.Recorder = audit.NopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = logger.NewNullLogger()
	}
	return &service{
		repo:     repo,
		config:   config,
		db:       d.DB,
		deriver:  d.Deriver,
		ledger:   d.Ledger,
		recorder: d.Recorder,
		cache:    d.Cache,
		logger:   d.Logger,
		now:      time.Now,
	}
}

// InitializeMarket creates the market record and its empty escrow account
func (s *service) InitializeMarket(ctx context.Context, authority string, req *InitializeMarketRequest, meta models.RequestMeta) (*MarketResponse, error) {
	market, err := s.buildMarket(authority, req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, market); err != nil {
			if errors.Is(err, models.ErrAlreadyExists) {
				return err
			}
			return fmt.Errorf("failed to create market: %w", err)
		}

		if _, err := s.ledger.WithTx(tx).OpenEscrow(ctx, market.EscrowAddress); err != nil {
			return fmt.Errorf("failed to open escrow: %w", err)
		}

		entry := models.NewAuditLog(market.Authority, models.AuditActionMarketInitialized,
			models.AuditResourceMarket, market.EventID, nil, models.MarketSnapshot(market), meta)
		return s.recorder.WithTx(tx).Record(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.Invalidate(ctx, market.EventID)
	s.logger.Info("market initialized", map[string]interface{}{
		"event_id":  market.EventID,
		"authority": market.Authority,
		"escrow":    market.EscrowAddress,
		"end_time":  market.EndTime,
	})

	return ToMarketResponse(market), nil
}

func (s *service) buildMarket(authority string, req *InitializeMarketRequest) (*models.Market, error) {
	if err := models.ValidateEventID(req.EventID); err != nil {
		return nil, err
	}
	if req.EndTime <= 0 {
		return nil, models.ErrInvalidEndTime
	}

	addresses := make([]string, 3)
	for i, raw := range []string{authority, req.OracleFeed, req.DevWallet} {
		addr, err := models.NormalizeAddress(raw)
		if err != nil {
			return nil, err
		}
		addresses[i] = addr
	}

	marketAddress, err := s.deriver.MarketAddress(req.EventID)
	if err != nil {
		return nil, err
	}
	escrowAddress, nonce, err := s.deriver.EscrowAddress(req.EventID)
	if err != nil {
		return nil, err
	}

	return &models.Market{
		EventID:       req.EventID,
		Address:       marketAddress,
		OracleFeed:    addresses[1],
		DevWallet:     addresses[2],
		EndTime:       req.EndTime,
		Status:        models.MarketStatusOpen,
		Authority:     addresses[0],
		EscrowAddress: escrowAddress,
		EscrowNonce:   nonce,
	}, nil
}

// LockMarket stops betting on an open market
func (s *service) LockMarket(ctx context.Context, eventID, caller string, meta models.RequestMeta) (*MarketResponse, error) {
	return s.transition(ctx, eventID, caller, models.AuditActionMarketLocked, meta, func(m *models.Market) error {
		return m.Lock(caller)
	})
}

// SettleMarket records the winning outcome. Settlement is final.
func (s *service) SettleMarket(ctx context.Context, eventID, caller string, req *SettleMarketRequest, meta models.RequestMeta) (*MarketResponse, error) {
	if req.Outcome == nil {
		return nil, models.ErrInvalidOutcome
	}
	outcome := models.Outcome(*req.Outcome)

	return s.transition(ctx, eventID, caller, models.AuditActionMarketSettled, meta, func(m *models.Market) error {
		return m.Settle(caller, outcome, s.config.RequireLockBeforeSettle, s.now())
	})
}

// transition applies apply to the locked market row and audits the change
func (s *service) transition(ctx context.Context, eventID, caller, action string, meta models.RequestMeta,
	apply func(m *models.Market) error) (*MarketResponse, error) {
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	var market *models.Market
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		m, err := repo.LockByEventID(ctx, eventID)
		if err != nil {
			return err
		}

		before := models.MarketSnapshot(m)
		if err := apply(m); err != nil {
			return err
		}

		if err := repo.Update(ctx, m); err != nil {
			return fmt.Errorf("failed to update market: %w", err)
		}

		entry := models.NewAuditLog(caller, action, models.AuditResourceMarket, m.EventID,
			before, models.MarketSnapshot(m), meta)
		if err := s.recorder.WithTx(tx).Record(ctx, entry); err != nil {
			return err
		}

		market = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Invalidate(ctx, eventID)
	s.logger.Info(action, map[string]interface{}{
		"event_id": eventID,
		"status":   market.Status,
	})

	return ToMarketResponse(market), nil
}

// GetMarket returns a market, served from cache when possible
func (s *service) GetMarket(ctx context.Context, eventID string) (*MarketResponse, error) {
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	if market, ok := s.cached(ctx, eventID); ok {
		return ToMarketResponse(market), nil
	}

	generation := s.generation(eventID).Load()
	market, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.store(ctx, market, generation)
	return ToMarketResponse(market), nil
}

// GetMarkets returns a filtered page of markets
func (s *service) GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error) {
	if filters.Authority != "" {
		authority, err := models.NormalizeAddress(filters.Authority)
		if err != nil {
			return nil, err
		}
		filters.Authority = authority
	}
	filters.Normalize()

	markets, err := s.repo.GetAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get markets: %w", err)
	}

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count markets: %w", err)
	}

	responses := make([]MarketResponse, len(markets))
	for i := range markets {
		responses[i] = *ToMarketResponse(&markets[i])
	}

	return &MarketListResponse{
		Markets: responses,
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}, nil
}

func (s *service) LockExpired(ctx context.Context, operator string, limit int) (int, error) {
	operator, err := models.NormalizeAddress(operator)
	if err != nil {
		return 0, err
	}

	expired, err := s.repo.GetExpiredOpen(ctx, operator, s.now(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch expired markets: %w", err)
	}

	meta := models.RequestMeta{UserAgent: "market-sweeper"}
	locked := 0
	for i := range expired {
		eventID := expired[i].EventID
		if _, err := s.LockMarket(ctx, eventID, operator, meta); err != nil {
			// a concurrent lock or settle wins; the row is no longer open
			if errors.Is(err, models.ErrInconsistentState) {
				s.logger.Info("market no longer open, skipped", map[string]interface{}{"event_id": eventID, "job": "market-sweeper"})
				continue
			}
			s.logger.Error(err, map[string]interface{}{"event_id": eventID, "job": "market-sweeper"})
			continue
		}
		locked++
	}

	return locked, nil
}

func (s *service) Invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	s.generation(eventID).Add(1)
	if err := s.cache.Delete(ctx, cacheKeyPrefix+eventID); err != nil {
		s.logger.Error(err, map[string]interface{}{"event_id": eventID, "op": "cache_delete"})
	}
}

func (s *service) cached(ctx context.Context, eventID string) (*models.Market, bool) {
	if s.cache == nil || s.config.CacheTTL == 0 {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, cacheKeyPrefix+eventID)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Error(err, map[string]interface{}{"event_id": eventID, "op": "cache_get"})
		}
		return nil, false
	}

	var market models.Market
	if err := json.Unmarshal([]byte(raw), &market); err != nil {
		s.Invalidate(ctx, eventID)
		return nil, false
	}
	return &market, true
}

// store caches a snapshot read at generation. It backs out when an
// invalidation landed in between, before or after the write.
func (s *service) store(ctx context.Context, market *models.Market, generation uint64) {
	if s.cache == nil || s.config.CacheTTL == 0 {
		return
	}

	current := s.generation(market.EventID)
	if current.Load() != generation {
		return
	}

	raw, err := json.Marshal(market)
	if err != nil {
		return
	}
	key := cacheKeyPrefix + market.EventID
	if err := s.cache.Set(ctx, key, string(raw), s.config.CacheTTL); err != nil {
		s.logger.Error(err, map[string]interface{}{"event_id": market.EventID, "op": "cache_set"})
		return
	}
	if current.Load() != generation {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Error(err, map[string]interface{}{"event_id": market.EventID, "op": "cache_delete"})
		}
	}
}

func (s *service) generation(eventID string) *atomic.Uint64 {
	v, _ := s.generations.LoadOrStore(eventID, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}
