package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/audit"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/app/markets"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/models"
)

// noOutcome stands in for a missing outcome so the market checks still run first
const noOutcome = models.Outcome(math.MaxUint8)

// Dependencies are the collaborators the betting service writes through
type Dependencies struct {
	DB       *gorm.DB
	Markets  markets.Repository
	Cache    MarketCache
	Ledger   ledger.Service
	Deriver  *escrow.Deriver
	Recorder audit.Recorder
	Logger   logger.Logger
}

// service implements the Service interface
type service struct {
	db       *gorm.DB
	repo     Repository
	markets  markets.Repository
	cache    MarketCache
	ledger   ledger.Service
	deriver  *escrow.Deriver
	recorder audit.Recorder
	engine   PayoutEngine
	config   *Config
	logger   logger.Logger
	now      func() time.Time
}

// NewService creates a new betting service
func NewService(repo Repository, config *Config, engine PayoutEngine, d Dependencies) Service {
	if d.Recorder == nil {
		d.Recorder = audit.NopRecorder{}
	}
	if d.Logger == nil {
		d.Logger = logger.NewNullLogger()
	}
	return &service{
		db:       d.DB,
		repo:     repo,
		markets:  d.Markets,
		cache:    d.Cache,
		ledger:   d.Ledger,
		deriver:  d.Deriver,
		recorder: d.Recorder,
		engine:   engine,
		config:   config,
		logger:   d.Logger,
		now:      time.Now,
	}
}

// PlaceBet moves amount from the caller into the market escrow and credits
// the caller's position. Rows are locked market, then bet, then accounts.
func (s *service) PlaceBet(ctx context.Context, caller, eventID string, req *PlaceBetRequest, meta models.RequestMeta) (*PlaceBetResponse, error) {
	caller, err := models.NormalizeAddress(caller)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	outcome := noOutcome
	if req.Outcome != nil {
		outcome = models.Outcome(*req.Outcome)
	}

	var (
		market   *models.Market
		bet      *models.UserBet
		transfer *ledger.TransferResult
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marketRepo := s.markets.WithTx(tx)
		repo := s.repo.WithTx(tx)

		m, err := marketRepo.LockByEventID(ctx, eventID)
		if err != nil {
			return err
		}

		before := models.MarketSnapshot(m)
		if err := m.AddStake(outcome, req.Amount, s.now()); err != nil {
			return err
		}
		if req.Amount < s.config.MinBetAmount {
			return models.ErrInvalidBetAmount
		}

		b, err := s.lockOrOpenBet(ctx, repo, m, caller, outcome)
		if err != nil {
			return err
		}
		if err := b.TopUp(outcome, req.Amount, s.config.OutcomePolicy); err != nil {
			return err
		}
		if err := repo.SaveBet(ctx, b); err != nil {
			return fmt.Errorf("failed to save bet: %w", err)
		}

		transfer, err = s.ledger.WithTx(tx).Transfer(ctx, &ledger.TransferRequest{
			From:       caller,
			To:         m.EscrowAddress,
			Amount:     req.Amount,
			DebitType:  models.EntryTypeBetPlace,
			CreditType: models.EntryTypeEscrowIn,
			Signer:     caller,
			Reference:  models.Reference{Type: models.ReferenceBet, ID: b.ID.String()},
		})
		if err != nil {
			return err
		}

		if err := marketRepo.Update(ctx, m); err != nil {
			return fmt.Errorf("failed to update market: %w", err)
		}

		after := models.MarketSnapshot(m)
		after["bet_id"] = b.ID.String()
		after["outcome"] = uint8(outcome)
		after["amount"] = req.Amount
		entry := models.NewAuditLog(caller, models.AuditActionBetPlaced, models.AuditResourceMarket, m.EventID, before, after, meta)
		if err := s.recorder.WithTx(tx).Record(ctx, entry); err != nil {
			return err
		}

		market, bet = m, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, eventID)
	s.logger.Info("bet placed", map[string]interface{}{
		"event_id": eventID,
		"owner":    caller,
		"outcome":  uint8(outcome),
		"amount":   req.Amount,
	})

	return &PlaceBetResponse{
		Bet:        ToBetResponse(bet, s.engine),
		TransferID: transfer.TransferID,
		PoolA:      market.PoolA,
		PoolB:      market.PoolB,
		TotalPool:  market.TotalPool,
		Odds:       s.engine.Odds(market),
	}, nil
}

func (s *service) lockOrOpenBet(ctx context.Context, repo Repository, market *models.Market, owner string, outcome models.Outcome) (*models.UserBet, error) {
	slot := s.config.OutcomePolicy.Slot(outcome)
	bet, err := repo.LockBet(ctx, market.EventID, owner, slot)
	if errors.Is(err, models.ErrRecordNotFound) {
		return models.NewUserBet(market.EventID, owner, outcome, s.config.OutcomePolicy), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock bet: %w", err)
	}
	return bet, nil
}

// ClaimWinnings pays a winning position out of escrow. The claimed flag is
// persisted before any funds move, and dust stays in escrow.
func (s *service) ClaimWinnings(ctx context.Context, caller, eventID string, req *ClaimRequest, meta models.RequestMeta) (*ClaimResponse, error) {
	caller, err := models.NormalizeAddress(caller)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	var (
		bet       *models.UserBet
		claim     *models.Claim
		transfers []uuid.UUID
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ledgerTx := s.ledger.WithTx(tx)

		market, err := s.markets.WithTx(tx).LockByEventID(ctx, eventID)
		if err != nil {
			return err
		}

		owned, err := repo.GetBetsByOwner(ctx, eventID, caller)
		if err != nil {
			return fmt.Errorf("failed to get bets: %w", err)
		}
		target, err := s.pickClaimBet(owned, market, req)
		if err != nil {
			return err
		}
		b, err := repo.LockBet(ctx, eventID, caller, target.Slot)
		if err != nil {
			return err
		}
		if err := b.CheckClaimable(market); err != nil {
			return err
		}

		payout, err := s.engine.Payout(market, b)
		if err != nil {
			if errors.Is(err, models.ErrInconsistentState) {
				s.logger.Error(err, map[string]interface{}{"event_id": eventID, "bet_id": b.ID.String()})
			}
			return err
		}

		capability, err := s.deriver.Authorize(market)
		if err != nil {
			return fmt.Errorf("escrow %s does not derive from %s: %w", market.EscrowAddress, eventID, models.ErrInconsistentState)
		}

		if err := b.MarkClaimed(s.now()); err != nil {
			return err
		}
		if err := repo.SaveBet(ctx, b); err != nil {
			return fmt.Errorf("failed to mark bet claimed: %w", err)
		}

		c := models.NewClaim(market, b, payout)
		if err := repo.CreateClaim(ctx, c); err != nil {
			if errors.Is(err, models.ErrAlreadyExists) {
				return models.ErrAlreadyClaimed
			}
			return fmt.Errorf("failed to record claim: %w", err)
		}

		if err := ledgerTx.LockAccounts(ctx, market.EscrowAddress, market.DevWallet, caller); err != nil {
			return err
		}

		ref := models.Reference{Type: models.ReferenceClaim, ID: c.ID.String()}
		legs := []struct {
			to     string
			amount uint64
			credit models.EntryType
		}{
			{to: market.DevWallet, amount: payout.DevFee, credit: models.EntryTypeFee},
			{to: caller, amount: payout.UserPayout, credit: models.EntryTypePayout},
		}
		for _, leg := range legs {
			if leg.amount == 0 {
				continue
			}
			result, err := ledgerTx.Transfer(ctx, &ledger.TransferRequest{
				From:       market.EscrowAddress,
				To:         leg.to,
				Amount:     leg.amount,
				DebitType:  models.EntryTypeEscrowOut,
				CreditType: leg.credit,
				Capability: capability,
				Reference:  ref,
			})
			if err != nil {
				if errors.Is(err, models.ErrInsufficientBalance) {
					// escrow holds every stake; a shortfall means the books disagree
					s.logger.Error(err, map[string]interface{}{"event_id": eventID, "escrow": market.EscrowAddress})
					return fmt.Errorf("escrow short for %s: %w", eventID, models.ErrInconsistentState)
				}
				return err
			}
			transfers = append(transfers, result.TransferID)
		}

		entry := models.NewAuditLog(caller, models.AuditActionWinningsClaimed, models.AuditResourceMarket, eventID,
			nil, models.AuditValues{
				"bet_id":       b.ID.String(),
				"claim_id":     c.ID.String(),
				"total_payout": payout.TotalPayout,
				"dev_fee":      payout.DevFee,
				"user_payout":  payout.UserPayout,
			}, meta)
		if err := s.recorder.WithTx(tx).Record(ctx, entry); err != nil {
			return err
		}

		bet, claim = b, c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("winnings claimed", map[string]interface{}{
		"event_id":    eventID,
		"owner":       caller,
		"user_payout": claim.UserPayout,
		"dev_fee":     claim.DevFee,
	})

	return &ClaimResponse{
		ClaimID:   claim.ID,
		Bet:       ToBetResponse(bet, s.engine),
		Payout:    *ToPayoutResponse(claim.Payout(), s.engine),
		DevWallet: claim.DevWallet,
		Transfers: transfers,
	}, nil
}

// pickClaimBet picks the record a claim refers to. An explicit outcome, or
// any single-record policy, names one slot. Under split without an outcome
// it is the winning side's record; when the caller holds no such record the
// error says why, alongside the record that was found.
func (s *service) pickClaimBet(bets []models.UserBet, market *models.Market, req *ClaimRequest) (*models.UserBet, error) {
	if len(bets) == 0 {
		return nil, models.ErrRecordNotFound
	}

	policy := s.config.OutcomePolicy
	if req != nil && req.OutcomeID != nil {
		return betInSlot(bets, policy.Slot(models.Outcome(*req.OutcomeID)))
	}
	if policy != models.OutcomePolicySplit {
		return betInSlot(bets, policy.Slot(market.WinningOutcome))
	}

	if !market.IsSettled() {
		return &bets[0], models.ErrMarketNotSettled
	}
	if b, err := betInSlot(bets, policy.Slot(market.WinningOutcome)); err == nil {
		return b, nil
	}
	return &bets[0], models.ErrLostBet
}

func betInSlot(bets []models.UserBet, slot uint8) (*models.UserBet, error) {
	for i := range bets {
		if bets[i].Slot == slot {
			return &bets[i], nil
		}
	}
	return nil, models.ErrRecordNotFound
}

// QuoteClaim reports what ClaimWinnings would pay right now
func (s *service) QuoteClaim(ctx context.Context, caller, eventID string, req *ClaimRequest) (*ClaimQuoteResponse, error) {
	caller, err := models.NormalizeAddress(caller)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	market, err := s.markets.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	bets, err := s.repo.GetBetsByOwner(ctx, eventID, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}
	bet, err := s.pickClaimBet(bets, market, req)
	if bet == nil {
		return nil, err
	}

	resp := &ClaimQuoteResponse{Bet: ToBetResponse(bet, s.engine)}
	if err == nil {
		err = bet.CheckClaimable(market)
	}
	if err != nil {
		resp.Reason = err.Error()
		return resp, nil
	}

	payout, err := s.engine.Payout(market, bet)
	if err != nil {
		return nil, err
	}
	resp.Claimable = true
	resp.Payout = ToPayoutResponse(payout, s.engine)
	return resp, nil
}

// GetMyPosition lists the caller's records in a market with their estimates
func (s *service) GetMyPosition(ctx context.Context, caller, eventID string) (*PositionResponse, error) {
	caller, err := models.NormalizeAddress(caller)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	if err := models.ValidateEventID(eventID); err != nil {
		return nil, err
	}

	market, err := s.markets.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	bets, err := s.repo.GetBetsByOwner(ctx, eventID, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	positions := make([]PositionEntry, len(bets))
	for i := range bets {
		positions[i] = PositionEntry{Bet: ToBetResponse(&bets[i], s.engine)}
		if bets[i].Claimed || (market.IsSettled() && !bets[i].IsWinner(market)) {
			continue
		}
		if p, err := s.engine.Estimate(market, &bets[i]); err == nil {
			positions[i].Estimate = ToPayoutResponse(p, s.engine)
		}
	}

	return &PositionResponse{
		MarketEventID: market.EventID,
		Status:        market.Status,
		Positions:     positions,
		Odds:          s.engine.Odds(market),
	}, nil
}

func (s *service) invalidate(ctx context.Context, eventID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, eventID)
	}
}
