package prediction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/app/markets"
	"github.com/joefazee/arena/models"
)

// memStore backs the markets, bets and ledger repositories in service tests.
// Repositories hand out copies so a failed transaction only leaks state if it
// reached a write; callers restore a snapshot to emulate rollback.
type memStore struct {
	markets  map[string]models.Market
	bets     map[string]models.UserBet
	claims   map[uuid.UUID]models.Claim
	accounts map[string]models.Account
	entries  []models.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{
		markets:  map[string]models.Market{},
		bets:     map[string]models.UserBet{},
		claims:   map[uuid.UUID]models.Claim{},
		accounts: map[string]models.Account{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.markets {
		c.markets[k] = v
	}
	for k, v := range s.bets {
		c.bets[k] = v
	}
	for k, v := range s.claims {
		c.claims[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.entries = append([]models.LedgerEntry(nil), s.entries...)
	return c
}

func (s *memStore) restore(snapshot *memStore) {
	*s = *snapshot.clone()
}

func (s *memStore) balance(address string) uint64 {
	return s.accounts[address].Balance
}

func (s *memStore) totalBalance() uint64 {
	var total uint64
	for _, a := range s.accounts {
		total += a.Balance
	}
	return total
}

func betKey(eventID, owner string, slot uint8) string {
	return fmt.Sprintf("%s|%s|%d", eventID, owner, slot)
}

type memMarkets struct{ s *memStore }

var _ markets.Repository = (*memMarkets)(nil)

func (r *memMarkets) Create(_ context.Context, market *models.Market) error {
	if _, ok := r.s.markets[market.EventID]; ok {
		return models.ErrAlreadyExists
	}
	if err := market.Validate(); err != nil {
		return err
	}
	r.s.markets[market.EventID] = *market
	return nil
}

func (r *memMarkets) GetByEventID(_ context.Context, eventID string) (*models.Market, error) {
	m, ok := r.s.markets[eventID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &m, nil
}

func (r *memMarkets) LockByEventID(ctx context.Context, eventID string) (*models.Market, error) {
	return r.GetByEventID(ctx, eventID)
}

func (r *memMarkets) ExistsByAddress(_ context.Context, address string) (bool, error) {
	for _, m := range r.s.markets {
		if m.Address == address {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMarkets) Update(_ context.Context, market *models.Market) error {
	if err := market.Validate(); err != nil {
		return err
	}
	r.s.markets[market.EventID] = *market
	return nil
}

func (r *memMarkets) GetAll(_ context.Context, _ *markets.MarketFilters) ([]models.Market, error) {
	all := make([]models.Market, 0, len(r.s.markets))
	for _, m := range r.s.markets {
		all = append(all, m)
	}
	return all, nil
}

func (r *memMarkets) Count(_ context.Context, _ *markets.MarketFilters) (int64, error) {
	return int64(len(r.s.markets)), nil
}

func (r *memMarkets) GetExpiredOpen(_ context.Context, authority string, now time.Time, limit int) ([]models.Market, error) {
	var expired []models.Market
	for _, m := range r.s.markets {
		if m.Status == models.MarketStatusOpen && m.Authority == authority && m.EndTime <= now.Unix() {
			expired = append(expired, m)
		}
	}
	if len(expired) > limit {
		expired = expired[:limit]
	}
	return expired, nil
}

func (r *memMarkets) WithTx(_ *gorm.DB) markets.Repository { return r }

type memBets struct{ s *memStore }

var _ Repository = (*memBets)(nil)

func (r *memBets) WithTx(_ *gorm.DB) Repository { return r }

func (r *memBets) LockBet(_ context.Context, eventID, owner string, slot uint8) (*models.UserBet, error) {
	b, ok := r.s.bets[betKey(eventID, owner, slot)]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &b, nil
}

func (r *memBets) GetBetsByOwner(_ context.Context, eventID, owner string) ([]models.UserBet, error) {
	var bets []models.UserBet
	for slot := uint8(0); slot <= 2; slot++ {
		if b, ok := r.s.bets[betKey(eventID, owner, slot)]; ok {
			bets = append(bets, b)
		}
	}
	return bets, nil
}

func (r *memBets) SaveBet(_ context.Context, bet *models.UserBet) error {
	if err := bet.Validate(); err != nil {
		return err
	}
	key := betKey(bet.MarketEventID, bet.Owner, bet.Slot)
	if bet.IsNew() {
		if _, ok := r.s.bets[key]; ok {
			return models.ErrAlreadyExists
		}
		bet.ID = uuid.New()
	}
	r.s.bets[key] = *bet
	return nil
}

func (r *memBets) CreateClaim(_ context.Context, claim *models.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	if _, ok := r.s.claims[claim.BetID]; ok {
		return models.ErrAlreadyExists
	}
	if claim.ID == uuid.Nil {
		claim.ID = uuid.New()
	}
	r.s.claims[claim.BetID] = *claim
	return nil
}

func (r *memBets) GetClaimByBet(_ context.Context, betID uuid.UUID) (*models.Claim, error) {
	c, ok := r.s.claims[betID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &c, nil
}

type memLedger struct{ s *memStore }

var _ ledger.Repository = (*memLedger)(nil)

func (r *memLedger) CreateAccount(_ context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	if _, ok := r.s.accounts[account.Address]; ok {
		return models.ErrAlreadyExists
	}
	r.s.accounts[account.Address] = *account
	return nil
}

func (r *memLedger) EnsureAccount(_ context.Context, account *models.Account) (bool, error) {
	if err := account.Validate(); err != nil {
		return false, err
	}
	if _, ok := r.s.accounts[account.Address]; ok {
		return false, nil
	}
	r.s.accounts[account.Address] = *account
	return true, nil
}

func (r *memLedger) GetAccount(_ context.Context, address string) (*models.Account, error) {
	a, ok := r.s.accounts[address]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memLedger) GetAccountByOwner(_ context.Context, ownerID uuid.UUID) (*models.Account, error) {
	for _, a := range r.s.accounts {
		if a.OwnerID != nil && *a.OwnerID == ownerID {
			return &a, nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (r *memLedger) LockAccounts(_ context.Context, addresses []string) (map[string]*models.Account, error) {
	locked := make(map[string]*models.Account, len(addresses))
	for _, addr := range addresses {
		if a, ok := r.s.accounts[addr]; ok {
			locked[addr] = &a
		}
	}
	return locked, nil
}

func (r *memLedger) UpdateAccount(_ context.Context, account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	r.s.accounts[account.Address] = *account
	return nil
}

func (r *memLedger) CreateEntries(_ context.Context, entries []*models.LedgerEntry) error {
	for _, e := range entries {
		r.s.entries = append(r.s.entries, *e)
	}
	return nil
}

func (r *memLedger) GetEntries(_ context.Context, address string, limit, offset int) ([]models.LedgerEntry, int64, error) {
	var matched []models.LedgerEntry
	for _, e := range r.s.entries {
		if e.AccountAddress == address {
			matched = append(matched, e)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.LedgerEntry{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memLedger) GetEntriesByReference(_ context.Context, refType, refID string) ([]models.LedgerEntry, error) {
	var matched []models.LedgerEntry
	for _, e := range r.s.entries {
		if e.ReferenceType == refType && e.ReferenceID == refID {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].AccountAddress < matched[j].AccountAddress })
	return matched, nil
}

func (r *memLedger) WithTx(_ *gorm.DB) ledger.Repository { return r }
