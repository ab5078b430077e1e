package application

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/shopspring/decimal"
)

const (
	basePrivacyScore     = 85
	privacyScorePerStake = 3
	privacyActiveBonus   = 10
	maxPrivacyScore      = 100
)

var dayDuration = decimal.NewFromInt(int64(24 * time.Hour))

type LedgerEventKind string

const (
	LedgerPositionOpened  LedgerEventKind = "position_opened"
	LedgerPositionUpdated LedgerEventKind = "position_updated"
	LedgerHarvestRecorded LedgerEventKind = "harvest_recorded"
	LedgerRestored        LedgerEventKind = "restored"
)

type LedgerEvent struct {
	Kind     LedgerEventKind
	Position domain.StakePosition
}

// PositionLedger owns the session's pools and stake positions. All mutation
// goes through AddOrUpdatePosition, RecordHarvest and Restore, serialized by mu.
type PositionLedger struct {
	mu          sync.RWMutex
	pools       []domain.Pool
	positions   []domain.StakePosition
	prices      ports.PriceSource
	clock       ports.Clock
	subscribers map[int]func(LedgerEvent)
	nextSubID   int
}

func NewPositionLedger(pools []domain.Pool, prices ports.PriceSource, clock ports.Clock) (*PositionLedger, error) {
	if prices == nil {
		prices = DefaultPriceTable()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	seen := make(map[domain.PoolID]struct{}, len(pools))
	catalog := make([]domain.Pool, 0, len(pools))
	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			return nil, fmt.Errorf("pool %d: %w", pool.ID, err)
		}
		if _, ok := seen[pool.ID]; ok {
			return nil, fmt.Errorf("duplicate pool id %d", pool.ID)
		}
		seen[pool.ID] = struct{}{}
		pool.IsStaked = false
		catalog = append(catalog, pool)
	}

	return &PositionLedger{
		pools:       catalog,
		prices:      prices,
		clock:       clock,
		subscribers: map[int]func(LedgerEvent){},
	}, nil
}

// Subscribe registers fn for change notifications. Callbacks run after the
// ledger lock is released, on the goroutine that performed the mutation.
func (l *PositionLedger) Subscribe(fn func(LedgerEvent)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subscribers, id)
	}
}

func (l *PositionLedger) ListPools() []domain.Pool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pools := make([]domain.Pool, 0, len(l.pools))
	for _, pool := range l.pools {
		_, pool.IsStaked = l.positionIndexForPool(pool.ID)
		pools = append(pools, pool)
	}
	return pools
}

func (l *PositionLedger) Pool(poolID domain.PoolID) (domain.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pool, ok := l.poolByID(poolID)
	if !ok {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	_, pool.IsStaked = l.positionIndexForPool(poolID)
	return pool, nil
}

func (l *PositionLedger) Positions() []domain.StakePosition {
	l.mu.RLock()
	defer l.mu.RUnlock()

	positions := make([]domain.StakePosition, len(l.positions))
	copy(positions, l.positions)
	return positions
}

func (l *PositionLedger) Position(stakeID domain.StakeID) (domain.StakePosition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.positionIndexForStake(stakeID)
	if !ok {
		return domain.StakePosition{}, false
	}
	return l.positions[idx], true
}

func (l *PositionLedger) PositionForPool(poolID domain.PoolID) (domain.StakePosition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.positionIndexForPool(poolID)
	if !ok {
		return domain.StakePosition{}, false
	}
	return l.positions[idx], true
}

func (l *PositionLedger) PoolByStakeID(stakeID domain.StakeID) (domain.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.positionIndexForStake(stakeID)
	if !ok {
		return domain.Pool{}, domain.ErrUnknownStake
	}
	pool, ok := l.poolByID(l.positions[idx].PoolID)
	if !ok {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	pool.IsStaked = true
	return pool, nil
}

// AddOrUpdatePosition records amount as the new cumulative total for poolID.
// An existing position keeps its stake ID, CreatedAt and LastHarvestAt.
func (l *PositionLedger) AddOrUpdatePosition(poolID domain.PoolID, stakeID domain.StakeID, amount string, token string) (domain.StakePosition, error) {
	value, ok := domain.ParseAmount(amount)
	if !ok || !value.IsPositive() {
		return domain.StakePosition{}, &domain.InvalidAmountError{Amount: amount, Reason: fmt.Sprintf("amount %q is not a positive decimal", amount)}
	}

	l.mu.Lock()
	if _, ok := l.poolByID(poolID); !ok {
		l.mu.Unlock()
		return domain.StakePosition{}, domain.ErrPoolNotFound
	}

	var event LedgerEvent
	if idx, ok := l.positionIndexForPool(poolID); ok {
		l.positions[idx].Amount = amount
		event = LedgerEvent{Kind: LedgerPositionUpdated, Position: l.positions[idx]}
	} else {
		if stakeID == 0 {
			l.mu.Unlock()
			return domain.StakePosition{}, fmt.Errorf("stake id is required for a new position")
		}
		if _, taken := l.positionIndexForStake(stakeID); taken {
			l.mu.Unlock()
			return domain.StakePosition{}, fmt.Errorf("stake id %d already belongs to another pool", stakeID)
		}
		now := l.clock.Now()
		position := domain.StakePosition{
			StakeID:       stakeID,
			PoolID:        poolID,
			Amount:        amount,
			Token:         token,
			CreatedAt:     now,
			LastHarvestAt: now,
		}
		l.positions = append(l.positions, position)
		event = LedgerEvent{Kind: LedgerPositionOpened, Position: position}
	}
	subscribers := l.subscriberSnapshot()
	l.mu.Unlock()

	notify(subscribers, event)
	return event.Position, nil
}

func (l *PositionLedger) RecordHarvest(stakeID domain.StakeID) (domain.StakePosition, error) {
	l.mu.Lock()
	idx, ok := l.positionIndexForStake(stakeID)
	if !ok {
		l.mu.Unlock()
		return domain.StakePosition{}, domain.ErrUnknownStake
	}

	l.positions[idx].LastHarvestAt = l.clock.Now()
	position := l.positions[idx]
	subscribers := l.subscriberSnapshot()
	l.mu.Unlock()

	notify(subscribers, LedgerEvent{Kind: LedgerHarvestRecorded, Position: position})
	return position, nil
}

// Restore replaces the position set with a persisted snapshot.
func (l *PositionLedger) Restore(positions []domain.StakePosition) error {
	l.mu.Lock()

	byPool := make(map[domain.PoolID]struct{}, len(positions))
	byStake := make(map[domain.StakeID]struct{}, len(positions))
	restored := make([]domain.StakePosition, 0, len(positions))
	var errs []error
	for _, position := range positions {
		if _, ok := l.poolByID(position.PoolID); !ok {
			errs = append(errs, fmt.Errorf("stake %d: %w", position.StakeID, domain.ErrPoolNotFound))
			continue
		}
		if _, ok := byPool[position.PoolID]; ok {
			errs = append(errs, fmt.Errorf("duplicate position for pool %d", position.PoolID))
			continue
		}
		if _, ok := byStake[position.StakeID]; ok {
			errs = append(errs, fmt.Errorf("duplicate stake id %d", position.StakeID))
			continue
		}
		if value, ok := domain.ParseAmount(position.Amount); !ok || !value.IsPositive() {
			errs = append(errs, fmt.Errorf("stake %d: %w", position.StakeID, domain.ErrInvalidAmount))
			continue
		}
		if err := validateRestoredTimes(position); err != nil {
			errs = append(errs, err)
			continue
		}
		byPool[position.PoolID] = struct{}{}
		byStake[position.StakeID] = struct{}{}
		restored = append(restored, position)
	}
	if len(errs) > 0 {
		l.mu.Unlock()
		return fmt.Errorf("restore positions: %w", errors.Join(errs...))
	}

	l.positions = restored
	subscribers := l.subscriberSnapshot()
	l.mu.Unlock()

	notify(subscribers, LedgerEvent{Kind: LedgerRestored})
	return nil
}

// Rewards accrue from LastHarvestAt, so both timestamps must be set and
// ordered.
func validateRestoredTimes(position domain.StakePosition) error {
	switch {
	case position.StakeID == 0:
		return fmt.Errorf("position for pool %d has no stake id", position.PoolID)
	case position.CreatedAt.IsZero():
		return fmt.Errorf("stake %d: missing created at", position.StakeID)
	case position.LastHarvestAt.IsZero():
		return fmt.Errorf("stake %d: missing last harvest at", position.StakeID)
	case position.LastHarvestAt.Before(position.CreatedAt):
		return fmt.Errorf("stake %d: last harvest %s before creation %s", position.StakeID,
			position.LastHarvestAt.UTC().Format(time.RFC3339), position.CreatedAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func (l *PositionLedger) TotalStakedValue() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, position := range l.positions {
		total = total.Add(position.Value().Mul(l.prices.PriceOf(position.Token)))
	}
	return total
}

// TotalPendingRewards is a display estimate. Settled reward values only exist
// encrypted on chain.
func (l *PositionLedger) TotalPendingRewards() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.clock.Now()
	total := decimal.Zero
	for _, position := range l.positions {
		elapsed := now.Sub(position.LastHarvestAt)
		if elapsed <= 0 {
			continue
		}
		days := decimal.NewFromInt(int64(elapsed)).Div(dayDuration)
		reward := position.Value().
			Mul(l.prices.PriceOf(position.Token)).
			Mul(DailyRewardRate).
			Mul(days)
		total = total.Add(reward)
	}
	return total
}

func (l *PositionLedger) PrivacyScore() int {
	l.mu.RLock()
	count := len(l.positions)
	l.mu.RUnlock()

	score := basePrivacyScore + privacyScorePerStake*count
	if count > 0 {
		score += privacyActiveBonus
	}
	return min(maxPrivacyScore, score)
}

func (l *PositionLedger) poolByID(poolID domain.PoolID) (domain.Pool, bool) {
	for _, pool := range l.pools {
		if pool.ID == poolID {
			return pool, true
		}
	}
	return domain.Pool{}, false
}

func (l *PositionLedger) positionIndexForPool(poolID domain.PoolID) (int, bool) {
	for i, position := range l.positions {
		if position.PoolID == poolID {
			return i, true
		}
	}
	return 0, false
}

func (l *PositionLedger) positionIndexForStake(stakeID domain.StakeID) (int, bool) {
	for i, position := range l.positions {
		if position.StakeID == stakeID {
			return i, true
		}
	}
	return 0, false
}

func (l *PositionLedger) subscriberSnapshot() []func(LedgerEvent) {
	subscribers := make([]func(LedgerEvent), 0, len(l.subscribers))
	for id := 0; id < l.nextSubID; id++ {
		if fn, ok := l.subscribers[id]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	return subscribers
}

func notify(subscribers []func(LedgerEvent), event LedgerEvent) {
	for _, fn := range subscribers {
		fn(event)
	}
}
