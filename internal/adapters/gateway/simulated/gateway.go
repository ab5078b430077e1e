package simulated

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

// DefaultConfirmDelay is how long a simulated transaction takes from
// submission to its final status.
const DefaultConfirmDelay = 1500 * time.Millisecond

const (
	poolDuration   = 365 * 24 * time.Hour
	reasonReverted = "execution reverted: unknown stake"
)

var (
	creatorAddress   = common.BytesToAddress(crypto.Keccak256([]byte("secrecy-farm.creator"))[12:])
	publicRewardPool = new(big.Int).Mul(big.NewInt(1_000), big.NewInt(1e18))
)

type Options struct {
	Pools        []domain.Pool
	Wallet       ports.WalletSession
	Clock        ports.Clock
	ConfirmDelay time.Duration
	// FailReason, when set, makes every submission revert with this reason
	// after it has been broadcast.
	FailReason string
	Logger     *slog.Logger
}

// Gateway is an in-process stand-in for the confidential farming contract.
// It assigns stake IDs, derives transaction hashes and settles submissions
// after ConfirmDelay.
type Gateway struct {
	opts    Options
	started time.Time

	mu          sync.Mutex
	pools       map[domain.PoolID]domain.Pool
	stakes      map[domain.StakeID]domain.PoolID
	owners      map[domain.StakeID]common.Address
	poolStakes  map[domain.PoolID]domain.StakeID
	totals      map[domain.PoolID]decimal.Decimal
	nextStakeID domain.StakeID
	nonce       uint64
}

var _ ports.ContractGateway = (*Gateway)(nil)

func New(opts Options) (*Gateway, error) {
	if opts.Wallet == nil {
		return nil, errors.New("wallet session is required")
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.ConfirmDelay < 0 {
		return nil, fmt.Errorf("confirm delay must not be negative, got %s", opts.ConfirmDelay)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g := &Gateway{
		opts:        opts,
		started:     opts.Clock.Now(),
		pools:       make(map[domain.PoolID]domain.Pool, len(opts.Pools)),
		stakes:      map[domain.StakeID]domain.PoolID{},
		owners:      map[domain.StakeID]common.Address{},
		poolStakes:  map[domain.PoolID]domain.StakeID{},
		totals:      map[domain.PoolID]decimal.Decimal{},
		nextStakeID: 1,
	}
	for _, pool := range opts.Pools {
		g.pools[pool.ID] = pool
	}

	return g, nil
}

// Seed registers positions already held by owner so that stake IDs stay
// stable across process restarts.
func (g *Gateway) Seed(owner common.Address, positions []domain.StakePosition) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, position := range positions {
		g.stakes[position.StakeID] = position.PoolID
		g.owners[position.StakeID] = owner
		g.poolStakes[position.PoolID] = position.StakeID
		g.totals[position.PoolID] = g.totals[position.PoolID].Add(position.Value())
		if position.StakeID >= g.nextStakeID {
			g.nextStakeID = position.StakeID + 1
		}
	}
}

func (g *Gateway) SubmitStake(ctx context.Context, poolID domain.PoolID, amount decimal.Decimal, payload domain.EncryptedPayload) (ports.SubmissionHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wallet, err := g.walletAddress()
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("stake amount %s must be positive", amount)
	}

	g.mu.Lock()
	if _, ok := g.pools[poolID]; !ok {
		g.mu.Unlock()
		return nil, fmt.Errorf("pool %d: %w", poolID, domain.ErrPoolNotFound)
	}
	txHash := g.nextTxHashLocked(wallet, "stake", uint64(poolID), payload)
	g.mu.Unlock()

	g.opts.Logger.Debug("stake submitted", "pool_id", poolID, "tx_hash", txHash.Hex(), "payload", payload.String())

	return g.track(txHash, func() ports.SubmissionStatus {
		if g.opts.FailReason != "" {
			return ports.SubmissionStatus{TxHash: txHash, Err: errors.New(g.opts.FailReason)}
		}

		g.mu.Lock()
		defer g.mu.Unlock()

		stakeID, ok := g.poolStakes[poolID]
		if !ok {
			stakeID = g.nextStakeID
			g.nextStakeID++
			g.poolStakes[poolID] = stakeID
			g.stakes[stakeID] = poolID
			g.owners[stakeID] = wallet
		}
		g.totals[poolID] = g.totals[poolID].Add(amount)

		return ports.SubmissionStatus{Confirmed: true, TxHash: txHash, StakeID: stakeID}
	}), nil
}

func (g *Gateway) SubmitHarvest(ctx context.Context, stakeID domain.StakeID, payload domain.EncryptedPayload) (ports.SubmissionHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wallet, err := g.walletAddress()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	txHash := g.nextTxHashLocked(wallet, "harvest", uint64(stakeID), payload)
	g.mu.Unlock()

	g.opts.Logger.Debug("harvest submitted", "stake_id", stakeID, "tx_hash", txHash.Hex())

	return g.track(txHash, func() ports.SubmissionStatus {
		if g.opts.FailReason != "" {
			return ports.SubmissionStatus{TxHash: txHash, Err: errors.New(g.opts.FailReason)}
		}

		g.mu.Lock()
		_, known := g.stakes[stakeID]
		g.mu.Unlock()
		if !known {
			return ports.SubmissionStatus{TxHash: txHash, Err: errors.New(reasonReverted)}
		}

		return ports.SubmissionStatus{Confirmed: true, TxHash: txHash, StakeID: stakeID}
	}), nil
}

func (g *Gateway) PoolInfo(ctx context.Context, poolID domain.PoolID) (domain.PoolSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.PoolSnapshot{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	pool, ok := g.pools[poolID]
	if !ok {
		return domain.PoolSnapshot{}, fmt.Errorf("pool %d: %w", poolID, domain.ErrPoolNotFound)
	}

	participants := 0
	for _, owner := range g.stakes {
		if owner == poolID {
			participants++
		}
	}
	total := g.totals[poolID]

	return domain.PoolSnapshot{
		PoolID:           pool.ID,
		Name:             pool.Name,
		Description:      fmt.Sprintf("Confidential %s yield pool", pool.Token),
		TotalLiquidity:   obfuscate(poolID, "liquidity", total.String()),
		RewardRate:       obfuscate(poolID, "reward_rate", ""),
		TotalStaked:      obfuscate(poolID, "total_staked", total.String()),
		ParticipantCount: obfuscate(poolID, "participants", fmt.Sprint(participants)),
		IsActive:         true,
		IsVerified:       true,
		Creator:          creatorAddress,
		StartTime:        g.started,
		EndTime:          g.started.Add(poolDuration),
		TokenAddress:     common.BytesToAddress(crypto.Keccak256([]byte(pool.Token))[12:]),
		PublicRewardPool: new(big.Int).Set(publicRewardPool),
	}, nil
}

// UserStakeCount is the number of stakes owned by owner.
func (g *Gateway) UserStakeCount(ctx context.Context, owner common.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var count uint64
	for _, staker := range g.owners {
		if staker == owner {
			count++
		}
	}
	return count, nil
}

func (g *Gateway) walletAddress() (common.Address, error) {
	address, connected := g.opts.Wallet.Address()
	if !connected {
		return common.Address{}, domain.ErrNotConnected
	}
	return address, nil
}

func (g *Gateway) nextTxHashLocked(wallet common.Address, method string, subject uint64, payload domain.EncryptedPayload) common.Hash {
	g.nonce++

	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], subject)
	binary.BigEndian.PutUint64(buf[8:], g.nonce)

	return crypto.Keccak256Hash(wallet.Bytes(), []byte(method), buf[:], payload.Ciphertext, payload.Proof)
}

// track returns a handle that moves from pending to confirming once
// broadcast and resolves with settle after ConfirmDelay.
func (g *Gateway) track(txHash common.Hash, settle func() ports.SubmissionStatus) *submission {
	s := &submission{
		status: ports.SubmissionStatus{Pending: true},
		done:   make(chan struct{}),
	}

	g.opts.Clock.AfterFunc(g.opts.ConfirmDelay/3, func() {
		s.update(ports.SubmissionStatus{Confirming: true, TxHash: txHash}, false)
	})
	g.opts.Clock.AfterFunc(g.opts.ConfirmDelay, func() {
		status := settle()
		g.opts.Logger.Debug("submission settled", "tx_hash", txHash.Hex(), "confirmed", status.Confirmed, "error", status.Err)
		s.update(status, true)
	})

	return s
}

func obfuscate(poolID domain.PoolID, field string, value string) uint8 {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], uint64(poolID))
	return crypto.Keccak256(id[:], []byte(field), []byte(value))[0]
}

type submission struct {
	mu     sync.Mutex
	status ports.SubmissionStatus
	final  bool
	done   chan struct{}
}

func (s *submission) Status() ports.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *submission) Done() <-chan struct{} {
	return s.done
}

func (s *submission) update(status ports.SubmissionStatus, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.final {
		return
	}
	s.status = status
	if final {
		s.final = true
		close(s.done)
	}
}
