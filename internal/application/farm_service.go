package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/google/uuid"
)

// FarmService creates workflows that share one ledger, gateway and in-flight
// registry. A workflow that enters processing holds its pool until Settle,
// Cancel or Dismiss runs; if Await returns on a cancelled context the caller
// still owns the handle and must settle or dismiss the workflow, or the pool
// stays busy for the lifetime of the service.
type FarmService struct {
	ledger    *PositionLedger
	gateway   ports.ContractGateway
	encryptor ports.PayloadEncryptor
	wallet    ports.WalletSession
	clock     ports.Clock
	logger    *slog.Logger
	inflight  *inflightRegistry
}

func NewFarmService(ledger *PositionLedger, gateway ports.ContractGateway, encryptor ports.PayloadEncryptor, wallet ports.WalletSession, clock ports.Clock, logger *slog.Logger) *FarmService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &FarmService{
		ledger:    ledger,
		gateway:   gateway,
		encryptor: encryptor,
		wallet:    wallet,
		clock:     clock,
		logger:    logger,
		inflight:  newInflightRegistry(),
	}
}

func (s *FarmService) Ledger() *PositionLedger {
	return s.ledger
}

// BeginStake opens a stake workflow in the input phase. A pool that already
// has a position is topped up under the same stake ID.
func (s *FarmService) BeginStake(poolID domain.PoolID) (*TransactionWorkflow, error) {
	pool, err := s.ledger.Pool(poolID)
	if err != nil {
		return nil, fmt.Errorf("pool %d: %w", poolID, err)
	}

	intent := domain.TransactionIntent{
		Kind:   domain.IntentStake,
		PoolID: pool.ID,
		Token:  pool.Token,
	}
	if position, ok := s.ledger.PositionForPool(poolID); ok {
		intent.StakeID = position.StakeID
	}

	return s.newWorkflow(intent, domain.PhaseInput), nil
}

// BeginHarvest opens a harvest workflow directly in the confirm phase.
func (s *FarmService) BeginHarvest(stakeID domain.StakeID) (*TransactionWorkflow, error) {
	position, ok := s.ledger.Position(stakeID)
	if !ok {
		return nil, fmt.Errorf("stake %d: %w", stakeID, domain.ErrUnknownStake)
	}

	intent := domain.TransactionIntent{
		Kind:    domain.IntentHarvest,
		PoolID:  position.PoolID,
		StakeID: position.StakeID,
		Amount:  position.Amount,
		Token:   position.Token,
	}

	return s.newWorkflow(intent, domain.PhaseConfirm), nil
}

// PoolBusy reports whether a workflow for poolID is currently processing.
// That includes a workflow abandoned after Await gave up on its context.
func (s *FarmService) PoolBusy(poolID domain.PoolID) bool {
	return s.inflight.busy(poolID)
}

// UserStakeCount asks the gateway how many stakes the connected wallet owns.
func (s *FarmService) UserStakeCount(ctx context.Context) (uint64, error) {
	address, connected := s.wallet.Address()
	if !connected {
		return 0, domain.ErrNotConnected
	}

	count, err := s.gateway.UserStakeCount(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("query stake count for %s: %w", address.Hex(), err)
	}
	return count, nil
}

func (s *FarmService) PoolInfo(ctx context.Context, poolID domain.PoolID) (domain.PoolSnapshot, error) {
	if _, err := s.ledger.Pool(poolID); err != nil {
		return domain.PoolSnapshot{}, fmt.Errorf("pool %d: %w", poolID, err)
	}

	snapshot, err := s.gateway.PoolInfo(ctx, poolID)
	if err != nil {
		return domain.PoolSnapshot{}, fmt.Errorf("query pool %d: %w", poolID, err)
	}
	return snapshot, nil
}

func (s *FarmService) Dashboard() Dashboard {
	address, connected := s.wallet.Address()

	dashboard := Dashboard{
		Connected:             connected,
		Pools:                 s.ledger.ListPools(),
		Positions:             s.ledger.Positions(),
		TotalStakedValue:      s.ledger.TotalStakedValue(),
		PendingRewardEstimate: s.ledger.TotalPendingRewards(),
		PrivacyScore:          s.ledger.PrivacyScore(),
	}
	if connected {
		dashboard.Wallet = address
	}
	return dashboard
}

func (s *FarmService) newWorkflow(intent domain.TransactionIntent, phase domain.Phase) *TransactionWorkflow {
	w := &TransactionWorkflow{
		id:           uuid.New(),
		intent:       intent,
		phase:        phase,
		dismissDelay: DismissDelay,
		ledger:       s.ledger,
		gateway:      s.gateway,
		encryptor:    s.encryptor,
		wallet:       s.wallet,
		inflight:     s.inflight,
		clock:        s.clock,
		logger:       s.logger,
	}
	s.logger.Debug("workflow opened", "workflow_id", w.id, "kind", intent.Kind, "pool_id", intent.PoolID, "phase", phase)
	return w
}
