package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// DismissDelay is how long a successful workflow stays visible before it is
// dismissed automatically.
const DismissDelay = 2 * time.Second

const reasonNotConfirmed = "transaction was not confirmed"

// TransactionWorkflow drives one stake or harvest intent from input to a
// terminal phase. Only Settle on success mutates the ledger.
type TransactionWorkflow struct {
	mu sync.Mutex

	id           uuid.UUID
	intent       domain.TransactionIntent
	phase        domain.Phase
	failure      error
	txHash       common.Hash
	result       domain.StakePosition
	cancelQueued bool
	// confirmed is set once the gateway confirmed a submission, even when the
	// ledger then refused it.
	confirmed    bool
	dismissed    bool
	dismissTimer ports.Timer
	dismissDelay time.Duration

	ledger    *PositionLedger
	gateway   ports.ContractGateway
	encryptor ports.PayloadEncryptor
	wallet    ports.WalletSession
	inflight  *inflightRegistry
	clock     ports.Clock
	logger    *slog.Logger
}

func (w *TransactionWorkflow) ID() uuid.UUID {
	return w.id
}

func (w *TransactionWorkflow) Intent() domain.TransactionIntent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.intent
}

func (w *TransactionWorkflow) Phase() domain.Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

func (w *TransactionWorkflow) Failure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// FailureReason is the underlying failure text, unmodified, for display.
func (w *TransactionWorkflow) FailureReason() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var txErr *domain.TransactionError
	if errors.As(w.failure, &txErr) {
		return txErr.Reason
	}
	if w.failure != nil {
		return w.failure.Error()
	}
	return ""
}

func (w *TransactionWorkflow) TxHash() common.Hash {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.txHash
}

// Position is the ledger position written on success.
func (w *TransactionWorkflow) Position() (domain.StakePosition, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result, w.phase == domain.PhaseSuccess
}

func (w *TransactionWorkflow) Dismissed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dismissed
}

// SetAmount stores the sanitized form of raw and returns it.
func (w *TransactionWorkflow) SetAmount(raw string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.intent.Kind != domain.IntentStake || w.phase != domain.PhaseInput {
		return "", w.invalidTransition("set amount")
	}

	w.intent.Amount = domain.SanitizeAmount(raw)
	return w.intent.Amount, nil
}

// Submit validates the amount and moves input to confirm.
func (w *TransactionWorkflow) Submit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != domain.PhaseInput {
		return w.invalidTransition("submit")
	}

	if _, err := domain.ValidateAmount(w.intent.Amount); err != nil {
		w.logger.Debug("amount rejected", "workflow_id", w.id, "amount", w.intent.Amount, "error", err)
		return err
	}

	w.transition(domain.PhaseConfirm)
	return nil
}

// Confirm is the explicit user confirmation. It checks the wallet session and
// the pool's in-flight slot before anything is encrypted or submitted; those
// failures leave the workflow in confirm.
func (w *TransactionWorkflow) Confirm(ctx context.Context) (ports.SubmissionHandle, error) {
	w.mu.Lock()
	if w.phase != domain.PhaseConfirm {
		err := w.invalidTransition("confirm")
		w.mu.Unlock()
		return nil, err
	}

	address, connected := w.wallet.Address()
	if !connected {
		w.mu.Unlock()
		w.logger.Warn("confirm without wallet session", "workflow_id", w.id)
		return nil, domain.ErrNotConnected
	}

	intent := w.intent
	if !w.inflight.acquire(intent.PoolID, w.id) {
		w.mu.Unlock()
		return nil, fmt.Errorf("pool %d: %w", intent.PoolID, domain.ErrPoolBusy)
	}

	w.transition(domain.PhaseProcessing)
	w.mu.Unlock()

	w.logger.Info("submitting transaction", "workflow_id", w.id, "kind", intent.Kind, "pool_id", intent.PoolID, "stake_id", intent.StakeID, "wallet", address.Hex())

	handle, err := w.submit(ctx, intent)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrNotConnected) {
			w.inflight.release(intent.PoolID, w.id)
			w.transition(domain.PhaseConfirm)
			return nil, err
		}
		w.fail(&domain.TransactionError{Kind: domain.ErrSubmissionRejected, Reason: err.Error()})
		return nil, w.failure
	}

	return handle, nil
}

// Await blocks until the gateway marks the submission final or ctx ends.
// An ended ctx leaves the workflow processing: a broadcast transaction
// cannot be recalled. The pool's in-flight slot stays held until the caller
// awaits the handle again and settles it.
func (w *TransactionWorkflow) Await(ctx context.Context, handle ports.SubmissionHandle) (ports.SubmissionStatus, error) {
	select {
	case <-handle.Done():
		return handle.Status(), nil
	case <-ctx.Done():
		return handle.Status(), ctx.Err()
	}
}

// Settle applies the final submission status: processing becomes success or
// error. Success performs the single ledger mutation for the intent.
func (w *TransactionWorkflow) Settle(status ports.SubmissionStatus) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != domain.PhaseProcessing {
		return w.invalidTransition("settle")
	}

	w.txHash = status.TxHash

	if !status.Confirmed || status.Err != nil {
		kind := domain.ErrConfirmationFailed
		if status.TxHash == (common.Hash{}) {
			kind = domain.ErrSubmissionRejected
		}
		reason := reasonNotConfirmed
		if status.Err != nil {
			reason = status.Err.Error()
		}
		w.fail(&domain.TransactionError{Kind: kind, Reason: reason})
		return w.failure
	}

	w.confirmed = true
	if err := w.applyToLedger(status); err != nil {
		w.fail(fmt.Errorf("%w (tx %s): %w", domain.ErrUnrecorded, status.TxHash.Hex(), err))
		return w.failure
	}

	w.inflight.release(w.intent.PoolID, w.id)
	w.transition(domain.PhaseSuccess)

	if w.cancelQueued {
		w.dismissLocked()
		return nil
	}
	w.dismissTimer = w.clock.AfterFunc(w.dismissDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.phase == domain.PhaseSuccess && !w.dismissed {
			w.dismissLocked()
		}
	})

	return nil
}

// Run drives confirm through settle in one call.
func (w *TransactionWorkflow) Run(ctx context.Context) error {
	handle, err := w.Confirm(ctx)
	if err != nil {
		return err
	}

	status, err := w.Await(ctx, handle)
	if err != nil {
		return err
	}

	return w.Settle(status)
}

// Retry re-enters the phase before processing with the same intent. A
// workflow whose transaction was confirmed is never retried.
func (w *TransactionWorkflow) Retry() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase != domain.PhaseError || w.dismissed {
		return w.invalidTransition("retry")
	}
	if w.confirmed {
		return fmt.Errorf("retry: transaction %s already confirmed: %w", w.txHash.Hex(), domain.ErrInvalidTransition)
	}

	w.failure = nil
	w.txHash = common.Hash{}
	w.cancelQueued = false
	if w.intent.Kind == domain.IntentHarvest {
		w.transition(domain.PhaseConfirm)
	} else {
		w.transition(domain.PhaseInput)
	}
	return nil
}

// Cancel abandons the intent in input or confirm. While processing the
// request is queued and applied as a dismiss once the workflow is terminal.
func (w *TransactionWorkflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.phase {
	case domain.PhaseInput, domain.PhaseConfirm:
		w.transition(domain.PhaseCancelled)
		w.dismissLocked()
	case domain.PhaseProcessing:
		w.cancelQueued = true
		w.logger.Info("cancel queued until transaction settles", "workflow_id", w.id)
	default:
		if !w.dismissed {
			w.dismissLocked()
		}
	}
}

// Dismiss releases a terminal workflow before its automatic dismissal.
func (w *TransactionWorkflow) Dismiss() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.phase.Terminal() {
		return w.invalidTransition("dismiss")
	}
	if !w.dismissed {
		w.dismissLocked()
	}
	return nil
}

func (w *TransactionWorkflow) submit(ctx context.Context, intent domain.TransactionIntent) (ports.SubmissionHandle, error) {
	switch intent.Kind {
	case domain.IntentStake:
		amount, err := domain.ValidateAmount(intent.Amount)
		if err != nil {
			return nil, err
		}
		payload, err := w.encryptor.EncryptAmount(ctx, amount)
		if err != nil {
			return nil, fmt.Errorf("encrypt stake amount: %w", err)
		}
		return w.gateway.SubmitStake(ctx, intent.PoolID, amount, payload)
	case domain.IntentHarvest:
		payload, err := w.encryptor.EncryptReward(ctx, intent.StakeID)
		if err != nil {
			return nil, fmt.Errorf("encrypt reward claim: %w", err)
		}
		return w.gateway.SubmitHarvest(ctx, intent.StakeID, payload)
	default:
		return nil, fmt.Errorf("unsupported intent kind %q", intent.Kind)
	}
}

func (w *TransactionWorkflow) applyToLedger(status ports.SubmissionStatus) error {
	switch w.intent.Kind {
	case domain.IntentStake:
		added, ok := domain.ParseAmount(w.intent.Amount)
		if !ok {
			return &domain.InvalidAmountError{Amount: w.intent.Amount, Reason: "Please enter a valid amount"}
		}

		stakeID := status.StakeID
		total := domain.NormalizeAmount(w.intent.Amount)
		if existing, ok := w.ledger.PositionForPool(w.intent.PoolID); ok {
			stakeID = existing.StakeID
			total = existing.Value().Add(added).String()
		}
		if stakeID == 0 {
			return fmt.Errorf("gateway did not assign a stake id for pool %d", w.intent.PoolID)
		}

		position, err := w.ledger.AddOrUpdatePosition(w.intent.PoolID, stakeID, total, w.intent.Token)
		if err != nil {
			return fmt.Errorf("record stake: %w", err)
		}
		w.intent.StakeID = position.StakeID
		w.result = position
	case domain.IntentHarvest:
		position, err := w.ledger.RecordHarvest(w.intent.StakeID)
		if err != nil {
			return fmt.Errorf("record harvest: %w", err)
		}
		w.result = position
	}
	return nil
}

func (w *TransactionWorkflow) fail(err error) {
	w.failure = err
	w.inflight.release(w.intent.PoolID, w.id)
	w.transition(domain.PhaseError)
	w.logger.Warn("transaction failed", "workflow_id", w.id, "kind", w.intent.Kind, "pool_id", w.intent.PoolID, "error", err)

	if w.cancelQueued {
		w.dismissLocked()
	}
}

func (w *TransactionWorkflow) dismissLocked() {
	if w.dismissTimer != nil {
		w.dismissTimer.Stop()
		w.dismissTimer = nil
	}
	w.dismissed = true
	w.cancelQueued = false
	w.intent = domain.TransactionIntent{}
	w.logger.Debug("workflow dismissed", "workflow_id", w.id, "phase", w.phase)
}

func (w *TransactionWorkflow) transition(to domain.Phase) {
	w.logger.Info("workflow transition",
		"workflow_id", w.id,
		"kind", w.intent.Kind,
		"pool_id", w.intent.PoolID,
		"from", w.phase,
		"to", to,
	)
	w.phase = to
}

func (w *TransactionWorkflow) invalidTransition(action string) error {
	if w.dismissed {
		return fmt.Errorf("%s: workflow dismissed: %w", action, domain.ErrInvalidTransition)
	}
	return fmt.Errorf("%s in %s: %w", action, w.phase, domain.ErrInvalidTransition)
}

// inflightRegistry keeps at most one processing workflow per pool.
type inflightRegistry struct {
	mu    sync.Mutex
	pools map[domain.PoolID]uuid.UUID
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{pools: map[domain.PoolID]uuid.UUID{}}
}

func (r *inflightRegistry) acquire(poolID domain.PoolID, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.pools[poolID]; ok && owner != id {
		return false
	}
	r.pools[poolID] = id
	return true
}

func (r *inflightRegistry) release(poolID domain.PoolID, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.pools[poolID]; ok && owner == id {
		delete(r.pools, poolID)
	}
}

func (r *inflightRegistry) busy(poolID domain.PoolID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.pools[poolID]
	return ok
}
