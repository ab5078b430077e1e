package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports/mocks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var placeholderPayload = domain.EncryptedPayload{Ciphertext: make([]byte, 32), Proof: make([]byte, 32)}

type workflowFixture struct {
	clock     *fakeClock
	ledger    *PositionLedger
	gateway   *mocks.MockContractGateway
	encryptor *mocks.MockPayloadEncryptor
	wallet    *mocks.MockWalletSession
	service   *FarmService
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ledger := newTestLedger(t, clock)
	gateway := mocks.NewMockContractGateway(t)
	encryptor := mocks.NewMockPayloadEncryptor(t)
	wallet := mocks.NewMockWalletSession(t)

	return &workflowFixture{
		clock:     clock,
		ledger:    ledger,
		gateway:   gateway,
		encryptor: encryptor,
		wallet:    wallet,
		service:   NewFarmService(ledger, gateway, encryptor, wallet, clock, nil),
	}
}

func amountEquals(want string) interface{} {
	expected := decimal.RequireFromString(want)
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(expected) })
}

func (f *workflowFixture) expectStake(poolID domain.PoolID, amount string, handle *staticHandle, err error) {
	f.encryptor.EXPECT().EncryptAmount(mock.Anything, amountEquals(amount)).Return(placeholderPayload, nil).Once()
	if handle == nil {
		f.gateway.EXPECT().SubmitStake(mock.Anything, poolID, amountEquals(amount), placeholderPayload).Return(nil, err).Once()
		return
	}
	f.gateway.EXPECT().SubmitStake(mock.Anything, poolID, amountEquals(amount), placeholderPayload).Return(handle, err).Once()
}

func TestStakeWorkflowFirstStakeReachesSuccess(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1.0", settledHandle(confirmedStatus(1)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseInput, wf.Phase())

	sanitized, err := wf.SetAmount("1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0", sanitized)

	require.NoError(t, wf.Submit())
	assert.Equal(t, domain.PhaseConfirm, wf.Phase())

	handle, err := wf.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseProcessing, wf.Phase())

	status, err := wf.Await(context.Background(), handle)
	require.NoError(t, err)
	require.NoError(t, wf.Settle(status))
	assert.Equal(t, domain.PhaseSuccess, wf.Phase())

	position, ok := f.ledger.Position(1)
	require.True(t, ok)
	assert.Equal(t, "1.0", position.Amount)
	assert.Equal(t, "ETH", position.Token)

	pool, err := f.ledger.Pool(1)
	require.NoError(t, err)
	assert.True(t, pool.IsStaked)

	result, ok := wf.Position()
	require.True(t, ok)
	assert.Equal(t, position, result)
	assert.Equal(t, common.HexToHash("0x01"), wf.TxHash())
}

func TestStakeWorkflowBelowMinimumStaysInInput(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("0.0005")
	require.NoError(t, err)

	err = wf.Submit()
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, "Minimum stake amount is 0.001", err.Error())
	assert.Equal(t, domain.PhaseInput, wf.Phase())

	_, err = wf.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.ledger.Positions())
}

func TestStakeWorkflowSanitizesInput(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	wf, err := f.service.BeginStake(2)
	require.NoError(t, err)

	sanitized, err := wf.SetAmount("12a.5.0 USDC")
	require.NoError(t, err)
	assert.Equal(t, "12.50", sanitized)
	assert.Equal(t, "12.50", wf.Intent().Amount)
}

func TestHarvestWorkflowRejectedKeepsLastHarvest(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	_, err := f.ledger.AddOrUpdatePosition(1, 1, "2.5", "ETH")
	require.NoError(t, err)
	before, _ := f.ledger.Position(1)

	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.encryptor.EXPECT().EncryptReward(mock.Anything, domain.StakeID(1)).Return(placeholderPayload, nil)
	f.gateway.EXPECT().SubmitHarvest(mock.Anything, domain.StakeID(1), placeholderPayload).
		Return(settledHandle(rejectedStatus(errors.New("user rejected"))), nil)

	wf, err := f.service.BeginHarvest(1)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseConfirm, wf.Phase())

	f.clock.Advance(24 * time.Hour)
	err = wf.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmissionRejected)
	assert.Equal(t, domain.PhaseError, wf.Phase())
	assert.Equal(t, "user rejected", wf.FailureReason())

	after, _ := f.ledger.Position(1)
	assert.Equal(t, before.LastHarvestAt, after.LastHarvestAt)
}

func TestHarvestWorkflowUnknownStake(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	_, err := f.service.BeginHarvest(9)
	require.ErrorIs(t, err, domain.ErrUnknownStake)
}

func TestHarvestWorkflowSuccessRefreshesLastHarvest(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	_, err := f.ledger.AddOrUpdatePosition(1, 1, "2.5", "ETH")
	require.NoError(t, err)

	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.encryptor.EXPECT().EncryptReward(mock.Anything, domain.StakeID(1)).Return(placeholderPayload, nil)
	f.gateway.EXPECT().SubmitHarvest(mock.Anything, domain.StakeID(1), placeholderPayload).
		Return(settledHandle(confirmedStatus(0)), nil)

	wf, err := f.service.BeginHarvest(1)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	require.NoError(t, wf.Run(context.Background()))

	position, _ := f.ledger.Position(1)
	assert.Equal(t, f.clock.Now(), position.LastHarvestAt)
	assert.Equal(t, "2.5", position.Amount)
}

func TestStakeWorkflowSequentialStakesAccumulate(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1.0", settledHandle(confirmedStatus(1)), nil)
	f.expectStake(1, "0.5", settledHandle(confirmedStatus(1)), nil)

	for _, amount := range []string{"1.0", "0.5"} {
		wf, err := f.service.BeginStake(1)
		require.NoError(t, err)
		_, err = wf.SetAmount(amount)
		require.NoError(t, err)
		require.NoError(t, wf.Submit())
		require.NoError(t, wf.Run(context.Background()))
	}

	positions := f.ledger.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, "1.5", positions[0].Amount)
	assert.Equal(t, domain.StakeID(1), positions[0].StakeID)
}

func TestStakeWorkflowTopUpKeepsExistingStakeID(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	_, err := f.ledger.AddOrUpdatePosition(3, 2, "0.1", "WBTC")
	require.NoError(t, err)

	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(3, "0.05", settledHandle(confirmedStatus(0)), nil)

	wf, err := f.service.BeginStake(3)
	require.NoError(t, err)
	assert.Equal(t, domain.StakeID(2), wf.Intent().StakeID)

	_, err = wf.SetAmount("0.05")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())
	require.NoError(t, wf.Run(context.Background()))

	position, ok := f.ledger.Position(2)
	require.True(t, ok)
	assert.Equal(t, "0.15", position.Amount)
}

func TestStakeWorkflowNotConnectedNeverSubmits(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(common.Address{}, false)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	_, err = wf.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Equal(t, domain.PhaseConfirm, wf.Phase())
	assert.False(t, f.service.PoolBusy(1))
}

func TestStakeWorkflowSubmissionErrorLandsInError(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", nil, errors.New("wallet declined signing"))

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	_, err = wf.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmissionRejected)
	assert.Equal(t, domain.PhaseError, wf.Phase())
	assert.Equal(t, "wallet declined signing", wf.FailureReason())
	assert.Empty(t, f.ledger.Positions())
	assert.False(t, f.service.PoolBusy(1))
}

func TestStakeWorkflowConfirmationFailure(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", settledHandle(revertedStatus(errors.New("execution reverted"))), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	err = wf.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrConfirmationFailed)
	assert.Equal(t, "execution reverted", wf.FailureReason())
	assert.Empty(t, f.ledger.Positions())
}

func TestStakeWorkflowUnconfirmedWithoutReason(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", settledHandle(revertedStatus(nil)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	err = wf.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrConfirmationFailed)
	assert.Equal(t, "transaction was not confirmed", wf.FailureReason())
}

func TestStakeWorkflowRetryReentersInputWithSameIntent(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "2", nil, errors.New("nonce too low"))
	f.expectStake(1, "2", settledHandle(confirmedStatus(4)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("2")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())
	require.Error(t, wf.Run(context.Background()))

	require.NoError(t, wf.Retry())
	assert.Equal(t, domain.PhaseInput, wf.Phase())
	assert.NoError(t, wf.Failure())
	assert.Equal(t, "2", wf.Intent().Amount)

	require.NoError(t, wf.Submit())
	require.NoError(t, wf.Run(context.Background()))
	position, ok := f.ledger.Position(4)
	require.True(t, ok)
	assert.Equal(t, "2", position.Amount)
}

func TestHarvestWorkflowRetryReentersConfirm(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	_, err := f.ledger.AddOrUpdatePosition(1, 1, "1", "ETH")
	require.NoError(t, err)

	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.encryptor.EXPECT().EncryptReward(mock.Anything, domain.StakeID(1)).Return(placeholderPayload, nil)
	f.gateway.EXPECT().SubmitHarvest(mock.Anything, domain.StakeID(1), placeholderPayload).Return(nil, errors.New("user rejected"))

	wf, err := f.service.BeginHarvest(1)
	require.NoError(t, err)
	require.Error(t, wf.Run(context.Background()))

	require.NoError(t, wf.Retry())
	assert.Equal(t, domain.PhaseConfirm, wf.Phase())
}

func TestStakeWorkflowConfirmedButUnrecordedIsNotRetryable(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	_, err := f.ledger.AddOrUpdatePosition(1, 1, "1", "ETH")
	require.NoError(t, err)

	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(2, "10", settledHandle(confirmedStatus(1)), nil)

	wf, err := f.service.BeginStake(2)
	require.NoError(t, err)
	_, err = wf.SetAmount("10")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	err = wf.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrUnrecorded)
	assert.ErrorContains(t, err, "already belongs to another pool")
	assert.Equal(t, domain.PhaseError, wf.Phase())
	assert.Equal(t, common.HexToHash("0x01"), wf.TxHash())

	err = wf.Retry()
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorContains(t, err, "already confirmed")
	assert.Equal(t, domain.PhaseError, wf.Phase())

	_, ok := f.ledger.PositionForPool(2)
	assert.False(t, ok)
	assert.False(t, f.service.PoolBusy(2))
}

func TestStakeWorkflowConfirmedWithoutStakeIDIsNotRetryable(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", settledHandle(confirmedStatus(0)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	require.ErrorIs(t, wf.Run(context.Background()), domain.ErrUnrecorded)
	require.ErrorIs(t, wf.Retry(), domain.ErrInvalidTransition)
	assert.Empty(t, f.ledger.Positions())
}

func TestWorkflowRetryOutsideErrorIsInvalid(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)

	require.ErrorIs(t, wf.Retry(), domain.ErrInvalidTransition)
	require.ErrorIs(t, wf.Dismiss(), domain.ErrInvalidTransition)
}

func TestWorkflowCancelBeforeProcessingReleasesIntent(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	wf.Cancel()
	assert.Equal(t, domain.PhaseCancelled, wf.Phase())
	assert.True(t, wf.Dismissed())
	assert.Equal(t, domain.TransactionIntent{}, wf.Intent())

	_, err = wf.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.ledger.Positions())
}

func TestWorkflowCancelDuringProcessingIsQueued(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	handle := pendingHandle()
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", handle, nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	_, err = wf.Confirm(context.Background())
	require.NoError(t, err)

	wf.Cancel()
	assert.Equal(t, domain.PhaseProcessing, wf.Phase())
	assert.False(t, wf.Dismissed())

	require.NoError(t, wf.Settle(confirmedStatus(3)))
	assert.Equal(t, domain.PhaseSuccess, wf.Phase())
	assert.True(t, wf.Dismissed())
	assert.Equal(t, 0, f.clock.pendingTimers())

	_, ok := f.ledger.Position(3)
	assert.True(t, ok, "a broadcast stake still lands in the ledger")
}

func TestWorkflowAwaitRespectsContextWithoutAborting(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	handle := pendingHandle()
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", handle, nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = wf.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.PhaseProcessing, wf.Phase())
	assert.True(t, f.service.PoolBusy(1))
}

func TestWorkflowSinglePoolHasOneProcessingWorkflow(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	first := pendingHandle()
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", first, nil)
	f.expectStake(2, "5", settledHandle(confirmedStatus(8)), nil)

	a, err := f.service.BeginStake(1)
	require.NoError(t, err)
	b, err := f.service.BeginStake(1)
	require.NoError(t, err)
	other, err := f.service.BeginStake(2)
	require.NoError(t, err)

	for wf, amount := range map[*TransactionWorkflow]string{a: "1", b: "3", other: "5"} {
		_, err = wf.SetAmount(amount)
		require.NoError(t, err)
		require.NoError(t, wf.Submit())
	}

	_, err = a.Confirm(context.Background())
	require.NoError(t, err)
	assert.True(t, f.service.PoolBusy(1))

	_, err = b.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrPoolBusy)
	assert.Equal(t, domain.PhaseConfirm, b.Phase())

	require.NoError(t, other.Run(context.Background()), "other pools are independent")

	require.NoError(t, a.Settle(confirmedStatus(7)))
	assert.False(t, f.service.PoolBusy(1))
}

func TestWorkflowSuccessAutoDismissesAfterDelay(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", settledHandle(confirmedStatus(1)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())
	require.NoError(t, wf.Run(context.Background()))

	assert.False(t, wf.Dismissed())
	f.clock.Advance(DismissDelay - time.Millisecond)
	assert.False(t, wf.Dismissed())
	f.clock.Advance(time.Millisecond)
	assert.True(t, wf.Dismissed())
	assert.Equal(t, domain.PhaseSuccess, wf.Phase())
}

func TestWorkflowDismissEarlyStopsTimer(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	f.expectStake(1, "1", settledHandle(confirmedStatus(1)), nil)

	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)
	_, err = wf.SetAmount("1")
	require.NoError(t, err)
	require.NoError(t, wf.Submit())
	require.NoError(t, wf.Run(context.Background()))
	require.Equal(t, 1, f.clock.pendingTimers())

	require.NoError(t, wf.Dismiss())
	assert.True(t, wf.Dismissed())
	assert.Equal(t, 0, f.clock.pendingTimers())
}

func TestWorkflowSettleOutsideProcessingIsInvalid(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	wf, err := f.service.BeginStake(1)
	require.NoError(t, err)

	require.ErrorIs(t, wf.Settle(confirmedStatus(1)), domain.ErrInvalidTransition)
	assert.Empty(t, f.ledger.Positions())
}

func TestBeginStakeUnknownPool(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)

	_, err := f.service.BeginStake(42)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}

func TestFarmServiceDashboard(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(testWallet, true)
	_, err := f.ledger.AddOrUpdatePosition(1, 1, "1", "ETH")
	require.NoError(t, err)

	dashboard := f.service.Dashboard()
	assert.True(t, dashboard.Connected)
	assert.Equal(t, testWallet, dashboard.Wallet)
	assert.Len(t, dashboard.Pools, 4)
	assert.Len(t, dashboard.Positions, 1)
	assert.Equal(t, "2000", dashboard.TotalStakedValue.String())
	assert.Equal(t, 98, dashboard.PrivacyScore)
}

func TestFarmServiceUserStakeCount(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.wallet.EXPECT().Address().Return(common.Address{}, false).Once()

	_, err := f.service.UserStakeCount(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConnected)

	f.wallet.EXPECT().Address().Return(testWallet, true).Once()
	f.gateway.EXPECT().UserStakeCount(mock.Anything, testWallet).Return(uint64(3), nil).Once()

	count, err := f.service.UserStakeCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestFarmServicePoolInfo(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t)
	f.gateway.EXPECT().PoolInfo(mock.Anything, domain.PoolID(2)).Return(domain.PoolSnapshot{PoolID: 2, Name: "USDC Stable", IsActive: true}, nil)

	snapshot, err := f.service.PoolInfo(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "USDC Stable", snapshot.Name)

	_, err = f.service.PoolInfo(context.Background(), 9)
	require.ErrorIs(t, err, domain.ErrPoolNotFound)
}
