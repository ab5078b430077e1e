package ports

import (
	"context"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// SubmissionStatus mirrors what the wallet/contract layer reports for one
// submitted transaction. TxHash is zero until the transaction is broadcast.
type SubmissionStatus struct {
	Pending    bool
	Confirming bool
	Confirmed  bool
	Err        error
	TxHash     common.Hash
	StakeID    domain.StakeID
}

// SubmissionHandle is returned by a mutating gateway call. Done is closed once
// the status is final.
type SubmissionHandle interface {
	Status() SubmissionStatus
	Done() <-chan struct{}
}

type ContractGateway interface {
	SubmitStake(ctx context.Context, poolID domain.PoolID, amount decimal.Decimal, payload domain.EncryptedPayload) (SubmissionHandle, error)
	SubmitHarvest(ctx context.Context, stakeID domain.StakeID, payload domain.EncryptedPayload) (SubmissionHandle, error)
	PoolInfo(ctx context.Context, poolID domain.PoolID) (domain.PoolSnapshot, error)
	UserStakeCount(ctx context.Context, owner common.Address) (uint64, error)
}

// PayloadEncryptor produces the encrypted input and proof the contract
// expects. Callers never inspect the blobs.
type PayloadEncryptor interface {
	EncryptAmount(ctx context.Context, amount decimal.Decimal) (domain.EncryptedPayload, error)
	EncryptReward(ctx context.Context, stakeID domain.StakeID) (domain.EncryptedPayload, error)
}

type WalletSession interface {
	Address() (common.Address, bool)
}

type PriceSource interface {
	PriceOf(token string) decimal.Decimal
}
