package placeholder

import (
	"context"
	"fmt"

	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/shopspring/decimal"
)

// BlobSize is the length of each placeholder ciphertext and proof.
const BlobSize = 32

// Encryptor returns all-zero ciphertext and proof blobs. It stands in for
// the FHE client until a real encryption backend is wired; the contract
// simulator accepts any blob.
type Encryptor struct{}

var _ ports.PayloadEncryptor = Encryptor{}

func (Encryptor) EncryptAmount(ctx context.Context, amount decimal.Decimal) (domain.EncryptedPayload, error) {
	if err := ctx.Err(); err != nil {
		return domain.EncryptedPayload{}, err
	}
	if !amount.IsPositive() {
		return domain.EncryptedPayload{}, fmt.Errorf("encrypt amount %s: amount must be positive", amount)
	}
	return zeroPayload(), nil
}

func (Encryptor) EncryptReward(ctx context.Context, stakeID domain.StakeID) (domain.EncryptedPayload, error) {
	if err := ctx.Err(); err != nil {
		return domain.EncryptedPayload{}, err
	}
	if stakeID == 0 {
		return domain.EncryptedPayload{}, fmt.Errorf("encrypt reward: stake id is required")
	}
	return zeroPayload(), nil
}

func zeroPayload() domain.EncryptedPayload {
	return domain.EncryptedPayload{
		Ciphertext: make([]byte, BlobSize),
		Proof:      make([]byte, BlobSize),
	}
}
