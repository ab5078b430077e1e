package domain

import "github.com/ethereum/go-ethereum/common/hexutil"

type IntentKind string

const (
	IntentStake   IntentKind = "stake"
	IntentHarvest IntentKind = "harvest"
)

type Phase string

const (
	PhaseInput      Phase = "input"
	PhaseConfirm    Phase = "confirm"
	PhaseProcessing Phase = "processing"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
	PhaseCancelled  Phase = "cancelled"
)

func (p Phase) Terminal() bool {
	switch p {
	case PhaseSuccess, PhaseError, PhaseCancelled:
		return true
	default:
		return false
	}
}

// TransactionIntent is the transient data a single workflow drives.
// StakeID is zero for a first stake into a pool.
type TransactionIntent struct {
	Kind    IntentKind
	PoolID  PoolID
	StakeID StakeID
	Amount  string
	Token   string
}

// EncryptedPayload holds externally produced ciphertext and proof blobs.
type EncryptedPayload struct {
	Ciphertext []byte
	Proof      []byte
}

func (p EncryptedPayload) String() string {
	return hexutil.Encode(p.Ciphertext)
}
