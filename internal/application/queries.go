package application

import (
	"github.com/bnema/secrecy-farm-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Dashboard is the read model the presentation layer renders. The reward
// figure is a local estimate and never a settled amount.
type Dashboard struct {
	Wallet                common.Address
	Connected             bool
	Pools                 []domain.Pool
	Positions             []domain.StakePosition
	TotalStakedValue      decimal.Decimal
	PendingRewardEstimate decimal.Decimal
	PrivacyScore          int
}
