package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type PoolID uint64
type StakeID uint64

type Pool struct {
	ID       PoolID
	Name     string
	Token    string
	IsStaked bool
}

func (p Pool) Validate() error {
	if p.ID == 0 {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Token) == "" {
		return fmt.Errorf("token is required")
	}

	return nil
}

// DefaultPools is the catalog used when no pools file is configured.
func DefaultPools() []Pool {
	return []Pool{
		{ID: 1, Name: "ETH Vault", Token: "ETH"},
		{ID: 2, Name: "USDC Stable", Token: "USDC"},
		{ID: 3, Name: "BTC Reserve", Token: "WBTC"},
		{ID: 4, Name: "DeFi Basket", Token: "DEFI"},
	}
}

// PoolSnapshot is the read-only view returned by the contract's pool query.
// The uint8 aggregates are obfuscated on chain and carry no plaintext meaning.
type PoolSnapshot struct {
	PoolID           PoolID
	Name             string
	Description      string
	TotalLiquidity   uint8
	RewardRate       uint8
	TotalStaked      uint8
	ParticipantCount uint8
	IsActive         bool
	IsVerified       bool
	Creator          common.Address
	StartTime        time.Time
	EndTime          time.Time
	TokenAddress     common.Address
	PublicRewardPool *big.Int
}
