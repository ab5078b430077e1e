package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StakePosition struct {
	StakeID       StakeID
	PoolID        PoolID
	Amount        string
	Token         string
	CreatedAt     time.Time
	LastHarvestAt time.Time
}

// Value returns the staked amount as a decimal. Amounts are validated on the
// way into the ledger, so a parse failure yields zero.
func (p StakePosition) Value() decimal.Decimal {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
