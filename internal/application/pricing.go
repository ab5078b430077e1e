package application

import (
	"strings"

	"github.com/bnema/secrecy-farm-cli/internal/ports"
	"github.com/shopspring/decimal"
)

// DailyRewardRate is the display-only accrual rate used for reward estimates.
var DailyRewardRate = decimal.RequireFromString("0.001")

var defaultUnknownTokenPrice = decimal.NewFromInt(100)

// FixedPriceTable is a placeholder price source, not an oracle. Symbols are
// matched case-insensitively; unknown symbols resolve to Fallback.
type FixedPriceTable struct {
	Prices   map[string]decimal.Decimal
	Fallback decimal.Decimal
}

var _ ports.PriceSource = FixedPriceTable{}

func DefaultPriceTable() FixedPriceTable {
	return FixedPriceTable{
		Prices: map[string]decimal.Decimal{
			"ETH":  decimal.NewFromInt(2000),
			"BTC":  decimal.NewFromInt(45000),
			"USDC": decimal.NewFromInt(1),
		},
		Fallback: defaultUnknownTokenPrice,
	}
}

// WithOverrides returns a copy of the table with the given symbols repriced.
func (t FixedPriceTable) WithOverrides(overrides map[string]decimal.Decimal) FixedPriceTable {
	prices := make(map[string]decimal.Decimal, len(t.Prices)+len(overrides))
	for symbol, price := range t.Prices {
		prices[strings.ToUpper(symbol)] = price
	}
	for symbol, price := range overrides {
		prices[strings.ToUpper(strings.TrimSpace(symbol))] = price
	}

	return FixedPriceTable{Prices: prices, Fallback: t.Fallback}
}

func (t FixedPriceTable) PriceOf(token string) decimal.Decimal {
	if price, ok := t.Prices[strings.ToUpper(strings.TrimSpace(token))]; ok {
		return price
	}
	return t.Fallback
}
