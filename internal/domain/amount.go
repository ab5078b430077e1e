package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	reasonEnterValidAmount = "Please enter a valid amount"
	reasonNotPositive      = "Amount must be greater than 0"
	reasonBelowMinimum     = "Minimum stake amount is 0.001"
)

var (
	MinStakeAmount = decimal.RequireFromString("0.001")

	decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)
)

// SanitizeAmount keeps digits and the first decimal point of raw input.
func SanitizeAmount(raw string) string {
	var b strings.Builder
	seenPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount parses a plain positive-form decimal string. Signs, exponents
// and separators are rejected.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(trimmed) {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(NormalizeAmount(trimmed))
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ValidateAmount applies the stake input rules in order: parseable, positive,
// at least MinStakeAmount.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "0" || trimmed == "0." {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: reasonEnterValidAmount}
	}

	amount, ok := ParseAmount(trimmed)
	if !ok {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: reasonEnterValidAmount}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: reasonNotPositive}
	}
	if amount.LessThan(MinStakeAmount) {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: reasonBelowMinimum}
	}

	return amount, nil
}

// NormalizeAmount rewrites a parseable amount into the canonical stored form:
// a leading zero before a bare fraction and no dangling decimal point.
func NormalizeAmount(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, ".") {
		trimmed = "0" + trimmed
	}
	return strings.TrimSuffix(trimmed, ".")
}
