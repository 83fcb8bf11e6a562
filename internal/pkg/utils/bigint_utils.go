package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ScaleDecimals is the fixed-point exponent used for every amount and APY on the staking contracts.
const ScaleDecimals = 18

const (
	minFractionDigits = 2
	maxFractionDigits = 4
	maxInputFraction  = ScaleDecimals

	// FallbackDecimal is returned for input that is not a base-10 integer.
	FallbackDecimal = "0.00"
)

// ScaledToDecimal converts a base-10 integer scaled by 10^18 into an en-US grouped decimal string
// with two to four fraction digits.
// Example: raw="1234567800000000000000" => "1,234.5678"
func ScaledToDecimal(raw string) string {
	v, ok := parseScaled(raw)
	if !ok {
		return FallbackDecimal
	}
	return FormatScaled(v)
}

// FormatScaled is ScaledToDecimal for an already parsed value. A nil value formats as zero.
func FormatScaled(v *big.Int) string {
	if v == nil {
		v = new(big.Int)
	}
	d := decimal.NewFromBigInt(v, -ScaleDecimals).Round(maxFractionDigits)

	negative := d.Sign() < 0
	fixed := d.Abs().StringFixed(maxFractionDigits)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	fracPart = strings.TrimRight(fracPart, "0")
	for len(fracPart) < minFractionDigits {
		fracPart += "0"
	}

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return FallbackDecimal
	}

	out := humanize.BigComma(whole) + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// PercentFromScaled renders a 10^18-scaled ratio as a percentage with exactly two decimals.
// Example: raw="50000000000000000" => "5.00"
func PercentFromScaled(raw string) string {
	v, ok := parseScaled(raw)
	if !ok {
		return FallbackDecimal
	}
	return FormatPercent(v)
}

// FormatPercent is PercentFromScaled for an already parsed value.
func FormatPercent(v *big.Int) string {
	if v == nil {
		v = new(big.Int)
	}
	return decimal.NewFromBigInt(v, -ScaleDecimals).Shift(2).StringFixed(2)
}

// ParseDecimalToScaled converts a user-entered decimal amount ("100", "0.5") into its 10^18-scaled integer.
// Signs, exponents, grouping separators and more than 18 fraction digits are rejected.
func ParseDecimalToScaled(amount string) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, fmt.Errorf("amount is empty")
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("amount %q has no digits", amount)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return nil, fmt.Errorf("amount %q is not a plain decimal number", amount)
	}
	if len(fracPart) > maxInputFraction {
		return nil, fmt.Errorf("amount %q has more than %d fraction digits", amount, maxInputFraction)
	}

	if intPart == "" {
		intPart = "0"
	}
	normalized := intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	return d.Shift(ScaleDecimals).BigInt(), nil
}

// ScaledFromWhole returns whole * 10^18.
func ScaledFromWhole(whole int64) *big.Int {
	return decimal.NewFromInt(whole).Shift(ScaleDecimals).BigInt()
}

// ScaledFromString parses a decimal literal into its 10^18-scaled integer and panics on malformed input.
// It is meant for static tables.
func ScaledFromString(s string) *big.Int {
	return decimal.RequireFromString(s).Shift(ScaleDecimals).BigInt()
}

func parseScaled(raw string) (*big.Int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
