package number

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimals fractional digits carried by every ledger amount; amounts are
// stored as integers in the smallest transferable unit.
const Decimals = 6

var (
	// ErrPrecision more fractional digits than the smallest unit allows
	ErrPrecision = errors.New("number: amount precision exceeds 6 decimals")
	// ErrRange negative or beyond the uint64 range
	ErrRange = errors.New("number: amount out of range")
)

// ParseAmount converts a human readable decimal string into base units.
func ParseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return 0, ErrPrecision
	}

	bi := shifted.BigInt()
	if bi.Sign() < 0 || !bi.IsUint64() {
		return 0, ErrRange
	}

	return bi.Uint64(), nil
}

// FormatAmount renders base units as a decimal string.
func FormatAmount(v uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -Decimals).String()
}
