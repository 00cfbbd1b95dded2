// Package safemath provides the checked arithmetic every instruction in this
// module is required to use. Overflow, underflow and division by zero are
// surfaced as errors instead of wrapping or panicking.
package safemath

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrOverflow       = errors.New("arithmetic overflow")
	ErrUnderflow      = errors.New("arithmetic underflow")
	ErrDivisionByZero = errors.New("division by zero")
)

func CheckedAddU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func CheckedSubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

func CheckedMulU64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrOverflow
	}
	return a * b, nil
}

func CheckedAddU32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func CheckedMulU32(a, b uint32) (uint32, error) {
	if a != 0 && b > math.MaxUint32/a {
		return 0, ErrOverflow
	}
	return a * b, nil
}

func CheckedAddU8(a, b uint8) (uint8, error) {
	if a > math.MaxUint8-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func CheckedSubU8(a, b uint8) (uint8, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// MulDivFloor computes a*b/c with a 128-bit intermediate product, rounding
// down. Pool arithmetic runs through big.Int so the intermediate never
// truncates.
func MulDivFloor(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}

	product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	product.Quo(product, new(big.Int).SetUint64(c))
	if !product.IsUint64() {
		return 0, ErrOverflow
	}
	return product.Uint64(), nil
}

// MulDivCeil computes a*b/c rounding up.
func MulDivCeil(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}

	product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	quo, rem := new(big.Int).QuoRem(product, new(big.Int).SetUint64(c), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	if !quo.IsUint64() {
		return 0, ErrOverflow
	}
	return quo.Uint64(), nil
}
