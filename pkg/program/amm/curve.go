package amm

import (
	"github.com/fili8-labs/onchain/pkg/safemath"
)

// Curve arithmetic for the constant-product pool. Rounding always favours
// the pool: deposits round the required amounts up, withdrawals and swap
// outputs round down.

// DepositAmounts returns the (dx, dy) a liquidity provider must supply to
// mint l LP tokens against reserves (x, y) and LP supply.
func DepositAmounts(x, y, supply, l uint64) (uint64, uint64, error) {
	if supply == 0 {
		return 0, 0, ErrDivisionByZero
	}

	dx, err := safemath.MulDivCeil(l, x, supply)
	if err != nil {
		return 0, 0, mapMathError(err)
	}
	dy, err := safemath.MulDivCeil(l, y, supply)
	if err != nil {
		return 0, 0, mapMathError(err)
	}
	return dx, dy, nil
}

// WithdrawAmounts returns the (dx, dy) released by burning l LP tokens.
func WithdrawAmounts(x, y, supply, l uint64) (uint64, uint64, error) {
	if supply == 0 {
		return 0, 0, ErrDivisionByZero
	}

	dx, err := safemath.MulDivFloor(l, x, supply)
	if err != nil {
		return 0, 0, mapMathError(err)
	}
	dy, err := safemath.MulDivFloor(l, y, supply)
	if err != nil {
		return 0, 0, mapMathError(err)
	}
	return dx, dy, nil
}

// SwapOutput prices an input against the curve: the fee is taken from the
// input in basis points, then out = reserveOut * inAfterFee / (reserveIn +
// inAfterFee), floored.
func SwapOutput(reserveIn, reserveOut, amountIn uint64, feeBps uint16) (uint64, error) {
	inAfterFee, err := safemath.MulDivFloor(amountIn, uint64(MaxFeeBps-feeBps), MaxFeeBps)
	if err != nil {
		return 0, mapMathError(err)
	}

	denominator, err := safemath.CheckedAddU64(reserveIn, inAfterFee)
	if err != nil {
		return 0, mapMathError(err)
	}

	out, err := safemath.MulDivFloor(reserveOut, inAfterFee, denominator)
	if err != nil {
		return 0, mapMathError(err)
	}
	return out, nil
}

func mapMathError(err error) error {
	switch err {
	case safemath.ErrOverflow:
		return ErrOverflow
	case safemath.ErrUnderflow:
		return ErrUnderflow
	case safemath.ErrDivisionByZero:
		return ErrDivisionByZero
	}
	return err
}
